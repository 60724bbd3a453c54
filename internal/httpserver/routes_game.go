// internal/httpserver/routes_game.go
//
// Game events. Every handler takes s.mu for the whole event and answers with
// the board view, so the client never has to reconstruct state.
//
//   GET  /game            → current board
//   POST /game/start      → suspend the current game, switch difficulty, resume or start fresh
//   POST /game/try-again  → abandon and start fresh at the current difficulty
//   POST /game/daily      → start the word of the day at the current difficulty
//   POST /game/letter     → type one letter
//   POST /game/backspace  → delete one letter
//   POST /game/submit     → score the row
//   POST /game/hint       → reveal one undiscovered letter on the keyboard
//   GET  /game/answer     → the target, once the game has ended

package httpserver

import (
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordguess/internal/game"
	"github.com/robalobadob/wordguess/internal/words"
)

func (s *Server) mountGame() {
	s.r.Route("/game", func(r chi.Router) {
		r.Get("/", s.handleBoard)
		r.Post("/start", s.handleStart)
		r.Post("/try-again", s.handleTryAgain)
		r.Post("/daily", s.handleDaily)
		r.Post("/letter", s.handleLetter)
		r.Post("/backspace", s.handleBackspace)
		r.Post("/submit", s.handleSubmit)
		r.Post("/hint", s.handleHint)
		r.Get("/answer", s.handleAnswer)
	})
}

// respond writes the board view. A player-facing err becomes the view's
// message; any other err is a 500.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, v boardView, err error) {
	if err != nil {
		text, d, ok := game.Advice(err)
		if !ok {
			hlog.FromRequest(r).Error().Err(err).Msg("game event")
			writeError(w, http.StatusInternalServerError, "internal")
			return
		}
		v.Message = newMessage(text, d)
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respond(w, r, s.view(), nil)
}

type startReq struct {
	Difficulty *game.Difficulty `json:"difficulty"`
}

// handleStart switches to the requested difficulty (or the saved setting)
// and resumes its saved game if there is one.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	ctx := r.Context()

	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.progress.Settings(ctx)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("load settings")
	}
	if req.Difficulty != nil && *req.Difficulty != settings.Difficulty {
		settings.Difficulty = *req.Difficulty
		if err := s.progress.SaveSettings(ctx, settings); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("save settings")
		}
	}

	s.session.Suspend(ctx)
	if err := s.session.Start(ctx, settings.Difficulty); err != nil {
		s.respond(w, r, s.view(), err)
		return
	}
	s.respond(w, r, s.view(), nil)
}

// current is the difficulty of the session, or the saved setting when no
// game has been started yet.
func (s *Server) current(r *http.Request) game.Difficulty {
	if s.session.Status() != game.StatusIdle {
		return s.session.Difficulty()
	}
	settings, err := s.progress.Settings(r.Context())
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("load settings")
	}
	return settings.Difficulty
}

func (s *Server) handleTryAgain(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.session.Reset(r.Context(), s.current(r))
	s.respond(w, r, s.view(), err)
}

type dailyRes struct {
	boardView
	Date string `json:"date"`
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if err := s.session.StartWithTarget(r.Context(), s.current(r), s.dict.Daily(now, s.salt)); err != nil {
		s.respond(w, r, s.view(), err)
		return
	}
	writeJSON(w, http.StatusOK, dailyRes{boardView: s.view(), Date: words.DateKey(now)})
}

type letterReq struct {
	Letter string `json:"letter"`
}

// handleLetter types one letter. Anything that is not a single letter, or a
// letter that does not fit, is ignored.
func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, size := utf8.DecodeRuneInString(req.Letter); size > 0 && size == len(req.Letter) {
		s.session.InputLetter(ch)
	}
	s.respond(w, r, s.view(), nil)
}

func (s *Server) handleBackspace(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Backspace()
	s.respond(w, r, s.view(), nil)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := s.session.SubmitRow(r.Context())
	v := s.view()
	v.Marks = out.Marks
	s.respond(w, r, v, err)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.session.UseHint()
	v := s.view()
	if err == nil {
		v.Hint = string(l)
	}
	s.respond(w, r, v, err)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.session.Reveal()
	s.respond(w, r, s.view(), err)
}
