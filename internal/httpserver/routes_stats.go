// internal/httpserver/routes_stats.go
//
// Statistics and settings.
//   GET    /stats/{difficulty} → games played/won, streaks, win %, guess distribution
//   DELETE /stats/{difficulty} → zero one difficulty
//   DELETE /stats              → zero all difficulties
//   GET    /settings           → difficulty, music, sound, and which difficulties can be continued
//   PUT    /settings           → partial update

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordguess/internal/game"
	"github.com/robalobadob/wordguess/internal/progress"
)

func (s *Server) mountStats() {
	s.r.Route("/stats", func(r chi.Router) {
		r.Delete("/", s.handleResetAllStats)
		r.Get("/{difficulty}", s.handleStats)
		r.Delete("/{difficulty}", s.handleResetStats)
	})
	s.r.Get("/settings", s.handleSettings)
	s.r.Put("/settings", s.handlePutSettings)
}

type statsView struct {
	Difficulty        game.Difficulty `json:"difficulty"`
	GamesPlayed       int             `json:"gamesPlayed"`
	GamesWon          int             `json:"gamesWon"`
	CurrentStreak     int             `json:"currentStreak"`
	MaxStreak         int             `json:"maxStreak"`
	WinPercentage     float64         `json:"winPercentage"`
	GuessDistribution []int           `json:"guessDistribution"` // index 6 counts losses
}

func newStatsView(d game.Difficulty, st game.Stats) statsView {
	return statsView{
		Difficulty:        d,
		GamesPlayed:       st.GamesPlayed,
		GamesWon:          st.GamesWon,
		CurrentStreak:     st.CurrentStreak,
		MaxStreak:         st.MaxStreak,
		WinPercentage:     st.WinPercentage(),
		GuessDistribution: st.GuessDistribution[:],
	}
}

func difficultyParam(w http.ResponseWriter, r *http.Request) (game.Difficulty, bool) {
	d, err := game.ParseDifficulty(chi.URLParam(r, "difficulty"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_difficulty")
		return 0, false
	}
	return d, true
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	d, ok := difficultyParam(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.progress.Stats(r.Context(), d)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Stringer("difficulty", d).Msg("load stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, newStatsView(d, st))
}

func (s *Server) handleResetStats(w http.ResponseWriter, r *http.Request) {
	d, ok := difficultyParam(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.progress.ResetStats(r.Context(), d); err != nil {
		hlog.FromRequest(r).Error().Err(err).Stringer("difficulty", d).Msg("reset stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, newStatsView(d, game.Stats{}))
}

func (s *Server) handleResetAllStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.progress.ResetAllStats(r.Context()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("reset all stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type settingsView struct {
	progress.Settings
	Unfinished map[string]bool `json:"unfinished"` // difficulty → has a saved game
}

// settingsFor adds the resumable difficulties to st. Callers hold s.mu.
func (s *Server) settingsFor(r *http.Request, st progress.Settings) (settingsView, error) {
	v := settingsView{Settings: st, Unfinished: make(map[string]bool, len(game.Difficulties))}
	for _, d := range game.Difficulties {
		has, err := s.progress.HasUnfinishedGame(r.Context(), d)
		if err != nil {
			return v, err
		}
		v.Unfinished[d.String()] = has
	}
	return v, nil
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.progress.Settings(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load settings")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	v, err := s.settingsFor(r, st)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load saved games")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type settingsReq struct {
	Difficulty *game.Difficulty `json:"difficulty"`
	Music      *bool            `json:"music"`
	Sound      *bool            `json:"sound"`
}

// handlePutSettings updates only the fields present in the body. Changing
// the difficulty here does not switch the running game; /game/start does.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.progress.Settings(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load settings")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	apply(&st, req)
	if err := s.progress.SaveSettings(r.Context(), st); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save settings")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	v, err := s.settingsFor(r, st)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load saved games")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func apply(st *progress.Settings, req settingsReq) {
	if req.Difficulty != nil {
		st.Difficulty = *req.Difficulty
	}
	if req.Music != nil {
		st.MusicEnabled = *req.Music
	}
	if req.Sound != nil {
		st.SoundEnabled = *req.Sound
	}
}
