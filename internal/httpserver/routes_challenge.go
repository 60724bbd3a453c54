// internal/httpserver/routes_challenge.go
//
// Challenges let a player set the word for someone else.
//   POST /challenge        → {code}
//   POST /challenge/accept → start a game on the challenge word

package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordguess/internal/challenge"
	"github.com/robalobadob/wordguess/internal/game"
)

func (s *Server) mountChallenge() {
	s.r.Route("/challenge", func(r chi.Router) {
		r.Post("/", s.handleIssueChallenge)
		r.Post("/accept", s.handleAcceptChallenge)
	})
}

type issueReq struct {
	From       string           `json:"from"`
	To         string           `json:"to"`
	Word       string           `json:"word"`
	Difficulty *game.Difficulty `json:"difficulty"`
	Clue       string           `json:"clue"`
}

type issueRes struct {
	Code string `json:"code"`
}

func (s *Server) handleIssueChallenge(w http.ResponseWriter, r *http.Request) {
	var req issueReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	c := challenge.Challenge{From: req.From, To: req.To, Word: req.Word, Difficulty: game.Medium, Clue: req.Clue}
	if req.Difficulty != nil {
		c.Difficulty = *req.Difficulty
	}
	code, err := s.issuer.Issue(c)
	switch {
	case errors.Is(err, game.ErrNotAWord):
		writeError(w, http.StatusBadRequest, "not_a_word")
	case errors.Is(err, challenge.ErrTooLong), errors.Is(err, game.ErrInvalidDifficulty):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Msg("issue challenge")
		writeError(w, http.StatusInternalServerError, "sign_failed")
	default:
		writeJSON(w, http.StatusOK, issueRes{Code: code})
	}
}

type acceptReq struct {
	Code string `json:"code"`
}

type acceptRes struct {
	boardView
	Challenge challenge.Challenge `json:"challenge"`
}

// handleAcceptChallenge suspends the running game and starts a fresh one on
// the challenge word at the challenge difficulty.
func (s *Server) handleAcceptChallenge(w http.ResponseWriter, r *http.Request) {
	var req acceptReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	c, err := s.issuer.Parse(req.Code)
	switch {
	case errors.Is(err, challenge.ErrExpired):
		writeError(w, http.StatusGone, "challenge_expired")
		return
	case err != nil:
		hlog.FromRequest(r).Debug().Err(err).Msg("parse challenge")
		writeError(w, http.StatusBadRequest, "invalid_challenge")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ctx := r.Context()
	s.session.Suspend(ctx)
	if err := s.session.StartWithTarget(ctx, c.Difficulty, c.Word); err != nil {
		s.respond(w, r, s.view(), err)
		return
	}
	hlog.FromRequest(r).Info().Str("challenge", c.ID).Stringer("difficulty", c.Difficulty).Msg("challenge accepted")
	writeJSON(w, http.StatusOK, acceptRes{boardView: s.view(), Challenge: c})
}
