// internal/challenge/challenge.go
//
// Challenge codes let one player hand another a specific target word.
// A code is a self-contained HS256 JWT carrying the word, the difficulty,
// the names of both players and an optional clue. It is not encrypted: the
// word is only obscured from casual reading.

package challenge

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/robalobadob/wordguess/internal/game"
)

const (
	issuer     = "wordguess"
	maxNameLen = 24
	maxClueLen = 140
)

var (
	ErrNoSecret    = errors.New("challenge: signing secret is empty")
	ErrInvalidCode = errors.New("challenge: invalid code")
	ErrExpired     = errors.New("challenge: code expired")
	ErrTooLong     = errors.New("challenge: field too long")
)

// Challenge is one player's word for another.
type Challenge struct {
	ID         string          `json:"id"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	Word       string          `json:"-"`
	Difficulty game.Difficulty `json:"difficulty"`
	Clue       string          `json:"clue,omitempty"`
	IssuedAt   time.Time       `json:"issuedAt"`
	ExpiresAt  time.Time       `json:"expiresAt"`
}

// WordChecker is the part of the dictionary a challenge needs.
type WordChecker interface {
	IsAcceptableGuess(word string) bool
}

type claims struct {
	From       string          `json:"from,omitempty"`
	To         string          `json:"to,omitempty"`
	Word       string          `json:"word"`
	Difficulty game.Difficulty `json:"difficulty"`
	Clue       string          `json:"clue,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies challenge codes.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	words  WordChecker
	now    func() time.Time
}

// NewIssuer returns an Issuer. A non-positive ttl issues codes that never expire.
func NewIssuer(secret string, ttl time.Duration, words WordChecker) (*Issuer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, words: words, now: time.Now}, nil
}

func (i *Issuer) validate(c *Challenge) error {
	c.Word = strings.ToLower(strings.TrimSpace(c.Word))
	c.From = strings.TrimSpace(c.From)
	c.To = strings.TrimSpace(c.To)
	c.Clue = strings.TrimSpace(c.Clue)
	if len(c.Word) != game.Cols || !i.words.IsAcceptableGuess(c.Word) {
		return fmt.Errorf("%w: %q", game.ErrNotAWord, c.Word)
	}
	if !c.Difficulty.Valid() {
		return game.ErrInvalidDifficulty
	}
	if len(c.From) > maxNameLen || len(c.To) > maxNameLen {
		return fmt.Errorf("%w: name over %d chars", ErrTooLong, maxNameLen)
	}
	if len(c.Clue) > maxClueLen {
		return fmt.Errorf("%w: clue over %d chars", ErrTooLong, maxClueLen)
	}
	return nil
}

// Issue signs c and returns the code. ID, IssuedAt and ExpiresAt are
// assigned here; any values set by the caller are ignored.
func (i *Issuer) Issue(c Challenge) (string, error) {
	if err := i.validate(&c); err != nil {
		return "", err
	}
	now := i.now().UTC().Truncate(time.Second)
	rc := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Issuer:   issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if i.ttl > 0 {
		rc.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		From:             c.From,
		To:               c.To,
		Word:             c.Word,
		Difficulty:       c.Difficulty,
		Clue:             c.Clue,
		RegisteredClaims: rc,
	})
	code, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign challenge: %w", err)
	}
	return code, nil
}

// Parse verifies code and returns the challenge it carries. The word is
// checked against the dictionary again so a code outlives no word list change.
func (i *Issuer) Parse(code string) (Challenge, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(code), &cl,
		func(*jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Challenge{}, ErrExpired
	case err != nil:
		return Challenge{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	c := Challenge{
		ID:         cl.ID,
		From:       cl.From,
		To:         cl.To,
		Word:       cl.Word,
		Difficulty: cl.Difficulty,
		Clue:       cl.Clue,
	}
	if cl.IssuedAt != nil {
		c.IssuedAt = cl.IssuedAt.Time
	}
	if cl.ExpiresAt != nil {
		c.ExpiresAt = cl.ExpiresAt.Time
	}
	if err := i.validate(&c); err != nil {
		return Challenge{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	return c, nil
}
