// internal/game/session.go
//
// Session is the state machine for one word-guess game.
// Responsibilities:
//   - Accept letter / backspace / submit / hint events, one at a time.
//   - Score submitted rows and push the results into the keyboard.
//   - Decide playing → won/lost and report the outcome to the statistics recorder.
//   - Snapshot the game after every non-terminal row, clear it on a terminal one.
//
// Notes:
//   - All collaborators are passed in; the session owns only its board and cursor.
//   - Persistence failures are logged and swallowed. In-memory state is never
//     rolled back because a save failed.
//   - A Session is not safe for concurrent use. Callers serialize events.

package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordguess/internal/keyboard"
	"github.com/robalobadob/wordguess/internal/words"
)

// Dictionary validates guesses and draws targets.
type Dictionary interface {
	IsAcceptableGuess(word string) bool
	PickRandomSolution(r words.Rand) (string, error)
}

// SaveStore persists the in-flight game of each difficulty.
type SaveStore interface {
	LoadGame(ctx context.Context, d Difficulty) (Save, bool, error)
	SaveGame(ctx context.Context, s Save) error
	ClearGame(ctx context.Context, d Difficulty) error
}

// StatsRecorder receives terminal outcomes.
type StatsRecorder interface {
	RecordWin(ctx context.Context, d Difficulty, guesses int) error
	RecordLoss(ctx context.Context, d Difficulty) error
}

// Rand is the random source for targets, key seeding and hints.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// globalRand uses the auto-seeded top-level math/rand/v2 source.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Option configures a Session.
type Option func(*Session)

// WithRand replaces the random source, mainly for tests.
func WithRand(r Rand) Option {
	return func(s *Session) { s.rng = r }
}

// Outcome describes the result of an accepted row.
type Outcome struct {
	Marks      []TileState
	Status     Status
	Guesses    int
	Difficulty Difficulty
}

// Session holds the state of the single active game.
type Session struct {
	dict  Dictionary
	kb    *keyboard.Aggregator
	saves SaveStore
	stats StatsRecorder
	rng   Rand

	difficulty Difficulty
	target     string // lowercase
	rows       [Rows]Row
	row, col   int
	guesses    int
	status     Status
}

// NewSession wires a session to its collaborators. The session is idle until
// Start, Reset or StartWithTarget is called.
func NewSession(dict Dictionary, kb *keyboard.Aggregator, saves SaveStore, stats StatsRecorder, opts ...Option) *Session {
	s := &Session{
		dict:       dict,
		kb:         kb,
		saves:      saves,
		stats:      stats,
		rng:        globalRand{},
		difficulty: Medium,
		status:     StatusIdle,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start resumes the saved game for d if there is a usable one, otherwise it
// starts a fresh game. An unreadable or corrupt save is logged, cleared and
// replaced by a fresh game.
func (s *Session) Start(ctx context.Context, d Difficulty) error {
	if !d.Valid() {
		return ErrInvalidDifficulty
	}
	sv, ok, err := s.saves.LoadGame(ctx, d)
	if err != nil {
		log.Warn().Err(err).Stringer("difficulty", d).Msg("load saved game")
		if errors.Is(err, ErrCorruptSave) {
			s.clearSave(ctx, d)
		}
		ok = false
	}
	if ok {
		err := s.Resume(sv)
		if err == nil {
			log.Info().Stringer("difficulty", d).Int("row", s.row).Msg("resumed saved game")
			return nil
		}
		log.Warn().Err(err).Stringer("difficulty", d).Msg("discarding saved game")
		s.clearSave(ctx, d)
	}
	return s.fresh(d, "")
}

// Reset abandons any game for d and starts a fresh one ("try again").
func (s *Session) Reset(ctx context.Context, d Difficulty) error {
	if !d.Valid() {
		return ErrInvalidDifficulty
	}
	s.clearSave(ctx, d)
	return s.fresh(d, "")
}

// StartWithTarget is Reset with a caller-chosen target word, used for
// challenges and the daily word. The word must be an acceptable guess.
func (s *Session) StartWithTarget(ctx context.Context, d Difficulty, word string) error {
	if !d.Valid() {
		return ErrInvalidDifficulty
	}
	word = strings.ToLower(strings.TrimSpace(word))
	if len(word) != Cols || !s.dict.IsAcceptableGuess(word) {
		return fmt.Errorf("%w: %q", ErrNotAWord, word)
	}
	s.clearSave(ctx, d)
	return s.fresh(d, word)
}

// fresh clears the board and keyboard, sets the target (drawing one if
// target is empty) and seeds the pre-marked incorrect keys.
func (s *Session) fresh(d Difficulty, target string) error {
	if target == "" {
		w, err := s.dict.PickRandomSolution(s.rng)
		if err != nil {
			return fmt.Errorf("pick target: %w", err)
		}
		target = strings.ToLower(strings.TrimSpace(w))
	}
	s.clearBoard()
	s.difficulty = d
	s.target = target
	s.guesses = 0
	s.status = StatusPlaying
	s.kb.Reset()
	s.seedIncorrectKeys()
	log.Debug().Stringer("difficulty", d).Msg("started fresh game")
	return nil
}

// Resume restores a saved game verbatim. Rows are not re-scored.
func (s *Session) Resume(sv Save) error {
	if err := sv.Validate(); err != nil {
		return err
	}
	var rows [Rows]Row
	for r := 0; r < Rows; r++ {
		line, codes := sv.Board[r], sv.TileStates[r]
		for c := 0; c < Cols; c++ {
			var cell Cell
			if c < len(codes) {
				cell.State = TileStateFromCode(codes[c])
			}
			if c < len(line) && line[c] != ' ' && line[c] != 0 {
				ch := rune(line[c])
				if !unicode.IsLetter(ch) {
					return fmt.Errorf("%w: row %d has %q", ErrCorruptSave, r, ch)
				}
				cell.Letter = unicode.ToUpper(ch)
				if cell.State == TileEmpty {
					cell.State = TileOccupied
				}
			}
			rows[r][c] = cell
		}
	}
	if err := checkLayout(rows, sv.RowIndex, sv.ColumnIndex); err != nil {
		return err
	}

	s.rows = rows
	s.difficulty = sv.Difficulty
	s.target = sv.Word
	s.row, s.col = sv.RowIndex, sv.ColumnIndex
	s.guesses = sv.GuessCount
	s.status = StatusPlaying
	s.kb.Reset()
	s.kb.Restore(sv.KeyboardState)
	return nil
}

// checkLayout enforces the board shape a live game can produce: rows before
// the cursor are full, the active row holds exactly col leading letters, rows
// after it are untouched, and blank cells carry no state.
func checkLayout(rows [Rows]Row, row, col int) error {
	for r := range rows {
		for c, cell := range rows[r] {
			var want bool // cell must hold a letter
			switch {
			case r < row:
				want = true
			case r == row:
				want = c < col
			}
			if (cell.Letter != 0) != want {
				return fmt.Errorf("%w: row %d column %d out of place for cursor %d,%d", ErrCorruptSave, r, c, row, col)
			}
			if cell.Letter == 0 && cell.State != TileEmpty {
				return fmt.Errorf("%w: row %d column %d has a state but no letter", ErrCorruptSave, r, c)
			}
		}
	}
	return nil
}

// Suspend saves the in-flight game, if any, so it can be resumed later.
// Used when the player switches difficulty or the process shuts down.
func (s *Session) Suspend(ctx context.Context) {
	if s.status != StatusPlaying {
		return
	}
	s.persist(ctx)
}

// InputLetter writes ch into the active cell. It reports false and changes
// nothing if the game is not in play, the row is full or ch is not a letter.
func (s *Session) InputLetter(ch rune) bool {
	if s.status != StatusPlaying || s.col >= Cols {
		return false
	}
	up := unicode.ToUpper(ch)
	if up < 'A' || up > 'Z' {
		return false
	}
	s.rows[s.row][s.col] = Cell{Letter: up, State: TileOccupied}
	s.col++
	return true
}

// Backspace clears the last filled cell of the active row.
func (s *Session) Backspace() bool {
	if s.status != StatusPlaying || s.col == 0 {
		return false
	}
	s.col--
	s.rows[s.row][s.col] = Cell{}
	return true
}

// SubmitRow scores the active row.
//
// A row that is not full yields ErrIncompleteRow and a word outside the
// dictionary yields ErrNotAWord; in both cases nothing changes and no guess is
// counted. An accepted row is scored, pushed into the keyboard and then either
// ends the game or advances the cursor to the next row.
func (s *Session) SubmitRow(ctx context.Context) (Outcome, error) {
	if err := s.playing(); err != nil {
		return Outcome{}, err
	}
	if s.col < Cols {
		return Outcome{}, ErrIncompleteRow
	}
	word := s.rows[s.row].Word()
	if !s.dict.IsAcceptableGuess(word) {
		return Outcome{}, ErrNotAWord
	}

	s.guesses++
	marks := Evaluate(s.target, word)
	s.apply(marks)

	switch {
	case AllCorrect(marks):
		s.finish(ctx, true)
	case s.row == Rows-1:
		s.finish(ctx, false)
	default:
		s.row++
		s.col = 0
		s.persist(ctx)
	}
	return Outcome{Marks: marks, Status: s.status, Guesses: s.guesses, Difficulty: s.difficulty}, nil
}

// apply writes marks onto the active row and forwards them to the keyboard:
// exact matches and absent letters first, then the pool-resolved positions.
func (s *Session) apply(marks []TileState) {
	row := &s.rows[s.row]
	first := func(i int) bool {
		return marks[i] == TileCorrect ||
			(marks[i] == TileIncorrect && !strings.ContainsRune(s.target, unicode.ToLower(row[i].Letter)))
	}
	for _, pass1 := range []bool{true, false} {
		for i := range row {
			if first(i) != pass1 {
				continue
			}
			row[i].State = marks[i]
			s.kb.Update(row[i].Letter, marks[i].KeyState())
		}
	}
}

// finish moves the session to a terminal state, records statistics, locks
// the keyboard and drops the saved game.
func (s *Session) finish(ctx context.Context, won bool) {
	var err error
	if won {
		s.status = StatusWon
		err = s.stats.RecordWin(ctx, s.difficulty, s.guesses)
	} else {
		s.status = StatusLost
		err = s.stats.RecordLoss(ctx, s.difficulty)
	}
	if err != nil {
		log.Warn().Err(err).Stringer("difficulty", s.difficulty).Msg("record statistics")
	}
	for _, l := range alphabet {
		s.kb.SetInteractable(l, false)
	}
	s.clearSave(ctx, s.difficulty)
	log.Info().
		Stringer("difficulty", s.difficulty).
		Bool("won", won).
		Int("guesses", s.guesses).
		Msg("game ended")
}

func (s *Session) persist(ctx context.Context) {
	if err := s.saves.SaveGame(ctx, s.Snapshot()); err != nil {
		log.Warn().Err(err).Stringer("difficulty", s.difficulty).Msg("save game")
	}
}

func (s *Session) clearSave(ctx context.Context, d Difficulty) {
	if err := s.saves.ClearGame(ctx, d); err != nil {
		log.Warn().Err(err).Stringer("difficulty", d).Msg("clear saved game")
	}
}

func (s *Session) clearBoard() {
	s.rows = [Rows]Row{}
	s.row, s.col = 0, 0
}

func (s *Session) playing() error {
	switch {
	case s.status == StatusPlaying:
		return nil
	case s.status.Ended():
		return ErrGameOver
	default:
		return ErrNotStarted
	}
}

// Snapshot captures the current game in its persisted form.
func (s *Session) Snapshot() Save {
	sv := Save{
		Difficulty:        s.difficulty,
		HasUnfinishedGame: s.status == StatusPlaying,
		Word:              s.target,
		RowIndex:          s.row,
		ColumnIndex:       s.col,
		GuessCount:        s.guesses,
		KeyboardState:     s.kb.Serialize(),
	}
	for r, row := range s.rows {
		var letters, codes [Cols]byte
		for c, cell := range row {
			letters[c] = ' '
			if cell.Letter != 0 {
				letters[c] = byte(cell.Letter)
			}
			codes[c] = cell.State.Code()
		}
		sv.Board[r] = string(letters[:])
		sv.TileStates[r] = string(codes[:])
	}
	return sv
}

// Reveal returns the target in uppercase once the game has ended.
func (s *Session) Reveal() (string, error) {
	switch {
	case s.status.Ended():
		return strings.ToUpper(s.target), nil
	case s.status == StatusPlaying:
		return "", ErrGameInProgress
	default:
		return "", ErrNotStarted
	}
}

// Status is the coarse game state.
func (s *Session) Status() Status { return s.status }

// Difficulty is the tier of the current (or last) game.
func (s *Session) Difficulty() Difficulty { return s.difficulty }

// Guesses counts the accepted rows of the current game.
func (s *Session) Guesses() int { return s.guesses }

// Cursor returns the active row and the next column to fill.
func (s *Session) Cursor() (row, col int) { return s.row, s.col }

// Rows returns a copy of the board.
func (s *Session) Rows() [Rows]Row { return s.rows }

// Keyboard is the aggregator the session feeds.
func (s *Session) Keyboard() *keyboard.Aggregator { return s.kb }
