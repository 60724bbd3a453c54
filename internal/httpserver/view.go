// internal/httpserver/view.go
//
// JSON shapes of the board as the client draws it.

package httpserver

import (
	"time"

	"github.com/robalobadob/wordguess/internal/game"
	"github.com/robalobadob/wordguess/internal/keyboard"
)

type cellView struct {
	Letter string         `json:"letter"`
	State  game.TileState `json:"state"`
}

type message struct {
	Text       string `json:"text"`
	DurationMs int64  `json:"durationMs"`
}

// boardView is everything a client needs to draw the game.
type boardView struct {
	Difficulty game.Difficulty           `json:"difficulty"`
	Status     game.Status               `json:"status"`
	Row        int                       `json:"row"`
	Col        int                       `json:"col"`
	Guesses    int                       `json:"guesses"`
	Rows       [][]cellView              `json:"rows"`
	Keyboard   map[string]keyboard.State `json:"keyboard"`
	Answer     string                    `json:"answer,omitempty"`
	Marks      []game.TileState          `json:"marks,omitempty"`
	Hint       string                    `json:"hint,omitempty"`
	Message    *message                  `json:"message,omitempty"`
}

// view renders the session. Callers hold s.mu.
func (s *Server) view() boardView {
	sess := s.session
	row, col := sess.Cursor()
	v := boardView{
		Difficulty: sess.Difficulty(),
		Status:     sess.Status(),
		Row:        row,
		Col:        col,
		Guesses:    sess.Guesses(),
		Rows:       make([][]cellView, 0, game.Rows),
		Keyboard:   make(map[string]keyboard.State, 26),
	}
	for _, r := range sess.Rows() {
		cells := make([]cellView, 0, game.Cols)
		for _, c := range r {
			cv := cellView{State: c.State}
			if c.Letter != 0 {
				cv.Letter = string(c.Letter)
			}
			cells = append(cells, cv)
		}
		v.Rows = append(v.Rows, cells)
	}
	kb := sess.Keyboard()
	for l := 'A'; l <= 'Z'; l++ {
		v.Keyboard[string(l)] = kb.Display(l)
	}
	if word, err := sess.Reveal(); err == nil {
		v.Answer = word
	}
	return v
}

func newMessage(text string, d time.Duration) *message {
	return &message{Text: text, DurationMs: d.Milliseconds()}
}
