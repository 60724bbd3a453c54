package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordguess/internal/challenge"
	"github.com/robalobadob/wordguess/internal/game"
	"github.com/robalobadob/wordguess/internal/keyboard"
	"github.com/robalobadob/wordguess/internal/progress"
	"github.com/robalobadob/wordguess/internal/store"
	"github.com/robalobadob/wordguess/internal/words"
)

type testView struct {
	Difficulty string            `json:"difficulty"`
	Status     string            `json:"status"`
	Row        int               `json:"row"`
	Col        int               `json:"col"`
	Guesses    int               `json:"guesses"`
	Rows       [][]cellViewJSON  `json:"rows"`
	Keyboard   map[string]string `json:"keyboard"`
	Answer     string            `json:"answer"`
	Marks      []string          `json:"marks"`
	Hint       string            `json:"hint"`
	Message    *message          `json:"message"`
	Date       string            `json:"date"`
	Challenge  map[string]any    `json:"challenge"`
}

type cellViewJSON struct {
	Letter string `json:"letter"`
	State  string `json:"state"`
}

func newTestServer(t *testing.T) (*Server, *progress.Store) {
	t.Helper()
	dict, err := words.New([]string{"crane"}, []string{"ocean", "crone", "salon", "lemon"})
	require.NoError(t, err)
	p := progress.New(store.NewMemoryStore())
	sess := game.NewSession(dict, keyboard.New(), p, p, game.WithRand(rand.New(rand.NewPCG(3, 4))))
	issuer, err := challenge.NewIssuer("test-secret", time.Hour, dict)
	require.NoError(t, err)
	s := New(Deps{Session: sess, Progress: p, Dict: dict, Challenges: issuer, DailySalt: "salt"})
	return s, p
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func doView(t *testing.T, s *Server, method, path string, body any) testView {
	t.Helper()
	rec := do(t, s, method, path, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var v testView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func typeWord(t *testing.T, s *Server, w string) {
	t.Helper()
	for _, r := range w {
		doView(t, s, http.MethodPost, "/game/letter", map[string]string{"letter": string(r)})
	}
}

func countKeys(v testView, state string) int {
	n := 0
	for _, st := range v.Keyboard {
		if st == state {
			n++
		}
	}
	return n
}

func TestHealthAndNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = do(t, s, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")

	rec = do(t, s, http.MethodGet, "/debug/words", nil)
	assert.JSONEq(t, `{"answers":1,"allowed":5}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/debug/words?word=ocean", nil)
	assert.JSONEq(t, `{"answers":1,"allowed":5,"word":"ocean","acceptable":true,"solution":false}`, rec.Body.String())
	rec = do(t, s, http.MethodGet, "/debug/words?word=crane", nil)
	assert.Contains(t, rec.Body.String(), `"solution":true`)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodOptions, "/game/submit", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestIdleBoard(t *testing.T) {
	s, _ := newTestServer(t)
	v := doView(t, s, http.MethodGet, "/game", nil)
	assert.Equal(t, "idle", v.Status)
	assert.Len(t, v.Rows, game.Rows)
	assert.Len(t, v.Keyboard, 26)

	v = doView(t, s, http.MethodPost, "/game/submit", nil)
	require.NotNil(t, v.Message)
	assert.Equal(t, "Start a game first", v.Message.Text)
}

func TestPlayToWin(t *testing.T) {
	s, p := newTestServer(t)
	v := doView(t, s, http.MethodPost, "/game/start", map[string]string{"difficulty": "Easy"})
	assert.Equal(t, "playing", v.Status)
	assert.Equal(t, "Easy", v.Difficulty)
	assert.Equal(t, 4, countKeys(v, "incorrect"))

	settings, err := p.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.Easy, settings.Difficulty)

	typeWord(t, s, "ocean")
	v = doView(t, s, http.MethodPost, "/game/submit", nil)
	assert.Nil(t, v.Message)
	assert.Equal(t, []string{"incorrect", "misplaced", "misplaced", "misplaced", "misplaced"}, v.Marks)
	assert.Equal(t, 1, v.Row)
	assert.Equal(t, "O", v.Rows[0][0].Letter)
	assert.Equal(t, "misplaced", v.Keyboard["C"])

	typeWord(t, s, "crane")
	v = doView(t, s, http.MethodPost, "/game/submit", nil)
	assert.Equal(t, "won", v.Status)
	assert.Equal(t, "CRANE", v.Answer)
	assert.Equal(t, "disabled", v.Keyboard["Q"])

	v = doView(t, s, http.MethodGet, "/game/answer", nil)
	assert.Nil(t, v.Message)
	assert.Equal(t, "CRANE", v.Answer)

	rec := do(t, s, http.MethodGet, "/stats/easy", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var st statsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 1, st.GamesWon)
	assert.Equal(t, 1, st.GuessDistribution[1])
	assert.InDelta(t, 100.0, st.WinPercentage, 0.001)
}

func TestGameplayMessages(t *testing.T) {
	s, _ := newTestServer(t)
	doView(t, s, http.MethodPost, "/game/start", map[string]string{"difficulty": "Hard"})

	typeWord(t, s, "cra")
	v := doView(t, s, http.MethodPost, "/game/submit", nil)
	require.NotNil(t, v.Message)
	assert.Equal(t, "You need to enter a full five-letter word", v.Message.Text)
	assert.Equal(t, int64(5000), v.Message.DurationMs)
	assert.Equal(t, 3, v.Col)

	typeWord(t, s, "zz")
	v = doView(t, s, http.MethodPost, "/game/submit", nil)
	require.NotNil(t, v.Message)
	assert.Equal(t, "Not a word", v.Message.Text)
	assert.Equal(t, int64(2000), v.Message.DurationMs)
	assert.Equal(t, 0, v.Guesses)

	v = doView(t, s, http.MethodPost, "/game/backspace", nil)
	assert.Equal(t, 4, v.Col)

	v = doView(t, s, http.MethodPost, "/game/letter", map[string]string{"letter": "7"})
	assert.Equal(t, 4, v.Col)
	v = doView(t, s, http.MethodPost, "/game/letter", map[string]string{"letter": "ab"})
	assert.Equal(t, 4, v.Col)

	v = doView(t, s, http.MethodGet, "/game/answer", nil)
	require.NotNil(t, v.Message)
	assert.Empty(t, v.Answer)

	rec := do(t, s, http.MethodPost, "/game/letter", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodPost, "/game/start", "not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHints(t *testing.T) {
	s, _ := newTestServer(t)
	doView(t, s, http.MethodPost, "/game/start", map[string]string{"difficulty": "Hard"})

	seen := map[string]bool{}
	for range 5 {
		v := doView(t, s, http.MethodPost, "/game/hint", nil)
		require.Nil(t, v.Message)
		require.Len(t, v.Hint, 1)
		assert.Contains(t, "CRANE", v.Hint)
		assert.Equal(t, "misplaced", v.Keyboard[v.Hint])
		seen[v.Hint] = true
	}
	assert.Len(t, seen, 5)

	v := doView(t, s, http.MethodPost, "/game/hint", nil)
	require.NotNil(t, v.Message)
	assert.Equal(t, "No hints available - all letters already discovered", v.Message.Text)
}

func TestStartResumesSavedGame(t *testing.T) {
	s, _ := newTestServer(t)
	doView(t, s, http.MethodPost, "/game/start", map[string]string{"difficulty": "Medium"})
	typeWord(t, s, "ocean")
	doView(t, s, http.MethodPost, "/game/submit", nil)
	typeWord(t, s, "sa")

	v := doView(t, s, http.MethodPost, "/game/start", map[string]string{"difficulty": "Easy"})
	assert.Equal(t, "Easy", v.Difficulty)
	assert.Equal(t, 0, v.Row)

	v = doView(t, s, http.MethodPost, "/game/start", map[string]string{"difficulty": "Medium"})
	assert.Equal(t, "Medium", v.Difficulty)
	assert.Equal(t, 1, v.Row)
	assert.Equal(t, 2, v.Col)
	assert.Equal(t, "S", v.Rows[1][0].Letter)
	assert.Equal(t, "incorrect", v.Rows[0][0].State)

	v = doView(t, s, http.MethodPost, "/game/try-again", nil)
	assert.Equal(t, "Medium", v.Difficulty)
	assert.Equal(t, 0, v.Row)
	assert.Equal(t, 0, v.Guesses)
}

func TestDaily(t *testing.T) {
	s, _ := newTestServer(t)
	s.now = func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) }

	v := doView(t, s, http.MethodPost, "/game/daily", nil)
	assert.Equal(t, "2026-10-19", v.Date)
	assert.Equal(t, "playing", v.Status)

	typeWord(t, s, "crane")
	v = doView(t, s, http.MethodPost, "/game/submit", nil)
	assert.Equal(t, "won", v.Status)
}

func TestStatsEndpoints(t *testing.T) {
	s, p := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, p.RecordWin(ctx, game.Hard, 2))
	require.NoError(t, p.RecordLoss(ctx, game.Easy))

	rec := do(t, s, http.MethodGet, "/stats/Hard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"gamesWon":1`)

	rec = do(t, s, http.MethodGet, "/stats/expert", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodDelete, "/stats/hard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st, err := p.Stats(ctx, game.Hard)
	require.NoError(t, err)
	assert.Zero(t, st.GamesPlayed)
	st, err = p.Stats(ctx, game.Easy)
	require.NoError(t, err)
	assert.Equal(t, 1, st.GamesPlayed)

	rec = do(t, s, http.MethodDelete, "/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st, err = p.Stats(ctx, game.Easy)
	require.NoError(t, err)
	assert.Zero(t, st.GamesPlayed)
}

func TestSettingsEndpoints(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"difficulty":"Medium","music":true,"sound":true,"unfinished":{"Easy":false,"Medium":false,"Hard":false}}`, rec.Body.String())

	rec = do(t, s, http.MethodPut, "/settings", map[string]any{"music": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"difficulty":"Medium","music":false,"sound":true,"unfinished":{"Easy":false,"Medium":false,"Hard":false}}`, rec.Body.String())

	rec = do(t, s, http.MethodPut, "/settings", map[string]any{"difficulty": "hard", "sound": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"difficulty":"Hard","music":false,"sound":false,"unfinished":{"Easy":false,"Medium":false,"Hard":false}}`, rec.Body.String())

	rec = do(t, s, http.MethodPut, "/settings", map[string]any{"difficulty": "expert"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	v := doView(t, s, http.MethodPost, "/game/start", nil)
	assert.Equal(t, "Hard", v.Difficulty)
	typeWord(t, s, "ocean")
	doView(t, s, http.MethodPost, "/game/submit", nil)

	rec = do(t, s, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got settingsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, map[string]bool{"Easy": false, "Medium": false, "Hard": true}, got.Unfinished)
}

func TestChallengeFlow(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/challenge", map[string]string{
		"from": "Ana", "to": "Ben", "word": "lemon", "difficulty": "Easy", "clue": "sour",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res issueRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Code)

	v := doView(t, s, http.MethodPost, "/challenge/accept", acceptReq{Code: res.Code})
	assert.Equal(t, "Easy", v.Difficulty)
	assert.Equal(t, "playing", v.Status)
	assert.Equal(t, "Ana", v.Challenge["from"])
	assert.Equal(t, "sour", v.Challenge["clue"])
	assert.NotContains(t, v.Challenge, "word")

	typeWord(t, s, "lemon")
	v = doView(t, s, http.MethodPost, "/game/submit", nil)
	assert.Equal(t, "won", v.Status)
	assert.Equal(t, "LEMON", v.Answer)
}

func TestChallengeErrors(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/challenge", map[string]string{"word": "qqqqq"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_a_word")

	rec = do(t, s, http.MethodPost, "/challenge", map[string]string{"word": "crane", "clue": strings.Repeat("x", 200)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/challenge/accept", acceptReq{Code: "garbage"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_challenge")
}
