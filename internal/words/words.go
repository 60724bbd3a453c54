// internal/words/words.go
//
// Dictionary is the word validator used by a game session.
//
// Word Lists:
//   - "solutions": words a session may draw as its target.
//   - "allowed":   words accepted as guesses (always includes solutions).
//
// Loading behavior (Load):
//   1. If both an answers file and an allowed file are given,
//      solutions come from the first and extra guesses from the second.
//   2. If only the allowed file is given,
//      it is used for both solutions and guesses.
//   3. If neither is given,
//      fall back to the lists embedded in the assets package.
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z) after trimming.
//   • Lists are normalized to lowercase.
//   • An empty solution list is a load-time error (ErrEmptyDictionary).

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robalobadob/wordguess/assets"
)

// WordLength is the number of letters in every dictionary word.
const WordLength = 5

// ErrEmptyDictionary is returned when no solution words survive loading.
var ErrEmptyDictionary = errors.New("words: solutions list is empty")

// Rand is the random source used to draw solutions.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Dictionary holds the solution list and the acceptable-guess set.
// It is immutable after construction and safe for concurrent reads.
type Dictionary struct {
	solutions  []string            // ordered, lowercase
	allowedSet map[string]struct{} // solutions ∪ guesses
}

// New builds a Dictionary from raw lists. Entries are trimmed and lowercased;
// anything that is not a 5-letter a–z word is dropped.
func New(solutions, allowed []string) (*Dictionary, error) {
	sol := normalize(solutions)
	if len(sol) == 0 {
		return nil, ErrEmptyDictionary
	}
	set := toSet(sol)
	for _, w := range normalize(allowed) {
		set[w] = struct{}{}
	}
	return &Dictionary{solutions: sol, allowedSet: set}, nil
}

// Load reads the word lists following the three-way rule in the file header.
func Load(answersPath, allowedPath string) (*Dictionary, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	case answersPath == "" && allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
	}
	return New(ansList, allowList)
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// normalize trims, lowercases and filters a raw list, keeping order.
func normalize(list []string) []string {
	out := make([]string, 0, len(list))
	for _, line := range list {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) == WordLength && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// IsAcceptableGuess reports whether w is a valid guess (solutions ∪ guesses).
// The check is case-insensitive and ignores surrounding whitespace.
func (d *Dictionary) IsAcceptableGuess(w string) bool {
	_, ok := d.allowedSet[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// IsSolution reports whether w is on the solutions list.
func (d *Dictionary) IsSolution(w string) bool {
	w = strings.ToLower(strings.TrimSpace(w))
	for _, s := range d.solutions {
		if s == w {
			return true
		}
	}
	return false
}

// PickRandomSolution draws a solution uniformly at random.
func (d *Dictionary) PickRandomSolution(r Rand) (string, error) {
	if len(d.solutions) == 0 {
		return "", ErrEmptyDictionary
	}
	return d.solutions[r.IntN(len(d.solutions))], nil
}

// Stats returns counts of loaded words: (solutions, allowed).
func (d *Dictionary) Stats() (solutionCount int, allowedCount int) {
	return len(d.solutions), len(d.allowedSet)
}
