// internal/words/daily.go
//
// Word of the day.
// The pick is a keyed hash of the UTC calendar date, so every process that
// shares the salt and the solution list agrees on the word without storing
// anything, and the word cannot be predicted without the salt.

package words

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

const dateLayout = "2006-01-02"

// DateKey is the UTC calendar date of t, the unit a daily word lasts for.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// Daily returns the solution of the UTC day containing t. The list order is
// part of the key: reordering the answers file changes every daily word.
func (d *Dictionary) Daily(t time.Time, salt string) string {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(t)))
	n := uint64(len(d.solutions))
	return d.solutions[binary.BigEndian.Uint64(mac.Sum(nil))%n]
}
