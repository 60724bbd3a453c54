package keyboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdatePriority(t *testing.T) {
	tests := []struct {
		name  string
		steps []State
		want  State
	}{
		{"correct sticks over incorrect", []State{Correct, Incorrect}, Correct},
		{"correct sticks over misplaced", []State{Correct, Misplaced}, Correct},
		{"misplaced sticks over incorrect", []State{Misplaced, Incorrect}, Misplaced},
		{"misplaced upgrades incorrect", []State{Incorrect, Misplaced}, Misplaced},
		{"correct upgrades misplaced", []State{Misplaced, Correct}, Correct},
		{"default never downgrades", []State{Incorrect, Default}, Incorrect},
		{"disabled is not feedback", []State{Misplaced, Disabled}, Misplaced},
		{"idempotent", []State{Incorrect, Incorrect}, Incorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New()
			for _, s := range tt.steps {
				a.Update('q', s)
			}
			assert.Equal(t, tt.want, a.State('Q'))
			assert.True(t, a.Query('q', tt.want))
		})
	}
}

func TestUpdateIgnoresNonLetters(t *testing.T) {
	a := New()
	before := a.Serialize()
	a.Update('1', Correct)
	a.Update(' ', Incorrect)
	assert.Equal(t, before, a.Serialize())
	assert.Equal(t, Default, a.State('#'))
	assert.False(t, a.Query('#', Default))
}

func TestReset(t *testing.T) {
	a := New()
	a.Update('A', Correct)
	a.SetInteractable('B', false)
	a.Reset()
	assert.Equal(t, Default, a.State('A'))
	assert.Equal(t, Default, a.Display('B'))
}

func TestDisplayDisabled(t *testing.T) {
	a := New()
	a.Update('e', Misplaced)
	a.SetInteractable('e', false)
	assert.Equal(t, Disabled, a.Display('E'))
	assert.Equal(t, Misplaced, a.State('E'))
	a.SetInteractable('e', true)
	assert.Equal(t, Misplaced, a.Display('E'))
}

func TestSerializeAllLetters(t *testing.T) {
	a := New()
	a.Update('c', Correct)
	a.Update('z', Incorrect)
	s := a.Serialize()

	pairs := strings.Split(s, ",")
	assert.Len(t, pairs, 26)
	assert.Equal(t, "A:default", pairs[0])
	assert.Equal(t, "C:correct", pairs[2])
	assert.Equal(t, "Z:incorrect", pairs[25])
}

func TestRestoreRoundTrip(t *testing.T) {
	a := New()
	a.Update('a', Misplaced)
	a.Update('b', Incorrect)
	a.Update('c', Correct)
	a.Update('c', Incorrect)

	b := New()
	b.Update('x', Correct) // overwritten by restore
	b.Restore(a.Serialize())

	for l := 'A'; l <= 'Z'; l++ {
		for _, s := range []State{Default, Correct, Misplaced, Incorrect, Disabled} {
			assert.Equal(t, a.Query(l, s), b.Query(l, s), "letter %c state %s", l, s)
		}
	}
}

func TestRestoreBypassesPriority(t *testing.T) {
	a := New()
	a.Update('a', Correct)
	a.Restore("A:incorrect")
	assert.Equal(t, Incorrect, a.State('A'))
}

func TestRestoreTolerance(t *testing.T) {
	a := New()
	a.Update('m', Misplaced)
	a.Restore("")
	assert.Equal(t, Misplaced, a.State('M'))

	a.Restore("garbage,,:correct,b:Correct,Q:whatever,1:correct")
	assert.Equal(t, Correct, a.State('B'))
	assert.Equal(t, Default, a.State('Q'))
	assert.Equal(t, Misplaced, a.State('M'))
}
