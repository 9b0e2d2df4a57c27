package voice

import (
	"math"
	"testing"

	"github.com/jsphweid/voicesplit/model"
	"github.com/jsphweid/voicesplit/params"
	"github.com/stretchr/testify/assert"
)

func note(onset, duration int64, pitch uint8) model.Note {
	return model.Note{Onset: onset, Duration: duration, Pitch: pitch}
}

func TestAddKeepsPreviousVersion(t *testing.T) {
	n1 := note(0, 1000, 60)
	n2 := note(1000, 1000, 62)
	v1 := New(n1)
	v2 := v1.Add(n2)

	assert := assert.New(t)
	assert.Equal(n2, v2.MostRecent())
	assert.Equal(2, v2.NumNotes())
	assert.Same(v1, v2.Previous())
	assert.Equal(n1, v1.MostRecent())
	assert.Equal(1, v1.NumNotes())
	assert.Nil(v1.Previous())
}

func TestNotesAreChronological(t *testing.T) {
	n1 := note(0, 1000, 60)
	n2 := note(1000, 1000, 62)
	n3 := note(2000, 1000, 64)
	v := New(n1).Add(n2).Add(n3)

	assert.Equal(t, []model.Note{n1, n2, n3}, v.Notes())
}

func TestCanAccept(t *testing.T) {
	p := params.Default()
	v := New(note(0, 1000, 60))

	assert := assert.New(t)
	// starts exactly when the last note ends
	assert.True(v.CanAccept(1000, 500, p))
	// overlap of 400 is within half the old note and less than the new one
	assert.True(v.CanAccept(600, 500, p))
	// overlap of 400 but the new note is shorter than the overlap
	assert.False(v.CanAccept(600, 300, p))
	// overlap of 600 exceeds half the old note
	assert.False(v.CanAccept(400, 1000, p))
}

func TestProbabilityOfSeamlessSamePitchContinuation(t *testing.T) {
	p := params.Default()
	v := New(note(0, 1000, 60))

	prob := v.Probability(note(1000, 1000, 60), p)
	assert.InDelta(t, 1.0, prob, 1e-9)
}

func TestProbabilityDropsWithPitchDistance(t *testing.T) {
	p := params.Default()
	v := New(note(0, 1000, 60))

	near := v.Probability(note(1000, 1000, 62), p)
	far := v.Probability(note(1000, 1000, 72), p)

	assert := assert.New(t)
	assert.Greater(near, far)
	assert.Greater(far, 0.0)
}

func TestProbabilityDropsWithGapButStaysPositive(t *testing.T) {
	p := params.Default()
	v := New(note(0, 1000, 60))

	short := v.Probability(note(2000, 1000, 60), p)
	long := v.Probability(note(100000000, 1000, 60), p)

	assert := assert.New(t)
	assert.Greater(short, long)
	assert.InDelta(p.MinGapScore, long, 1e-12)
}

func TestWeightedLastPitchFavorsRecentNotes(t *testing.T) {
	p := params.Default()
	v := New(note(0, 1000, 60)).Add(note(1000, 1000, 64))

	// most recent note counts twice as much as the one before
	expected := (64.0 + 60.0/2) / 1.5
	assert.InDelta(t, expected, v.WeightedLastPitch(p), 1e-9)
}

func TestWeightedLastPitchIgnoresOldHistory(t *testing.T) {
	p := params.Default()
	p.PitchHistoryLength = 1
	v := New(note(0, 1000, 48)).Add(note(1000, 1000, 64))

	assert.InDelta(t, 64.0, v.WeightedLastPitch(p), 1e-9)
}

func TestCompare(t *testing.T) {
	a := New(note(0, 1000, 60))
	b := New(note(0, 1000, 64))

	assert := assert.New(t)
	assert.Negative(a.Compare(b))
	assert.Positive(b.Compare(a))
	assert.Zero(a.Compare(New(note(0, 1000, 60))))
	assert.Positive(a.Compare(nil))

	// longer voice with the same head ranks after
	longer := a.Add(note(1000, 1000, 60))
	shorter := New(note(1000, 1000, 60))
	assert.Positive(longer.Compare(shorter))
}

func TestGapScoreBounds(t *testing.T) {
	p := params.Default()

	assert := assert.New(t)
	assert.InDelta(1.0, gapScore(1000, 1000, p), 1e-9)
	// gaps never push the score to zero or below
	assert.Equal(p.MinGapScore, gapScore(math.MaxInt32, 0, p))
}
