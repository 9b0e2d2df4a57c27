package voice

import (
	"math"

	"github.com/jsphweid/voicesplit/model"
	"github.com/jsphweid/voicesplit/params"
)

// Voice is one monophonic line of notes. It is persistent: Add returns a new
// value whose previous pointer is the old one, so the search can roll a voice
// back by swapping a pointer and a snapshot of a voice is just the pointer
// itself. A Voice is never mutated after creation.
type Voice struct {
	note     model.Note
	previous *Voice
	numNotes int
}

// New creates a voice holding a single note.
func New(n model.Note) *Voice {
	return &Voice{note: n, numNotes: 1}
}

// Add returns the voice extended by one note. The receiver stays valid and
// reachable via Previous.
func (v *Voice) Add(n model.Note) *Voice {
	return &Voice{note: n, previous: v, numNotes: v.numNotes + 1}
}

// Previous is the voice as it was before the last Add, or nil for a
// single-note voice.
func (v *Voice) Previous() *Voice {
	return v.previous
}

// MostRecent is the last note added to the voice.
func (v *Voice) MostRecent() model.Note {
	return v.note
}

func (v *Voice) NumNotes() int {
	return v.numNotes
}

// Notes returns the voice's notes in chronological order.
func (v *Voice) Notes() []model.Note {
	res := make([]model.Note, v.numNotes)
	for node, i := v, v.numNotes-1; node != nil; node, i = node.previous, i-1 {
		res[i] = node.note
	}
	return res
}

// CanAccept reports whether a note with the given onset and duration could be
// added without breaking monophony. A small overlap with the most recent note
// is tolerated: at most half that note's duration, and strictly less than the
// new note's own duration.
func (v *Voice) CanAccept(onset, duration int64, p params.Params) bool {
	overlap := v.note.Offset() - onset
	return overlap <= v.note.Duration/2 && overlap < duration
}

// Probability is the likelihood, in (0,1], that the given note is the next
// note of this voice. It is the product of a gaussian pitch proximity score
// and a gap score that decays with the silence since the voice's last note.
func (v *Voice) Probability(n model.Note, p params.Params) float64 {
	pitch := gaussianWindow(v.WeightedLastPitch(p), float64(n.Pitch), p.PitchStd)
	return pitch * gapScore(n.Onset, v.note.Offset(), p)
}

// WeightedLastPitch is the voice's expected next pitch: an average of its
// most recent pitches where each step back in history counts half as much.
func (v *Voice) WeightedLastPitch(p params.Params) float64 {
	weight := 1.0
	var totalWeight, sum float64
	node := v
	for i := 0; i < p.PitchHistoryLength && node != nil; i++ {
		sum += float64(node.note.Pitch) * weight
		totalWeight += weight
		weight /= 2
		node = node.previous
	}
	return sum / totalWeight
}

func gaussianWindow(mean, value, std float64) float64 {
	diff := value - mean
	return math.Exp(-diff * diff / (2 * std * std))
}

func gapScore(onset, lastOffset int64, p params.Params) float64 {
	gap := math.Max(float64(onset-lastOffset), 0)
	inside := math.Max(0, -gap/p.GapStdMicros+1)
	return math.Max(math.Log(inside)+1, p.MinGapScore)
}

// Compare orders voices by most recent note, then by length, then by their
// earlier states. Only ever zero for voices holding the exact same notes.
func (v *Voice) Compare(o *Voice) int {
	if o == nil {
		return 1
	}
	if result := v.note.Compare(o.note); result != 0 {
		return result
	}
	if v.numNotes != o.numNotes {
		return v.numNotes - o.numNotes
	}
	if v.previous == nil {
		if o.previous == nil {
			return 0
		}
		return -1
	}
	return v.previous.Compare(o.previous)
}
