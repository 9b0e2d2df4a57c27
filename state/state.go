package state

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/jsphweid/voicesplit/beam"
	"github.com/jsphweid/voicesplit/model"
	"github.com/jsphweid/voicesplit/params"
	"github.com/jsphweid/voicesplit/util"
	"github.com/jsphweid/voicesplit/voice"
)

// State is one hypothesis: an ordered list of voices partitioning every note
// seen so far, plus the log of the probability of that partition. Voices are
// kept in pitch order left to right, which the transition scoring leans on.
// A State is never mutated once returned from HandleIncoming.
type State struct {
	voices  []*voice.Voice
	logProb float64
	p       params.Params
}

// New creates the starting state: no voices, probability 1.
func New(p params.Params) *State {
	return &State{p: p}
}

func newState(logProb float64, voices []*voice.Voice, p params.Params) *State {
	return &State{voices: voices, logProb: logProb, p: p}
}

func (s *State) Voices() []*voice.Voice {
	return s.voices
}

func (s *State) LogProb() float64 {
	return s.logProb
}

func (s *State) Params() params.Params {
	return s.p
}

// VoiceNotes returns each voice's notes in chronological order.
func (s *State) VoiceNotes() [][]model.Note {
	res := make([][]model.Note, len(s.voices))
	for i, v := range s.voices {
		res[i] = v.Notes()
	}
	return res
}

// HandleIncoming enumerates every legal way to place the batch's notes into
// this state's voices (or new ones) and returns the best-scoring results,
// at most BeamSize of them. All notes in the batch must share one onset time,
// and successive calls must be made in chronological order.
//
// The enumeration assigns one note per recursion level. Each candidate
// placement is applied to a shared working voice list, recursed on, and then
// reversed before the next candidate is tried, so auxiliary memory stays
// proportional to the batch, not to the number of branches. The result beam
// is trimmed eagerly inside the recursion for the same reason.
func (s *State) HandleIncoming(batch []model.Note) (*beam.Beam[*State], error) {
	if len(batch) == 0 {
		return nil, errors.New("batch is empty")
	}
	onset := batch[0].Onset
	for _, n := range batch[1:] {
		if n.Onset != onset {
			return nil, fmt.Errorf("batch mixes onset times %v and %v", onset, n.Onset)
		}
	}

	working := append([]*voice.Voice{}, s.voices...)
	result := beam.New[*State](s.p.BeamSize)
	s.enumerate(s.openVoiceIndices(batch), batch, working, s.logProb, 0, result)
	return result, nil
}

// openVoiceIndices builds, for each note of the batch, the sorted list of
// voice positions that could legally take it at the batch onset time. The
// table is index-shifted in place as the enumeration inserts and removes
// voices so it stays consistent for the notes not yet assigned.
func (s *State) openVoiceIndices(batch []model.Note) [][]int {
	onset := batch[0].Onset
	open := make([][]int, len(batch))
	for i, n := range batch {
		var indices []int
		for j, v := range s.voices {
			if v.CanAccept(onset, n.Duration, s.p) {
				indices = append(indices, j)
			}
		}
		open[i] = indices
	}
	return open
}

func (s *State) enumerate(open [][]int, batch []model.Note, working []*voice.Voice, logProb float64, noteIndex int, result *beam.Beam[*State]) {
	if noteIndex == len(batch) {
		// Every note placed. The voices themselves are persistent, so a
		// shallow copy of the working list is a full snapshot.
		result.Push(newState(logProb, append([]*voice.Voice{}, working...), s.p))
		return
	}

	note := batch[noteIndex]

	// Starting a new voice is not branched exhaustively: only the insertion
	// position(s) with maximal probability are expanded.
	if s.p.MaxVoices > 0 && len(working) < s.p.MaxVoices {
		newVoiceProbs := make([]float64, len(working)+1)
		for i := range newVoiceProbs {
			newVoiceProbs[i] = s.transitionLogProb(note, -i-1, working)
		}
		if maxIndex := util.MaxIndex(newVoiceProbs); maxIndex != -1 {
			s.addNewVoices(open, batch, working, logProb, noteIndex, newVoiceProbs, newVoiceProbs[maxIndex], result)
		}
	}

	// Every open existing voice branches. If there are none and no new voice
	// was possible either, this branch contributes nothing, which is the
	// intended capacity-exhaustion behavior rather than an error.
	existingProbs := make([]float64, len(open[noteIndex]))
	for i, voiceIndex := range open[noteIndex] {
		existingProbs[i] = s.transitionLogProb(note, voiceIndex, working)
	}
	s.addToExistingVoices(open, batch, working, logProb, noteIndex, existingProbs, result)
}

func (s *State) addNewVoices(open [][]int, batch []model.Note, working []*voice.Voice, logProb float64, noteIndex int, newVoiceProbs []float64, maxProb float64, result *beam.Beam[*State]) {
	note := batch[noteIndex]

	for pos := 0; pos < len(newVoiceProbs); pos++ {
		if newVoiceProbs[pos] != maxProb {
			continue
		}

		working = insertVoice(working, pos, voice.New(note))

		// Voice positions at or after the insertion point moved right.
		for n := noteIndex + 1; n < len(open); n++ {
			for j, vi := range open[n] {
				if vi >= pos {
					open[n][j] = vi + 1
				}
			}
		}

		s.enumerate(open, batch, working, logProb+newVoiceProbs[pos], noteIndex+1, result)

		for n := noteIndex + 1; n < len(open); n++ {
			for j, vi := range open[n] {
				if vi > pos {
					open[n][j] = vi - 1
				}
			}
		}

		working = removeVoice(working, pos)
	}
}

func (s *State) addToExistingVoices(open [][]int, batch []model.Note, working []*voice.Voice, logProb float64, noteIndex int, existingProbs []float64, result *beam.Beam[*State]) {
	note := batch[noteIndex]

	for i, voiceIndex := range open[noteIndex] {
		working[voiceIndex] = working[voiceIndex].Add(note)

		// No two notes of one batch may land in the same voice: drop this
		// voice from every later note's open set, remembering where it was
		// actually present so the undo is exact.
		removed := make([]bool, len(open))
		for n := noteIndex + 1; n < len(open); n++ {
			removed[n] = removeIndex(&open[n], voiceIndex)
		}

		s.enumerate(open, batch, working, logProb+existingProbs[i], noteIndex+1, result)

		working[voiceIndex] = working[voiceIndex].Previous()

		for n := noteIndex + 1; n < len(open); n++ {
			if removed[n] {
				reinsertIndex(&open[n], voiceIndex)
			}
		}
	}
}

// transitionLogProb scores placing the note per the given transition without
// performing it. Negative transitions encode starting a new voice at position
// (-transition - 1); non-negative ones extend the existing voice at that
// position. Either way the score is halved once for each neighboring voice
// whose most recent note would be on the wrong side of the note's pitch.
func (s *State) transitionLogProb(n model.Note, transition int, working []*voice.Voice) float64 {
	var logProb float64
	var prev, next *voice.Voice

	if transition < 0 {
		pos := -transition - 1
		logProb = math.Log(s.p.NewVoiceProbability)
		if pos != 0 {
			prev = working[pos-1]
		}
		if pos != len(working) {
			next = working[pos]
		}
	} else {
		logProb = math.Log(working[transition].Probability(n, s.p))
		if transition != 0 {
			prev = working[transition-1]
		}
		if transition != len(working)-1 {
			next = working[transition+1]
		}
	}

	if prev != nil && n.Pitch < prev.MostRecent().Pitch {
		logProb -= math.Ln2
	}
	if next != nil && n.Pitch > next.MostRecent().Pitch {
		logProb -= math.Ln2
	}

	// A zero-probability transition must stay finite so sums and comparisons
	// downstream keep working.
	if math.IsInf(logProb, -1) {
		logProb = -math.MaxFloat64
	}

	return logProb
}

// Compare ranks states: higher log probability first, then fewer voices,
// then voice by voice, then by parameters. Only zero for states holding
// identical partitions.
func (s *State) Compare(o *State) int {
	if o == nil {
		return -1
	}
	if s.logProb != o.logProb {
		if s.logProb > o.logProb {
			return -1
		}
		return 1
	}
	if len(s.voices) != len(o.voices) {
		return len(s.voices) - len(o.voices)
	}
	for i := range s.voices {
		if result := s.voices[i].Compare(o.voices[i]); result != 0 {
			return result
		}
	}
	return s.p.Compare(o.p)
}

func (s *State) String() string {
	return fmt.Sprintf("%v %v", s.VoiceNotes(), s.logProb)
}

func insertVoice(voices []*voice.Voice, i int, v *voice.Voice) []*voice.Voice {
	voices = append(voices, nil)
	copy(voices[i+1:], voices[i:])
	voices[i] = v
	return voices
}

func removeVoice(voices []*voice.Voice, i int) []*voice.Voice {
	copy(voices[i:], voices[i+1:])
	return voices[:len(voices)-1]
}

func removeIndex(indices *[]int, value int) bool {
	for i, v := range *indices {
		if v == value {
			*indices = append((*indices)[:i], (*indices)[i+1:]...)
			return true
		}
	}
	return false
}

func reinsertIndex(indices *[]int, value int) {
	i := sort.SearchInts(*indices, value)
	*indices = append(*indices, 0)
	copy((*indices)[i+1:], (*indices)[i:])
	(*indices)[i] = value
}
