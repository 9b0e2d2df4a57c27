package params

// Params holds every knob the splitting engine reads. They are passed
// explicitly everywhere so two runs with different settings never share state.
type Params struct {
	// BeamSize is how many hypothesis states survive each batch.
	BeamSize int

	// MaxVoices caps how many voices a state may hold. Zero or negative
	// means no new voices are ever created.
	MaxVoices int

	// NewVoiceProbability is the prior probability of a note starting a
	// brand new voice, in (0,1].
	NewVoiceProbability float64

	// PitchHistoryLength is how many recent notes weigh into a voice's
	// expected pitch.
	PitchHistoryLength int

	// PitchStd is the standard deviation, in semitones, of the gaussian
	// used for pitch proximity.
	PitchStd float64

	// GapStdMicros scales how quickly the gap score decays as the silence
	// between a voice's last note and a candidate note grows.
	GapStdMicros float64

	// MinGapScore is the floor of the gap score, keeping probabilities
	// strictly positive for arbitrarily long gaps.
	MinGapScore float64
}

// Default returns settings that work well on classical piano corpora.
func Default() Params {
	return Params{
		BeamSize:            25,
		MaxVoices:           50,
		NewVoiceProbability: 1e-9,
		PitchHistoryLength:  6,
		PitchStd:            4,
		GapStdMicros:        127000,
		MinGapScore:         8e-4,
	}
}

// Compare is an arbitrary but deterministic total order over Params, used as
// the last tie-break when ranking hypothesis states.
func (p Params) Compare(o Params) int {
	ints := [][2]int{
		{p.BeamSize, o.BeamSize},
		{p.MaxVoices, o.MaxVoices},
		{p.PitchHistoryLength, o.PitchHistoryLength},
	}
	for _, pair := range ints {
		if pair[0] != pair[1] {
			return pair[0] - pair[1]
		}
	}
	floats := [][2]float64{
		{p.NewVoiceProbability, o.NewVoiceProbability},
		{p.PitchStd, o.PitchStd},
		{p.GapStdMicros, o.GapStdMicros},
		{p.MinGapScore, o.MinGapScore},
	}
	for _, pair := range floats {
		if pair[0] < pair[1] {
			return -1
		}
		if pair[0] > pair[1] {
			return 1
		}
	}
	return 0
}
