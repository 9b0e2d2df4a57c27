package notes

import (
	"bytes"
	"testing"

	"github.com/jsphweid/voicesplit/model"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// a two-track file: a quarter-note melody and a held bass note
func buildTestSMF(t *testing.T) *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)

	var melody smf.Track
	melody.Add(0, smf.MetaTempo(120))
	melody.Add(0, midi.NoteOn(0, 72, 100))
	melody.Add(960, midi.NoteOff(0, 72))
	melody.Add(0, midi.NoteOn(0, 74, 100))
	melody.Add(960, midi.NoteOff(0, 74))
	melody.Close(0)

	var bass smf.Track
	bass.Add(0, midi.NoteOn(0, 48, 90))
	bass.Add(1920, midi.NoteOff(0, 48))
	bass.Close(0)

	s.Add(melody)
	s.Add(bass)

	// round trip through the writer so TimeAt sees a real file
	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	assert.NoError(t, err)
	parsed, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	return parsed
}

func TestFromSMF(t *testing.T) {
	ns, err := FromSMF(buildTestSMF(t))

	assert := assert.New(t)
	assert.NoError(err)

	// 960 ticks of a 120bpm quarter is half a second
	assert.Equal([]model.Note{
		{Onset: 0, Duration: 1000000, Pitch: 48, Velocity: 90, Track: 1},
		{Onset: 0, Duration: 500000, Pitch: 72, Velocity: 100, Track: 0},
		{Onset: 500000, Duration: 500000, Pitch: 74, Velocity: 100, Track: 0},
	}, ns)
}

func TestFromSMFWithNoNotesIsAnError(t *testing.T) {
	s := smf.New()
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	tr.Close(0)
	s.Add(tr)

	_, err := FromSMF(s)
	assert.Error(t, err)
}

func TestBatchesGroupByOnset(t *testing.T) {
	ns := []model.Note{
		{Onset: 500000, Duration: 1000, Pitch: 74},
		{Onset: 0, Duration: 1000, Pitch: 72},
		{Onset: 0, Duration: 1000, Pitch: 48},
	}

	batches := Batches(ns)

	assert := assert.New(t)
	assert.Equal(2, len(batches))
	assert.Equal(2, len(batches[0]))
	assert.Equal(uint8(48), batches[0][0].Pitch)
	assert.Equal(uint8(72), batches[0][1].Pitch)
	assert.Equal(1, len(batches[1]))
	assert.Equal(uint8(74), batches[1][0].Pitch)
}

func TestReferenceVoicesGroupByTrack(t *testing.T) {
	ns, err := FromSMF(buildTestSMF(t))
	assert.NoError(t, err)

	voices := ReferenceVoices(ns)

	assert := assert.New(t)
	assert.Equal(2, len(voices))
	assert.Equal(uint8(72), voices[0][0].Pitch)
	assert.Equal(uint8(74), voices[0][1].Pitch)
	assert.Equal(uint8(48), voices[1][0].Pitch)
}

func TestInputRoundTrip(t *testing.T) {
	inputs := []model.NoteInput{
		{Onset: 0, Duration: 1000, Pitch: 60},
		{Onset: 1000, Duration: 500, Pitch: 64},
	}

	assert.Equal(t, inputs, ToInputs(FromInputs(inputs)))
}
