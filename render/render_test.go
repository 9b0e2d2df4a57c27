package render

import (
	"bytes"
	"testing"

	"github.com/jsphweid/voicesplit/model"
	"github.com/jsphweid/voicesplit/notes"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestVoicesToSMFRoundTrip(t *testing.T) {
	voices := [][]model.Note{
		{
			{Onset: 0, Duration: 500000, Pitch: 60, Velocity: 100},
			{Onset: 500000, Duration: 500000, Pitch: 62, Velocity: 100},
		},
		{
			{Onset: 0, Duration: 1000000, Pitch: 72, Velocity: 90},
		},
	}

	rendered := VoicesToSMF(voices)

	assert := assert.New(t)
	assert.Equal(2, len(rendered.Tracks))

	var buf bytes.Buffer
	_, err := rendered.WriteTo(&buf)
	assert.NoError(err)
	parsed, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(err)

	ns, err := notes.FromSMF(parsed)
	assert.NoError(err)

	// each voice came back as its own track with times intact
	back := notes.ReferenceVoices(ns)
	assert.Equal(2, len(back))
	for i, vs := range back {
		assert.Equal(len(voices[i]), len(vs))
		for j, n := range vs {
			assert.Equal(voices[i][j].Onset, n.Onset)
			assert.Equal(voices[i][j].Duration, n.Duration)
			assert.Equal(voices[i][j].Pitch, n.Pitch)
		}
	}
}

func TestZeroVelocityNotesGetAudibleDefault(t *testing.T) {
	voices := [][]model.Note{
		{{Onset: 0, Duration: 500000, Pitch: 60}},
	}

	rendered := VoicesToSMF(voices)

	var buf bytes.Buffer
	_, err := rendered.WriteTo(&buf)
	assert.NoError(t, err)
	parsed, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)

	ns, err := notes.FromSMF(parsed)
	assert.NoError(t, err)
	assert.Equal(t, uint8(64), ns[0].Velocity)
}
