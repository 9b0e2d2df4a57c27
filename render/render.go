// Package render writes a voice partition back out as a standard MIDI file,
// one track per voice, so results can be checked in any sequencer.
package render

import (
	"sort"

	"github.com/jsphweid/voicesplit/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// one tick == 1ms at the default 120bpm tempo
const ticksPerQuarter = 500

type noteEvent struct {
	tick     int64
	isOff    bool
	pitch    uint8
	velocity uint8
}

// VoicesToSMF builds an SMF holding one track per voice.
func VoicesToSMF(voices [][]model.Note) *smf.SMF {
	var res smf.SMF
	res.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	for _, vs := range voices {
		var events []noteEvent
		for _, n := range vs {
			events = append(events, noteEvent{
				tick:     n.Onset / 1000,
				pitch:    n.Pitch,
				velocity: n.Velocity,
			})
			events = append(events, noteEvent{
				tick:  n.Offset() / 1000,
				isOff: true,
				pitch: n.Pitch,
			})
		}

		// note offs first on equal ticks, like any sane sequencer emits
		sort.Slice(events, func(i, j int) bool {
			if events[i].tick != events[j].tick {
				return events[i].tick < events[j].tick
			}
			return events[i].isOff && !events[j].isOff
		})

		var track smf.Track
		var lastTick int64
		for _, e := range events {
			delta := uint32(e.tick - lastTick)
			lastTick = e.tick

			var msg midi.Message
			if e.isOff {
				msg = midi.NoteOff(0, e.pitch)
			} else {
				velocity := e.velocity
				if velocity == 0 {
					velocity = 64
				}
				msg = midi.NoteOn(0, e.pitch, velocity)
			}
			track = append(track, smf.Event{Delta: delta, Message: smf.Message(msg)})
		}
		track.Close(0)
		res.Tracks = append(res.Tracks, track)
	}

	return &res
}
