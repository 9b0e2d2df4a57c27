// Package notes turns parsed MIDI files into the note events the splitting
// engine consumes.
package notes

import (
	"errors"
	"sort"

	"github.com/jsphweid/voicesplit/model"
	"github.com/jsphweid/voicesplit/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

// FromSMF pairs note-on/note-off events into note events with microsecond
// times. A note-on with velocity 0 counts as a note-off, and a retriggered
// key closes the note still sounding on it. The returned notes are sorted.
func FromSMF(s *smf.SMF) ([]model.Note, error) {
	var res []model.Note

	for trackNum, events := range s.Tracks {
		var absTicks int64
		pressed := make(map[uint8]model.Note)
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel uint8
			var key uint8
			var velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
				absTime := s.TimeAt(absTicks)
				if n, ok := pressed[key]; ok {
					n.Duration = absTime - n.Onset
					res = append(res, n)
				}
				pressed[key] = model.Note{
					Onset:    absTime,
					Pitch:    key,
					Velocity: velocity,
					Track:    trackNum,
				}
			case event.Message.GetNoteOff(&channel, &key, &velocity),
				event.Message.GetNoteOn(&channel, &key, &velocity):
				absTime := s.TimeAt(absTicks)
				if n, ok := pressed[key]; ok {
					n.Duration = absTime - n.Onset
					res = append(res, n)
					delete(pressed, key)
				}
			}
		}
	}

	if len(res) == 0 {
		return nil, errors.New("no notes in file")
	}

	Sort(res)
	return res, nil
}

// Sort orders notes chronologically, in place.
func Sort(ns []model.Note) {
	sort.Slice(ns, func(i, j int) bool {
		return ns[i].Compare(ns[j]) < 0
	})
}

// Batches groups sorted notes into runs sharing one onset time, the unit the
// engine transitions on.
func Batches(ns []model.Note) [][]model.Note {
	sorted := append([]model.Note{}, ns...)
	Sort(sorted)

	var res [][]model.Note
	for _, n := range sorted {
		if len(res) > 0 && res[len(res)-1][0].Onset == n.Onset {
			res[len(res)-1] = append(res[len(res)-1], n)
		} else {
			res = append(res, []model.Note{n})
		}
	}
	return res
}

// ReferenceVoices groups notes by source track, the usual convention for
// annotated corpora where each track holds exactly one voice.
func ReferenceVoices(ns []model.Note) [][]model.Note {
	byTrack := make(map[int][]model.Note)
	for _, n := range ns {
		byTrack[n.Track] = append(byTrack[n.Track], n)
	}

	var res [][]model.Note
	for _, track := range util.SortedKeys(byTrack) {
		vs := byTrack[track]
		Sort(vs)
		res = append(res, vs)
	}
	return res
}

// FromInputs converts over-the-wire note events, assigning them all to one
// unknown track.
func FromInputs(inputs []model.NoteInput) []model.Note {
	var res []model.Note
	for _, in := range inputs {
		res = append(res, model.Note{
			Onset:    in.Onset,
			Duration: in.Duration,
			Pitch:    in.Pitch,
		})
	}
	return res
}

// ToInputs is the reverse of FromInputs, for responses.
func ToInputs(ns []model.Note) []model.NoteInput {
	res := make([]model.NoteInput, len(ns))
	for i, n := range ns {
		res[i] = model.NoteInput{Onset: n.Onset, Duration: n.Duration, Pitch: n.Pitch}
	}
	return res
}
