package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadMidiFile parses a standard MIDI file from disk.
func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// the smf reader panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("Error reading midi file... %v", err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("Error parsing midi file... %v", err)
	}

	return res, nil
}

// ReadMidiBytes parses a standard MIDI file already held in memory, e.g. an
// HTTP upload.
func ReadMidiBytes(dat []byte) (s *smf.SMF, e error) {
	var blank smf.SMF

	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("Error parsing midi file... %v", err)
	}

	return res, nil
}
