package model

// SplitResult is what the split command persists for later inspection.
type SplitResult struct {
	File        string
	LogProb     float64
	Voices      [][]Note
	Consistency float64
}

type FileNumToMidiPath = map[uint32]string

type MidiMetadata struct {
	Artist  string
	Release string
	Title   string
	Year    uint
}
