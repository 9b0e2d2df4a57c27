package model

type SplitRequestBody struct {
	Notes []NoteInput `json:"notes"`
}

// NoteInput is the over-the-wire shape of a note event.
type NoteInput struct {
	Onset    int64 `json:"onset"`
	Duration int64 `json:"duration"`
	Pitch    uint8 `json:"pitch"`
}

type SplitResponse struct {
	NumVoices int           `json:"num_voices"`
	LogProb   float64       `json:"log_prob"`
	Voices    [][]NoteInput `json:"voices"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
