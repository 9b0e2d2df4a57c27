//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/voicesplit/cmd"
	"github.com/jsphweid/voicesplit/model"
	"github.com/stretchr/testify/assert"
)

func createSplitReqBody(notes []model.NoteInput) io.Reader {
	sr := model.SplitRequestBody{Notes: notes}
	data, err := json.Marshal(sr)
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func twoLineNotes() []model.NoteInput {
	var res []model.NoteInput
	lows := []uint8{60, 61, 62, 60}
	highs := []uint8{72, 73, 74, 72}
	for i := range lows {
		onset := int64(i) * 500000
		res = append(res, model.NoteInput{Onset: onset, Duration: 500000, Pitch: lows[i]})
		res = append(res, model.NoteInput{Onset: onset, Duration: 500000, Pitch: highs[i]})
	}
	return res
}

func TestSplitTwoLinesE2E(t *testing.T) {
	body := createSplitReqBody(twoLineNotes())
	req := httptest.NewRequest(http.MethodPost, "/split", body)
	w := httptest.NewRecorder()
	cmd.HandleSplit(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 200)

	var splitResponse model.SplitResponse
	err := json.Unmarshal(respBody, &splitResponse)
	if err != nil {
		panic(err.Error())
	}

	assert.Equal(2, splitResponse.NumVoices)
	assert.Equal(2, len(splitResponse.Voices))
	assert.Equal(4, len(splitResponse.Voices[0]))
	assert.Equal(4, len(splitResponse.Voices[1]))
	for _, n := range splitResponse.Voices[0] {
		assert.Less(n.Pitch, uint8(66))
	}
	for _, n := range splitResponse.Voices[1] {
		assert.Greater(n.Pitch, uint8(66))
	}
}

func TestSplitWithNoNotesE2E(t *testing.T) {
	body := createSplitReqBody(nil)
	req := httptest.NewRequest(http.MethodPost, "/split", body)
	w := httptest.NewRecorder()
	cmd.HandleSplit(w, req)

	assert.Equal(t, 400, w.Result().StatusCode)
}
