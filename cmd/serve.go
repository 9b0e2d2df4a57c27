package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/voicesplit/constants"
	"github.com/jsphweid/voicesplit/midi"
	"github.com/jsphweid/voicesplit/model"
	"github.com/jsphweid/voicesplit/notes"
	"github.com/jsphweid/voicesplit/params"
	"github.com/jsphweid/voicesplit/splitter"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveParams = params.Default()

func init() {
	rootCmd.AddCommand(serveCmd)
	addParamFlags(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the splitter over HTTP",
	Long:  `Serves the splitter over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serveParams = getParams(cmd)
		serve()
	},
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func splitResponse(w http.ResponseWriter, ns []model.Note) {
	s := splitter.New(serveParams)
	if err := s.Run(notes.Batches(ns)); err != nil {
		writeError(w, 422, "Could not split notes: "+err.Error())
		return
	}

	best := s.Best()
	res := model.SplitResponse{
		NumVoices: len(best.Voices()),
		LogProb:   best.LogProb(),
	}
	for _, vs := range best.VoiceNotes() {
		res.Voices = append(res.Voices, notes.ToInputs(vs))
	}
	json.NewEncoder(w).Encode(res)
}

// HandleSplit splits raw note events posted as JSON.
func HandleSplit(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "Could not read request body: "+err.Error())
		return
	}

	var input model.SplitRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, 400, "Could not unmarshal request body: "+err.Error())
		return
	}
	if len(input.Notes) == 0 {
		writeError(w, 400, "Need at least 1 note...")
		return
	}

	splitResponse(w, notes.FromInputs(input.Notes))
}

// HandleSplitFile splits a midi file posted as raw bytes.
func HandleSplitFile(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "Could not read request body: "+err.Error())
		return
	}

	parsed, err := midi.ReadMidiBytes(reqBody)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}
	ns, err := notes.FromSMF(parsed)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}

	splitResponse(w, ns)
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/split", HandleSplit).Methods("POST")
	router.HandleFunc("/split/file", HandleSplitFile).Methods("POST")

	handler := cors.Default().Handler(router)
	addr := ":" + constants.GetPort()
	fmt.Printf("Listening on %v\n", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
