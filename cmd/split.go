package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/voicesplit/constants"
	"github.com/jsphweid/voicesplit/eval"
	"github.com/jsphweid/voicesplit/midi"
	"github.com/jsphweid/voicesplit/model"
	"github.com/jsphweid/voicesplit/notes"
	"github.com/jsphweid/voicesplit/params"
	"github.com/jsphweid/voicesplit/render"
	"github.com/jsphweid/voicesplit/splitter"
	"github.com/jsphweid/voicesplit/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(splitCmd)
	addParamFlags(splitCmd)
	splitCmd.Flags().String("midi-out", "", "also write each voice as its own track of this midi file")
}

var splitCmd = &cobra.Command{
	Use:   "split <midifile>",
	Short: "Splits a midi file into voices",
	Long:  `Splits a midi file into voices and stores the result in the output dir`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		midiOut, _ := cmd.Flags().GetString("midi-out")
		split(args[0], getParams(cmd), midiOut)
	},
}

// Split runs the whole pipeline on one file: parse, batch, beam search,
// score against the track-derived reference voices.
func Split(path string, p params.Params) (model.SplitResult, error) {
	var res model.SplitResult

	parsed, err := midi.ReadMidiFile(path)
	if err != nil {
		return res, err
	}
	ns, err := notes.FromSMF(parsed)
	if err != nil {
		return res, err
	}

	s := splitter.New(p)
	if err := s.Run(notes.Batches(ns)); err != nil {
		return res, err
	}

	best := s.Best()
	res.File = path
	res.LogProb = best.LogProb()
	res.Voices = best.VoiceNotes()
	res.Consistency = eval.VoiceConsistency(res.Voices, notes.ReferenceVoices(ns))
	return res, nil
}

func split(path string, p params.Params, midiOut string) {
	res, err := Split(path, p)
	if err != nil {
		panic("Could not split " + path + ": " + err.Error())
	}

	var numNotes int
	for i, vs := range res.Voices {
		numNotes += len(vs)
		fmt.Printf("voice %v: %v notes, %v -> %v\n", i, len(vs), vs[0].Pitch, vs[len(vs)-1].Pitch)
	}
	fmt.Printf("Split %v notes into %v voices, log prob %v, consistency %v\n",
		numNotes, len(res.Voices), res.LogProb, res.Consistency)

	os.MkdirAll(constants.GetOutDir(), 0777)
	filename := filepath.Join(constants.GetOutDir(), uuid.New().String()+".dat")
	util.CreateBinary(filename, res)
	fmt.Printf("Wrote result to %v\n", filename)

	if midiOut != "" {
		f, err := os.Create(midiOut)
		if err != nil {
			panic("Could not create midi out file: " + err.Error())
		}
		defer f.Close()
		if _, err := render.VoicesToSMF(res.Voices).WriteTo(f); err != nil {
			panic("Could not write midi out file: " + err.Error())
		}
		fmt.Printf("Wrote voices to %v\n", midiOut)
	}
}
