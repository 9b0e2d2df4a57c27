package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/voicesplit/model"
	"github.com/jsphweid/voicesplit/notes"
	"github.com/jsphweid/voicesplit/params"
	"github.com/jsphweid/voicesplit/splitter"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

func init() {
	rootCmd.AddCommand(liveCmd)
	addParamFlags(liveCmd)
}

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Splits voices live from a midi input port",
	Long:  `Splits voices live from a midi input port`,
	Run: func(cmd *cobra.Command, args []string) {
		live(getParams(cmd))
	},
}

func live(p params.Params) {
	defer midi.CloseDriver()
	in, err := midi.InPort(0)
	if err != nil {
		fmt.Println("can't find a midi input port")
		return
	}

	s := splitter.New(p)
	var mu sync.Mutex
	pressed := make(map[uint8]model.Note)
	var completed []model.Note

	// notes played together rarely arrive on the same millisecond, so wait
	// for a short quiet window before forming batches out of what came in
	deb := debounce.New(100 * time.Millisecond)
	flush := func() {
		mu.Lock()
		defer mu.Unlock()
		if len(completed) == 0 {
			return
		}
		for _, batch := range notes.Batches(completed) {
			if err := s.HandleIncoming(batch); err != nil {
				fmt.Printf("Skipping batch: %v\n", err)
			}
		}
		completed = completed[:0]

		best := s.Best()
		fmt.Printf("%v voices, log prob %v\n", len(best.Voices()), best.LogProb())
		for i, vs := range best.VoiceNotes() {
			last := vs[len(vs)-1]
			fmt.Printf("  voice %v: %v notes, last pitch %v\n", i, len(vs), last.Pitch)
		}
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			mu.Lock()
			pressed[key] = model.Note{
				Onset:    int64(timestampms) * 1000,
				Pitch:    key,
				Velocity: vel,
			}
			mu.Unlock()
		case msg.GetNoteEnd(&ch, &key):
			mu.Lock()
			if n, ok := pressed[key]; ok {
				n.Duration = int64(timestampms)*1000 - n.Onset
				completed = append(completed, n)
				delete(pressed, key)
			}
			mu.Unlock()
			deb(flush)
		}
	})
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}
	defer stop()

	fmt.Printf("Listening to %v, ctrl-c to quit\n", in)
	select {}
}
