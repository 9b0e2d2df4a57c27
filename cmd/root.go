package cmd

import (
	"github.com/jsphweid/voicesplit/params"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "voicesplit",
	Short: "Splits polyphonic MIDI into monophonic voices",
	Long:  `Splits polyphonic MIDI into monophonic voices using probabilistic beam search.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func addParamFlags(c *cobra.Command) {
	d := params.Default()
	c.Flags().Int("beam", d.BeamSize, "number of hypotheses kept between batches")
	c.Flags().Int("max-voices", d.MaxVoices, "voice cap, 0 or less means no new voices")
	c.Flags().Float64("new-voice-prob", d.NewVoiceProbability, "prior probability of starting a new voice")
}

func getParams(c *cobra.Command) params.Params {
	p := params.Default()
	p.BeamSize, _ = c.Flags().GetInt("beam")
	p.MaxVoices, _ = c.Flags().GetInt("max-voices")
	p.NewVoiceProbability, _ = c.Flags().GetFloat64("new-voice-prob")
	return p
}
