package cmd

import (
	"fmt"

	"github.com/jsphweid/voicesplit/model"
	"github.com/jsphweid/voicesplit/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <resultfile>",
	Short: "Inspects a stored split result",
	Long:  `Inspects a stored split result`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	res := util.ReadBinaryOrPanic[model.SplitResult](path)
	fmt.Printf("file: %v\n", res.File)
	fmt.Printf("log prob: %v\n", res.LogProb)
	fmt.Printf("consistency: %v\n", res.Consistency)
	for i, vs := range res.Voices {
		fmt.Printf("voice %v (%v notes):\n", i, len(vs))
		for _, n := range vs {
			fmt.Printf("  onset=%v duration=%v pitch=%v\n", n.Onset, n.Duration, n.Pitch)
		}
	}
}
