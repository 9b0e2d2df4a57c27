package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jsphweid/voicesplit/db"
	"github.com/jsphweid/voicesplit/file"
	"github.com/jsphweid/voicesplit/model"
	"github.com/jsphweid/voicesplit/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
	addParamFlags(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <dir> [maxNum]",
	Short: "Splits every midi file under a dir and reports voice consistency",
	Long:  `Splits every midi file under a dir and reports voice consistency`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			panic("Need at least 1 arg...")
		}
		var maxNum int
		if len(args) == 2 {
			arg2, err := strconv.Atoi(args[1])
			if err != nil {
				panic(err)
			}
			maxNum = arg2
		}
		report(args[0], maxNum, cmd)
	},
}

func report(dir string, maxNum int, cmd *cobra.Command) {
	p := getParams(cmd)
	paths := util.GatherAllMidiPaths(dir, maxNum)
	fileNumMap := file.CreateFileNumMap(paths)

	metadatas := gatherMetadatas(paths)

	var totalConsistency float64
	var numSplit int
	for i, num := range util.SortedKeys(fileNumMap) {
		path := fileNumMap[num]
		fmt.Printf("Processing %v of %v midi files\n", i+1, len(paths))

		res, err := Split(path, p)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}

		line := fmt.Sprintf("%v: %v voices, consistency %.4f", path, len(res.Voices), res.Consistency)
		if md, ok := metadatas[filepath.Base(path)]; ok {
			line += fmt.Sprintf(" (%v - %v)", md.Artist, md.Title)
		}
		fmt.Println(line)

		totalConsistency += res.Consistency
		numSplit++
	}

	if numSplit == 0 {
		fmt.Println("No midi files could be split")
		return
	}
	fmt.Printf("Average voice consistency over %v files: %.4f\n", numSplit, totalConsistency/float64(numSplit))
}

func gatherMetadatas(paths []string) map[string]model.MidiMetadata {
	res := make(map[string]model.MidiMetadata)
	var batch []string
	flush := func() {
		for k, v := range db.GetMidiMetadatas(batch) {
			res[k] = v
		}
		batch = batch[:0]
	}
	for _, path := range paths {
		batch = append(batch, filepath.Base(path))
		if len(batch) == 10 {
			flush()
		}
	}
	flush()
	return res
}
