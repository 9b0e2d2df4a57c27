// Package eval scores a produced voice partition against the reference
// voices of an annotated file.
package eval

import "github.com/jsphweid/voicesplit/model"

// VoiceConsistency measures, for each reference voice, what fraction of its
// notes landed together in the single produced voice holding most of them,
// averaged over the reference voices. 1 means every reference voice survived
// intact.
func VoiceConsistency(produced, reference [][]model.Note) float64 {
	if len(reference) == 0 {
		return 0
	}

	producedIndex := make(map[model.Note]int)
	for i, vs := range produced {
		for _, n := range vs {
			producedIndex[n] = i
		}
	}

	var total float64
	var numVoices int
	for _, ref := range reference {
		if len(ref) == 0 {
			continue
		}
		numVoices++

		counts := make(map[int]int)
		for _, n := range ref {
			if idx, ok := producedIndex[n]; ok {
				counts[idx]++
			}
		}

		best := 0
		for _, c := range counts {
			if c > best {
				best = c
			}
		}
		total += float64(best) / float64(len(ref))
	}

	if numVoices == 0 {
		return 0
	}
	return total / float64(numVoices)
}
