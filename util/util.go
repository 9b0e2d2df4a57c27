package util

import (
	"bytes"
	"encoding/gob"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

// MaxIndex returns the index of the first maximum value, or -1 for an empty
// slice.
func MaxIndex[A constraints.Ordered](values []A) int {
	if len(values) == 0 {
		return -1
	}
	res := 0
	for i, v := range values {
		if v > values[res] {
			res = i
		}
	}
	return res
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func GatherAllMidiPaths(path string, maxNum int) []string {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			panic("Error walking: " + err.Error())
		}
		if !d.IsDir() {
			if strings.HasSuffix(s, ".mid") || strings.HasSuffix(s, ".midi") {
				if maxNum == 0 || len(res) < maxNum {
					res = append(res, s)
				}
			}
		}
		return nil
	}
	filepath.WalkDir(path, walk)
	return res
}

func CreateBinary(filename string, data any) {
	buf := new(bytes.Buffer)
	encoder := gob.NewEncoder(buf)
	err := encoder.Encode(data)
	if err != nil {
		panic("Could not encode binary for " + filename + ": " + err.Error())
	}
	err = os.WriteFile(filename, buf.Bytes(), 0777)
	if err != nil {
		panic("Write failed for file " + filename + ": " + err.Error())
	}
}

func ReadBinaryOrPanic[A any](path string) A {
	f, err := os.Open(path)
	if err != nil {
		panic("Could not load binary file: " + err.Error())
	}
	defer f.Close()

	var data A
	decoder := gob.NewDecoder(f)
	err = decoder.Decode(&data)
	if err != nil {
		panic("Could not decode binary file: " + err.Error())
	}

	return data
}

func OpenFileOrPanic(path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		panic("Couldn't read file: " + err.Error())
	}
	return f
}
