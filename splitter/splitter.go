// Package splitter drives the beam search: it owns the set of live hypothesis
// states and advances all of them one onset batch at a time.
package splitter

import (
	"errors"
	"fmt"

	"github.com/jsphweid/voicesplit/beam"
	"github.com/jsphweid/voicesplit/model"
	"github.com/jsphweid/voicesplit/params"
	"github.com/jsphweid/voicesplit/state"
)

type Splitter struct {
	p         params.Params
	states    *beam.Beam[*state.State]
	lastOnset int64
	started   bool
}

// New creates a splitter with a single empty hypothesis.
func New(p params.Params) *Splitter {
	states := beam.New[*state.State](p.BeamSize)
	states.Push(state.New(p))
	return &Splitter{p: p, states: states}
}

// HandleIncoming advances every live state on one batch of simultaneous
// notes and keeps the best BeamSize results as the new live set. Batches
// must arrive in strictly increasing onset order.
func (s *Splitter) HandleIncoming(batch []model.Note) error {
	if len(batch) == 0 {
		return errors.New("batch is empty")
	}
	if s.started && batch[0].Onset <= s.lastOnset {
		return fmt.Errorf("batch at onset %v arrived after onset %v", batch[0].Onset, s.lastOnset)
	}

	merged := beam.New[*state.State](s.p.BeamSize)
	for _, st := range s.states.Items() {
		successors, err := st.HandleIncoming(batch)
		if err != nil {
			return err
		}
		for _, ns := range successors.Items() {
			merged.Push(ns)
		}
	}
	if merged.Len() == 0 {
		return fmt.Errorf("no state could place the %v notes at onset %v", len(batch), batch[0].Onset)
	}

	s.states = merged
	s.lastOnset = batch[0].Onset
	s.started = true
	return nil
}

// Run feeds every batch through in order.
func (s *Splitter) Run(batches [][]model.Note) error {
	for _, batch := range batches {
		if err := s.HandleIncoming(batch); err != nil {
			return err
		}
	}
	return nil
}

// Best is the highest-ranked live state.
func (s *Splitter) Best() *state.State {
	best, _ := s.states.Best()
	return best
}

// States returns the live states best-first.
func (s *Splitter) States() []*state.State {
	return s.states.Items()
}

// Voices is the best state's partition, one chronological note list per voice.
func (s *Splitter) Voices() [][]model.Note {
	return s.Best().VoiceNotes()
}
