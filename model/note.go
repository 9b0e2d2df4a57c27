package model

// Note is a single note event. Times are in microseconds, like the values
// smf.TimeAt hands back. Track remembers which SMF track the note came from,
// which doubles as the reference voice when a file keeps one voice per track.
type Note struct {
	Onset    int64
	Duration int64
	Pitch    uint8
	Velocity uint8
	Track    int
}

// Offset is the time the note stops sounding.
func (n Note) Offset() int64 {
	return n.Onset + n.Duration
}

// Overlaps reports whether the two notes sound at the same time at any point.
func (n Note) Overlaps(o Note) bool {
	return n.Onset < o.Offset() && o.Onset < n.Offset()
}

// Compare orders notes by onset, then pitch, then duration, then velocity.
func (n Note) Compare(o Note) int {
	if n.Onset != o.Onset {
		if n.Onset < o.Onset {
			return -1
		}
		return 1
	}
	if n.Pitch != o.Pitch {
		return int(n.Pitch) - int(o.Pitch)
	}
	if n.Duration != o.Duration {
		if n.Duration < o.Duration {
			return -1
		}
		return 1
	}
	return int(n.Velocity) - int(o.Velocity)
}
