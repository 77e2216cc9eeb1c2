package tags

import "sort"

// Tag names an integer attribute attached to an entity.
type Tag string

const (
	// TurnsInPlay counts how many of its controller's turns a minion has started on the board.
	TurnsInPlay Tag = "turns_in_play"
	// Generated marks cards created by an effect rather than drawn from the deck.
	Generated Tag = "generated"
)

// Tags holds auxiliary per-entity state that does not warrant a field.
// A missing tag reads as zero.
type Tags map[Tag]int

// Get returns the value of t, or zero.
func (ts Tags) Get(t Tag) int {
	return ts[t]
}

// Has reports whether t is set to a non-zero value.
func (ts Tags) Has(t Tag) bool {
	return ts[t] != 0
}

// Set assigns v to t. Setting zero removes the tag.
func (ts Tags) Set(t Tag, v int) {
	if v == 0 {
		delete(ts, t)
		return
	}
	ts[t] = v
}

// Add increments t by n and returns the new value.
func (ts Tags) Add(t Tag, n int) int {
	v := ts[t] + n
	ts.Set(t, v)
	return v
}

// Copy returns an independent copy.
func (ts Tags) Copy() Tags {
	out := make(Tags, len(ts))
	for k, v := range ts {
		out[k] = v
	}
	return out
}

// Keys returns the set tags in sorted order.
func (ts Tags) Keys() []Tag {
	keys := make([]Tag, 0, len(ts))
	for k := range ts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
