package plan

import (
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
)

type node struct {
	segment Segment
	prev    *node
	length  int
}

// History is a persistent, ordered sequence of Segments. Extending a History
// returns a new one which shares the receiver as its prefix; the receiver is
// never modified, so Histories may be freely shared between handles.
// The zero History is empty.
type History struct {
	last *node
}

// NewHistory creates a History containing the given Segments, in order
func NewHistory(segments ...Segment) History {
	return History{}.Append(segments...)
}

// Append returns a History with the given Segments added to the end of this one
func (h History) Append(segments ...Segment) History {
	for _, s := range segments {
		h.last = &node{segment: s, prev: h.last, length: h.Len() + 1}
	}
	return h
}

// Concat returns a History with every Segment of other added to the end of this one
func (h History) Concat(other History) History {
	return h.Append(other.Segments()...)
}

// Len returns the number of Segments in this History
func (h History) Len() int {
	if h.last == nil {
		return 0
	}
	return h.last.length
}

// Segments returns the Segments of this History, in order
func (h History) Segments() []Segment {
	res := make([]Segment, h.Len())
	for n := h.last; n != nil; n = n.prev {
		res[n.length-1] = n.segment
	}
	return res
}

// Serialize renders the History as a composite plan
func (h History) Serialize() (string, error) {
	return Serialize(h.Segments())
}

// Serialize renders a sequence of Segments as a composite plan: a JSON array of their fragments
func Serialize(segments []Segment) (string, error) {
	var res strings.Builder
	res.WriteByte('[')
	for i, s := range segments {
		if i > 0 {
			res.WriteByte(',')
		}
		fragment, err := s.Serialize()
		if err != nil {
			return "", err
		}
		res.WriteString(fragment)
	}
	res.WriteByte(']')
	return res.String(), nil
}

// Fingerprint computes a short hash of a composite plan, for correlating log lines
func Fingerprint(plan string) uint64 {
	return xxhash.Sum64String(plan)
}
