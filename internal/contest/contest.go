package contest

import "sort"

// Phase represents the lifecycle state of a contest as reported by the
// remote source. Only PhaseBefore means the contest is still upcoming;
// every other phase is filtered out before reconciliation.
type Phase string

const (
	PhaseBefore            Phase = "BEFORE"
	PhaseCoding            Phase = "CODING"
	PhasePendingSystemTest Phase = "PENDING_SYSTEM_TEST"
	PhaseSystemTest        Phase = "SYSTEM_TEST"
	PhaseFinished          Phase = "FINISHED"
)

// Contest is one tracked upcoming contest.
//
// Identity is the remote-assigned ID: set membership and diffing consult
// only the ID, never the other fields. Two contests with the same ID are
// the same entity even when their names or start times differ.
type Contest struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Phase            Phase   `json:"phase"`
	StartTimeSeconds *int64  `json:"startTimeSeconds,omitempty"`
	Description      *string `json:"description,omitempty"`
}

// Upcoming reports whether the contest has not started yet.
func (c Contest) Upcoming() bool {
	return c.Phase == PhaseBefore
}

// Set is a collection of contests keyed explicitly by ID. Keying by ID
// (rather than comparing whole structs) is what makes membership and
// difference ignore every non-identity field.
type Set map[int64]Contest

// NewSet builds a set from the given contests. A later contest with a
// duplicate ID replaces the earlier one.
func NewSet(contests ...Contest) Set {
	s := make(Set, len(contests))
	for _, c := range contests {
		s[c.ID] = c
	}
	return s
}

// Contains reports whether a contest with the given ID is in the set.
func (s Set) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// Add inserts a contest, replacing any existing contest with the same ID.
func (s Set) Add(c Contest) {
	s[c.ID] = c
}

// Len returns the number of contests in the set.
func (s Set) Len() int {
	return len(s)
}

// Contests returns the members ordered by ID, so callers that serialize
// or display the set get deterministic output.
func (s Set) Contests() []Contest {
	out := make([]Contest, 0, len(s))
	for _, c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
