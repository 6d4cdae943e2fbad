package contest

import (
	"encoding/json"
	"testing"
)

func i64(v int64) *int64 { return &v }

func str(v string) *string { return &v }

// TestSet_IdentityByID verifies that membership consults only the ID:
// two contests differing in every other field are one entity.
func TestSet_IdentityByID(t *testing.T) {
	a := Contest{ID: 7, Name: "Round A", Phase: PhaseBefore, StartTimeSeconds: i64(1000)}
	b := Contest{ID: 7, Name: "Round A (rescheduled)", Phase: PhaseBefore, StartTimeSeconds: i64(2000)}

	s := NewSet(a)

	if !s.Contains(b.ID) {
		t.Error("expected set to contain contest with same id despite different fields")
	}

	s.Add(b)
	if s.Len() != 1 {
		t.Errorf("expected 1 contest after adding same id, got %d", s.Len())
	}
	if got := s[7].Name; got != "Round A (rescheduled)" {
		t.Errorf("expected later add to replace fields, got name %q", got)
	}
}

// TestSet_DistinctIDs verifies that contests with different ids stay
// distinct even when every other field coincides.
func TestSet_DistinctIDs(t *testing.T) {
	a := Contest{ID: 1, Name: "Round", Phase: PhaseBefore}
	b := Contest{ID: 2, Name: "Round", Phase: PhaseBefore}

	s := NewSet(a, b)
	if s.Len() != 2 {
		t.Errorf("expected 2 contests, got %d", s.Len())
	}
}

// TestSet_ContestsOrdering verifies deterministic iteration order.
func TestSet_ContestsOrdering(t *testing.T) {
	s := NewSet(
		Contest{ID: 30},
		Contest{ID: 10},
		Contest{ID: 20},
	)

	got := s.Contests()
	want := []int64{10, 20, 30}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected order %v, got %d at index %d", want, got[i].ID, i)
		}
	}
}

// TestContest_JSONFieldNames verifies the wire field names, including
// omission of absent optional fields.
func TestContest_JSONFieldNames(t *testing.T) {
	full := Contest{
		ID:               1843,
		Name:             "Codeforces Round 1843",
		Phase:            PhaseBefore,
		StartTimeSeconds: i64(1700000000),
		Description:      str("Div. 2"),
	}

	data, err := json.Marshal(full)
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}

	for _, key := range []string{"id", "name", "phase", "startTimeSeconds", "description"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("expected field %q in encoded contest", key)
		}
	}
	if fields["phase"] != "BEFORE" {
		t.Errorf("expected phase BEFORE, got %v", fields["phase"])
	}

	minimal := Contest{ID: 1, Name: "x", Phase: PhaseFinished}
	data, err = json.Marshal(minimal)
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
	fields = map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}
	if _, ok := fields["startTimeSeconds"]; ok {
		t.Error("expected absent start time to be omitted")
	}
	if _, ok := fields["description"]; ok {
		t.Error("expected absent description to be omitted")
	}
}

// TestContest_Upcoming verifies the phase filter predicate.
func TestContest_Upcoming(t *testing.T) {
	cases := []struct {
		phase Phase
		want  bool
	}{
		{PhaseBefore, true},
		{PhaseCoding, false},
		{PhasePendingSystemTest, false},
		{PhaseSystemTest, false},
		{PhaseFinished, false},
	}

	for _, tc := range cases {
		c := Contest{ID: 1, Phase: tc.phase}
		if got := c.Upcoming(); got != tc.want {
			t.Errorf("Upcoming() for phase %s = %v, want %v", tc.phase, got, tc.want)
		}
	}
}
