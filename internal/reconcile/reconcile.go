package reconcile

import (
	"time"

	"github.com/example/contestwatch/internal/contest"
)

// Result is the partition produced by one reconciliation pass.
type Result struct {
	// New holds contests present remotely but not previously known,
	// in remote fetch order. Each triggers exactly one reminder attempt.
	New []contest.Contest
	// Kept holds previously known contests still present remotely,
	// ordered by ID. The locally stored copy is retained.
	Kept []contest.Contest
	// Expired counts local contests absent from the remote set. They are
	// dropped: neither persisted nor notified again.
	Expired int
}

// Reconcile partitions the remote contests against the locally known set.
// Identity is by ID only; a contest whose name or start time changed
// remotely is still the same contest and never classified as new.
//
// An empty remote slice expires every local contest. The fetch adapter is
// responsible for never substituting an empty result for a failure.
func Reconcile(local contest.Set, remote []contest.Contest) Result {
	remoteSet := contest.NewSet(remote...)

	var result Result

	seen := make(map[int64]bool, len(remote))
	for _, c := range remote {
		if local.Contains(c.ID) || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		result.New = append(result.New, c)
	}

	for _, c := range local.Contests() {
		if remoteSet.Contains(c.ID) {
			result.Kept = append(result.Kept, c)
		} else {
			result.Expired++
		}
	}

	return result
}

// AdjustStartTimes returns copies of the given contests with each start
// time moved earlier by lead, so the reminder fires ahead of the contest.
// Contests without a start time pass through unchanged, and IDs are never
// touched, so a later cycle still recognizes the adjusted contests as
// already known.
func AdjustStartTimes(contests []contest.Contest, lead time.Duration) []contest.Contest {
	out := make([]contest.Contest, len(contests))
	for i, c := range contests {
		if c.StartTimeSeconds != nil {
			adjusted := *c.StartTimeSeconds - int64(lead.Seconds())
			c.StartTimeSeconds = &adjusted
		}
		out[i] = c
	}
	return out
}
