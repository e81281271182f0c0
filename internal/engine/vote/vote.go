// Package vote implements the ballot boxes used during day and night phases.
//
// A ballot never resolves itself: GetResult is a pure snapshot that callers
// may take repeatedly to drive live tally announcements, and ties never
// produce a leader. Downstream policy treats "no leader" as "no effect".
package vote

import (
	"sort"

	"github.com/louisbranch/omerta/internal/errors"
)

// Ballot tallies voter -> candidate choices. One vote per voter; re-voting
// is rejected, the original stands.
type Ballot struct {
	votes map[string]string // voter id -> candidate id
}

// New creates an empty ballot.
func New() *Ballot {
	return &Ballot{votes: make(map[string]string)}
}

// Add records a voter's choice. It fails with DuplicateVote if the voter
// already has a recorded choice in this ballot.
func (b *Ballot) Add(voter, candidate string) error {
	if _, ok := b.votes[voter]; ok {
		return errors.New(errors.CodeDuplicateVote, "voter already has a recorded choice")
	}
	b.votes[voter] = candidate
	return nil
}

// Remove withdraws a voter's choice, if any. It reports whether a vote was
// removed.
func (b *Ballot) Remove(voter string) bool {
	if _, ok := b.votes[voter]; !ok {
		return false
	}
	delete(b.votes, voter)
	return true
}

// Voted reports whether the voter has a recorded choice.
func (b *Ballot) Voted(voter string) bool {
	_, ok := b.votes[voter]
	return ok
}

// ChoiceOf returns the voter's recorded candidate, if any.
func (b *Ballot) ChoiceOf(voter string) (string, bool) {
	candidate, ok := b.votes[voter]
	return candidate, ok
}

// HasVotes reports whether any vote has been recorded.
func (b *Ballot) HasVotes() bool {
	return len(b.votes) > 0
}

// CountFor returns the running vote count for one candidate.
func (b *Ballot) CountFor(candidate string) int {
	n := 0
	for _, c := range b.votes {
		if c == candidate {
			n++
		}
	}
	return n
}

// Result is an immutable snapshot of a ballot.
type Result struct {
	// Counts maps each candidate to their vote count.
	Counts map[string]int
	// Leaders holds the candidate(s) with the maximum count.
	Leaders []string
	// HasOneLeader reports whether exactly one candidate holds a strict
	// plurality.
	HasOneLeader bool
	// IsEmpty reports whether no votes were recorded.
	IsEmpty bool
	// voters preserves who voted for whom for scoring queries.
	voters map[string]string
}

// Leader returns the single leading candidate. It is only meaningful when
// HasOneLeader is true.
func (r Result) Leader() string {
	if !r.HasOneLeader {
		return ""
	}
	return r.Leaders[0]
}

// VotedForLeader reports whether the voter backed the winning candidate.
func (r Result) VotedForLeader(voter string) bool {
	if !r.HasOneLeader {
		return false
	}
	return r.voters[voter] == r.Leaders[0]
}

// GetResult computes a snapshot without mutating the ballot.
func (b *Ballot) GetResult() Result {
	counts := make(map[string]int, len(b.votes))
	voters := make(map[string]string, len(b.votes))
	for voter, candidate := range b.votes {
		counts[candidate]++
		voters[voter] = candidate
	}

	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	var leaders []string
	for candidate, n := range counts {
		if n == max && max > 0 {
			leaders = append(leaders, candidate)
		}
	}
	sort.Strings(leaders)

	return Result{
		Counts:       counts,
		Leaders:      leaders,
		HasOneLeader: len(leaders) == 1,
		IsEmpty:      len(b.votes) == 0,
		voters:       voters,
	}
}
