package vote

import "github.com/louisbranch/omerta/internal/errors"

// BoolBallot tallies yes/no verdicts, one per voter.
type BoolBallot struct {
	votes map[string]bool
}

// NewBool creates an empty boolean ballot.
func NewBool() *BoolBallot {
	return &BoolBallot{votes: make(map[string]bool)}
}

// Add records a voter's verdict. It fails with DuplicateVote if the voter
// already has a recorded verdict in this ballot.
func (b *BoolBallot) Add(voter string, value bool) error {
	if _, ok := b.votes[voter]; ok {
		return errors.New(errors.CodeDuplicateVote, "voter already has a recorded verdict")
	}
	b.votes[voter] = value
	return nil
}

// Remove withdraws a voter's verdict, if any.
func (b *BoolBallot) Remove(voter string) bool {
	if _, ok := b.votes[voter]; !ok {
		return false
	}
	delete(b.votes, voter)
	return true
}

// Voted reports whether the voter has a recorded verdict.
func (b *BoolBallot) Voted(voter string) bool {
	_, ok := b.votes[voter]
	return ok
}

// BoolResult is an immutable snapshot of a boolean ballot.
type BoolResult struct {
	YesCount int
	NoCount  int
	// Majority is nil when the ballot is empty or tied.
	Majority *bool
	IsEmpty  bool
}

// GetResult computes a snapshot without mutating the ballot.
func (b *BoolBallot) GetResult() BoolResult {
	res := BoolResult{IsEmpty: len(b.votes) == 0}
	for _, v := range b.votes {
		if v {
			res.YesCount++
		} else {
			res.NoCount++
		}
	}
	switch {
	case res.YesCount > res.NoCount:
		yes := true
		res.Majority = &yes
	case res.NoCount > res.YesCount:
		no := false
		res.Majority = &no
	}
	return res
}
