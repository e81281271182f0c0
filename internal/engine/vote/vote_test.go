package vote

import (
	"testing"

	"github.com/louisbranch/omerta/internal/errors"
)

func TestBallotAdd_DuplicateVoteRejected(t *testing.T) {
	b := New()
	if err := b.Add("v1", "c1"); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	err := b.Add("v1", "c2")
	if !errors.IsCode(err, errors.CodeDuplicateVote) {
		t.Fatalf("second vote error = %v, want DUPLICATE_VOTE", err)
	}
	res := b.GetResult()
	if res.Counts["c1"] != 1 || res.Counts["c2"] != 0 {
		t.Fatalf("counts after duplicate = %v, original vote must stand", res.Counts)
	}
}

func TestBallotGetResult_Empty(t *testing.T) {
	res := New().GetResult()
	if !res.IsEmpty {
		t.Fatal("empty ballot IsEmpty = false")
	}
	if res.HasOneLeader {
		t.Fatal("empty ballot HasOneLeader = true")
	}
	if got := res.Leader(); got != "" {
		t.Fatalf("empty ballot leader = %q", got)
	}
}

func TestBallotGetResult_TieYieldsNoLeader(t *testing.T) {
	b := New()
	for voter, candidate := range map[string]string{
		"v1": "c1",
		"v2": "c2",
	} {
		if err := b.Add(voter, candidate); err != nil {
			t.Fatalf("add %s: %v", voter, err)
		}
	}
	res := b.GetResult()
	if res.HasOneLeader {
		t.Fatal("tied ballot HasOneLeader = true")
	}
	if len(res.Leaders) != 2 {
		t.Fatalf("tied ballot leaders = %v, want both candidates", res.Leaders)
	}
}

func TestBallotGetResult_StrictPlurality(t *testing.T) {
	b := New()
	votes := []struct{ voter, candidate string }{
		{"v1", "c1"},
		{"v2", "c1"},
		{"v3", "c2"},
	}
	for _, v := range votes {
		if err := b.Add(v.voter, v.candidate); err != nil {
			t.Fatalf("add %s: %v", v.voter, err)
		}
	}
	res := b.GetResult()
	if !res.HasOneLeader {
		t.Fatal("strict plurality not detected")
	}
	if res.Leader() != "c1" {
		t.Fatalf("leader = %s, want c1", res.Leader())
	}
	if !res.VotedForLeader("v1") || !res.VotedForLeader("v2") {
		t.Fatal("leader backers not recognized")
	}
	if res.VotedForLeader("v3") {
		t.Fatal("v3 voted against the leader but counts as a backer")
	}
}

func TestBallotGetResult_DoesNotMutate(t *testing.T) {
	b := New()
	if err := b.Add("v1", "c1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	first := b.GetResult()
	second := b.GetResult()
	if first.Counts["c1"] != second.Counts["c1"] {
		t.Fatalf("repeated GetResult differs: %v vs %v", first.Counts, second.Counts)
	}
}

func TestBallotRemove(t *testing.T) {
	b := New()
	if err := b.Add("v1", "c1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !b.Remove("v1") {
		t.Fatal("remove existing vote reported false")
	}
	if b.Remove("v1") {
		t.Fatal("remove absent vote reported true")
	}
	if !b.GetResult().IsEmpty {
		t.Fatal("ballot not empty after removal")
	}
}

func TestBoolBallot_TieYieldsNilMajority(t *testing.T) {
	b := NewBool()
	if err := b.Add("v1", true); err != nil {
		t.Fatalf("add yes: %v", err)
	}
	if err := b.Add("v2", false); err != nil {
		t.Fatalf("add no: %v", err)
	}
	res := b.GetResult()
	if res.Majority != nil {
		t.Fatalf("tied bool ballot majority = %v, want nil", *res.Majority)
	}
	if res.YesCount != 1 || res.NoCount != 1 {
		t.Fatalf("counts = %d yes / %d no", res.YesCount, res.NoCount)
	}
}

func TestBoolBallot_EmptyYieldsNilMajority(t *testing.T) {
	res := NewBool().GetResult()
	if res.Majority != nil {
		t.Fatal("empty bool ballot has a majority")
	}
	if !res.IsEmpty {
		t.Fatal("empty bool ballot IsEmpty = false")
	}
}

func TestBoolBallot_Majority(t *testing.T) {
	b := NewBool()
	for voter, v := range map[string]bool{"v1": true, "v2": true, "v3": false} {
		if err := b.Add(voter, v); err != nil {
			t.Fatalf("add %s: %v", voter, err)
		}
	}
	res := b.GetResult()
	if res.Majority == nil || !*res.Majority {
		t.Fatal("yes majority not detected")
	}
	if err := b.Add("v1", false); !errors.IsCode(err, errors.CodeDuplicateVote) {
		t.Fatalf("re-vote error = %v, want DUPLICATE_VOTE", err)
	}
}
