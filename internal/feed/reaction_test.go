package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleReactionNewPair(t *testing.T) {
	tally := ToggleReaction(nil, ":smile:", 7)

	assert.Equal(t, []Reaction{{Value: ":smile:", MemberIDs: []uint64{7}}}, tally)

	// 再次切换整项删除
	tally = ToggleReaction(tally, ":smile:", 7)
	assert.Empty(t, tally)
}

func TestToggleReactionSelfInverse(t *testing.T) {
	orig := []Reaction{
		{Value: ":smile:", MemberIDs: []uint64{1, 2}},
		{Value: ":clap:", MemberIDs: []uint64{3}},
	}

	tally := make([]Reaction, len(orig))
	for i, r := range orig {
		tally[i] = Reaction{Value: r.Value, MemberIDs: append([]uint64{}, r.MemberIDs...)}
	}

	tally = ToggleReaction(tally, ":clap:", 2)
	tally = ToggleReaction(tally, ":clap:", 2)

	assert.Equal(t, orig, tally)
}

func TestToggleReactionRemoveKeepsPosition(t *testing.T) {
	tally := []Reaction{
		{Value: ":smile:", MemberIDs: []uint64{1, 2, 3}},
		{Value: ":clap:", MemberIDs: []uint64{4}},
	}

	tally = ToggleReaction(tally, ":smile:", 2)

	assert.Equal(t, []Reaction{
		{Value: ":smile:", MemberIDs: []uint64{1, 3}},
		{Value: ":clap:", MemberIDs: []uint64{4}},
	}, tally)
}

// 两名成员对同一表情先后切换，结果与调用顺序无关
func TestToggleReactionTwoActors(t *testing.T) {
	want := []Reaction{{Value: ":smile:", MemberIDs: []uint64{1, 2}}}
	wantReversed := []Reaction{{Value: ":smile:", MemberIDs: []uint64{2, 1}}}

	ab := ToggleReaction(ToggleReaction(nil, ":smile:", 1), ":smile:", 2)
	ba := ToggleReaction(ToggleReaction(nil, ":smile:", 2), ":smile:", 1)

	assert.Equal(t, want, ab)
	assert.Equal(t, wantReversed, ba)
	assert.ElementsMatch(t, ab[0].MemberIDs, ba[0].MemberIDs)
}
