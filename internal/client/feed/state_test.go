package feed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartFetch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		phase       Phase
		wantStarted bool
		wantPhase   Phase
	}{
		{Idle, true, Fetching},
		{Fetching, false, Fetching},
		{Exhausted, false, Exhausted},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			t.Parallel()
			s := State[int]{Limit: 5, Phase: tt.phase, Offset: 10}

			next, started := StartFetch(s)

			assert.Equal(t, tt.wantStarted, started)
			assert.Equal(t, tt.wantPhase, next.Phase)
			assert.Equal(t, 10, next.Offset)
		})
	}
}

func TestApplyPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rows       []int
		wantOffset int
		wantPhase  Phase
		wantItems  []int
	}{
		{"full page advances", []int{3, 4, 5}, 3, Idle, []int{1, 2, 3, 4, 5}},
		{"short page exhausts", []int{3}, 0, Exhausted, []int{1, 2, 3}},
		{"empty page exhausts", nil, 0, Exhausted, []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := State[int]{Items: []int{1, 2}, Limit: 3, Phase: Fetching, LastErr: errors.New("earlier")}

			next := ApplyPage(s, tt.rows)

			assert.Equal(t, tt.wantItems, next.Items)
			assert.Equal(t, tt.wantOffset, next.Offset)
			assert.Equal(t, tt.wantPhase, next.Phase)
			assert.NoError(t, next.LastErr)
		})
	}
}

func TestApplyPage_KeepsServerOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	s := State[string]{Items: []string{"b", "a"}, Limit: 2, Phase: Fetching}

	next := ApplyPage(s, []string{"a", "c"})

	assert.Equal(t, []string{"b", "a", "a", "c"}, next.Items)
}

func TestApplyPage_DoesNotAliasPreviousState(t *testing.T) {
	t.Parallel()

	items := make([]int, 2, 10)
	items[0], items[1] = 1, 2
	prev := State[int]{Items: items, Limit: 2, Phase: Fetching}

	a := ApplyPage(prev, []int{3, 4})
	b := ApplyPage(prev, []int{9, 9})

	assert.Equal(t, []int{1, 2, 3, 4}, a.Items)
	assert.Equal(t, []int{1, 2, 9, 9}, b.Items)
	assert.Equal(t, []int{1, 2}, prev.Items)
}

func TestApplyPage_IgnoredOutsideFetching(t *testing.T) {
	t.Parallel()

	s := State[int]{Items: []int{1}, Limit: 1, Phase: Exhausted}

	assert.Equal(t, s, ApplyPage(s, []int{2}))
}

func TestApplyFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	s := State[int]{Items: []int{1, 2}, Offset: 2, Limit: 2, Phase: Fetching}

	next := ApplyFailure(s, boom)

	assert.Equal(t, Idle, next.Phase, "a failure never exhausts the feed")
	assert.Equal(t, 2, next.Offset)
	assert.Equal(t, []int{1, 2}, next.Items)
	require.ErrorIs(t, next.LastErr, boom)

	assert.Equal(t, Exhausted, ApplyFailure(State[int]{Phase: Exhausted}, boom).Phase)
}
