package split

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandingCVFoldShape(t *testing.T) {
	splits, err := ExpandingCV(84, 5)
	require.NoError(t, err)
	require.Len(t, splits, 5)

	testSize := 84 / 6
	for i, sp := range splits {
		assert.Equal(t, i+1, sp.Fold)
		assert.Equal(t, 0, sp.Train.Start, "training always starts at the series origin")
		assert.Equal(t, testSize, sp.Test.Len())
		assert.Equal(t, sp.Train.End, sp.Test.Start, "no gap between train and test")
	}
	assert.Equal(t, 84, splits[len(splits)-1].Test.End, "last fold tests through the end of the series")
}

func TestExpandingCVNoLookahead(t *testing.T) {
	splits, err := ExpandingCV(60, 4)
	require.NoError(t, err)

	for _, sp := range splits {
		assert.Less(t, sp.Train.End-1, sp.Test.Start,
			"fold %d: training indices must all precede test indices", sp.Fold)
	}
}

func TestExpandingCVMonotonic(t *testing.T) {
	splits, err := ExpandingCV(84, 5)
	require.NoError(t, err)

	for i := 1; i < len(splits); i++ {
		prev, cur := splits[i-1], splits[i]
		assert.Greater(t, cur.Train.Len(), prev.Train.Len(), "training sets grow strictly")
		assert.Equal(t, prev.Test.End, cur.Test.Start, "test blocks are adjacent and non-overlapping")
	}
}

func TestExpandingCVTestBlocksCoverDisjointIndices(t *testing.T) {
	splits, err := ExpandingCV(84, 5)
	require.NoError(t, err)

	seen := map[int]bool{}
	for _, sp := range splits {
		for i := sp.Test.Start; i < sp.Test.End; i++ {
			require.False(t, seen[i], "index %d appears in more than one test block", i)
			seen[i] = true
		}
	}
}

func TestExpandingCVInsufficientData(t *testing.T) {
	_, err := ExpandingCV(6, 5)
	require.Error(t, err)

	var insufficient *InsufficientDataError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "expanding_cv", insufficient.Op)
	assert.Equal(t, 6, insufficient.Have)
}

func TestExpandingCVRejectsBadSplitCount(t *testing.T) {
	_, err := ExpandingCV(84, 0)
	assert.Error(t, err)
}

func TestRollingWalkForwardShape(t *testing.T) {
	n, window := 84, 24
	splits, err := RollingWalkForward(n, window)
	require.NoError(t, err)
	require.Len(t, splits, n-window)

	for i, sp := range splits {
		assert.Equal(t, i+1, sp.Fold)
		assert.Equal(t, window, sp.Train.Len(), "every step trains on exactly the window")
		assert.Equal(t, 1, sp.Test.Len(), "one-step-ahead forecast")
		assert.Equal(t, sp.Train.End, sp.Test.Start)
	}
	assert.Equal(t, n, splits[len(splits)-1].Test.End)
}

func TestRollingWalkForwardTemporalOrder(t *testing.T) {
	splits, err := RollingWalkForward(40, 12)
	require.NoError(t, err)

	for i := 1; i < len(splits); i++ {
		assert.Equal(t, splits[i-1].Test.Start+1, splits[i].Test.Start)
	}
}

func TestRollingWalkForwardWindowTooLarge(t *testing.T) {
	_, err := RollingWalkForward(24, 24)
	require.Error(t, err)

	var insufficient *InsufficientDataError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "walk_forward", insufficient.Op)
	assert.Equal(t, 25, insufficient.Need)
}

func TestRollingWalkForwardRejectsTinyWindow(t *testing.T) {
	_, err := RollingWalkForward(84, 1)
	assert.Error(t, err)
}

func TestRangeLen(t *testing.T) {
	assert.Equal(t, 10, Range{Start: 5, End: 15}.Len())
	assert.Equal(t, 0, Range{Start: 7, End: 7}.Len())
}
