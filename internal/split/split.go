package split

import "fmt"

// Range is a half-open index interval [Start, End) over a time series.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Split pairs a training range with the test range it must predict.
// Train always ends strictly before Test begins, so no split can look ahead.
type Split struct {
	Fold  int   `json:"fold"`
	Train Range `json:"train"`
	Test  Range `json:"test"`
}

// InsufficientDataError reports that a series is too short to produce the
// requested folds or rolling window.
type InsufficientDataError struct {
	Op   string // "expanding_cv" or "walk_forward"
	Need int    // minimum series length required
	Have int    // actual series length
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data: need at least %d observations, have %d", e.Op, e.Need, e.Have)
}

// ExpandingCV generates forward-chaining cross-validation folds over a series
// of length n. Each fold's test block is a contiguous slice of size
// n/(nSplits+1) taken from the end of the series, and its training range is
// every index before the block. Later folds train on strictly larger prefixes
// and test on strictly later, non-overlapping blocks.
//
// The first fold must retain at least two training observations (a scaler and
// a regressor cannot be fit on fewer); otherwise an InsufficientDataError is
// returned.
func ExpandingCV(n, nSplits int) ([]Split, error) {
	if nSplits < 1 {
		return nil, fmt.Errorf("expanding_cv: nSplits must be >= 1, got %d", nSplits)
	}

	testSize := n / (nSplits + 1)
	minTrain := n - nSplits*testSize
	if testSize < 1 || minTrain < 2 {
		// Smallest workable series: two training points plus one test point
		// per fold.
		return nil, &InsufficientDataError{Op: "expanding_cv", Need: nSplits + 2 + nSplits, Have: n}
	}

	splits := make([]Split, 0, nSplits)
	for k := 0; k < nSplits; k++ {
		testStart := n - (nSplits-k)*testSize
		splits = append(splits, Split{
			Fold:  k + 1,
			Train: Range{Start: 0, End: testStart},
			Test:  Range{Start: testStart, End: testStart + testSize},
		})
	}
	return splits, nil
}

// RollingWalkForward generates one-step-ahead splits over a series of length
// n. For each index i in [windowSize, n), the training range is the
// windowSize observations immediately before i and the test range is the
// single index i. The result has exactly n-windowSize splits in temporal
// order.
func RollingWalkForward(n, windowSize int) ([]Split, error) {
	if windowSize < 2 {
		return nil, fmt.Errorf("walk_forward: window size must be >= 2, got %d", windowSize)
	}
	if windowSize >= n {
		return nil, &InsufficientDataError{Op: "walk_forward", Need: windowSize + 1, Have: n}
	}

	splits := make([]Split, 0, n-windowSize)
	for i := windowSize; i < n; i++ {
		splits = append(splits, Split{
			Fold:  i - windowSize + 1,
			Train: Range{Start: i - windowSize, End: i},
			Test:  Range{Start: i, End: i + 1},
		})
	}
	return splits, nil
}
