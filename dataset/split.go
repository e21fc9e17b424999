package dataset

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Split shuffles the row indexes 0..n-1 with the given seed and divides them
// into train and test sets, with testFrac of the rows (at least one) held out.
func Split(n int, testFrac float64, seed int64) (train, test []int, err error) {
	if n < 2 {
		return nil, nil, errors.Errorf("need at least 2 rows to split (%d)", n)
	}
	if testFrac <= 0 || testFrac >= 1 {
		return nil, nil, errors.Errorf("testFrac must be in (0, 1) (%v)", testFrac)
	}

	nTest := int(float64(n) * testFrac)
	if nTest < 1 {
		nTest = 1
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return perm[nTest:], perm[:nTest], nil
}

// KFold shuffles the row indexes 0..n-1 with the given seed and divides them
// into k disjoint folds covering every row. Fold sizes differ by at most one.
func KFold(n, k int, seed int64) ([][]int, error) {
	if k < 2 {
		return nil, errors.Errorf("need at least 2 folds (%d)", k)
	}
	if k > n {
		return nil, errors.Errorf("cannot make %d folds from %d rows", k, n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)

	folds := make([][]int, k)
	for i, r := range perm {
		folds[i%k] = append(folds[i%k], r)
	}
	return folds, nil
}
