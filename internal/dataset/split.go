package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"
)

// RandomSeed asks TrainTestSplit for a time-derived seed.
const RandomSeed int64 = -1

// TrainTestSplit shuffles the rows of x and y and puts the first
// ceil(testSize*n) of the permutation in the test partition.
func TrainTestSplit(x *mat.Dense, y *mat.VecDense, testSize float64, seed int64) (*Split, error) {
	n, _ := x.Dims()
	if y.Len() != n {
		return nil, fmt.Errorf("x has %d rows, y has %d", n, y.Len())
	}
	nTest, err := testCount(n, testSize)
	if err != nil {
		return nil, err
	}

	if seed == RandomSeed {
		seed = time.Now().UnixNano()
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	return &Split{
		Train: takeRows(x, y, perm[nTest:]),
		Test:  takeRows(x, y, perm[:nTest]),
	}, nil
}

func testCount(n int, testSize float64) (int, error) {
	if !(testSize > 0 && testSize < 1) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTestSize, testSize)
	}
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest < 1 || n-nTest < 1 {
		return 0, fmt.Errorf("%w: %v of %d samples", ErrInvalidTestSize, testSize, n)
	}
	return nTest, nil
}

func takeRows(x *mat.Dense, y *mat.VecDense, idx []int) Pair {
	_, d := x.Dims()
	px := mat.NewDense(len(idx), d, nil)
	py := mat.NewDense(len(idx), 1, nil)
	for i, r := range idx {
		px.SetRow(i, x.RawRowView(r))
		py.Set(i, 0, y.AtVec(r))
	}
	return Pair{X: px, Y: py}
}
