// Package dataset loads the classic scikit-learn toy datasets either as a
// dataframe or as gonum matrices, optionally split into train and test sets.
package dataset

import (
	"fmt"
	"strings"

	"github.com/rocketlaunchr/dataframe-go"
	"gonum.org/v1/gonum/mat"
)

type Mode int

const (
	Array Mode = iota
	Table
)

func (m Mode) String() string {
	switch m {
	case Array:
		return "array"
	case Table:
		return "table"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts numpy/array and pandas/table.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "numpy", "array":
		return Array, nil
	case "pandas", "table":
		return Table, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// TargetColumn names the label column in table mode.
const TargetColumn = "target"

// Data is the result of a load. Table is set in table mode; X and Y in
// array mode.
type Data struct {
	Name         string
	Mode         Mode
	FeatureNames []string
	TargetNames  []string

	Table *dataframe.DataFrame

	X *mat.Dense
	Y *mat.VecDense
}

// Dims returns the sample and feature counts.
func (d *Data) Dims() (samples, features int) {
	if d.Mode == Table {
		return d.Table.NRows(), len(d.Table.Series) - 1
	}
	return d.X.Dims()
}

// Pair is one partition. Y is an N x 1 column.
type Pair struct {
	X *mat.Dense
	Y *mat.Dense
}

type Split struct {
	Train Pair
	Test  Pair
}

// raw is the parsed form of a source before conversion to either mode.
type raw struct {
	features    []string
	targetNames []string
	x           [][]float64
	y           []float64
}

func (r *raw) arrays() (*mat.Dense, *mat.VecDense) {
	n, d := len(r.x), len(r.features)
	flat := make([]float64, 0, n*d)
	for _, row := range r.x {
		flat = append(flat, row...)
	}
	y := make([]float64, n)
	copy(y, r.y)
	return mat.NewDense(n, d, flat), mat.NewVecDense(n, y)
}

func (r *raw) table() *dataframe.DataFrame {
	series := make([]dataframe.Series, 0, len(r.features)+1)
	for j, name := range r.features {
		vals := make([]interface{}, len(r.x))
		for i, row := range r.x {
			vals[i] = row[j]
		}
		series = append(series, dataframe.NewSeriesFloat64(name, nil, vals...))
	}
	target := make([]interface{}, len(r.y))
	for i, v := range r.y {
		target[i] = v
	}
	series = append(series, dataframe.NewSeriesFloat64(TargetColumn, nil, target...))
	return dataframe.NewDataFrame(series...)
}

// tableArrays extracts every non-target column as X and the target column
// as Y.
func tableArrays(df *dataframe.DataFrame) (*mat.Dense, *mat.VecDense, error) {
	n := df.NRows()
	var cols [][]float64
	var y []float64
	for _, s := range df.Series {
		fs, ok := s.(*dataframe.SeriesFloat64)
		if !ok {
			return nil, nil, fmt.Errorf("column %s: not float64", s.Name())
		}
		if fs.Name() == TargetColumn {
			y = fs.Values
			continue
		}
		cols = append(cols, fs.Values)
	}
	if y == nil {
		return nil, nil, fmt.Errorf("table has no %s column", TargetColumn)
	}
	if n == 0 || len(cols) == 0 {
		return nil, nil, fmt.Errorf("table is empty")
	}

	x := mat.NewDense(n, len(cols), nil)
	for j, col := range cols {
		x.SetCol(j, col)
	}
	return x, mat.NewVecDense(n, append([]float64(nil), y...)), nil
}
