// Package store writes train/test splits as JSON.
package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/mlutils/internal/dataset"
)

type PartitionData struct {
	Samples int         `json:"samples"`
	X       [][]float64 `json:"x"`
	Y       []float64   `json:"y"`
}

type ExportData struct {
	Dataset  string        `json:"dataset"`
	Features int           `json:"features"`
	Train    PartitionData `json:"train"`
	Test     PartitionData `json:"test"`
}

func partition(p dataset.Pair) PartitionData {
	n, _ := p.X.Dims()
	out := PartitionData{
		Samples: n,
		X:       make([][]float64, n),
		Y:       mat.Col(nil, 0, p.Y),
	}
	for i := range out.X {
		out.X[i] = mat.Row(nil, i, p.X)
	}
	return out
}

func ExportSplit(w io.Writer, name string, s *dataset.Split) error {
	_, d := s.Train.X.Dims()
	data := ExportData{
		Dataset:  name,
		Features: d,
		Train:    partition(s.Train),
		Test:     partition(s.Test),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportSplitFile(path, name string, s *dataset.Split) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			err = multierror.Append(err, cerr).ErrorOrNil()
		}
	}()
	return ExportSplit(file, name, s)
}
