package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/rocketlaunchr/dataframe-go"
	"github.com/san-kum/mlutils/internal/dataset"
	"github.com/san-kum/mlutils/internal/store"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func loadDataset(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	loader, err := newLoader()
	if err != nil {
		return err
	}
	data, err := loader.LoadData(ctx, args[0])
	if err != nil {
		return err
	}

	n, d := data.Dims()
	fmt.Printf("%s: %d samples, %d features (%s mode)\n", args[0], n, d, data.Mode)
	if len(data.TargetNames) > 0 {
		fmt.Printf("targets: %v\n", data.TargetNames)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tMEAN\tSTD\tMIN\tMAX")
	columns := append(append([]string(nil), data.FeatureNames...), dataset.TargetColumn)
	for _, name := range columns {
		vals, err := columnValues(data, name)
		if err != nil {
			return err
		}
		mean, std := stat.MeanStdDev(vals, nil)
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\n", name, mean, std, floats.Min(vals), floats.Max(vals))
	}
	return w.Flush()
}

func splitDataset(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	loader, err := newLoader()
	if err != nil {
		return err
	}
	split, err := loader.LoadTrainTest(ctx, args[0], cfg.Dataset.TestSize, ignoreType, cfg.Dataset.Seed)
	if err != nil {
		return err
	}

	if outPath == "" {
		return store.ExportSplit(os.Stdout, args[0], split)
	}
	if err := store.ExportSplitFile(outPath, args[0], split); err != nil {
		return err
	}
	train, _ := split.Train.X.Dims()
	test, _ := split.Test.X.Dims()
	fmt.Printf("wrote %s (train %d, test %d)\n", outPath, train, test)
	return nil
}

func plotColumn(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	loader, err := newLoader()
	if err != nil {
		return err
	}
	data, err := loader.LoadData(ctx, args[0])
	if err != nil {
		return err
	}
	vals, err := columnValues(data, feature)
	if err != nil {
		return err
	}

	graph := asciigraph.Plot(vals,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s: %s", args[0], feature)),
	)
	fmt.Println(graph)
	return nil
}

// columnValues returns a copy of the named column in either mode.
func columnValues(data *dataset.Data, name string) ([]float64, error) {
	if data.Mode == dataset.Table {
		i, err := data.Table.NameToColumn(name)
		if err != nil {
			return nil, fmt.Errorf("unknown column %q", name)
		}
		s, ok := data.Table.Series[i].(*dataframe.SeriesFloat64)
		if !ok {
			return nil, fmt.Errorf("column %q is not numeric", name)
		}
		return append([]float64(nil), s.Values...), nil
	}

	if name == dataset.TargetColumn {
		return mat.Col(nil, 0, data.Y), nil
	}
	for j, f := range data.FeatureNames {
		if f == name {
			return mat.Col(nil, j, data.X), nil
		}
	}
	return nil, fmt.Errorf("unknown column %q (available: %v)", name, data.FeatureNames)
}
