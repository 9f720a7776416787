package config

import "sort"

// Preset picks two columns of a dataset to animate. An empty X uses the
// sample index.
type Preset struct {
	Dataset      string
	X, Y         string
	Kind         string
	IntegerTicks bool
}

var Presets = map[string]map[string]*Preset{
	"iris": {
		"petals": {Dataset: "iris", X: "petal length (cm)", Y: "petal width (cm)", Kind: "scatter"},
		"sepals": {Dataset: "iris", X: "sepal length (cm)", Y: "sepal width (cm)", Kind: "scatter"},
	},
	"boston": {
		"rooms": {Dataset: "boston", X: "RM", Y: "target", Kind: "scatter"},
		"lstat": {Dataset: "boston", X: "LSTAT", Y: "target", Kind: "scatter"},
		"crime": {Dataset: "boston", Y: "CRIM", Kind: "line", IntegerTicks: true},
	},
	"diabetes": {
		"progression": {Dataset: "diabetes", Y: "target", Kind: "line", IntegerTicks: true},
	},
	"breast_cancer": {
		"radius": {Dataset: "breast_cancer", X: "mean radius", Y: "mean texture", Kind: "scatter"},
	},
	"digits": {
		"labels": {Dataset: "digits", Y: "target", Kind: "line", IntegerTicks: true},
	},
}

func GetPreset(dataset, preset string) *Preset {
	datasetPresets, ok := Presets[dataset]
	if !ok {
		return nil
	}
	p, ok := datasetPresets[preset]
	if !ok {
		return nil
	}
	return p
}

func ListPresets(dataset string) []string {
	datasetPresets, ok := Presets[dataset]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(datasetPresets))
	for name := range datasetPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
