package dataset

import (
	"fmt"
	"sort"
	"strconv"
)

// DefaultBaseURL serves the data files bundled with scikit-learn 1.1.3.
const DefaultBaseURL = "https://raw.githubusercontent.com/scikit-learn/scikit-learn/1.1.3/sklearn/datasets/data"

// Source describes the files a dataset is built from and how to parse them.
type Source struct {
	Name  string
	Files []string
	parse parser
}

type Registry struct {
	sources map[string]Source
}

func NewRegistry() *Registry {
	r := &Registry{sources: make(map[string]Source)}

	r.add("iris", headerCSV("iris.csv", []string{
		"sepal length (cm)", "sepal width (cm)", "petal length (cm)", "petal width (cm)",
	}), "iris.csv")
	r.add("breast_cancer", headerCSV("breast_cancer.csv", breastCancerFeatures()), "breast_cancer.csv")
	r.add("boston", namedCSV("boston_house_prices.csv"), "boston_house_prices.csv")
	r.add("digits", plainCSV("digits.csv.gz", digitsFeatures(), digitsTargets()), "digits.csv.gz")
	r.add("diabetes", scaledFields("diabetes_data_raw.csv.gz", "diabetes_target.csv.gz", []string{
		"age", "sex", "bmi", "bp", "s1", "s2", "s3", "s4", "s5", "s6",
	}), "diabetes_data_raw.csv.gz", "diabetes_target.csv.gz")

	return r
}

func (r *Registry) add(name string, p parser, files ...string) {
	r.sources[name] = Source{Name: name, Files: files, parse: p}
}

func (r *Registry) Get(name string) (Source, error) {
	src, ok := r.sources[name]
	if !ok {
		return Source{}, fmt.Errorf("%w: %s", ErrUnknownDataset, name)
	}
	return src, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Names lists the datasets LoadData accepts.
func Names() []string { return defaultRegistry.Names() }

func breastCancerFeatures() []string {
	measures := []string{
		"radius", "texture", "perimeter", "area", "smoothness",
		"compactness", "concavity", "concave points", "symmetry", "fractal dimension",
	}
	names := make([]string, 0, 3*len(measures))
	for _, m := range measures {
		names = append(names, "mean "+m)
	}
	for _, m := range measures {
		names = append(names, m+" error")
	}
	for _, m := range measures {
		names = append(names, "worst "+m)
	}
	return names
}

func digitsFeatures() []string {
	names := make([]string, 0, 64)
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			names = append(names, fmt.Sprintf("pixel_%d_%d", r, c))
		}
	}
	return names
}

func digitsTargets() []string {
	names := make([]string, 10)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	return names
}
