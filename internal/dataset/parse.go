package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

type parser func(files map[string][]byte) (*raw, error)

// parseFloats converts fields, reporting the position of the first failure.
func parseFloats(file string, line int, fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, &ParseError{File: file, Line: line, Err: err}
		}
		out[i] = v
	}
	return out, nil
}

func readCSV(file string, data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return records, nil
}

// splitRows turns records into features and a trailing target column.
func splitRows(file string, records [][]string, firstLine, width int) (*raw, error) {
	r := &raw{}
	for i, rec := range records {
		line := firstLine + i
		if len(rec) != width+1 {
			return nil, &ParseError{File: file, Line: line, Err: fmt.Errorf("expected %d fields, got %d", width+1, len(rec))}
		}
		vals, err := parseFloats(file, line, rec)
		if err != nil {
			return nil, err
		}
		r.x = append(r.x, vals[:width])
		r.y = append(r.y, vals[width])
	}
	if len(r.x) == 0 {
		return nil, &ParseError{File: file, Line: firstLine, Err: fmt.Errorf("no samples")}
	}
	return r, nil
}

// parseSizeHeader reads a leading "n_samples,n_features[,names...]" line.
func parseSizeHeader(file string, rec []string) (n, d int, rest []string, err error) {
	if len(rec) < 2 {
		return 0, 0, nil, &ParseError{File: file, Line: 1, Err: fmt.Errorf("short header")}
	}
	if n, err = strconv.Atoi(strings.TrimSpace(rec[0])); err != nil {
		return 0, 0, nil, &ParseError{File: file, Line: 1, Err: err}
	}
	if d, err = strconv.Atoi(strings.TrimSpace(rec[1])); err != nil {
		return 0, 0, nil, &ParseError{File: file, Line: 1, Err: err}
	}
	for _, s := range rec[2:] {
		rest = append(rest, strings.TrimSpace(s))
	}
	return n, d, rest, nil
}

// headerCSV parses files whose first line is "n,d,target names...".
func headerCSV(file string, features []string) parser {
	return func(files map[string][]byte) (*raw, error) {
		records, err := readCSV(file, files[file])
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, &ParseError{File: file, Line: 1, Err: io.ErrUnexpectedEOF}
		}
		n, d, targets, err := parseSizeHeader(file, records[0])
		if err != nil {
			return nil, err
		}
		if d != len(features) {
			return nil, &ParseError{File: file, Line: 1, Err: fmt.Errorf("expected %d features, header says %d", len(features), d)}
		}
		r, err := splitRows(file, records[1:], 2, d)
		if err != nil {
			return nil, err
		}
		if len(r.x) != n {
			return nil, &ParseError{File: file, Line: 1, Err: fmt.Errorf("header says %d samples, found %d", n, len(r.x))}
		}
		r.features = features
		r.targetNames = targets
		return r, nil
	}
}

// namedCSV parses files with a size line followed by a column-name line
// whose last column is the target.
func namedCSV(file string) parser {
	return func(files map[string][]byte) (*raw, error) {
		records, err := readCSV(file, files[file])
		if err != nil {
			return nil, err
		}
		if len(records) < 2 {
			return nil, &ParseError{File: file, Line: 2, Err: io.ErrUnexpectedEOF}
		}
		n, d, _, err := parseSizeHeader(file, records[0])
		if err != nil {
			return nil, err
		}
		names := records[1]
		if len(names) != d+1 {
			return nil, &ParseError{File: file, Line: 2, Err: fmt.Errorf("expected %d column names, got %d", d+1, len(names))}
		}
		r, err := splitRows(file, records[2:], 3, d)
		if err != nil {
			return nil, err
		}
		if len(r.x) != n {
			return nil, &ParseError{File: file, Line: 1, Err: fmt.Errorf("header says %d samples, found %d", n, len(r.x))}
		}
		for _, name := range names[:d] {
			r.features = append(r.features, strings.TrimSpace(name))
		}
		return r, nil
	}
}

// plainCSV parses headerless rows of features plus target.
func plainCSV(file string, features, targets []string) parser {
	return func(files map[string][]byte) (*raw, error) {
		records, err := readCSV(file, files[file])
		if err != nil {
			return nil, err
		}
		r, err := splitRows(file, records, 1, len(features))
		if err != nil {
			return nil, err
		}
		r.features = features
		r.targetNames = targets
		return r, nil
	}
}

func readFields(file string, data []byte) ([][]float64, error) {
	var rows [][]float64
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		vals, err := parseFloats(file, line, fields)
		if err != nil {
			return nil, err
		}
		rows = append(rows, vals)
	}
	return rows, sc.Err()
}

// scaledFields parses whitespace separated feature and target files. The
// features are centered, divided by their standard deviation and then by
// the square root of the sample count.
func scaledFields(dataFile, targetFile string, features []string) parser {
	return func(files map[string][]byte) (*raw, error) {
		x, err := readFields(dataFile, files[dataFile])
		if err != nil {
			return nil, err
		}
		ys, err := readFields(targetFile, files[targetFile])
		if err != nil {
			return nil, err
		}
		if len(x) == 0 {
			return nil, &ParseError{File: dataFile, Line: 1, Err: fmt.Errorf("no samples")}
		}
		if len(x) != len(ys) {
			return nil, fmt.Errorf("%s has %d rows, %s has %d", dataFile, len(x), targetFile, len(ys))
		}
		for i, row := range x {
			if len(row) != len(features) {
				return nil, &ParseError{File: dataFile, Line: i + 1, Err: fmt.Errorf("expected %d fields, got %d", len(features), len(row))}
			}
		}

		y := make([]float64, len(ys))
		for i, row := range ys {
			y[i] = row[0]
		}
		scale(x)
		return &raw{features: features, x: x, y: y}, nil
	}
}

func scale(x [][]float64) {
	root := math.Sqrt(float64(len(x)))
	col := make([]float64, len(x))
	for j := range x[0] {
		for i, row := range x {
			col[i] = row[j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		for _, row := range x {
			row[j] = (row[j] - mean) / std / root
		}
	}
}
