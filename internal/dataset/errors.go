package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMode     = errors.New("dataset: unknown mode")
	ErrUnknownDataset  = errors.New("dataset: unknown dataset")
	ErrTypeConstraint  = errors.New("dataset: train/test split needs array mode, or ignoreType")
	ErrInvalidTestSize = errors.New("dataset: test size must leave both partitions non-empty")
)

// ParseError locates a malformed line in a source file.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
