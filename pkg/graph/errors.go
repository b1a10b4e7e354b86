package graph

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmptyLabel is matched by LabelErrors for blank labels.
	ErrEmptyLabel = errors.New("label cannot be empty")
	// ErrDuplicateLabel is matched by LabelErrors for labels already in use.
	ErrDuplicateLabel = errors.New("label already exists")
	// ErrUnknownNode is returned when an edge endpoint does not exist.
	ErrUnknownNode = errors.New("unknown node")
	// ErrNegativeWeight is returned by ParseWeight for weights below zero.
	ErrNegativeWeight = errors.New("weight must be non-negative")
	// ErrInvalidWeight is returned by ParseWeight for non-numeric input.
	ErrInvalidWeight = errors.New("weight must be a number")
)

// LabelKind discriminates label validation failures.
type LabelKind int

const (
	EmptyLabel LabelKind = iota + 1
	DuplicateLabel
)

// LabelError is the validation result of a rejected AddNode call.
type LabelError struct {
	Kind  LabelKind
	Label string
}

func (e *LabelError) Error() string {
	switch e.Kind {
	case EmptyLabel:
		return "Label cannot be empty"
	case DuplicateLabel:
		return fmt.Sprintf("Label %q already exists", e.Label)
	}
	return "invalid label"
}

// Is lets errors.Is match the package sentinels.
func (e *LabelError) Is(target error) bool {
	switch target {
	case ErrEmptyLabel:
		return e.Kind == EmptyLabel
	case ErrDuplicateLabel:
		return e.Kind == DuplicateLabel
	}
	return false
}

// ParseWeight converts user input into an edge weight. Blank input means
// "no weight" and yields nil.
func ParseWeight(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWeight, s)
	}
	if w < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeWeight, s)
	}
	return &w, nil
}
