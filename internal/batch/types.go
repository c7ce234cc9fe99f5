package batch

import (
	"errors"
	"fmt"
	"strconv"
)

// Operation selects which loop a run executes
type Operation int

const (
	Create Operation = iota
	Delete
)

func (o Operation) String() string {
	switch o {
	case Create:
		return "create"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

var (
	ErrInvalidCount     = errors.New("count must be at least 1")
	ErrEmptyPrefix      = errors.New("prefix must not be empty")
	ErrUnknownOperation = errors.New("unknown operation")
)

// Request describes one run
type Request struct {
	Operation Operation
	Count     uint64
	Prefix    string
}

// Validate rejects requests that must not reach the store
func (r Request) Validate() error {
	if r.Operation != Create && r.Operation != Delete {
		return fmt.Errorf("%w: %s", ErrUnknownOperation, r.Operation)
	}
	if r.Count == 0 {
		return ErrInvalidCount
	}
	if r.Prefix == "" {
		return ErrEmptyPrefix
	}
	return nil
}

// ItemName returns the secret name for index i (1-based)
func ItemName(prefix string, i uint64) string {
	return prefix + "-" + strconv.FormatUint(i, 10)
}

// Payload returns the generated value written for index i
func Payload(i uint64) string {
	return "secret-value-" + strconv.FormatUint(i, 10)
}

// Names returns every item name of a run in processing order
func Names(prefix string, count uint64) []string {
	names := make([]string, 0, count)
	for i := uint64(1); i <= count; i++ {
		names = append(names, ItemName(prefix, i))
	}
	return names
}

// OutcomeKind classifies the result of one remote call
type OutcomeKind int

const (
	Success OutcomeKind = iota
	BenignSkip
	Fatal
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case BenignSkip:
		return "benign-skip"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is produced once per item and consumed by the loop driver
type Outcome struct {
	Kind OutcomeKind
	Name string
	// Err is the cause for BenignSkip and Fatal outcomes.
	Err error
}

// Summary is the result of a completed run
type Summary struct {
	Total        uint64
	BenignErrors uint64
}
