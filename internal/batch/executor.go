package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stuttgart-things/secret-populator/internal/secretstore"
)

// Reporter receives progress updates from a run
type Reporter interface {
	// SetMessage replaces the status message shown next to the progress.
	SetMessage(msg string)
	// Println prints a line that stays visible after the run.
	Println(msg string)
	// Inc advances the progress by one item.
	Inc()
	// Finish is called once when the run completes or aborts.
	Finish()
}

// Executor runs create and delete loops against a store, one item at a time
type Executor struct {
	Store    secretstore.Store
	Reporter Reporter
	Log      logrus.FieldLogger
}

// New creates an Executor. A nil reporter or logger discards output.
func New(store secretstore.Store, reporter Reporter, log logrus.FieldLogger) *Executor {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Executor{Store: store, Reporter: reporter, Log: log}
}

// Run validates req and dispatches to RunCreate or RunDelete
func (e *Executor) Run(ctx context.Context, req Request) (Summary, error) {
	if err := req.Validate(); err != nil {
		return Summary{}, err
	}
	if req.Operation == Delete {
		return e.RunDelete(ctx, req.Count, req.Prefix)
	}
	return e.RunCreate(ctx, req.Count, req.Prefix)
}

// RunCreate creates prefix-1..prefix-count in ascending order.
// An existing secret is skipped and counted; any other error aborts the run.
func (e *Executor) RunCreate(ctx context.Context, count uint64, prefix string) (Summary, error) {
	if err := (Request{Operation: Create, Count: count, Prefix: prefix}).Validate(); err != nil {
		return Summary{}, err
	}
	defer e.Reporter.Finish()

	summary := Summary{Total: count}
	for i := uint64(1); i <= count; i++ {
		out := e.createOne(ctx, i, prefix)
		switch out.Kind {
		case Success:
			e.Reporter.SetMessage(fmt.Sprintf("Created secret: %s", out.Name))
		case BenignSkip:
			e.Reporter.Println(fmt.Sprintf("Secret already exists: %s", out.Name))
			summary.BenignErrors++
		default:
			return summary, fmt.Errorf("creating secret %q: %w", out.Name, out.Err)
		}
		e.Reporter.Inc()
	}

	// With conflicts the last per-item message stays.
	if summary.BenignErrors == 0 {
		e.Reporter.SetMessage(fmt.Sprintf("Created %d secrets", count))
	}

	e.Log.WithFields(logrus.Fields{
		"operation":    Create,
		"total":        summary.Total,
		"benignErrors": summary.BenignErrors,
	}).Info("run completed")

	return summary, nil
}

// RunDelete deletes prefix-1..prefix-count in ascending order.
// A missing secret is skipped without being counted; any other error
// aborts the run.
func (e *Executor) RunDelete(ctx context.Context, count uint64, prefix string) (Summary, error) {
	if err := (Request{Operation: Delete, Count: count, Prefix: prefix}).Validate(); err != nil {
		return Summary{}, err
	}
	defer e.Reporter.Finish()

	summary := Summary{Total: count}
	for i := uint64(1); i <= count; i++ {
		out := e.deleteOne(ctx, i, prefix)
		switch out.Kind {
		case Success:
			e.Reporter.SetMessage(fmt.Sprintf("Deleted secret: %s", out.Name))
		case BenignSkip:
			e.Reporter.Println(fmt.Sprintf("Secret not found: %s", out.Name))
		default:
			return summary, fmt.Errorf("deleting secret %q: %w", out.Name, out.Err)
		}
		e.Reporter.Inc()
	}

	e.Reporter.SetMessage(fmt.Sprintf("Deleted %d secrets", count))

	e.Log.WithFields(logrus.Fields{
		"operation": Delete,
		"total":     summary.Total,
	}).Info("run completed")

	return summary, nil
}

func (e *Executor) createOne(ctx context.Context, i uint64, prefix string) Outcome {
	name := ItemName(prefix, i)
	start := time.Now()
	err := e.Store.Create(ctx, name, Payload(i))
	out := classify(name, err, secretstore.ErrAlreadyExists)
	e.logCall(Create, i, out, time.Since(start))
	return out
}

func (e *Executor) deleteOne(ctx context.Context, i uint64, prefix string) Outcome {
	name := ItemName(prefix, i)
	start := time.Now()
	err := e.Store.Delete(ctx, name)
	out := classify(name, err, secretstore.ErrNotFound)
	e.logCall(Delete, i, out, time.Since(start))
	return out
}

// classify treats exactly one condition as benign; everything else is fatal.
func classify(name string, err, benign error) Outcome {
	switch {
	case err == nil:
		return Outcome{Kind: Success, Name: name}
	case errors.Is(err, benign):
		return Outcome{Kind: BenignSkip, Name: name, Err: err}
	default:
		return Outcome{Kind: Fatal, Name: name, Err: err}
	}
}

func (e *Executor) logCall(op Operation, i uint64, out Outcome, took time.Duration) {
	entry := e.Log.WithFields(logrus.Fields{
		"operation": op,
		"index":     i,
		"name":      out.Name,
		"outcome":   out.Kind,
		"duration":  took,
	})
	if out.Err != nil {
		entry = entry.WithError(out.Err)
	}
	entry.Debug("remote call finished")
}

type nopReporter struct{}

func (nopReporter) SetMessage(string) {}
func (nopReporter) Println(string)    {}
func (nopReporter) Inc()              {}
func (nopReporter) Finish()           {}
