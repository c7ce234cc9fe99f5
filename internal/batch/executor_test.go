package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stuttgart-things/secret-populator/internal/secretstore"
)

type call struct {
	op    string
	name  string
	value string
}

// recordingStore wraps a MemoryStore, records every call in order and
// returns failErr instead of calling through when the name matches failOn.
type recordingStore struct {
	*secretstore.MemoryStore
	calls   []call
	failOn  string
	failErr error
}

func newRecordingStore(seed map[string]string) *recordingStore {
	return &recordingStore{MemoryStore: secretstore.NewMemoryStore(seed)}
}

func (s *recordingStore) Create(ctx context.Context, name, value string) error {
	s.calls = append(s.calls, call{op: "create", name: name, value: value})
	if name == s.failOn {
		return s.failErr
	}
	return s.MemoryStore.Create(ctx, name, value)
}

func (s *recordingStore) Delete(ctx context.Context, name string) error {
	s.calls = append(s.calls, call{op: "delete", name: name})
	if name == s.failOn {
		return s.failErr
	}
	return s.MemoryStore.Delete(ctx, name)
}

type recordingReporter struct {
	messages []string
	lines    []string
	pos      int
	finished int
}

func (r *recordingReporter) SetMessage(msg string) { r.messages = append(r.messages, msg) }
func (r *recordingReporter) Println(msg string)    { r.lines = append(r.lines, msg) }
func (r *recordingReporter) Inc()                  { r.pos++ }
func (r *recordingReporter) Finish()               { r.finished++ }

func (r *recordingReporter) lastMessage() string {
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

func TestRunCreateNamesAndPayloads(t *testing.T) {
	for _, count := range []uint64{1, 3, 12} {
		t.Run(fmt.Sprintf("count=%d", count), func(t *testing.T) {
			store := newRecordingStore(nil)
			rep := &recordingReporter{}

			summary, err := New(store, rep, nil).RunCreate(context.Background(), count, "P")
			require.NoError(t, err)

			require.Len(t, store.calls, int(count))
			for i, c := range store.calls {
				idx := i + 1
				assert.Equal(t, "create", c.op)
				assert.Equal(t, fmt.Sprintf("P-%d", idx), c.name)
				assert.Equal(t, fmt.Sprintf("secret-value-%d", idx), c.value)
			}

			assert.Equal(t, Summary{Total: count}, summary)
			assert.Equal(t, int(count), rep.pos)
			assert.Equal(t, fmt.Sprintf("Created %d secrets", count), rep.lastMessage())
			assert.Equal(t, 1, rep.finished)
		})
	}
}

func TestRunDeleteNames(t *testing.T) {
	store := newRecordingStore(map[string]string{"P-1": "a", "P-2": "b", "P-3": "c"})
	rep := &recordingReporter{}

	summary, err := New(store, rep, nil).RunDelete(context.Background(), 3, "P")
	require.NoError(t, err)

	require.Len(t, store.calls, 3)
	for i, c := range store.calls {
		assert.Equal(t, "delete", c.op)
		assert.Equal(t, fmt.Sprintf("P-%d", i+1), c.name)
	}
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, Summary{Total: 3}, summary)
	assert.Equal(t, []string{
		"Deleted secret: P-1",
		"Deleted secret: P-2",
		"Deleted secret: P-3",
		"Deleted 3 secrets",
	}, rep.messages)
}

func TestZeroCountMakesNoCalls(t *testing.T) {
	tests := []struct {
		name string
		run  func(*Executor) (Summary, error)
	}{
		{"create", func(e *Executor) (Summary, error) { return e.RunCreate(context.Background(), 0, "P") }},
		{"delete", func(e *Executor) (Summary, error) { return e.RunDelete(context.Background(), 0, "P") }},
		{"run", func(e *Executor) (Summary, error) {
			return e.Run(context.Background(), Request{Operation: Create, Count: 0, Prefix: "P"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newRecordingStore(nil)
			rep := &recordingReporter{}

			_, err := tt.run(New(store, rep, nil))
			assert.ErrorIs(t, err, ErrInvalidCount)
			assert.Empty(t, store.calls)
			assert.Zero(t, rep.finished, "reporter must not be touched before the loop starts")
		})
	}
}

func TestRunCreateAlreadyExistsIsBenign(t *testing.T) {
	store := newRecordingStore(map[string]string{"P-2": "old"})
	rep := &recordingReporter{}

	summary, err := New(store, rep, nil).RunCreate(context.Background(), 3, "P")
	require.NoError(t, err)

	assert.Len(t, store.calls, 3)
	assert.Equal(t, uint64(1), summary.BenignErrors)
	assert.Equal(t, []string{"Secret already exists: P-2"}, rep.lines)
	assert.Equal(t, 3, rep.pos)

	// The override summary is only shown for conflict-free runs.
	assert.Equal(t, "Created secret: P-3", rep.lastMessage())
	assert.NotContains(t, rep.messages, "Created 3 secrets")

	v, _ := store.Get("P-2")
	assert.Equal(t, "old", v)
}

func TestRunDeleteNotFoundIsBenignAndUncounted(t *testing.T) {
	store := newRecordingStore(map[string]string{"P-1": "a"})
	rep := &recordingReporter{}

	summary, err := New(store, rep, nil).RunDelete(context.Background(), 2, "P")
	require.NoError(t, err)

	assert.Len(t, store.calls, 2)
	assert.Zero(t, summary.BenignErrors)
	assert.Equal(t, []string{"Secret not found: P-2"}, rep.lines)
	assert.Equal(t, "Deleted 2 secrets", rep.lastMessage())
}

func TestFatalErrorAbortsImmediately(t *testing.T) {
	denied := errors.New("AccessDeniedException: not authorized")

	tests := []struct {
		name    string
		op      Operation
		seed    map[string]string
		failErr error
	}{
		{name: "create access denied", op: Create, failErr: denied},
		{name: "delete access denied", op: Delete, seed: map[string]string{"P-1": "a", "P-2": "b"}, failErr: denied},
		{name: "not found on create is fatal", op: Create, failErr: secretstore.ErrNotFound},
		{name: "already exists on delete is fatal", op: Delete, seed: map[string]string{"P-1": "a"}, failErr: secretstore.ErrAlreadyExists},
		{name: "canceled context is fatal", op: Create, failErr: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newRecordingStore(tt.seed)
			store.failOn = "P-2"
			store.failErr = tt.failErr
			rep := &recordingReporter{}

			_, err := New(store, rep, nil).Run(context.Background(), Request{Operation: tt.op, Count: 5, Prefix: "P"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.failErr)
			assert.Contains(t, err.Error(), `"P-2"`)

			require.Len(t, store.calls, 2, "no call may be made after the failing index")
			assert.Equal(t, "P-2", store.calls[1].name)
			assert.Equal(t, 1, rep.pos)
			assert.Equal(t, 1, rep.finished)
			assert.Empty(t, rep.lines)
		})
	}
}

func TestCreateTwiceIsIdempotent(t *testing.T) {
	store := newRecordingStore(nil)
	ctx := context.Background()

	first, err := New(store, nil, nil).RunCreate(ctx, 5, "X")
	require.NoError(t, err)
	assert.Zero(t, first.BenignErrors)

	rep := &recordingReporter{}
	second, err := New(store, rep, nil).RunCreate(ctx, 5, "X")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), second.BenignErrors)
	assert.Len(t, rep.lines, 5)
	assert.Equal(t, 5, store.Len())
}

func TestCreateThenDeleteEndToEnd(t *testing.T) {
	store := newRecordingStore(nil)
	ctx := context.Background()

	_, err := New(store, nil, nil).Run(ctx, Request{Operation: Create, Count: 3, Prefix: "demo"})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		v, ok := store.Get(fmt.Sprintf("demo-%d", i))
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("secret-value-%d", i), v)
	}

	rep := &recordingReporter{}
	_, err = New(store, rep, nil).Run(ctx, Request{Operation: Delete, Count: 3, Prefix: "demo"})
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, "Deleted 3 secrets", rep.lastMessage())
}

func TestExecutorLogsCalls(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})

	store := newRecordingStore(map[string]string{"P-1": "x"})
	_, err := New(store, nil, log).RunCreate(context.Background(), 2, "P")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "name=P-1")
	assert.Contains(t, out, "outcome=benign-skip")
	assert.Contains(t, out, "name=P-2")
	assert.Contains(t, out, "outcome=success")
	assert.Contains(t, out, "benignErrors=1")
}
