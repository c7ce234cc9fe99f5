package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestBar(buf *bytes.Buffer, total uint64) (*Bar, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := NewBar(buf, total)
	b.now = clock.now
	b.start = clock.t
	return b, clock
}

func TestNewPicksLinesForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	_, ok := New(&buf, 3).(*Lines)
	assert.True(t, ok, "a bytes.Buffer is not a terminal")
	assert.False(t, IsTerminal(&buf))
}

func TestLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewLines(&buf)

	l.SetMessage("Created secret: demo-1")
	l.Println("Secret already exists: demo-2")
	l.Inc()
	l.SetMessage("Created 2 secrets")
	l.Finish()

	assert.Equal(t, "Created secret: demo-1\nSecret already exists: demo-2\nCreated 2 secrets\n", buf.String())
}

func TestBarThrottlesRedraws(t *testing.T) {
	var buf bytes.Buffer
	b, clock := newTestBar(&buf, 10)

	b.SetMessage("first")
	b.Inc()
	b.SetMessage("second")
	assert.Equal(t, 1, strings.Count(buf.String(), clearLine), "redraws within 100ms are skipped")

	clock.t = clock.t.Add(150 * time.Millisecond)
	b.Inc()
	assert.Equal(t, 2, strings.Count(buf.String(), clearLine))
	assert.Contains(t, buf.String(), "second")
	assert.Contains(t, buf.String(), "2/10")
}

func TestBarPrintlnAlwaysRedraws(t *testing.T) {
	var buf bytes.Buffer
	b, _ := newTestBar(&buf, 2)

	b.SetMessage("Created secret: demo-1")
	b.Println("Secret already exists: demo-2")

	out := buf.String()
	assert.Contains(t, out, clearLine+"Secret already exists: demo-2\n")
	assert.Equal(t, 3, strings.Count(out, clearLine))
}

func TestBarFinish(t *testing.T) {
	var buf bytes.Buffer
	b, clock := newTestBar(&buf, 3)

	for i := 0; i < 3; i++ {
		b.Inc()
	}
	b.SetMessage("Created 3 secrets")
	clock.t = clock.t.Add(61 * time.Minute).Add(2 * time.Second)
	b.Finish()
	b.Finish()
	b.SetMessage("ignored")

	out := buf.String()
	require.True(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, 1, strings.Count(out, "\n"), "a second Finish must not print again")
	assert.Contains(t, out, "[01:01:02]")
	assert.Contains(t, out, "3/3")
	assert.Contains(t, out, "Created 3 secrets")
	assert.NotContains(t, out, "ignored")
}

func TestBarIncStopsAtTotal(t *testing.T) {
	var buf bytes.Buffer
	b, _ := newTestBar(&buf, 1)
	b.Inc()
	b.Inc()
	assert.Equal(t, uint64(1), b.pos)
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00", formatElapsed(400*time.Millisecond))
	assert.Equal(t, "00:01:05", formatElapsed(65*time.Second))
	assert.Equal(t, "26:00:00", formatElapsed(26*time.Hour))
}
