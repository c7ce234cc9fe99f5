package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth = 60

	// Redraws from SetMessage and Inc are limited to 10 per second.
	minRedrawInterval = 100 * time.Millisecond

	clearLine = "\r\x1b[2K"
)

var (
	elapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// Bar renders a single redrawn progress line:
//
//	[00:00:03] ██████████░░░░░░░░░░     3/10      Created secret: demo-3
type Bar struct {
	w     io.Writer
	total uint64
	pos   uint64
	msg   string

	model    progress.Model
	start    time.Time
	lastDraw time.Time
	finished bool

	now func() time.Time
}

// NewBar creates a Bar writing to w
func NewBar(w io.Writer, total uint64) *Bar {
	b := &Bar{
		w:     w,
		total: total,
		model: progress.New(
			progress.WithGradient("#00ffff", "#5f87ff"),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
		now: time.Now,
	}
	b.start = b.now()
	return b
}

func (b *Bar) SetMessage(msg string) {
	b.msg = msg
	b.draw(false)
}

// Println prints msg above the bar and redraws the bar below it
func (b *Bar) Println(msg string) {
	fmt.Fprint(b.w, clearLine+msg+"\n")
	b.draw(true)
}

func (b *Bar) Inc() {
	if b.pos < b.total {
		b.pos++
	}
	b.draw(false)
}

// Finish draws the final state and moves the cursor past the bar.
// Calling it more than once has no effect.
func (b *Bar) Finish() {
	if b.finished {
		return
	}
	b.draw(true)
	fmt.Fprintln(b.w)
	b.finished = true
}

func (b *Bar) draw(force bool) {
	if b.finished {
		return
	}
	now := b.now()
	if !force && !b.lastDraw.IsZero() && now.Sub(b.lastDraw) < minRedrawInterval {
		return
	}
	b.lastDraw = now
	fmt.Fprint(b.w, clearLine+b.line(now))
}

func (b *Bar) line(now time.Time) string {
	var percent float64
	if b.total > 0 {
		percent = float64(b.pos) / float64(b.total)
	}
	return fmt.Sprintf("%s %s %7d/%-7d %s",
		elapsedStyle.Render("["+formatElapsed(now.Sub(b.start))+"]"),
		b.model.ViewAs(percent),
		b.pos, b.total,
		messageStyle.Render(b.msg),
	)
}

func formatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
