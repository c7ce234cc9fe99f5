package progress

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Reporter is the progress display driven by a batch run
type Reporter interface {
	SetMessage(msg string)
	Println(msg string)
	Inc()
	Finish()
}

type fdWriter interface {
	io.Writer
	Fd() uintptr
}

// New returns a Bar when w is a terminal and Lines otherwise
func New(w io.Writer, total uint64) Reporter {
	if w == nil {
		w = os.Stderr
	}
	if IsTerminal(w) {
		return NewBar(w, total)
	}
	return NewLines(w)
}

// IsTerminal reports whether w is backed by a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
