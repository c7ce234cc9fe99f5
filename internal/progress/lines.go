package progress

import (
	"fmt"
	"io"
)

// Lines writes every message on its own line, for output that is not a terminal
type Lines struct {
	w io.Writer
}

func NewLines(w io.Writer) *Lines {
	return &Lines{w: w}
}

func (l *Lines) SetMessage(msg string) { fmt.Fprintln(l.w, msg) }
func (l *Lines) Println(msg string)    { fmt.Fprintln(l.w, msg) }
func (l *Lines) Inc()                  {}
func (l *Lines) Finish()               {}
