package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bethropolis/codeview/internal/buffer"
	"github.com/bethropolis/codeview/internal/overlay"
)

// Dump writes the tag table of buf, one tagged range per line, in position
// order.
func Dump(w io.Writer, buf buffer.Buffer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range overlay.State(buf) {
		text, err := buf.Get(s.Range)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%q\n", s.Range, s.Tag, text); err != nil {
			return err
		}
	}
	return tw.Flush()
}
