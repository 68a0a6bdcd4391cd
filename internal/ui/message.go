package ui

import (
	"fmt"
	"io"
	"strings"
)

// RenderError writes err as a single "error: ..." line. Line breaks inside
// the message are folded so the output stays one line.
func RenderError(w io.Writer, err error) {
	if err == nil {
		return
	}

	theme := NewTheme(w)
	text := strings.Join(strings.Fields(err.Error()), " ")
	fmt.Fprintln(w, theme.ErrorPrefix.Render("error:"), text)
}
