package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-theft-auto/vlist"
)

// Error writes a styled error line.
func Error(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// Success writes a styled success line.
func Success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

// Info writes a styled informational line.
func Info(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

// Header writes a section header.
func Header(w io.Writer, title string) {
	fmt.Fprintln(w, HeaderStyle.Render(title))
}

// FormatPx formats a pixel value without trailing zeros.
func FormatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// FormatRange formats an inclusive index range, or "-" when empty.
func FormatRange(r vlist.Range) string {
	if r.Empty() {
		return "-"
	}
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
