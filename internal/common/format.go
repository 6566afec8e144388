package common

import (
	"fmt"
	"strings"
)

// DefaultWidth is the standard separator width for console output.
const DefaultWidth = 80

// PrintHeader prints a formatted header with title and separators
func PrintHeader(title string, width int) {
	fmt.Println("\n" + strings.Repeat("=", width))
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", width))
}

// PrintFooter prints a formatted footer with message and separators
func PrintFooter(message string, width int) {
	fmt.Println("\n" + strings.Repeat("=", width))
	fmt.Println(message)
	fmt.Println(strings.Repeat("=", width) + "\n")
}

// PrintBoxSeparator prints a box-drawing separator line (for sub-sections)
func PrintBoxSeparator(width int) {
	fmt.Println("├" + strings.Repeat("─", width))
}

// BoxPrefix returns the appropriate box-drawing prefix for list items
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}

// BoxList prints list items with box-drawing prefixes. The most recent item
// is held back until the next Add or Close, so the final item gets the
// closing prefix even when the total count is only known after the last page.
type BoxList struct {
	pending     string
	havePending bool
}

func (l *BoxList) Add(line string) {
	l.flush(false)
	l.pending = line
	l.havePending = true
}

// PageBreak separates pages of a listing.
func (l *BoxList) PageBreak(width int) {
	l.flush(false)
	PrintBoxSeparator(width)
}

// Close flushes the held item with the closing prefix.
func (l *BoxList) Close() {
	l.flush(true)
}

func (l *BoxList) flush(isLast bool) {
	if !l.havePending {
		return
	}
	fmt.Println(BoxPrefix(isLast) + l.pending)
	l.havePending = false
}
