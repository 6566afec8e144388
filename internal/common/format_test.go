package common

import (
	"io"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close pipe writer: %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("Failed to read captured output: %v", err)
	}
	return string(data)
}

func TestBoxList_ClosesLastItem(t *testing.T) {
	output := captureStdout(t, func() {
		var list BoxList
		list.Add("first")
		list.Add("second")
		list.Add("third")
		list.Close()
	})

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), output)
	}
	for _, line := range lines[:2] {
		if !strings.HasPrefix(line, "│") {
			t.Errorf("Expected continuation prefix, got %q", line)
		}
	}
	if !strings.HasPrefix(lines[2], "└") {
		t.Errorf("Expected closing prefix on last line, got %q", lines[2])
	}
}

func TestBoxList_ClosesAcrossPageBoundary(t *testing.T) {
	// Two full pages of two items each: the item count is only known after
	// a final empty page, and the last item must still close the box.
	output := captureStdout(t, func() {
		var list BoxList
		list.Add("a")
		list.Add("b")
		list.PageBreak(10)
		list.Add("c")
		list.Add("d")
		list.Close()
	})

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines, got %d: %q", len(lines), output)
	}
	if !strings.HasPrefix(lines[2], "├") {
		t.Errorf("Expected page separator, got %q", lines[2])
	}
	if !strings.HasPrefix(lines[4], "└") {
		t.Errorf("Expected closing prefix on last line, got %q", lines[4])
	}
	for _, i := range []int{0, 1, 3} {
		if !strings.HasPrefix(lines[i], "│") {
			t.Errorf("Expected continuation prefix on line %d, got %q", i, lines[i])
		}
	}
}

func TestBoxList_EmptyCloseIsNoop(t *testing.T) {
	output := captureStdout(t, func() {
		var list BoxList
		list.Close()
	})

	if output != "" {
		t.Errorf("Expected no output for empty list, got %q", output)
	}
}
