package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ziglint/ziglint/internal/diag"
)

// printDiagnostics prints diagnostics grouped by file (spec.md §6 "The
// reporter prints diagnostics grouped by file"), sorted by pathname then
// by the first label's byte offset within each file, to a deterministic
// order across an otherwise-unordered parallel run.
func printDiagnostics(w io.Writer, diagnostics []*diag.Diagnostic) {
	byFile := map[string][]*diag.Diagnostic{}
	var files []string
	for _, d := range diagnostics {
		if _, ok := byFile[d.Pathname]; !ok {
			files = append(files, d.Pathname)
		}
		byFile[d.Pathname] = append(byFile[d.Pathname], d)
	}
	sort.Strings(files)

	for _, file := range files {
		ds := byFile[file]
		sort.SliceStable(ds, func(i, j int) bool {
			return firstOffset(ds[i]) < firstOffset(ds[j])
		})

		fmt.Fprintf(w, "%s\n", file)
		lineIndex := newLineIndex(file)
		for _, d := range ds {
			printOne(w, d, lineIndex)
		}
		fmt.Fprintln(w)
	}
}

func firstOffset(d *diag.Diagnostic) int {
	if len(d.Labels) == 0 {
		return 0
	}
	return d.Labels[0].Span.Start
}

func printOne(w io.Writer, d *diag.Diagnostic, li *lineIndex) {
	loc := ""
	if len(d.Labels) > 0 {
		line, col := li.lineCol(d.Labels[0].Span.Start)
		loc = fmt.Sprintf(":%d:%d", line, col)
	}
	fmt.Fprintf(w, "  %s%s %s [%s]\n", severityTag(d.Severity), loc, d.Message, d.Code)
	for _, l := range d.Labels {
		if l.Message == "" {
			continue
		}
		fmt.Fprintf(w, "      %s\n", l.Message)
	}
	if d.Help != "" {
		fmt.Fprintf(w, "      help: %s\n", d.Help)
	}
}

func severityTag(s diag.Severity) string {
	switch s {
	case diag.SeverityError:
		return "error"
	case diag.SeverityWarning:
		return "warning"
	default:
		return "off"
	}
}

// lineIndex maps a byte offset back to a 1-based line:column pair,
// computed lazily by re-reading the file once per report (the reporter
// only sees diagnostics, not the Source that produced them).
type lineIndex struct {
	offsets []int // byte offset of the first character of each line
}

func newLineIndex(pathname string) *lineIndex {
	li := &lineIndex{offsets: []int{0}}
	f, err := os.Open(pathname)
	if err != nil {
		return li
	}
	defer f.Close()

	r := bufio.NewReader(f)
	offset := 0
	for {
		b, err := r.ReadByte()
		if err != nil {
			break
		}
		offset++
		if b == '\n' {
			li.offsets = append(li.offsets, offset)
		}
	}
	return li
}

func (li *lineIndex) lineCol(pos int) (line, col int) {
	i := sort.Search(len(li.offsets), func(i int) bool { return li.offsets[i] > pos }) - 1
	if i < 0 {
		i = 0
	}
	return i + 1, pos - li.offsets[i] + 1
}
