// Package parse turns the SPACE GASS text export into a result.Set.
//
// The export is line oriented: a UNITS declaration near the top of the
// file, then one block per data category. A block starts with its header
// keyword on its own line and runs until the next header, the END marker,
// or end of file. Data rows are comma separated with optional quoting.
package parse

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Pos locates a line in the input for error messages.
type Pos struct {
	File string
	Line int // line in input, starting at 1
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Error is a fatal parse failure, tagged with the block it happened in.
type Error struct {
	Block string
	Pos   Pos
	Err   error
}

func (e *Error) Error() string {
	if e.Block == "" {
		return fmt.Sprintf("parse: %s: %v", e.Pos, e.Err)
	}
	return fmt.Sprintf("parse: %s %s: %v", e.Block, e.Pos, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type line struct {
	pos  Pos
	text string
}

// block is one header-delimited run of data lines, in file order.
type block struct {
	header string
	pos    Pos // position of the header line
	lines  []line
}

const (
	unitsPrefix = "UNITS "
	endMarker   = "END"

	// The UNITS declaration sits in the file preamble; headers only
	// start after it.
	unitsWindow = 20
)

// split reads the whole input into ordered blocks plus the UNITS line.
// Blank lines, trailing whitespace and "#" comments are dropped. Blocks
// with unknown headers are kept so the caller can preserve them raw.
func split(ctx context.Context, name string, r io.Reader) ([]*block, *line, error) {
	var blocks []*block
	var units *line
	var cur *block

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	num := 0
	for sc.Scan() {
		num++
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		text := strings.TrimSpace(sc.Text())

		if units == nil && num <= unitsWindow && strings.HasPrefix(text, unitsPrefix) {
			units = &line{pos: Pos{File: name, Line: num}, text: text}
			continue
		}
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if units == nil {
			// Banner and job description before the UNITS line.
			continue
		}
		if text == endMarker {
			break
		}
		if isHeader(text) {
			cur = &block{header: text, pos: Pos{File: name, Line: num}}
			blocks = append(blocks, cur)
			continue
		}
		if cur == nil {
			// Stray line between the units declaration and the
			// first block.
			continue
		}
		cur.lines = append(cur.lines, line{pos: Pos{File: name, Line: num}, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("parse: %s: %v", name, err)
	}
	return blocks, units, nil
}

// isHeader reports whether a trimmed line is a block header: uppercase
// keywords, no delimiters, nothing that could be mistaken for a data row.
func isHeader(text string) bool {
	if len(text) == 0 || len(text) > 48 {
		return false
	}
	if text[0] < 'A' || text[0] > 'Z' {
		return false
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c < 'A' || c > 'Z') && c != ' ' {
			return false
		}
	}
	return true
}

// splitFields breaks one data row into trimmed fields. Rows without
// quotes take the cheap path; quoted rows go through encoding/csv so
// embedded commas survive.
func splitFields(text string) ([]string, error) {
	var fields []string
	if !strings.Contains(text, `"`) {
		fields = strings.Split(text, ",")
	} else {
		cr := csv.NewReader(strings.NewReader(text))
		cr.TrimLeadingSpace = true
		row, err := cr.Read()
		if err != nil {
			return nil, err
		}
		fields = row
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}
