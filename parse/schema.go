package parse

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd"
)

// record is one data row being coerced against a block's column schema.
// Accessors record the first failure instead of returning it, so a row
// can be assembled in a single expression and checked once with Err.
// A malformed numeric token is always fatal: silently defaulting a
// structural force value is unacceptable.
type record struct {
	block  string
	pos    Pos
	fields []string
	err    error
}

func (b *block) record(ln line) (*record, error) {
	fields, err := splitFields(ln.text)
	if err != nil {
		return nil, &Error{Block: b.header, Pos: ln.pos, Err: err}
	}
	return &record{block: b.header, pos: ln.pos, fields: fields}, nil
}

func (r *record) fail(i int, name string, err error) {
	if r.err != nil {
		return
	}
	r.err = &Error{Block: r.block, Pos: r.pos, Err: fmt.Errorf("column %d (%s): %v", i, name, err)}
}

func (r *record) Err() error { return r.err }

// Len returns the number of fields present in the row.
func (r *record) Len() int { return len(r.fields) }

func (r *record) field(i int) (string, bool) {
	if i >= len(r.fields) {
		return "", false
	}
	return r.fields[i], true
}

// Int coerces column i to an integer id.
func (r *record) Int(i int, name string) int {
	s, ok := r.field(i)
	if !ok || s == "" {
		r.fail(i, name, fmt.Errorf("missing value"))
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		r.fail(i, name, fmt.Errorf("expected integer, got %q", s))
		return 0
	}
	return v
}

// Float coerces column i to a float. The token is validated as a plain
// decimal first, which rejects Inf, NaN and hex-float spellings that
// strconv alone would let through.
func (r *record) Float(i int, name string) float64 {
	s, ok := r.field(i)
	if !ok || s == "" {
		r.fail(i, name, fmt.Errorf("missing value"))
		return 0
	}
	return r.float(i, name, s)
}

// FloatOpt is Float for trailing columns that the report may omit; an
// absent or blank field yields zero, a malformed one still fails.
func (r *record) FloatOpt(i int, name string) float64 {
	s, ok := r.field(i)
	if !ok || s == "" {
		return 0
	}
	return r.float(i, name, s)
}

func (r *record) float(i int, name, s string) float64 {
	v, err := parseFloat(s)
	if err != nil {
		r.fail(i, name, fmt.Errorf("expected number, got %q", s))
		return 0
	}
	return v
}

// parseFloat accepts only plain decimal tokens. The apd pass rejects
// hex-float spellings before strconv supplies the value; apd itself
// parses Inf and NaN tokens, so non-finite forms are refused explicitly.
func parseFloat(s string) (float64, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if d.Form != apd.Finite {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return strconv.ParseFloat(s, 64)
}

// Text returns column i as free text, empty when absent.
func (r *record) Text(i int, name string) string {
	s, _ := r.field(i)
	return s
}
