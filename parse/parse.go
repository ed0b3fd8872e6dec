package parse

import (
	"context"
	"fmt"
	"io"

	"github.com/structeng/sgres/result"
)

// File parses a whole report from r in a single pass. Block order in the
// file does not matter: the units declaration is pulled from the preamble
// before any block parser runs, and referential checks happen afterwards
// in result.Set.Init.
//
// A recognized block whose rows fail coercion aborts the parse with an
// *Error naming the block and line. Unrecognized headers are kept on
// Set.Raw instead of failing.
func File(ctx context.Context, name string, r io.Reader) (*result.Set, error) {
	blocks, unitsLine, err := split(ctx, name, r)
	if err != nil {
		return nil, err
	}
	if unitsLine == nil {
		return nil, fmt.Errorf("parse: %s: missing UNITS declaration", name)
	}
	units, err := parseUnits(unitsLine)
	if err != nil {
		return nil, err
	}

	set := &result.Set{Name: name, Units: units}
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, ok := registry[b.header]
		if !ok {
			set.Raw = append(set.Raw, rawBlock(b))
			continue
		}
		if err := p(b, set); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func rawBlock(b *block) result.RawBlock {
	raw := result.RawBlock{Header: b.header, Line: b.pos.Line}
	for _, ln := range b.lines {
		raw.Lines = append(raw.Lines, ln.text)
	}
	return raw
}
