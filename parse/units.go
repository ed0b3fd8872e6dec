package parse

import (
	"fmt"
	"strings"

	"github.com/structeng/sgres/result"
)

// Every numeric column downstream is interpreted in these units, so a
// units declaration that cannot be read completely fails the whole load.
var requiredUnits = []string{"LENGTH", "FORCE"}

// parseUnits reads the UNITS declaration into the units dictionary.
// Format: `UNITS LENGTH:m, SECTION:mm, STRENGTH:MPa, FORCE:kN, ...`.
// Symbols are stored exactly as printed; nothing is converted.
func parseUnits(ln *line) (result.Units, error) {
	body := strings.TrimSpace(strings.TrimPrefix(ln.text, unitsPrefix))
	if body == "" {
		return nil, &Error{Pos: ln.pos, Err: fmt.Errorf("empty UNITS declaration")}
	}
	units := result.Units{}
	for _, pair := range strings.Split(body, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, &Error{Pos: ln.pos, Err: fmt.Errorf("malformed unit pair %q", pair)}
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			return nil, &Error{Pos: ln.pos, Err: fmt.Errorf("malformed unit pair %q", pair)}
		}
		units[key] = value
	}
	for _, key := range requiredUnits {
		if _, ok := units[key]; !ok {
			return nil, &Error{Pos: ln.pos, Err: fmt.Errorf("UNITS declaration missing %s", key)}
		}
	}
	return units, nil
}
