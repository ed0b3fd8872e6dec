// Package load reads a SPACE GASS export from disk into a result.Set.
package load

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/structeng/sgres/internal/logger"
	"github.com/structeng/sgres/parse"
	"github.com/structeng/sgres/result"
)

type config struct {
	log *slog.Logger
}

type Option func(*config)

// WithLogger routes referential warnings to log. The warnings are always
// returned as well, so a no-op logger loses nothing.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// File loads and checks a report. The returned warnings are the
// non-fatal referential diagnostics from result.Set.Init; err is non-nil
// only for a fatal load failure (unreadable file, missing or malformed
// units declaration, or a row that fails type coercion), in which case no
// set is returned. The file handle is released on every path.
func File(ctx context.Context, path string, opts ...Option) (*result.Set, *result.Errors, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load: unable to open file %q: %v", path, err)
	}
	defer f.Close()

	return Reader(ctx, path, f, opts...)
}

// Reader is File for an already open stream; name is used in messages.
func Reader(ctx context.Context, name string, r io.Reader, opts ...Option) (*result.Set, *result.Errors, error) {
	c := &config{log: logger.New(slog.LevelWarn)}
	for _, opt := range opts {
		opt(c)
	}

	set, err := parse.File(ctx, name, r)
	if err != nil {
		return nil, nil, err
	}

	warns := set.Init()
	for _, w := range warns.List() {
		c.log.Warn("referential check", "file", name, "warning", w.Error())
	}
	return set, warns, nil
}
