package csv

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ParseFiles parses several files concurrently with ParseFile, one
// independent parser or reader per file and at most WithWorkers files at a
// time. The first failure cancels the remaining parses.
func ParseFiles(ctx context.Context, paths []string, opts ...Option) (map[string]Table, error) {
	o := newOptions(opts)

	var mu sync.Mutex
	results := make(map[string]Table, len(paths))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.workers)

	for _, path := range paths {
		eg.Go(func() error {
			table, err := parseFile(egctx, path, false, o)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}
			mu.Lock()
			results[path] = table
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
