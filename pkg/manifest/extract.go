// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of extracting one manifest.
type Result struct {
	Path string
	// Record is nil when the manifest failed or declares no scripts object.
	Record *Record
	// Err is a KindManifestParse *issue.Error, or the context error.
	Err error
}

// ExtractAll extracts every manifest concurrently and waits for all of them.
// Results are in the order of paths regardless of completion order. A failed
// manifest only affects its own Result.
func ExtractAll(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			results[i].Path = path
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Record, results[i].Err = Extract(path)
			return nil
		})
	}
	_ = g.Wait() // tasks never return errors; failures live in results

	return results
}

// Records returns the non-nil records of results, preserving order.
func Records(results []Result) []*Record {
	records := make([]*Record, 0, len(results))
	for _, r := range results {
		if r.Record != nil {
			records = append(records, r.Record)
		}
	}
	return records
}
