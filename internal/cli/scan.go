// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"

	"github.com/wiktersproj/wikters/internal/dump"
)

// scan pulls pages from src until end of stream, the configured limit, or
// context cancellation, invoking visit for each page. It returns the
// number of pages scanned.
func scan(ctx context.Context, src dump.Source, opts *options, visit func(*dump.Page) error) (int, error) {
	scanned := 0
	for {
		if opts.limit > 0 && scanned >= opts.limit {
			return scanned, nil
		}
		if err := ctx.Err(); err != nil {
			return scanned, err
		}

		page, err := src.NextPage()
		if err != nil {
			return scanned, err
		}
		if page == nil {
			return scanned, nil
		}
		scanned++

		if opts.progressEvery > 0 && scanned%opts.progressEvery == 0 {
			slog.Info("scanning dump", "pages", scanned, "title", page.Title)
		}

		if err := visit(page); err != nil {
			return scanned, err
		}
	}
}
