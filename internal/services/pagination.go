package services

import "context"

// PageLimit is the window size requested from paged catalog operations.
const PageLimit = 50

// PageFetch retrieves one page of a paged operation.
type PageFetch[P any] func(ctx context.Context, offset, limit int) (P, error)

// Collect exhausts a paged operation into a flat ordered slice.
//
// extract pulls the wanted items out of each page (it may filter; cross-page
// order is preserved), hasMore reports the service's continuation flag, and
// halt, when non-nil, stops collection early once the accumulated items
// satisfy it. No page is fetched after halting.
//
// The offset advances by the number of items accumulated so far rather than a
// fixed page size, so a partial final page terminates cleanly even when
// extract filters items out.
func Collect[P, I any](
	ctx context.Context,
	fetch PageFetch[P],
	extract func(P) []I,
	hasMore func(P) bool,
	halt func([]I) bool,
) ([]I, error) {
	var values []I
	offset := 0
	for {
		page, err := fetch(ctx, offset, PageLimit)
		if err != nil {
			return nil, err
		}

		values = append(values, extract(page)...)
		if (halt != nil && halt(values)) || !hasMore(page) {
			return values, nil
		}

		offset = len(values)
	}
}
