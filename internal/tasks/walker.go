package tasks

import (
	"context"
	"fmt"

	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/Auzzy/relative-artistry/internal/shared"
)

// HaltCondition decides whether a related-artist walk should stop expanding.
// visited holds every artist ID found so far (root first, then discovery order),
// depth is the number of fully expanded levels.
type HaltCondition func(visited *linkedhashset.Set, depth int) bool

// DepthLimit halts once maxDepth levels have been expanded. DepthLimit(0)
// halts immediately, yielding only the root.
func DepthLimit(maxDepth int) HaltCondition {
	return func(_ *linkedhashset.Set, depth int) bool {
		return depth >= maxDepth
	}
}

// TargetReached halts once the given artist ID has turned up in the walk.
// Because halt conditions run between levels, the level that discovers the
// target still completes, so artists at the target's depth remain visited.
func TargetReached(artistID string) HaltCondition {
	return func(visited *linkedhashset.Set, _ int) bool {
		return visited.Contains(artistID)
	}
}

// relatedWalk performs a breadth-first walk of the related-artist graph from
// rootID. The root is always visited; artists in exclude are never added or
// expanded. halt is evaluated only between levels, after a whole frontier has
// been expanded, so the walk never stops partway through a depth level.
//
// The returned set preserves discovery order, root first. Requests run one at
// a time, so repeated walks over an unchanged catalog yield identical sets.
func (e *RelativesEngine) relatedWalk(ctx context.Context, rootID string, exclude *linkedhashset.Set, halt HaltCondition, progress chan<- ProgressUpdate, maxDepth int) (*linkedhashset.Set, error) {
	if halt == nil {
		return nil, fmt.Errorf("%w: walk requires a halt condition", shared.ErrInvalidArgument)
	}
	if exclude == nil {
		exclude = linkedhashset.New()
	}

	visited := linkedhashset.New(rootID)
	frontier := []string{rootID}
	depth := 0

	for len(frontier) > 0 && !halt(visited, depth) {
		var next []string
		for _, id := range frontier {
			related, err := e.service.RelatedArtists(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch artists related to %s: %w", id, err)
			}

			for _, relatedID := range related {
				if visited.Contains(relatedID) || exclude.Contains(relatedID) {
					continue
				}
				visited.Add(relatedID)
				next = append(next, relatedID)
			}
		}

		frontier = next
		depth++
		e.sendProgress(progress, gatherDepthUpdate(depth, maxDepth, visited.Size()))
	}

	return visited, nil
}

// setValues returns the set's members as strings in insertion order.
func setValues(set *linkedhashset.Set) []string {
	values := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		values = append(values, v.(string))
	}
	return values
}
