// package selector chooses one artist from an ambiguous search result.
package selector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Auzzy/relative-artistry/internal/services"
	"github.com/Auzzy/relative-artistry/internal/shared"
)

// Selector picks a single artist out of a non-empty candidate list.
//
// Implementations must not reorder or mutate the candidates. Select is only
// consulted when more than one candidate matched; a single match is always
// taken as-is.
type Selector interface {
	Select(artists []services.Artist) (*services.Artist, error)
	Description() string
}

// MostPopular selects the candidate with the highest popularity score.
// Ties go to the earliest candidate, which keeps the search ranking authoritative.
type MostPopular struct{}

func (MostPopular) Select(artists []services.Artist) (*services.Artist, error) {
	if len(artists) == 0 {
		return nil, shared.ErrNoMatch
	}

	best := 0
	for i, artist := range artists {
		if artist.Popularity > artists[best].Popularity {
			best = i
		}
	}
	return &artists[best], nil
}

func (MostPopular) Description() string {
	return "pick the candidate with the highest popularity score"
}

// MostFollowed selects the candidate with the largest follower count.
// Ties go to the earliest candidate.
type MostFollowed struct{}

func (MostFollowed) Select(artists []services.Artist) (*services.Artist, error) {
	if len(artists) == 0 {
		return nil, shared.ErrNoMatch
	}

	best := 0
	for i, artist := range artists {
		if artist.Followers > artists[best].Followers {
			best = i
		}
	}
	return &artists[best], nil
}

func (MostFollowed) Description() string {
	return "pick the candidate with the most followers"
}

// Halt refuses to choose, reporting the candidate URIs so the user can rerun
// with an exact URI. This is the default selector.
type Halt struct{}

func (Halt) Select(artists []services.Artist) (*services.Artist, error) {
	if len(artists) == 0 {
		return nil, shared.ErrNoMatch
	}

	uris := make([]string, 0, len(artists))
	for _, artist := range artists {
		uris = append(uris, artist.URI)
	}
	return nil, fmt.Errorf("%w: %d candidates: %s",
		shared.ErrAmbiguousSelection, len(artists), strings.Join(uris, ", "))
}

func (Halt) Description() string {
	return "stop and report the candidate URIs"
}

// PickFunc prompts for a choice among candidates, returning the chosen index.
type PickFunc func(artists []services.Artist) (int, error)

// Interactive defers the choice to a prompt, typically a terminal picker.
type Interactive struct {
	Pick PickFunc
}

func (s Interactive) Select(artists []services.Artist) (*services.Artist, error) {
	if len(artists) == 0 {
		return nil, shared.ErrNoMatch
	}
	if s.Pick == nil {
		return nil, fmt.Errorf("%w: no prompt available", shared.ErrAmbiguousSelection)
	}

	index, err := s.Pick(artists)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(artists) {
		return nil, fmt.Errorf("%w: choice out of range", shared.ErrInvalidArgument)
	}
	return &artists[index], nil
}

func (Interactive) Description() string {
	return "prompt for a choice among the candidates"
}

// registry maps selector names to constructors. Interactive needs a prompt,
// so it is wired by the caller via [New]'s pick argument.
var registry = map[string]func(pick PickFunc) Selector{
	"most-popular":  func(PickFunc) Selector { return MostPopular{} },
	"most-followed": func(PickFunc) Selector { return MostFollowed{} },
	"halt":          func(PickFunc) Selector { return Halt{} },
	"ask":           func(pick PickFunc) Selector { return Interactive{Pick: pick} },
}

// New returns the named selector, or an error listing the known names.
// pick is only consulted by the "ask" selector and may be nil otherwise.
func New(name string, pick PickFunc) (Selector, error) {
	if name == "" {
		name = "halt"
	}

	construct, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown selector %q (known: %s)",
			shared.ErrInvalidArgument, name, strings.Join(Names(), ", "))
	}
	return construct(pick), nil
}

// Names returns the registered selector names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
