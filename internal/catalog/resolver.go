package catalog

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"
)

// similarityFloor is the minimum normalized similarity for an approximate
// match to be offered as a suggestion.
const similarityFloor = 0.6

type displayNameLister interface {
	ListDisplayNames(ctx context.Context) ([]string, error)
}

// Resolver suggests catalog display names for free-text item names. It only
// enriches error messages; it never substitutes a resolved name into a
// mutation.
type Resolver struct {
	catalog displayNameLister
}

// NewResolver builds a resolver over the catalog's display names.
func NewResolver(catalog displayNameLister) *Resolver {
	return &Resolver{catalog: catalog}
}

// FindClosestNames returns the best catalog suggestion for each input name.
// Names with no approximate or substring match map to an empty string.
func (r *Resolver) FindClosestNames(ctx context.Context, names []string) (map[string]string, error) {
	candidates, err := r.catalog.ListDisplayNames(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = closest(name, candidates)
	}
	return out, nil
}

// closest picks the most similar candidate above the similarity floor,
// falling back to case-insensitive substring containment.
func closest(name string, candidates []string) string {
	best := ""
	bestScore := similarityFloor
	for _, candidate := range candidates {
		if score := similarity(name, candidate); score >= bestScore {
			best = candidate
			bestScore = score
		}
	}
	if best != "" {
		return best
	}

	lower := strings.ToLower(name)
	for _, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate), lower) {
			return candidate
		}
	}
	return ""
}

func similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
