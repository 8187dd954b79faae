// Package suggest derives query completions from a partial query.
package suggest

import (
	"iter"
	"math/rand/v2"
	"strings"

	"github.com/kailas-cloud/feedlens/internal/domain/catalog"
)

// MinQueryLength is the shortest partial query that produces suggestions.
const MinQueryLength = 3

// Picker returns an index in [0, n).
type Picker func(n int) int

// augmentation is a keyword-triggered group of domain completions.
type augmentation struct {
	keywords    []string
	completions []string
}

// augmentations are checked in order; only the first match applies.
var augmentations = []augmentation{
	{
		keywords:    []string{"screen"},
		completions: []string{"infotainment touchscreen responsiveness", "display issues"},
	},
	{
		keywords:    []string{"ac", "cold"},
		completions: []string{"climate control temperature", "air conditioning malfunction"},
	},
	{
		keywords:    []string{"drive", "driving"},
		completions: []string{"driving experience", "driver assistance features"},
	},
}

// Generator produces suggestion sequences. It holds no per-query state.
type Generator struct {
	pick   Picker
	models []string
}

// New creates a generator. A nil picker selects vehicle models uniformly at random.
func New(pick Picker) *Generator {
	if pick == nil {
		pick = rand.IntN
	}
	return &Generator{pick: pick, models: catalog.Models()}
}

// Suggest returns a lazy, restartable sequence of completions for partial.
// The sequence is empty when partial is shorter than MinQueryLength bytes.
func (g *Generator) Suggest(partial string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if len(partial) < MinQueryLength {
			return
		}
		base := []string{
			partial + " issues",
			partial + " problems",
			partial + " not working",
			"problems with " + partial,
		}
		for _, s := range base {
			if !yield(s) {
				return
			}
		}
		if len(g.models) > 0 {
			if !yield(partial + " in " + g.models[g.pick(len(g.models))]) {
				return
			}
		}
		for _, s := range augment(strings.ToLower(partial)) {
			if !yield(s) {
				return
			}
		}
	}
}

func augment(lowered string) []string {
	for _, a := range augmentations {
		for _, kw := range a.keywords {
			if strings.Contains(lowered, kw) {
				return a.completions
			}
		}
	}
	return nil
}
