package mode

// Mode is the search strategy. It gates the approximate-match similarity signal.
type Mode string

// Search mode constants.
const (
	// Hybrid combines exact-match signals with semantic similarity.
	Hybrid   Mode = "hybrid"
	Semantic Mode = "semantic"
	// Keyword scores on exact-match signals only.
	Keyword Mode = "keyword"
)

// All lists the supported modes.
func All() []Mode { return []Mode{Hybrid, Semantic, Keyword} }

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Hybrid || m == Semantic || m == Keyword
}

// UsesSimilarity reports whether the similarity signal contributes to the score.
func (m Mode) UsesSimilarity() bool { return m != Keyword }
