package driven

// NamingStrategy assigns identifiers to atoms during atomization.
//
// GenerateID must be deterministic over its inputs and the traversal order
// of the atomizer, so that re-atomizing identical input with identical
// configuration yields identical ids for every corresponding atom.
// Strategies that keep per-run counters satisfy this because the registry
// hands the atomizer a fresh instance per run via NamingFactory.
type NamingStrategy interface {
	// GenerateID produces the id for an atom given its level name, its
	// index among siblings, the ancestor ids from root downward, and the
	// atom's trimmed text.
	GenerateID(level string, localIndex int, ancestorIDs []string, text string) string
}

// NamingFactory constructs a fresh naming strategy for one atomization run.
type NamingFactory func() NamingStrategy
