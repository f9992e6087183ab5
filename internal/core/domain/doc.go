// Package domain contains the core entities of the lexframe analysis engine.
//
// The central structure is the atom hierarchy: a Document owns a flat arena
// of Atoms linked by indices, a Corpus groups Documents under one Schema,
// and analysis modules produce AnalysisOutput values over the frozen tree.
//
// Domain types carry no behaviour that touches I/O. Extraction, rendering
// and persistence live in adapter packages.
package domain
