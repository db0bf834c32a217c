// Package spreadsheet implements an incremental calculation engine for a
// grid of named cells. cells hold literals or formulas; formulas are parsed
// into expression trees, tracked in a dependency graph, and recomputed in
// topological order after every write.
package spreadsheet
