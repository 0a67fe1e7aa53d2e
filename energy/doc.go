// Package energy defines the EnergyNode record and the two tabular inputs of a
// renewable-energy network: the Node Registry (id → attributes) and the
// Adjacency Table (undirected 0/1 connectivity matrix).
//
// Loading happens in two separate phases:
//
//	reg, err := energy.LoadNodesFile("nodes.csv")
//	adj, err := energy.LoadAdjacencyFile("adjacency.csv", reg)
//
// The registry is fully built before any adjacency processing begins, because
// the adjacency loader drops every row or column whose identifier is absent
// from the registry.
//
// Node table:
//
//	Name,Production,Loss,Sustainability
//	Solar_1,120,2,95
//	Subestacion_Norte,0,5,60
//
// Header matching is case-insensitive and accent-insensitive, so "Pérdida",
// "Perdida" and "Loss" all resolve to the loss column. Any missing field,
// unparsable or non-finite number, or out-of-range value aborts the whole load
// with a *LoadError wrapping ErrMalformedInput; no partial registry is returned.
//
// Adjacency table:
//
//	,Solar_1,Subestacion_Norte
//	Solar_1,0,1
//	Subestacion_Norte,1,0
//
// A cell equal to "1" connects the row node and the column node in both
// directions. Every other value means "no edge". Short rows are skipped, and
// only a missing or single-cell header is fatal.
//
// Errors:
//
//	ErrMalformedInput  - missing/unparsable field, malformed header, bad range.
//	ErrUnknownNode     - adjacency references an id absent from the registry.
//	ErrSelfLoop        - an edge from a node to itself was requested.
//	ErrOptionViolation - an invalid LoadOption was supplied.
package energy
