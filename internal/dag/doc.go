// Package dag is the validation layer of a platform pass. It mirrors a
// target graph as a plain directed graph of ids so the driver can reject
// edges to unknown nodes before anything is written and report dependency
// cycles.
//
// Edges point from a dependency to its dependent, so a node's deps are its
// predecessors.
package dag
