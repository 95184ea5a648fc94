/*
Package target holds the in-memory model of one platform's build-target graph:
nodes (libraries, executables, pseudo-targets), their generation actions,
per-configuration property bags and dependency edges.

The model is populated once per platform pass from a snapshot and is treated
as read-only afterwards; every later stage derives new values from it instead
of mutating it.
*/
package target
