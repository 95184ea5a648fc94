package dag

import (
	"sort"
	"sync"
)

// Graph is a directed graph of target ids. Methods are safe for concurrent use.
type Graph struct {
	mutex    sync.RWMutex
	vertices map[string]*vertex
}

// vertex holds the edge sets of one id. in lists the ids it depends on, out
// the ids that depend on it.
type vertex struct {
	id  string
	in  idSet
	out idSet
}

type idSet map[string]struct{}

func (s idSet) sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
