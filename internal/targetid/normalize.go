// internal/targetid/normalize.go
package targetid

import (
	"path"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoSize bounds a Memo when no size is given.
const DefaultMemoSize = 1 << 16

// Normalize rewrites raw into its portable form against root.
func Normalize(raw, root string, style Style) (string, error) {
	id, err := Parse(raw)
	if err != nil {
		return "", err
	}

	var p string
	switch style {
	case Windows:
		p = strings.TrimLeft(strings.ReplaceAll(id.Path, `\`, "/"), "/")
	default:
		p = relativeTo(root, id.Path)
	}
	return (&ID{Path: p, Name: id.Name}).String(), nil
}

// relativeTo resolves the directory of p against root and re-attaches the
// file name. Already-relative paths are only cleaned, which keeps
// normalization idempotent.
func relativeTo(root, p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if !path.IsAbs(p) || root == "" {
		return strings.TrimPrefix(path.Clean(p), "./")
	}

	dir := rel(path.Clean(root), path.Dir(path.Clean(p)))
	file := path.Base(p)
	if dir == "" {
		return file
	}
	return dir + "/" + file
}

// rel returns target relative to base. Both must be clean absolute paths.
// The result is "" when they are equal.
func rel(base, target string) string {
	if base == target {
		return ""
	}
	b := split(base)
	t := split(target)
	common := 0
	for common < len(b) && common < len(t) && b[common] == t[common] {
		common++
	}

	parts := make([]string, 0, len(b)-common+len(t)-common)
	for i := common; i < len(b); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, t[common:]...)
	return strings.Join(parts, "/")
}

func split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Memo caches normalized ids across every pass of a run. Platforms of one
// snapshot usually share a root, so the same ids recur in each pass and in
// every dependent's list. Safe for concurrent use by parallel passes.
type Memo struct {
	cache *lru.Cache[memoKey, string]
}

type memoKey struct {
	root  string
	style Style
	raw   string
}

// NewMemo creates a Memo holding at most size ids. A non-positive size
// falls back to DefaultMemoSize.
func NewMemo(size int) *Memo {
	if size <= 0 {
		size = DefaultMemoSize
	}
	cache, err := lru.New[memoKey, string](size)
	if err != nil {
		panic(err)
	}
	return &Memo{cache: cache}
}

// Len returns the number of cached ids.
func (m *Memo) Len() int {
	return m.cache.Len()
}

// Normalizer normalizes ids against a fixed root and style through a Memo.
type Normalizer struct {
	root  string
	style Style
	memo  *Memo
}

// NewNormalizer creates a Normalizer for one platform pass. A nil memo gets
// a private one.
func NewNormalizer(root string, style Style, memo *Memo) *Normalizer {
	if memo == nil {
		memo = NewMemo(DefaultMemoSize)
	}
	return &Normalizer{root: root, style: style, memo: memo}
}

// Normalize returns the portable form of raw.
func (n *Normalizer) Normalize(raw string) (string, error) {
	key := memoKey{root: n.root, style: n.style, raw: raw}
	if v, ok := n.memo.cache.Get(key); ok {
		return v, nil
	}
	v, err := Normalize(raw, n.root, n.style)
	if err != nil {
		return "", err
	}
	n.memo.cache.Add(key, v)
	return v, nil
}

// NormalizeAll normalizes every id in raws, keeping order and duplicates.
func (n *Normalizer) NormalizeAll(raws []string) ([]string, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(raws))
	for _, r := range raws {
		v, err := n.Normalize(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
