// internal/targetid/parser.go
package targetid

import (
	"path"
	"strings"

	"github.com/specialistvlad/gypcmake/internal/fault"
)

// Parse splits a raw identifier into its path, name and toolset parts. The
// last ':' separates the path from the name so drive-letter paths survive.
func Parse(raw string) (*ID, error) {
	i := strings.LastIndex(raw, ":")
	if i < 0 {
		return nil, fault.New(fault.InvalidIdentifier, raw, "missing ':' separator")
	}
	p, rest := raw[:i], raw[i+1:]
	if p == "" {
		return nil, fault.New(fault.InvalidIdentifier, raw, "empty path")
	}

	id := &ID{Path: p, Name: rest}
	if j := strings.Index(rest, "#"); j >= 0 {
		id.Name, id.Toolset = rest[:j], rest[j+1:]
	}
	if id.Name == "" {
		return nil, fault.New(fault.InvalidIdentifier, raw, "empty target name")
	}
	return id, nil
}

// String serializes the ID back to `<path>:<name>[#<toolset>]`.
func (id *ID) String() string {
	if id == nil {
		return ""
	}
	if id.Toolset == "" {
		return id.Path + ":" + id.Name
	}
	return id.Path + ":" + id.Name + "#" + id.Toolset
}

// Dir returns the directory part of the path, "" for the top level.
func (id *ID) Dir() string {
	d := path.Dir(id.Path)
	if d == "." || d == "/" {
		return ""
	}
	return d
}

// Escapes reports whether the directory of a normalized id climbs above the
// working root or is absolute. Such ids have no place in the output tree.
func (id *ID) Escapes() bool {
	d := path.Clean(path.Dir(id.Path))
	return d == ".." || strings.HasPrefix(d, "../") || path.IsAbs(d)
}

// ShortName returns the target name of a raw or normalized identifier.
func ShortName(raw string) (string, error) {
	id, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return id.Name, nil
}
