// internal/targetid/types.go
package targetid

// Style selects how the path part of an identifier is rewritten.
type Style int

const (
	// Posix paths are absolute and get resolved against the working root.
	Posix Style = iota
	// Windows paths are already root-relative and only get their separators
	// rewritten.
	Windows
)

// ID is the structured form of a target identifier.
type ID struct {
	// Path is the build file the target is declared in.
	Path string
	// Name is the short target name, unique within one output directory.
	Name string
	// Toolset is the optional `#` suffix, e.g. "target" or "host".
	Toolset string
}
