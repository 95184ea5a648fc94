package cmake

import (
	"bytes"
	"fmt"
	"path"
	"sort"
)

// RootIndex describes the top-level CMakeLists.txt.
type RootIndex struct {
	MinimumVersion string
	GeneratedRoot  string
	// Includes are fragment names (without extension) living at the top level.
	Includes []string
	// Subdirectories hold their own CMakeLists.txt.
	Subdirectories []string
}

// Render writes the root index. Includes and subdirectories are sorted.
func (r RootIndex) Render() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "cmake_minimum_required(VERSION %s)\n\n", r.MinimumVersion)
	fmt.Fprintf(&buf, "file(WRITE %s/dummy.cc \"\")\n\n", r.GeneratedRoot)

	includes := append([]string(nil), r.Includes...)
	sort.Strings(includes)
	for _, name := range includes {
		fmt.Fprintf(&buf, "include(%s)\n", FragmentName(name))
	}

	dirs := append([]string(nil), r.Subdirectories...)
	sort.Strings(dirs)
	for _, dir := range dirs {
		fmt.Fprintf(&buf, "add_subdirectory(%s)\n", dir)
	}
	return buf.Bytes()
}

// IncludeLine is the statement a directory's CMakeLists.txt uses to pull in
// the fragment of name.
func IncludeLine(name string) string {
	return fmt.Sprintf("include(%s)\n", FragmentName(name))
}

// FragmentName is the file name of a target's fragment.
func FragmentName(name string) string {
	return name + ".cmake"
}

// ListsPath returns the CMakeLists.txt path of dir ("" for the top level).
func ListsPath(dir string) string {
	return path.Join(dir, "CMakeLists.txt")
}

// FragmentPath returns the fragment path of name in dir.
func FragmentPath(dir, name string) string {
	return path.Join(dir, FragmentName(name))
}
