package cmake

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/specialistvlad/gypcmake/internal/props"
	"github.com/specialistvlad/gypcmake/internal/target"
)

const indentStep = 4

// Statement names the writer gives special treatment.
const (
	AddDependencies          = "add_dependencies"
	TargetLinkLibraries      = "target_link_libraries"
	TargetCompileOptions     = "target_compile_options"
	TargetIncludeDirectories = "target_include_directories"
	TargetCompileDefinitions = "target_compile_definitions"
)

// Writer emits statements into a buffer. It is not safe for concurrent use;
// create one per node block.
type Writer struct {
	buf        *bytes.Buffer
	indent     int
	genRoot    string
	interfaces map[string]struct{}
}

// NewWriter creates a Writer appending to buf. genRoot is the resolved
// generated-output directory, used for the shared dummy source.
func NewWriter(buf *bytes.Buffer, genRoot string) *Writer {
	return &Writer{
		buf:        buf,
		genRoot:    genRoot,
		interfaces: make(map[string]struct{}),
	}
}

// line writes one indented line. An empty line is written without
// indentation.
func (w *Writer) line(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	if s != "" {
		w.buf.WriteString(strings.Repeat(" ", w.indent))
		w.buf.WriteString(s)
	}
	w.buf.WriteByte('\n')
}

// end closes a statement and leaves a blank line after it.
func (w *Writer) end(closer string) {
	w.line("%s", closer)
	w.line("")
}

func (w *Writer) exposure(statement, name string) string {
	if statement == AddDependencies {
		return ""
	}
	if _, ok := w.interfaces[name]; ok {
		return " INTERFACE"
	}
	if statement == TargetLinkLibraries {
		return " PUBLIC"
	}
	return " PRIVATE"
}

// PlatformStart opens a block guarded by the system name.
func (w *Writer) PlatformStart(os target.OS) {
	w.line("if(CMAKE_SYSTEM_NAME STREQUAL %s)", os)
	w.indent += indentStep
}

// PlatformEnd closes the block opened by PlatformStart.
func (w *Writer) PlatformEnd() {
	w.indent -= indentStep
	w.line("endif()")
}

// Properties writes an unconditional property statement. Nothing is written
// for an empty token list.
func (w *Writer) Properties(statement, name string, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	w.line("%s(", statement)
	w.line("    %s%s", name, w.exposure(statement, name))
	for _, tok := range tokens {
		w.line("    %s", tok)
	}
	w.end(")")
}

// ConfigurationProperties writes a property statement guarded by the build
// type. Empty tokens are skipped.
func (w *Writer) ConfigurationProperties(statement, name, configuration string, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	w.line("if(CMAKE_BUILD_TYPE STREQUAL %q)", configuration)
	w.line("    %s(", statement)
	w.line("        %s%s", name, w.exposure(statement, name))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		w.line("        %s", tok)
	}
	w.line("    )")
	w.end("endif()")
}

// Plan writes the unconditional part of plan followed by its guarded blocks.
func (w *Writer) Plan(statement, name string, plan props.Plan) {
	if plan.Empty() {
		return
	}
	w.Properties(statement, name, plan.Common)
	for _, g := range plan.Guards {
		w.ConfigurationProperties(statement, name, g.Configuration, g.Tokens)
	}
}

// CustomCommand declares one generation step run from the source directory.
func (w *Writer) CustomCommand(a target.Action) {
	w.line("add_custom_command(")
	w.line("    OUTPUT %s", strings.Join(a.Outputs, " "))
	w.line("    DEPENDS %s", strings.Join(a.Inputs, " "))
	w.line("    COMMAND %s", strings.Join(a.Command, " "))
	w.line("    WORKING_DIRECTORY ${CMAKE_CURRENT_SOURCE_DIR}")
	w.end(")")
}

// GeneratedLibrary declares a library built from the shared dummy source
// plus srcs. libType is "STATIC", "SHARED" or empty.
func (w *Writer) GeneratedLibrary(name, libType string, srcs []string) {
	w.line("add_library(")
	w.line("    %s", withSuffix(name, libType))
	w.line("    %s/dummy.cc", w.genRoot)
	for _, s := range srcs {
		w.line("    %s", s)
	}
	w.end(")")
}

// CustomTarget declares an aggregate target that only sequences deps and srcs.
func (w *Writer) CustomTarget(name string, deps, srcs []string) {
	w.line("add_custom_target(")
	w.line("    %s", name)
	if len(deps) > 0 || len(srcs) > 0 {
		w.line("    DEPENDS")
	}
	for _, d := range deps {
		w.line("    %s", d)
	}
	for _, s := range srcs {
		w.line("    %s", s)
	}
	w.end(")")
}

// ObjectGroupName is the name of the object library compiling family's
// sources of name.
func ObjectGroupName(name string, family target.Family) string {
	return name + "-" + string(family)
}

// ObjectLibrary declares the object group of one family. srcs must already
// be sorted.
func (w *Writer) ObjectLibrary(name string, family target.Family, srcs []string) {
	w.line("add_library(")
	w.line("    %s OBJECT", ObjectGroupName(name, family))
	for _, s := range srcs {
		w.line("    %s", s)
	}
	w.end(")")
}

// InterfaceLibrary declares name as INTERFACE. Every later statement about
// name written by this Writer carries the INTERFACE qualifier.
func (w *Writer) InterfaceLibrary(name string) {
	w.line("add_library(")
	w.line("    %s INTERFACE", name)
	w.end(")")
	w.interfaces[name] = struct{}{}
}

// Artifact declares the library or executable linking the object groups of
// families.
func (w *Writer) Artifact(kind target.Kind, name string, families []target.Family) {
	statement := "add_library"
	if kind == target.Executable {
		statement = "add_executable"
	}
	w.line("%s(", statement)
	w.line("    %s", withSuffix(name, LibraryType(kind)))
	for _, f := range families {
		w.line("    $<TARGET_OBJECTS:%s>", ObjectGroupName(name, f))
	}
	w.end(")")
}

// MarkGenerated flags srcs as produced during the build.
func (w *Writer) MarkGenerated(srcs []string) {
	if len(srcs) == 0 {
		return
	}
	w.line("set_source_files_properties(")
	for _, s := range srcs {
		w.line("    %s", s)
	}
	w.line("    PROPERTIES GENERATED TRUE")
	w.end(")")
}

// Copy stages files into a destination at configure time.
func (w *Writer) Copy(c target.Copy) {
	w.line("file(")
	w.line("    COPY")
	for _, f := range c.Files {
		w.line("    %s", f)
	}
	w.line("    DESTINATION %s", c.Destination)
	w.end(")")
}

// LibraryType returns the add_library type keyword for kind.
func LibraryType(kind target.Kind) string {
	switch kind {
	case target.StaticLibrary:
		return "STATIC"
	case target.SharedLibrary:
		return "SHARED"
	}
	return ""
}

func withSuffix(name, suffix string) string {
	if suffix == "" {
		return name
	}
	return name + " " + suffix
}
