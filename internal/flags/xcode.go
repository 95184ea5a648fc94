package flags

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/gypcmake/internal/props"
	"github.com/specialistvlad/gypcmake/internal/target"
)

// Xcode derives compile flags from a configuration's xcode_settings the way
// Xcode would pass them to clang.
type Xcode struct{}

// Name implements Emulator.
func (Xcode) Name() string { return "xcode" }

// CompileFlags implements Emulator.
func (x Xcode) CompileFlags(n *target.Node, family target.Family) props.Accessor {
	return func(configuration string) []string {
		if configuration == "" {
			return nil
		}
		cfg, ok := n.Configuration(configuration)
		if !ok {
			return nil
		}
		s := settings(cfg.XcodeSettings)

		var out []string
		switch family {
		case target.FamilyC:
			out = append(out, s.cflagsC()...)
		case target.FamilyCC:
			out = append(out, s.cflagsCC()...)
		}
		return append(out, s.cflags()...)
	}
}

type settings map[string]any

func (s settings) str(key, def string) string {
	v, ok := s[key]
	if !ok || v == nil {
		return def
	}
	return fmt.Sprint(v)
}

func (s settings) is(key, want, def string) bool {
	return s.str(key, def) == want
}

// list accepts either a list value or a whitespace-separated string.
func (s settings) list(key string) []string {
	switch v := s[key].(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		return strings.Fields(v)
	default:
		return []string{fmt.Sprint(v)}
	}
}

func (s settings) cflags() []string {
	var out []string
	if s.is("GCC_GENERATE_DEBUGGING_SYMBOLS", "YES", "YES") {
		switch s.str("DEBUG_INFORMATION_FORMAT", "dwarf") {
		case "dwarf", "dwarf-with-dsym":
			out = append(out, "-gdwarf-2")
		}
	}
	out = append(out, "-O"+s.str("GCC_OPTIMIZATION_LEVEL", "s"))
	if s.is("GCC_SYMBOLS_PRIVATE_EXTERN", "YES", "NO") {
		out = append(out, "-fvisibility=hidden")
	}
	if s.is("GCC_TREAT_WARNINGS_AS_ERRORS", "YES", "NO") {
		out = append(out, "-Werror")
	}
	if s.is("GCC_WARN_ABOUT_MISSING_NEWLINE", "YES", "NO") {
		out = append(out, "-Wnewline-eof")
	}
	if v := s.str("MACOSX_DEPLOYMENT_TARGET", ""); v != "" {
		out = append(out, "-mmacosx-version-min="+v)
	}
	return append(out, s.list("WARNING_CFLAGS")...)
}

func (s settings) cflagsC() []string {
	var out []string
	switch std := s.str("GCC_C_LANGUAGE_STANDARD", ""); std {
	case "":
	case "ansi":
		out = append(out, "-ansi")
	default:
		out = append(out, "-std="+std)
	}
	return append(out, s.list("OTHER_CFLAGS")...)
}

func (s settings) cflagsCC() []string {
	var out []string
	if s.is("GCC_ENABLE_CPP_RTTI", "NO", "YES") {
		out = append(out, "-fno-rtti")
	}
	if s.is("GCC_ENABLE_CPP_EXCEPTIONS", "NO", "YES") {
		out = append(out, "-fno-exceptions")
	}
	if s.is("GCC_INLINES_ARE_PRIVATE_EXTERN", "YES", "NO") {
		out = append(out, "-fvisibility-inlines-hidden")
	}
	if s.is("GCC_THREADSAFE_STATICS", "NO", "YES") {
		out = append(out, "-fno-threadsafe-statics")
	}
	if std := s.str("CLANG_CXX_LANGUAGE_STANDARD", ""); std != "" {
		out = append(out, "-std="+cxxStandard(std))
	}
	if lib := s.str("CLANG_CXX_LIBRARY", ""); lib != "" {
		out = append(out, "-stdlib="+lib)
	}

	other, ok := s["OTHER_CPLUSPLUSFLAGS"]
	if !ok || other == nil {
		return append(out, s.list("OTHER_CFLAGS")...)
	}
	for _, flag := range s.list("OTHER_CPLUSPLUSFLAGS") {
		switch flag {
		case "$inherited", "$(inherited)", "${inherited}":
			out = append(out, s.list("OTHER_CFLAGS")...)
		default:
			out = append(out, flag)
		}
	}
	return out
}

// cxxStandard maps Xcode's pre-standard spellings to the ones clang accepts.
func cxxStandard(std string) string {
	switch std {
	case "c++0x":
		return "c++11"
	case "gnu++0x":
		return "gnu++11"
	}
	return std
}
