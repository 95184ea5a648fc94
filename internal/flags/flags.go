// Package flags provides the per-platform compiler-settings emulators. An
// emulator answers "which compile flags does configuration X of family Y
// get"; the rest of the pipeline treats it as an opaque capability chosen
// once per platform pass.
package flags

import (
	"github.com/specialistvlad/gypcmake/internal/fault"
	"github.com/specialistvlad/gypcmake/internal/props"
	"github.com/specialistvlad/gypcmake/internal/target"
)

// Emulator extracts compile flags for a node.
type Emulator interface {
	// Name identifies the emulator in logs.
	Name() string
	// CompileFlags returns the flag accessor for one family of n. The general
	// (configuration-less) list is always empty: compile flags only exist per
	// configuration.
	CompileFlags(n *target.Node, family target.Family) props.Accessor
}

// For selects the emulator for a platform. Platforms without an emulator are
// rejected with fault.UnsupportedPlatform before anything is emitted for them.
func For(os target.OS) (Emulator, error) {
	switch os {
	case target.Darwin:
		return Xcode{}, nil
	case target.Linux:
		return Generic{}, nil
	}
	return nil, fault.New(fault.UnsupportedPlatform, string(os), "no compiler-settings emulation available")
}

// Generic reads cflags, cflags_c and cflags_cc straight from the
// configuration bag.
type Generic struct{}

// Name implements Emulator.
func (Generic) Name() string { return "generic" }

// CompileFlags implements Emulator.
func (Generic) CompileFlags(n *target.Node, family target.Family) props.Accessor {
	return func(configuration string) []string {
		if configuration == "" {
			return nil
		}
		cfg, ok := n.Configuration(configuration)
		if !ok {
			return nil
		}

		var out []string
		switch family {
		case target.FamilyC:
			out = append(out, cfg.CflagsC...)
		case target.FamilyCC:
			out = append(out, cfg.CflagsCC...)
		}
		return append(out, cfg.Cflags...)
	}
}
