package translate

import (
	"github.com/specialistvlad/gypcmake/internal/props"
	"github.com/specialistvlad/gypcmake/internal/target"
)

// bagAccessor reads one field of the general bag or of a configuration bag.
func bagAccessor(n *target.Node, field func(p target.Properties) []string) props.Accessor {
	return func(configuration string) []string {
		if configuration == "" {
			return field(n.Properties)
		}
		cfg, ok := n.Configuration(configuration)
		if !ok {
			return nil
		}
		return field(cfg)
	}
}

func includeDirs(n *target.Node) props.Accessor {
	return bagAccessor(n, func(p target.Properties) []string { return p.IncludeDirs })
}

func defines(n *target.Node) props.Accessor {
	return bagAccessor(n, func(p target.Properties) []string { return p.Defines })
}

// linkLibraries puts the link dependencies ahead of the general libraries
// and linker flags. Configurations contribute their own libraries and flags.
func linkLibraries(n *target.Node, linkNames []string) props.Accessor {
	bag := bagAccessor(n, func(p target.Properties) []string {
		out := append([]string(nil), p.Libraries...)
		return append(out, p.Ldflags...)
	})
	return func(configuration string) []string {
		if configuration != "" {
			return bag(configuration)
		}
		out := append([]string(nil), linkNames...)
		return append(out, bag("")...)
	}
}
