package flags

import (
	"testing"

	"github.com/specialistvlad/gypcmake/internal/fault"
	"github.com/specialistvlad/gypcmake/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	testCases := []struct {
		os   target.OS
		want string
	}{
		{target.Linux, "generic"},
		{target.Darwin, "xcode"},
	}
	for _, tc := range testCases {
		t.Run(string(tc.os), func(t *testing.T) {
			e, err := For(tc.os)
			require.NoError(t, err)
			assert.Equal(t, tc.want, e.Name())
		})
	}

	t.Run("windows is unsupported", func(t *testing.T) {
		e, err := For(target.Windows)
		require.Error(t, err)
		assert.Nil(t, e)
		assert.ErrorIs(t, err, fault.UnsupportedPlatform)
	})
}

func TestGeneric(t *testing.T) {
	n := &target.Node{
		Configurations: map[string]target.Properties{
			"Debug": {Cflags: []string{"-g"}, CflagsC: []string{"-std=c99"}, CflagsCC: []string{"-std=c++17"}},
		},
	}
	g := Generic{}

	assert.Empty(t, g.CompileFlags(n, target.FamilyC)(""))
	assert.Equal(t, []string{"-std=c99", "-g"}, g.CompileFlags(n, target.FamilyC)("Debug"))
	assert.Equal(t, []string{"-std=c++17", "-g"}, g.CompileFlags(n, target.FamilyCC)("Debug"))
	assert.Empty(t, g.CompileFlags(n, target.FamilyCC)("Release"))
}

func TestXcode(t *testing.T) {
	n := &target.Node{
		Configurations: map[string]target.Properties{
			"Release": {XcodeSettings: map[string]any{
				"GCC_GENERATE_DEBUGGING_SYMBOLS": "NO",
				"GCC_OPTIMIZATION_LEVEL":         "3",
				"GCC_SYMBOLS_PRIVATE_EXTERN":     "YES",
				"GCC_C_LANGUAGE_STANDARD":        "c99",
				"CLANG_CXX_LANGUAGE_STANDARD":    "c++0x",
				"CLANG_CXX_LIBRARY":              "libc++",
				"GCC_ENABLE_CPP_RTTI":            "NO",
				"GCC_ENABLE_CPP_EXCEPTIONS":      "NO",
				"OTHER_CFLAGS":                   []any{"-fno-strict-aliasing"},
				"OTHER_CPLUSPLUSFLAGS":           []any{"$(inherited)", "-Wno-narrowing"},
				"WARNING_CFLAGS":                 "-Wall -Wextra",
				"MACOSX_DEPLOYMENT_TARGET":       "10.13",
			}},
			"Debug": {},
		},
	}
	x := Xcode{}

	assert.Empty(t, x.CompileFlags(n, target.FamilyC)(""))

	assert.Equal(t, []string{
		"-std=c99", "-fno-strict-aliasing",
		"-O3", "-fvisibility=hidden", "-mmacosx-version-min=10.13", "-Wall", "-Wextra",
	}, x.CompileFlags(n, target.FamilyC)("Release"))

	assert.Equal(t, []string{
		"-fno-rtti", "-fno-exceptions", "-std=c++11", "-stdlib=libc++",
		"-fno-strict-aliasing", "-Wno-narrowing",
		"-O3", "-fvisibility=hidden", "-mmacosx-version-min=10.13", "-Wall", "-Wextra",
	}, x.CompileFlags(n, target.FamilyCC)("Release"))

	// Defaults: debugging symbols on, optimize for size.
	assert.Equal(t, []string{"-gdwarf-2", "-Os"}, x.CompileFlags(n, target.FamilyC)("Debug"))
}
