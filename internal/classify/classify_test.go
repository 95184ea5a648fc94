package classify

import (
	"errors"
	"testing"

	"github.com/specialistvlad/gypcmake/internal/fault"
	"github.com/specialistvlad/gypcmake/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const genRoot = "${CMAKE_BINARY_DIR}/generated_abc"

var opts = Options{HeaderExtensions: []string{".h"}, GeneratedRoot: genRoot}

func TestClassify_Shapes(t *testing.T) {
	g := &target.Graph{Nodes: map[string]*target.Node{
		"a.gyp:app": {Kind: target.Executable, Sources: []string{"main.cc"}},
		"a.gyp:lib": {Kind: target.StaticLibrary, Sources: []string{"lib.cc", "lib.h"}},
		"a.gyp:gen": {Kind: target.StaticLibrary, Actions: []target.Action{{
			Outputs:          []string{genRoot + "/proto.pb.cc"},
			FeedsCompilation: true,
		}}},
		"a.gyp:headers": {Kind: target.None, Sources: []string{"api.h"}},
		"a.gyp:empty":   {Kind: target.SharedLibrary},
		"a.gyp:script": {Kind: target.None, Actions: []target.Action{{
			Outputs:          []string{genRoot + "/version.h", "out/stamp"},
			FeedsCompilation: true,
		}}},
		"a.gyp:tool": {Kind: target.Executable},
	}}

	r, err := Classify(g, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.gyp:app", "a.gyp:tool"}, r.Executables())
	assert.Equal(t, []string{"a.gyp:gen"}, r.GeneratedLibraries())
	assert.Equal(t, []string{"a.gyp:empty", "a.gyp:headers", "a.gyp:script", "a.gyp:tool"}, r.InterfaceLibraries())
	assert.Equal(t, []string{genRoot + "/proto.pb.cc", genRoot + "/version.h"}, r.GeneratedSources())

	assert.Equal(t, Compiled, r.ShapeOf("a.gyp:lib"))
	assert.Equal(t, Compiled, r.ShapeOf("a.gyp:app"))
	assert.Equal(t, GeneratedLibrary, r.ShapeOf("a.gyp:gen"))
	assert.Equal(t, InterfaceLibrary, r.ShapeOf("a.gyp:tool"))
}

func TestClassify_Completeness(t *testing.T) {
	g := &target.Graph{Nodes: map[string]*target.Node{}}
	kinds := []target.Kind{target.StaticLibrary, target.SharedLibrary, target.Executable, target.None}
	sourceSets := [][]string{nil, {"x.h"}, {"x.c"}}
	actionSets := [][]target.Action{nil, {{Outputs: []string{genRoot + "/x.c"}, FeedsCompilation: true}}, {{Outputs: []string{"y"}}}}
	i := 0
	for _, k := range kinds {
		for _, s := range sourceSets {
			for _, a := range actionSets {
				g.Nodes["n.gyp:"+string(rune('a'+i))] = &target.Node{Kind: k, Sources: s, Actions: a}
				i++
			}
		}
	}

	r, err := Classify(g, opts)
	require.NoError(t, err)
	for id, n := range g.Nodes {
		gen, iface := r.IsGeneratedLibrary(id), r.IsInterfaceLibrary(id)
		assert.False(t, gen && iface, "%s classified twice", id)
		if n.HasRealSources(opts.HeaderExtensions) {
			assert.False(t, gen || iface, "%s has real sources", id)
		} else {
			assert.True(t, gen || iface, "%s left unclassified", id)
		}
		assert.Equal(t, n.Kind == target.Executable, r.IsExecutable(id))
	}
}

func TestClassify_ZeroSourcesZeroActionsIsInterface(t *testing.T) {
	for _, k := range []target.Kind{target.StaticLibrary, target.SharedLibrary, target.None, target.Executable} {
		g := &target.Graph{Nodes: map[string]*target.Node{"a.gyp:x": {Kind: k}}}
		r, err := Classify(g, opts)
		require.NoError(t, err)
		assert.True(t, r.IsInterfaceLibrary("a.gyp:x"), string(k))
		assert.False(t, r.IsGeneratedLibrary("a.gyp:x"), string(k))
	}
}

func TestClassify_InvalidKind(t *testing.T) {
	g := &target.Graph{Nodes: map[string]*target.Node{"a.gyp:mod": {Kind: "loadable_module"}}}
	_, err := Classify(g, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.InvalidTarget))
	assert.Contains(t, err.Error(), "a.gyp:mod")
}
