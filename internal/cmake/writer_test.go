package cmake

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gypcmake/internal/props"
	"github.com/specialistvlad/gypcmake/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const genRoot = "${CMAKE_BINARY_DIR}/generated_abc"

func TestWriter_Exposure(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, genRoot)

	assert.Equal(t, "", w.exposure(AddDependencies, "lib"))
	assert.Equal(t, " PUBLIC", w.exposure(TargetLinkLibraries, "lib"))
	assert.Equal(t, " PRIVATE", w.exposure(TargetCompileDefinitions, "lib"))

	w.InterfaceLibrary("lib")
	require.Contains(t, buf.String(), "    lib INTERFACE\n")
	assert.Equal(t, "", w.exposure(AddDependencies, "lib"))
	assert.Equal(t, " INTERFACE", w.exposure(TargetLinkLibraries, "lib"))
	assert.Equal(t, " INTERFACE", w.exposure(TargetCompileDefinitions, "lib"))
	assert.Equal(t, " PRIVATE", w.exposure(TargetCompileDefinitions, "other"))
}

func TestWriter_PlatformBlock(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, genRoot)

	w.PlatformStart(target.Linux)
	w.Plan(TargetCompileDefinitions, "lib", props.Plan{
		Common: []string{"A"},
		Guards: []props.Block{{Configuration: "Release", Tokens: []string{"B", ""}}},
	})
	w.Properties(AddDependencies, "lib", []string{"tool"})
	w.Properties(TargetIncludeDirectories, "lib", nil)
	w.PlatformEnd()

	want := `if(CMAKE_SYSTEM_NAME STREQUAL Linux)
    target_compile_definitions(
        lib PRIVATE
        A
    )

    if(CMAKE_BUILD_TYPE STREQUAL "Release")
        target_compile_definitions(
            lib PRIVATE
            B
        )
    endif()

    add_dependencies(
        lib
        tool
    )

endif()
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("block mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_Statements(t *testing.T) {
	testCases := []struct {
		name  string
		write func(w *Writer)
		want  string
	}{
		{
			name: "custom command",
			write: func(w *Writer) {
				w.CustomCommand(target.Action{
					Inputs:  []string{"gen.py", "in.txt"},
					Outputs: []string{genRoot + "/out.cc"},
					Command: []string{"python", "gen.py"},
				})
			},
			want: "add_custom_command(\n" +
				"    OUTPUT " + genRoot + "/out.cc\n" +
				"    DEPENDS gen.py in.txt\n" +
				"    COMMAND python gen.py\n" +
				"    WORKING_DIRECTORY ${CMAKE_CURRENT_SOURCE_DIR}\n" +
				")\n\n",
		},
		{
			name:  "generated library",
			write: func(w *Writer) { w.GeneratedLibrary("proto", "STATIC", []string{genRoot + "/a.pb.cc"}) },
			want: "add_library(\n" +
				"    proto STATIC\n" +
				"    " + genRoot + "/dummy.cc\n" +
				"    " + genRoot + "/a.pb.cc\n" +
				")\n\n",
		},
		{
			name:  "custom target",
			write: func(w *Writer) { w.CustomTarget("stamp", []string{"tool"}, []string{"out.h"}) },
			want:  "add_custom_target(\n    stamp\n    DEPENDS\n    tool\n    out.h\n)\n\n",
		},
		{
			name:  "empty custom target",
			write: func(w *Writer) { w.CustomTarget("stamp", nil, nil) },
			want:  "add_custom_target(\n    stamp\n)\n\n",
		},
		{
			name:  "object library",
			write: func(w *Writer) { w.ObjectLibrary("base", target.FamilyCC, []string{"a.cc", "b.h"}) },
			want:  "add_library(\n    base-cc OBJECT\n    a.cc\n    b.h\n)\n\n",
		},
		{
			name:  "interface library",
			write: func(w *Writer) { w.InterfaceLibrary("config") },
			want:  "add_library(\n    config INTERFACE\n)\n\n",
		},
		{
			name: "shared artifact",
			write: func(w *Writer) {
				w.Artifact(target.SharedLibrary, "base", []target.Family{target.FamilyC, target.FamilyCC})
			},
			want: "add_library(\n    base SHARED\n    $<TARGET_OBJECTS:base-c>\n    $<TARGET_OBJECTS:base-cc>\n)\n\n",
		},
		{
			name:  "executable artifact",
			write: func(w *Writer) { w.Artifact(target.Executable, "app", []target.Family{target.FamilyCC}) },
			want:  "add_executable(\n    app\n    $<TARGET_OBJECTS:app-cc>\n)\n\n",
		},
		{
			name:  "generated marks",
			write: func(w *Writer) { w.MarkGenerated([]string{"x.cc"}) },
			want:  "set_source_files_properties(\n    x.cc\n    PROPERTIES GENERATED TRUE\n)\n\n",
		},
		{
			name:  "no generated marks",
			write: func(w *Writer) { w.MarkGenerated(nil) },
			want:  "",
		},
		{
			name:  "copy",
			write: func(w *Writer) { w.Copy(target.Copy{Destination: "out/res", Files: []string{"a.png", "b.png"}}) },
			want:  "file(\n    COPY\n    a.png\n    b.png\n    DESTINATION out/res\n)\n\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tc.write(NewWriter(&buf, genRoot))
			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Errorf("statement mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRootIndex_Render(t *testing.T) {
	idx := RootIndex{
		MinimumVersion: "3.8",
		GeneratedRoot:  genRoot,
		Includes:       []string{"zlib", "all"},
		Subdirectories: []string{"third_party/icu", "base"},
	}

	want := "cmake_minimum_required(VERSION 3.8)\n\n" +
		"file(WRITE " + genRoot + "/dummy.cc \"\")\n\n" +
		"include(all.cmake)\n" +
		"include(zlib.cmake)\n" +
		"add_subdirectory(base)\n" +
		"add_subdirectory(third_party/icu)\n"
	assert.Equal(t, want, string(idx.Render()))
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "CMakeLists.txt", ListsPath(""))
	assert.Equal(t, "base/CMakeLists.txt", ListsPath("base"))
	assert.Equal(t, "base/base.cmake", FragmentPath("base", "base"))
	assert.Equal(t, "all.cmake", FragmentPath("", "all"))
	assert.Equal(t, "include(all.cmake)\n", IncludeLine("all"))
}

func TestWriter_EmptyPlanWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, genRoot)

	w.Plan(TargetCompileOptions, "lib", props.Plan{Guards: []props.Block{{Configuration: "Debug"}}})
	assert.Zero(t, buf.Len())
}
