package driver

import (
	"context"
	"strings"

	"github.com/specialistvlad/gypcmake/internal/ctxlog"
	"github.com/specialistvlad/gypcmake/internal/fsutil"
)

// generatedFile reports whether a file name is one a run produces.
func generatedFile(name string) bool {
	return name == "CMakeLists.txt" || strings.HasSuffix(name, ".cmake")
}

// Clean removes every CMakeLists.txt and *.cmake file below root.
func Clean(ctx context.Context, root string) ([]string, error) {
	removed, err := fsutil.RemoveFiles(root, generatedFile)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Info("Removed previously generated files.", "count", len(removed))
	return removed, nil
}
