package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/gptcode/internal/tool"
)

const listDirName = "list_dir"

// ListDirTool lists one directory level.
type ListDirTool struct {
	fileOps dirLister
	paths   pathResolver
}

// NewListDirTool creates a ListDirTool with injected dependencies.
func NewListDirTool(fileOps dirLister, paths pathResolver) *ListDirTool {
	return &ListDirTool{fileOps: fileOps, paths: paths}
}

// Tool wraps the ListDirTool for the dispatch registry.
func (t *ListDirTool) Tool() tool.Tool {
	return tool.NewReadOnly(tool.Declaration{
		Name:        listDirName,
		Description: "List the entries of a directory, one per line as d<TAB>name or f<TAB>name.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path": {Type: tool.TypeString, Description: "Directory to list; ~ and relative paths allowed."},
			},
			Required: []string{"path"},
		},
	}, t.Run)
}

// Run lists the directory sorted by name. A missing path and a regular
// file are reported with distinct texts.
func (t *ListDirTool) Run(ctx context.Context, req ListDirRequest) string {
	abs, err := t.paths.Abs(req.Path)
	if err != nil {
		return tool.Reportf(listDirName, "error: %v", err)
	}

	info, err := t.fileOps.Stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		return tool.Reportf(listDirName, "path does not exist: %s", abs)
	}
	if err != nil {
		return tool.Reportf(listDirName, "error: %v", err)
	}
	if !info.IsDir() {
		return tool.Reportf(listDirName, "%s is a file", abs)
	}

	entries, err := t.fileOps.ListDir(abs)
	if err != nil {
		return tool.Reportf(listDirName, "error: %v", err)
	}

	var b strings.Builder
	b.WriteString(tool.Reportf(listDirName, "%s", abs))
	for _, e := range entries {
		kind := "f"
		if t.isDir(abs, e) {
			kind = "d"
		}
		b.WriteString("\n" + kind + "\t" + e.Name())
	}
	return b.String()
}

// isDir follows symlinks. A dangling link counts as a file.
func (t *ListDirTool) isDir(dir string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := t.fileOps.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.IsDir()
}
