package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/tool"
)

const writeFileName = "write_file"

const defaultFilePerm os.FileMode = 0o644

// WriteFileTool creates or replaces a file.
type WriteFileTool struct {
	fileOps fileWriter
	paths   pathResolver
	config  *config.Config
}

// NewWriteFileTool creates a WriteFileTool with injected dependencies.
func NewWriteFileTool(fileOps fileWriter, paths pathResolver, cfg *config.Config) *WriteFileTool {
	if cfg == nil {
		panic("cfg is required")
	}
	return &WriteFileTool{fileOps: fileOps, paths: paths, config: cfg}
}

// Tool wraps the WriteFileTool for the dispatch registry.
func (t *WriteFileTool) Tool() tool.Tool {
	return tool.NewSideEffecting(tool.Declaration{
		Name:        writeFileName,
		Description: "Create or overwrite a file with the given content. Parent directories are created.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path":    {Type: tool.TypeString, Description: "File to write."},
				"content": {Type: tool.TypeString, Description: "Complete new file content."},
			},
			Required: []string{"path", "content"},
		},
	}, t.Run, t.DryRun)
}

// DryRun describes the write without touching the filesystem.
func (t *WriteFileTool) DryRun(req WriteFileRequest) string {
	abs, err := t.paths.Abs(req.Path)
	if err != nil {
		abs = req.Path
	}
	return tool.DryRunf(writeFileName, "would write %s (len=%dB)", abs, len(*req.Content))
}

// Run writes the content atomically and reports old and new sizes. An
// existing file keeps its permissions.
func (t *WriteFileTool) Run(ctx context.Context, req WriteFileRequest) string {
	data := []byte(*req.Content)
	if int64(len(data)) > t.config.Tools.MaxFileSize {
		return tool.Reportf(writeFileName, "content is %d bytes, limit is %d", len(data), t.config.Tools.MaxFileSize)
	}

	abs, err := t.paths.Abs(req.Path)
	if err != nil {
		return tool.Reportf(writeFileName, "error: %v", err)
	}

	var oldSize int64
	perm := defaultFilePerm
	info, err := t.fileOps.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return tool.Reportf(writeFileName, "%s is a directory", abs)
	case err == nil:
		oldSize = info.Size()
		perm = info.Mode().Perm()
	case !errors.Is(err, os.ErrNotExist):
		return tool.Reportf(writeFileName, "error: %v", err)
	}

	if err := t.fileOps.EnsureDirs(filepath.Dir(abs)); err != nil {
		return tool.Reportf(writeFileName, "error: %v", err)
	}
	if err := t.fileOps.WriteFileAtomic(abs, data, perm); err != nil {
		return tool.Reportf(writeFileName, "error: %v", err)
	}

	return tool.Reportf(writeFileName, "wrote %s (old: %dB, new: %dB)", abs, oldSize, len(data))
}
