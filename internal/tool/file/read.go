package file

import (
	"context"
	"errors"
	"os"

	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/tool"
	"github.com/Cyclone1070/gptcode/internal/tool/helper/content"
	"github.com/Cyclone1070/gptcode/internal/tool/service/fs"
)

const readFileName = "read_file"

// ReadFileTool returns a file's text content.
type ReadFileTool struct {
	fileOps fileReader
	paths   pathResolver
	config  *config.Config
}

// NewReadFileTool creates a ReadFileTool with injected dependencies.
func NewReadFileTool(fileOps fileReader, paths pathResolver, cfg *config.Config) *ReadFileTool {
	if cfg == nil {
		panic("cfg is required")
	}
	return &ReadFileTool{fileOps: fileOps, paths: paths, config: cfg}
}

// Tool wraps the ReadFileTool for the dispatch registry.
func (t *ReadFileTool) Tool() tool.Tool {
	return tool.NewReadOnly(tool.Declaration{
		Name:        readFileName,
		Description: "Read a whole text file.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path": {Type: tool.TypeString, Description: "File to read."},
			},
			Required: []string{"path"},
		},
	}, t.Run)
}

// Run reads the file up to the configured size limit. Invalid UTF-8 is
// dropped from the returned text.
func (t *ReadFileTool) Run(ctx context.Context, req ReadFileRequest) string {
	abs, err := t.paths.Abs(req.Path)
	if err != nil {
		return tool.Reportf(readFileName, "error: %v", err)
	}

	info, err := t.fileOps.Stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		return tool.Reportf(readFileName, "file not found: %s", abs)
	}
	if err != nil {
		return tool.Reportf(readFileName, "error: %v", err)
	}
	if info.IsDir() {
		return tool.Reportf(readFileName, "%s is a directory", abs)
	}

	data, err := t.fileOps.ReadFile(abs, t.config.Tools.MaxFileSize)
	if errors.Is(err, fs.ErrFileTooLarge) {
		return tool.Reportf(readFileName, "%v", err)
	}
	if err != nil {
		return tool.Reportf(readFileName, "error: %v", err)
	}

	return tool.Reportf(readFileName, "%s\n%s", abs, content.ToText(data))
}
