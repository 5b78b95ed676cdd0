package file

import (
	"context"
	"errors"
	"os"

	"github.com/Cyclone1070/gptcode/internal/config"
	"github.com/Cyclone1070/gptcode/internal/tool"
	"github.com/Cyclone1070/gptcode/internal/tool/helper/content"
)

const tailFileName = "tail_file"

// TailFileTool returns the last lines of a file, typically a log.
type TailFileTool struct {
	fileOps fileReader
	paths   pathResolver
	config  *config.Config
}

// NewTailFileTool creates a TailFileTool with injected dependencies.
func NewTailFileTool(fileOps fileReader, paths pathResolver, cfg *config.Config) *TailFileTool {
	if cfg == nil {
		panic("cfg is required")
	}
	return &TailFileTool{fileOps: fileOps, paths: paths, config: cfg}
}

// Tool wraps the TailFileTool for the dispatch registry.
func (t *TailFileTool) Tool() tool.Tool {
	return tool.NewReadOnly(tool.Declaration{
		Name:        tailFileName,
		Description: "Show the last lines of a file.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path":  {Type: tool.TypeString, Description: "File to read."},
				"lines": {Type: tool.TypeInteger, Description: "Number of lines, default 200."},
			},
			Required: []string{"path"},
		},
	}, t.Run)
}

// Run reads at most MaxFileSize bytes from the end of the file and keeps
// the requested number of lines.
func (t *TailFileTool) Run(ctx context.Context, req TailFileRequest) string {
	lines := t.config.Tools.DefaultTailLines
	if req.Lines != nil {
		lines = *req.Lines
	}

	abs, err := t.paths.Abs(req.Path)
	if err != nil {
		return tool.Reportf(tailFileName, "error: %v", err)
	}

	info, err := t.fileOps.Stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		return tool.Reportf(tailFileName, "file not found: %s", abs)
	}
	if err != nil {
		return tool.Reportf(tailFileName, "error: %v", err)
	}
	if info.IsDir() {
		return tool.Reportf(tailFileName, "%s is a directory", abs)
	}

	data, err := t.fileOps.ReadTail(abs, t.config.Tools.MaxFileSize)
	if err != nil {
		return tool.Reportf(tailFileName, "error: %v", err)
	}

	return tool.Reportf(tailFileName, "%s (last %d lines)\n%s", abs, lines, content.LastLines(content.ToText(data), lines))
}
