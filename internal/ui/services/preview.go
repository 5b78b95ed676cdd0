package services

import (
	"fmt"
	"strings"
)

const (
	maxWritePreviewLines = 20
	maxPatchPreviewLines = 40
)

// FormatToolDescription generates a user-friendly description from tool args
func FormatToolDescription(name string, args map[string]any) string {
	switch name {
	case "list_dir", "read_file", "write_file", "tail_file":
		if path, ok := args["path"].(string); ok && path != "" {
			return fmt.Sprintf("%s %s", name, path)
		}
	case "run":
		if cmd, ok := args["cmd"].(string); ok {
			return fmt.Sprintf("run '%s'", cmd)
		}
	case "apply_patch":
		if patch, ok := args["patch"].(string); ok {
			return fmt.Sprintf("apply_patch (%d lines)", countLines(patch))
		}
	case "systemctl":
		act, _ := args["action"].(string)
		unit, _ := args["unit"].(string)
		return strings.TrimSpace(fmt.Sprintf("systemctl %s %s", act, unit))
	case "docker":
		act, _ := args["action"].(string)
		svc, _ := args["service"].(string)
		return strings.TrimSpace(fmt.Sprintf("docker %s %s", act, svc))
	case "pytest":
		desc := "pytest"
		if path, ok := args["path"].(string); ok && path != "" {
			desc += " " + path
		}
		if k, ok := args["k"].(string); ok && k != "" {
			desc += fmt.Sprintf(" -k '%s'", k)
		}
		return desc
	}
	return name
}

// RenderPreview renders the part of a proposal worth reading before
// confirming it: the content of a write, the body of a patch or the
// command line of a run. Other tools have no preview.
func RenderPreview(name string, args map[string]any) string {
	switch name {
	case "write_file":
		return renderWritePreview(args)
	case "apply_patch":
		patch, _ := args["patch"].(string)
		return headLines(patch, maxPatchPreviewLines, "")
	case "run":
		if cmd, ok := args["cmd"].(string); ok && cmd != "" {
			return "$ " + cmd
		}
	}
	return ""
}

func renderWritePreview(args map[string]any) string {
	path, _ := args["path"].(string)
	content, ok := args["content"].(string)
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File: %s\n", path))
	if content == "" {
		sb.WriteString("(empty file)")
		return sb.String()
	}
	sb.WriteString(headLines(content, maxWritePreviewLines, "+ "))
	return sb.String()
}

func headLines(text string, limit int, prefix string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	shown := lines
	if len(lines) > limit {
		shown = lines[:limit]
	}

	var sb strings.Builder
	for i, line := range shown {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(prefix + line)
	}
	if rest := len(lines) - len(shown); rest > 0 {
		sb.WriteString(fmt.Sprintf("\n... (%d more lines)", rest))
	}
	return sb.String()
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Split(strings.TrimRight(text, "\n"), "\n"))
}
