package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/gptcode/internal/action"
	"github.com/Cyclone1070/gptcode/internal/ui/services"
)

// RenderStatus renders a one-line status update.
func RenderStatus(phase, message string) string {
	switch phase {
	case "thinking":
		if message == "" {
			message = "thinking"
		}
		return StatusThinkingStyle.Render("… " + message)
	case "executing":
		return StatusExecutingStyle.Render("⚙ " + message)
	case "done":
		return StatusDoneStyle.Render("✔ " + message)
	default:
		return StatusDefaultStyle.Render(message)
	}
}

// RenderAssistant renders model text as markdown, falling back to the
// plain text when rendering fails.
func RenderAssistant(text string, width int, renderer services.MarkdownRenderer) string {
	text = strings.TrimSpace(text)
	rendered, err := services.RenderMarkdown(text, width, renderer)
	if err != nil {
		return AssistantMessageStyle.Render(text)
	}
	return AssistantMessageStyle.Render(rendered)
}

// RenderResult highlights the leading [tool] or [tool:DRYRUN] tag of a
// dispatch result. The rest is shown verbatim.
func RenderResult(result string) string {
	tag, rest, ok := splitTag(result)
	if !ok {
		return result
	}
	if strings.HasSuffix(tag, ":DRYRUN]") {
		return DryRunTagStyle.Render(tag) + rest
	}
	return TagStyle.Render(tag) + rest
}

func splitTag(result string) (tag, rest string, ok bool) {
	if !strings.HasPrefix(result, "[") {
		return "", result, false
	}
	end := strings.IndexByte(result, ']')
	if end < 0 || strings.ContainsAny(result[:end], " \n") {
		return "", result, false
	}
	return result[:end+1], result[end+1:], true
}

// RenderProposal renders a proposal awaiting confirmation, with a preview
// of what it would change when one is available.
func RenderProposal(proposal string) string {
	var sb strings.Builder
	sb.WriteString(ProposalStyle.Render("AI wants to run →") + " " + proposal)

	if p, ok := action.Parse(proposal); ok {
		if preview := services.RenderPreview(p.Tool, p.Args); preview != "" {
			sb.WriteString("\n" + PreviewStyle.Render(preview))
		}
	}

	sb.WriteString("\n" + HelpStyle.Render("Confirm? (:yes / :no)"))
	return sb.String()
}

// RenderToolStart renders the line shown when a dispatch begins.
func RenderToolStart(toolName, request string, dryRun bool) string {
	desc := toolName
	if p, ok := action.Parse(request); ok {
		desc = services.FormatToolDescription(p.Tool, p.Args)
	}
	if dryRun {
		desc += " (dry-run)"
	}
	return RenderStatus("executing", desc)
}

func RenderNotice(text string) string {
	return NoticeStyle.Render(text)
}

func RenderError(err error) string {
	return ErrorStyle.Render(fmt.Sprintf("error: %v", err))
}

// RenderDone renders the end-of-run summary of a headless run.
func RenderDone(summary string) string {
	return StatusDoneStyle.Render("[headless] " + summary)
}

// Banner is the startup information shown before the first prompt.
type Banner struct {
	Model  string
	DryRun bool
	Auto   bool
	Dir    string
	Help   string
}

// RenderBanner renders the startup banner.
func RenderBanner(b Banner) string {
	var sb strings.Builder
	sb.WriteString(BannerStyle.Render("GPTCode ready"))
	sb.WriteString(fmt.Sprintf(" - model: %s (dryrun=%t, auto=%t)\n", b.Model, b.DryRun, b.Auto))
	sb.WriteString(fmt.Sprintf("Project: %s", b.Dir))
	if b.Help != "" {
		sb.WriteString("\n\n" + HelpStyle.Render(strings.TrimRight(b.Help, "\n")))
	}
	return sb.String()
}
