package orchestrator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Cyclone1070/gptcode/internal/tool"
)

// SystemPrompt renders the instructions sent with every model call. It
// fixes the tool-call format, lists each tool's argument contract and the
// working directory, and sets the confirmation etiquette for the mode.
func SystemPrompt(cwd string, decls []tool.Declaration, auto bool) string {
	var b strings.Builder
	b.WriteString("You are a chat-first DevOps and coding assistant running in the operator's terminal.\n")
	fmt.Fprintf(&b, "Work from the current directory: %s\n\n", cwd)

	b.WriteString("When you need an action, reply with ONLY one JSON object and no other text:\n")
	b.WriteString(`{"tool": "<name>", "args": {...}}` + "\n\n")

	b.WriteString("Tools (args marked ? are optional):\n")
	for _, d := range decls {
		fmt.Fprintf(&b, "- %s {%s}: %s\n", d.Name, renderArgs(d.Parameters), d.Description)
	}
	b.WriteString("\n")

	if auto {
		b.WriteString("Auto mode is on: actions run immediately. Announce each step in one short sentence before emitting it.\n")
	} else {
		b.WriteString("Before writing files or running commands, briefly explain why and ask the operator for confirmation; the action runs only after they accept it.\n")
	}
	b.WriteString("Each result comes back as a message starting with RESULT. Work in small steps: after each action summarise the result and propose the next step.")
	return b.String()
}

func renderArgs(s *tool.Schema) string {
	if s == nil || len(s.Properties) == 0 {
		return ""
	}

	required := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		required[r] = true
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if required[names[i]] != required[names[j]] {
			return required[names[i]]
		}
		return names[i] < names[j]
	})

	parts := make([]string, 0, len(names))
	for _, name := range names {
		part := name
		if !required[name] {
			part += "?"
		}
		if enum := s.Properties[name].Enum; len(enum) > 0 {
			part += ": " + strings.Join(enum, "|")
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}
