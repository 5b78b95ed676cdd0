package orchestrator

import (
	"testing"

	"github.com/Cyclone1070/gptcode/internal/tool"
	"github.com/stretchr/testify/assert"
)

func TestSystemPrompt(t *testing.T) {
	decls := []tool.Declaration{
		{
			Name:        "run",
			Description: "Run a command.",
			Parameters: &tool.Schema{
				Type: tool.TypeObject,
				Properties: map[string]*tool.Schema{
					"cmd":     {Type: tool.TypeString},
					"timeout": {Type: tool.TypeInteger},
					"env":     {Type: tool.TypeObject},
				},
				Required: []string{"cmd"},
			},
		},
		{
			Name:        "systemctl",
			Description: "Control units.",
			Parameters: &tool.Schema{
				Type: tool.TypeObject,
				Properties: map[string]*tool.Schema{
					"action": {Type: tool.TypeString, Enum: []string{"status", "restart"}},
					"unit":   {Type: tool.TypeString},
				},
				Required: []string{"action"},
			},
		},
	}

	manual := SystemPrompt("/srv/app", decls, false)
	assert.Contains(t, manual, "Work from the current directory: /srv/app")
	assert.Contains(t, manual, `{"tool": "<name>", "args": {...}}`)
	assert.Contains(t, manual, "- run {cmd, env?, timeout?}: Run a command.")
	assert.Contains(t, manual, "- systemctl {action: status|restart, unit?}: Control units.")
	assert.Contains(t, manual, "ask the operator for confirmation")

	auto := SystemPrompt("/srv/app", decls, true)
	assert.Contains(t, auto, "Auto mode is on")
	assert.NotContains(t, auto, "ask the operator for confirmation")
}
