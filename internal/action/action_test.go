package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Matches(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Proposal
	}{
		{
			name: "tool with args",
			in:   `{"tool":"read_file","args":{"path":"main.go"}}`,
			want: Proposal{Tool: "read_file", Args: map[string]any{"path": "main.go"}},
		},
		{
			name: "surrounding whitespace",
			in:   "\n\t  {\"tool\": \"list_dir\", \"args\": {\"path\": \".\"}}  \n",
			want: Proposal{Tool: "list_dir", Args: map[string]any{"path": "."}},
		},
		{
			name: "args omitted",
			in:   `{"tool":"pytest"}`,
			want: Proposal{Tool: "pytest", Args: map[string]any{}},
		},
		{
			name: "args null",
			in:   `{"tool":"pytest","args":null}`,
			want: Proposal{Tool: "pytest", Args: map[string]any{}},
		},
		{
			name: "integer args decode as int64",
			in:   `{"tool":"run","args":{"cmd":"ls","timeout":5}}`,
			want: Proposal{Tool: "run", Args: map[string]any{"cmd": "ls", "timeout": int64(5)}},
		},
		{
			name: "nested env map",
			in:   `{"tool":"run","args":{"cmd":"env","env":{"A":"1"}}}`,
			want: Proposal{Tool: "run", Args: map[string]any{"cmd": "env", "env": map[string]any{"A": "1"}}},
		},
		{
			name: "unknown tool still parses",
			in:   `{"tool":"format_disk","args":{}}`,
			want: Proposal{Tool: "format_disk", Args: map[string]any{}},
		},
		{
			name: "extra keys ignored",
			in:   `{"tool":"list_dir","args":{"path":"/"},"reason":"look around"}`,
			want: Proposal{Tool: "list_dir", Args: map[string]any{"path": "/"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_NoMatch(t *testing.T) {
	inputs := map[string]string{
		"empty":               "",
		"whitespace":          "   \n ",
		"plain text":          "Sure, I will list the directory.",
		"prose around json":   `Here you go: {"tool":"list_dir","args":{"path":"."}}`,
		"trailing text":       `{"tool":"list_dir"} thanks`,
		"trailing brace":      `{"tool":"list_dir"}}`,
		"two objects":         `{"tool":"a"} {"tool":"b"}`,
		"code fence":          "```json\n{\"tool\":\"list_dir\"}\n```",
		"array":               `[{"tool":"list_dir"}]`,
		"missing tool":        `{"args":{"path":"."}}`,
		"numeric tool":        `{"tool":42}`,
		"null tool":           `{"tool":null}`,
		"object tool":         `{"tool":{"name":"x"}}`,
		"args not object":     `{"tool":"run","args":"ls"}`,
		"args array":          `{"tool":"run","args":["ls"]}`,
		"malformed":           `{"tool":"run",}`,
		"unterminated string": `{"tool":"run}`,
		"json string":         `"{\"tool\":\"run\"}"`,
		"braces only text":    `{not json}`,
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, ok := Parse(in)
				assert.False(t, ok)
			})
		})
	}
}

func TestProposal_String(t *testing.T) {
	p := Proposal{Tool: "write_file", Args: map[string]any{"path": "a.txt", "content": "hi"}}
	assert.Equal(t, `{"tool":"write_file","args":{"content":"hi","path":"a.txt"}}`, p.String())

	assert.Equal(t, `{"tool":"pytest","args":{}}`, Proposal{Tool: "pytest"}.String())
}

func TestProposal_RoundTripThroughString(t *testing.T) {
	p, ok := Parse(`{"tool":"tail_file","args":{"path":"log.txt","lines":20}}`)
	require.True(t, ok)

	again, ok := Parse(p.String())
	require.True(t, ok)
	assert.Equal(t, p, again)
}
