// Package action extracts tool-call proposals from model replies.
package action

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Proposal is a model-emitted request to run one named tool.
type Proposal struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// String renders the proposal as compact JSON.
func (p Proposal) String() string {
	args := p.Args
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(Proposal{Tool: p.Tool, Args: args})
	if err != nil {
		return p.Tool
	}
	return string(data)
}

// Parse interprets text as a proposal. The whitespace-trimmed text must be
// exactly one JSON object with a string "tool" key and an optional object
// "args" key. Anything else is a no-match, never an error.
func Parse(text string) (Proposal, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return Proposal{}, false
	}

	var raw map[string]json.RawMessage
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return Proposal{}, false
	}
	if dec.InputOffset() != int64(len(trimmed)) {
		return Proposal{}, false
	}

	toolRaw, ok := raw["tool"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(toolRaw), []byte(`"`)) {
		return Proposal{}, false
	}
	var tool string
	if err := json.Unmarshal(toolRaw, &tool); err != nil {
		return Proposal{}, false
	}

	args := map[string]any{}
	if argsRaw, ok := raw["args"]; ok && !bytes.Equal(bytes.TrimSpace(argsRaw), []byte("null")) {
		d := json.NewDecoder(bytes.NewReader(argsRaw))
		d.UseNumber()
		var decoded map[string]any
		if err := d.Decode(&decoded); err != nil {
			return Proposal{}, false
		}
		args = normalize(decoded).(map[string]any)
	}

	return Proposal{Tool: tool, Args: args}, true
}

// normalize turns json.Number into int64 or float64 so downstream
// decoding sees plain Go numbers.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	default:
		return v
	}
}
