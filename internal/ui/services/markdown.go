package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer turns markdown into terminal output wrapped at width.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders markdown with glamour. One term renderer is
// built per wrap width and reused.
type GlamourRenderer struct {
	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
	options   []glamour.TermRendererOption
}

// NewGlamourRenderer creates a renderer that picks its style from the
// terminal background.
func NewGlamourRenderer() *GlamourRenderer {
	return NewGlamourRendererWithOptions(glamour.WithAutoStyle())
}

// NewGlamourRendererWithOptions creates a renderer with explicit glamour
// options. Word wrap is always set from the width passed to Render.
func NewGlamourRendererWithOptions(opts ...glamour.TermRendererOption) *GlamourRenderer {
	return &GlamourRenderer{
		renderers: make(map[int]*glamour.TermRenderer),
		options:   opts,
	}
}

func (r *GlamourRenderer) Render(content string, width int) (string, error) {
	tr, err := r.termRenderer(width)
	if err != nil {
		return "", err
	}
	out, err := tr.Render(content)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

func (r *GlamourRenderer) termRenderer(width int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tr, ok := r.renderers[width]; ok {
		return tr, nil
	}
	opts := append([]glamour.TermRendererOption{}, r.options...)
	opts = append(opts, glamour.WithWordWrap(width))
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	r.renderers[width] = tr
	return tr, nil
}

// ErrNoRenderer is returned by RenderMarkdown without a renderer.
var ErrNoRenderer = errors.New("no markdown renderer")

// RenderMarkdown renders content, leaving blank input untouched.
func RenderMarkdown(content string, width int, renderer MarkdownRenderer) (string, error) {
	if renderer == nil {
		return "", ErrNoRenderer
	}
	if strings.TrimSpace(content) == "" {
		return content, nil
	}
	if width <= 0 {
		width = 80
	}
	return renderer.Render(content, width)
}
