package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/Cyclone1070/gptcode/internal/ui/services"
	"github.com/Cyclone1070/gptcode/internal/ui/views"
	"github.com/Cyclone1070/gptcode/internal/workflow"
	"golang.org/x/term"
)

const defaultWidth = 80

type lineResult struct {
	line string
	err  error
}

// Console is a line-oriented terminal UI. On a terminal it edits input
// with a bubbletea prompt and renders markdown; otherwise it reads plain
// lines and prints unstyled text, so it can be driven from a pipe.
type Console struct {
	in          io.Reader
	out         io.Writer
	renderer    services.MarkdownRenderer
	interactive bool
	width       int

	mu        sync.Mutex
	startRead sync.Once
	lines     chan lineResult
}

// NewConsole creates a Console. Interactive mode is enabled when both in
// and out are terminals.
func NewConsole(in io.Reader, out io.Writer, renderer services.MarkdownRenderer) *Console {
	interactive := isTerminal(in) && isTerminal(out)
	width := defaultWidth
	if interactive {
		if f, ok := out.(*os.File); ok {
			if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
				width = w
			}
		}
	}
	return newConsole(in, out, renderer, interactive, width)
}

func newConsole(in io.Reader, out io.Writer, renderer services.MarkdownRenderer, interactive bool, width int) *Console {
	if in == nil {
		panic("in is required")
	}
	if out == nil {
		panic("out is required")
	}
	return &Console{
		in:          in,
		out:         out,
		renderer:    renderer,
		interactive: interactive,
		width:       width,
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Interactive reports whether the console drives a terminal.
func (c *Console) Interactive() bool { return c.interactive }

// ReadInput prompts for one line. Trailing newline characters are removed.
func (c *Console) ReadInput(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.interactive {
		return runPrompt(ctx, c.in, c.out, prompt)
	}

	c.write(prompt)
	c.startRead.Do(c.readLines)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}

// readLines feeds c.lines from a single reader goroutine so a cancelled
// ReadInput never loses a line to a second reader.
func (c *Console) readLines() {
	c.lines = make(chan lineResult)
	go func() {
		defer close(c.lines)
		reader := bufio.NewReader(c.in)
		for {
			line, err := reader.ReadString('\n')
			line = strings.TrimRight(line, "\r\n")
			if err != nil {
				if line != "" {
					c.lines <- lineResult{line: line}
				}
				if err != io.EOF {
					c.lines <- lineResult{err: fmt.Errorf("read input: %w", err)}
				}
				return
			}
			c.lines <- lineResult{line: line}
		}
	}()
}

// WriteStatus shows progress lines. Piped output gets none.
func (c *Console) WriteStatus(phase, message string) {
	if !c.interactive {
		return
	}
	c.println(views.RenderStatus(phase, message))
}

// WriteMessage shows model text, as markdown on a terminal.
func (c *Console) WriteMessage(content string) {
	if !c.interactive {
		c.println(strings.TrimSpace(content))
		return
	}
	c.println(views.RenderAssistant(content, c.width, c.renderer))
}

func (c *Console) WriteInfo(text string) {
	c.println(strings.TrimRight(text, "\n"))
}

// WriteBanner prints the startup banner.
func (c *Console) WriteBanner(b views.Banner) {
	c.println(views.RenderBanner(b) + "\n")
}

// Emit renders one workflow event.
func (c *Console) Emit(ev workflow.Event) {
	switch e := ev.(type) {
	case workflow.ThinkingEvent:
		c.WriteStatus("thinking", "")
	case workflow.TextEvent:
		c.WriteMessage(e.Text)
	case workflow.ProposalEvent:
		c.println(views.RenderProposal(e.Proposal))
	case workflow.ToolStartEvent:
		if c.interactive {
			c.println(views.RenderToolStart(e.ToolName, e.RequestDisplay, e.DryRun))
		}
	case workflow.ToolEndEvent:
		c.println(views.RenderResult(e.Result))
	case workflow.NoticeEvent:
		c.println(views.RenderNotice(e.Text))
	case workflow.ErrorEvent:
		c.println(views.RenderError(e.Err))
	case workflow.DoneEvent:
		c.println(views.RenderDone(e.Summary))
	}
}

func (c *Console) println(s string) {
	c.write(s + "\n")
}

func (c *Console) write(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.out, s)
}
