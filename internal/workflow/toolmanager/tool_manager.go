package toolmanager

import (
	"context"
	"sort"

	"github.com/Cyclone1070/gptcode/internal/action"
	"github.com/Cyclone1070/gptcode/internal/tool"
	"go.uber.org/zap"
)

// dispatchTag prefixes results produced by the registry itself.
const dispatchTag = "dispatch"

// ToolManager is the static tool registry. It is immutable once the
// session starts.
type ToolManager struct {
	registry map[string]toolImpl
	logger   *zap.Logger
}

func NewToolManager(logger *zap.Logger, tools ...toolImpl) *ToolManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	tm := &ToolManager{
		registry: make(map[string]toolImpl),
		logger:   logger,
	}
	for _, t := range tools {
		tm.Register(t)
	}
	return tm
}

// Register adds a tool; a later registration with the same name wins.
func (m *ToolManager) Register(t toolImpl) {
	m.registry[t.Name()] = t
}

// Declarations returns all tool contracts sorted by name.
func (m *ToolManager) Declarations() []tool.Declaration {
	decls := make([]tool.Declaration, 0, len(m.registry))
	for _, t := range m.registry {
		decls = append(decls, t.Declaration())
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})
	return decls
}

// SideEffects reports whether the named tool has side effects. Unknown
// tools report false.
func (m *ToolManager) SideEffects(name string) bool {
	t, ok := m.registry[name]
	return ok && t.SideEffects()
}

// Dispatch executes one proposal and returns its result text. It never
// fails: unknown tools and bad arguments are reported inline.
func (m *ToolManager) Dispatch(ctx context.Context, p action.Proposal, dryRun bool) string {
	t, ok := m.registry[p.Tool]
	if !ok {
		m.logger.Warn("unknown tool", zap.String("tool", p.Tool))
		return tool.Reportf(dispatchTag, "unknown tool: %s", p.Tool)
	}

	m.logger.Info("dispatch",
		zap.String("tool", p.Tool),
		zap.Bool("dry_run", dryRun),
		zap.Bool("side_effects", t.SideEffects()),
	)
	return t.Run(ctx, p.Args, dryRun)
}
