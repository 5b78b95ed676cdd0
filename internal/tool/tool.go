package tool

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Tool is one entry of the dispatch registry. Run never fails: every
// outcome, including bad arguments, is reported as result text.
type Tool interface {
	Name() string
	Declaration() Declaration
	SideEffects() bool
	Run(ctx context.Context, args map[string]any, dryRun bool) string
}

// Validator is implemented by request types that check their own fields.
type Validator interface {
	Validate() error
}

// Executor performs the live action for a decoded request.
type Executor[Req any] func(ctx context.Context, req Req) string

// DryRunRenderer describes what the live action would do.
type DryRunRenderer[Req any] func(req Req) string

// Spec adapts a typed executor to the Tool interface. Arguments are
// decoded weakly typed: "60" and 60.0 both land in an int field.
type Spec[Req any] struct {
	decl    Declaration
	execute Executor[Req]
	dryRun  DryRunRenderer[Req]
}

// NewReadOnly creates a tool without side effects. It runs normally
// under dry-run.
func NewReadOnly[Req any](decl Declaration, execute Executor[Req]) *Spec[Req] {
	if execute == nil {
		panic("execute is required")
	}
	return &Spec[Req]{decl: decl, execute: execute}
}

// NewSideEffecting creates a tool whose live executor is replaced by
// dryRun whenever dry-run is on.
func NewSideEffecting[Req any](decl Declaration, execute Executor[Req], dryRun DryRunRenderer[Req]) *Spec[Req] {
	if execute == nil {
		panic("execute is required")
	}
	if dryRun == nil {
		panic("dryRun is required")
	}
	return &Spec[Req]{decl: decl, execute: execute, dryRun: dryRun}
}

func (s *Spec[Req]) Name() string { return s.decl.Name }

func (s *Spec[Req]) Declaration() Declaration { return s.decl }

func (s *Spec[Req]) SideEffects() bool { return s.dryRun != nil }

// Run decodes args, validates them and dispatches to the dry-run renderer
// or the live executor.
func (s *Spec[Req]) Run(ctx context.Context, args map[string]any, dryRun bool) string {
	req, err := Decode[Req](args)
	if err != nil {
		return Reportf(s.decl.Name, "invalid arguments: %v", err)
	}

	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return Reportf(s.decl.Name, "invalid arguments: %v", err)
		}
	}

	if dryRun && s.dryRun != nil {
		return s.dryRun(req)
	}
	return s.execute(ctx, req)
}

// Decode maps loosely typed model arguments onto a request struct using
// its json tags.
func Decode[Req any](args map[string]any) (Req, error) {
	var req Req
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &req,
	})
	if err != nil {
		return req, fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(args); err != nil {
		return req, err
	}
	return req, nil
}
