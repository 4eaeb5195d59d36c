// Package analyzer runs the full template pipeline over source files:
// extract tagged template literals, flatten them into virtual strings,
// scan, build trees, classify parts and generate diagnostics. Results are
// cached per file with dependent invalidation.
package analyzer

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/lupos-tmpl-typer/pkg/diagnostic"
	"github.com/walteh/lupos-tmpl-typer/pkg/oracle"
	"github.com/walteh/lupos-tmpl-typer/pkg/parts"
	"github.com/walteh/lupos-tmpl-typer/pkg/placeholder"
	"github.com/walteh/lupos-tmpl-typer/pkg/position"
	"github.com/walteh/lupos-tmpl-typer/pkg/scanner"
	"github.com/walteh/lupos-tmpl-typer/pkg/tree"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
)

// TemplateAnalysis is the pipeline output for one template literal.
type TemplateAnalysis struct {
	Literal     TemplateLiteral
	Virtual     string
	Mapper      *position.Mapper
	Root        *tree.Node
	Parts       []*parts.Part
	Diagnostics *diagnostic.Diagnostics
}

// FileAnalysis is the pipeline output for one source file. ID is a fresh
// snapshot identifier used to correlate log lines across re-analyses.
type FileAnalysis struct {
	ID        uuid.UUID
	Path      string
	Templates []*TemplateAnalysis
}

// AllDiagnostics merges the per-template diagnostics of the file.
func (fa *FileAnalysis) AllDiagnostics() *diagnostic.Diagnostics {
	merged := &diagnostic.Diagnostics{}
	for _, t := range fa.Templates {
		if t.Diagnostics == nil {
			continue
		}
		merged.Errors = append(merged.Errors, t.Diagnostics.Errors...)
		merged.Warnings = append(merged.Warnings, t.Diagnostics.Warnings...)
		merged.Hints = append(merged.Hints, t.Diagnostics.Hints...)
	}
	return merged
}

// Analyzer drives the pipeline. The registry is optional; without one,
// component references go unchecked.
type Analyzer struct {
	generator diagnostic.Generator
	registry  diagnostic.ComponentRegistry
}

func New(registry diagnostic.ComponentRegistry) *Analyzer {
	return &Analyzer{
		generator: diagnostic.NewDefaultGenerator(),
		registry:  registry,
	}
}

// AnalyzeFile runs the pipeline over every template literal in content.
// The parse stages never fail; only diagnostic generation can error, and
// per-template failures fold into one returned error while the remaining
// templates still analyze.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path, content string) (*FileAnalysis, error) {
	logger := zerolog.Ctx(ctx)

	fa := &FileAnalysis{
		ID:   uuid.New(),
		Path: path,
	}

	literals := ExtractTemplates(content)
	logger.Debug().
		Str("path", path).
		Str("snapshot", fa.ID.String()).
		Int("templates", len(literals)).
		Msg("analyzing file")

	var errs error
	for _, lit := range literals {
		ta, err := a.analyzeTemplate(ctx, lit)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("template at offset %d: %w", lit.Start, err))
			continue
		}
		fa.Templates = append(fa.Templates, ta)
	}

	return fa, errs
}

func (a *Analyzer) analyzeTemplate(ctx context.Context, lit TemplateLiteral) (*TemplateAnalysis, error) {
	virtual, mapper := placeholder.Flatten(lit.Source)
	root := tree.Build(scanner.Parse(virtual))

	resolver := oracle.NewExprResolver(lit.Expressions)

	var collected []*parts.Part
	parts.Parse(root, resolver, func(p *parts.Part) {
		collected = append(collected, p)
	})

	diags, err := a.generator.Generate(ctx, &diagnostic.Input{
		Parts:    collected,
		Mapper:   mapper,
		Registry: a.registry,
	})
	if err != nil {
		return nil, errors.Errorf("generating diagnostics: %w", err)
	}

	return &TemplateAnalysis{
		Literal:     lit,
		Virtual:     virtual,
		Mapper:      mapper,
		Root:        root,
		Parts:       collected,
		Diagnostics: diags,
	}, nil
}
