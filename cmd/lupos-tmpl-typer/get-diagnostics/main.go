package get_diagnostics

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/lupos-tmpl-typer/pkg/analyzer"
	"github.com/walteh/lupos-tmpl-typer/pkg/debug"
	"github.com/walteh/lupos-tmpl-typer/pkg/diagnostic"
	"github.com/walteh/lupos-tmpl-typer/pkg/finder"
	"github.com/walteh/lupos-tmpl-typer/pkg/oracle"
	"gitlab.com/tozd/go/errors"
)

type Handler struct {
	dir        string
	patterns   []string
	components []string
	format     string // vscode, text
	verbose    bool
}

func NewGetDiagnosticsCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "get-diagnostics [dir]",
		Short: "get diagnostics for template literals in a directory",
	}

	cmd.Flags().StringSliceVar(&me.patterns, "patterns", []string{"**/*.ts", "**/*.js"}, "glob patterns for template source files")
	cmd.Flags().StringSliceVar(&me.components, "components", nil, "known component names, enables component checks")
	cmd.Flags().StringVar(&me.format, "format", "text", "output format (vscode, json, text)")
	cmd.Flags().BoolVar(&me.verbose, "verbose", false, "enable debug logging")
	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.dir = args[0]
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	level := zerolog.InfoLevel
	if me.verbose {
		level = zerolog.DebugLevel
	}
	logger := debug.NewConsoleLogger(os.Stderr, level)
	ctx = logger.WithContext(ctx)

	files, err := finder.NewDefaultFinder().FindTemplates(ctx, me.dir, me.patterns)
	if err != nil {
		return errors.Errorf("finding template files: %w", err)
	}

	var registry diagnostic.ComponentRegistry
	if len(me.components) > 0 {
		registry = oracle.NewStaticRegistry(me.components...)
	}
	anl := analyzer.New(registry)

	for _, file := range files {
		content := string(file.Content)

		fa, err := anl.AnalyzeFile(ctx, file.Path, content)
		if err != nil {
			return errors.Errorf("analyzing %s: %w", file.Path, err)
		}

		formatter, err := me.formatter(content, file.Path)
		if err != nil {
			return err
		}

		out, err := formatter.Format(fa.AllDiagnostics())
		if err != nil {
			return errors.Errorf("formatting diagnostics for %s: %w", file.Path, err)
		}
		if _, err := os.Stdout.Write(out); err != nil {
			return errors.Errorf("writing output: %w", err)
		}
	}

	return nil
}

func (me *Handler) formatter(content, path string) (diagnostic.Formatter, error) {
	switch me.format {
	case "vscode", "json":
		return diagnostic.NewVSCodeFormatter(content), nil
	case "text":
		return diagnostic.NewTextFormatter(content, path), nil
	default:
		return nil, errors.Errorf("unknown format %q", me.format)
	}
}
