package get_parts

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/lupos-tmpl-typer/pkg/analyzer"
	"github.com/walteh/lupos-tmpl-typer/pkg/debug"
	"github.com/walteh/lupos-tmpl-typer/pkg/parts"
	"gitlab.com/tozd/go/errors"
)

type Handler struct {
	file    string
	verbose bool
}

func NewGetPartsCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "get-parts [file]",
		Short: "dump the classified parts of every template literal in a file",
	}

	cmd.Flags().BoolVar(&me.verbose, "verbose", false, "enable debug logging")
	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.file = args[0]
		return me.Run(cmd.Context())
	}

	return cmd
}

type partReport struct {
	Type      string        `json:"type"`
	RawName   string        `json:"raw_name,omitempty"`
	Prefix    string        `json:"prefix,omitempty"`
	Name      string        `json:"name,omitempty"`
	Modifiers []string      `json:"modifiers,omitempty"`
	Start     int           `json:"start"`
	End       int           `json:"end"`
	Pieces    []pieceReport `json:"pieces,omitempty"`
}

type pieceReport struct {
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type templateReport struct {
	Tag    string       `json:"tag"`
	Offset int          `json:"offset"`
	Parts  []partReport `json:"parts"`
}

func (me *Handler) Run(ctx context.Context) error {
	level := zerolog.InfoLevel
	if me.verbose {
		level = zerolog.DebugLevel
	}
	logger := debug.NewConsoleLogger(os.Stderr, level)
	ctx = logger.WithContext(ctx)

	content, err := os.ReadFile(me.file)
	if err != nil {
		return errors.Errorf("reading %s: %w", me.file, err)
	}

	fa, err := analyzer.New(nil).AnalyzeFile(ctx, me.file, string(content))
	if err != nil {
		return errors.Errorf("analyzing %s: %w", me.file, err)
	}

	reports := []templateReport{}
	for _, ta := range fa.Templates {
		tr := templateReport{
			Tag:    ta.Literal.Tag,
			Offset: ta.Literal.Start,
			Parts:  []partReport{},
		}
		for _, p := range ta.Parts {
			pr := partReport{
				Type:      p.Type.String(),
				RawName:   p.RawName,
				Prefix:    p.NamePrefix,
				Name:      p.MainName,
				Modifiers: p.Modifiers,
				Start:     p.Start,
				End:       p.End,
			}
			for _, piece := range parts.Locate(p) {
				pr.Pieces = append(pr.Pieces, pieceReport{
					Type:  piece.Type.String(),
					Start: piece.Start,
					End:   piece.End,
				})
			}
			tr.Parts = append(tr.Parts, pr)
		}
		reports = append(reports, tr)
	}

	out, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return errors.Errorf("encoding parts: %w", err)
	}
	out = append(out, '\n')

	if _, err := os.Stdout.Write(out); err != nil {
		return errors.Errorf("writing output: %w", err)
	}

	return nil
}
