package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	getdiagnosticscmd "github.com/walteh/lupos-tmpl-typer/cmd/lupos-tmpl-typer/get-diagnostics"
	getpartscmd "github.com/walteh/lupos-tmpl-typer/cmd/lupos-tmpl-typer/get-parts"
)

func main() {
	ctx := context.Background()

	cmd := &cobra.Command{
		Use: "lupos-tmpl-typer",
	}

	cmd.AddCommand(getdiagnosticscmd.NewGetDiagnosticsCommand())
	cmd.AddCommand(getpartscmd.NewGetPartsCommand())

	info, ok := debug.ReadBuildInfo()
	if !ok {
		cmd.Version = "unknown"
	} else {
		cmd.Version = info.Main.Version
	}

	cmd.InitDefaultVersionFlag()

	cmd.SilenceUsage = true

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
