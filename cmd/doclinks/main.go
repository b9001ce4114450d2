package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/starford/doclinks/internal/report"
)

// errFindings signals that a command completed but reported problems
// (broken links, or orphans under --strict). It maps to exit status 1
// without an error message.
var errFindings = errors.New("findings reported")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newCommand(stdout, stderr)
	if err := cmd.Run(ctx, args); err != nil {
		if errors.Is(err, errFindings) {
			return 1
		}
		slog.Error("application error", slog.String("error", err.Error()))
		theme := report.NewTheme(stderr, report.ShouldUseColor(report.ColorAuto, stderr))
		fmt.Fprintf(stderr, "%s %v\n", theme.Error.Render("Error:"), err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}
