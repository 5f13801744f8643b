package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/timeline/cmd/timeline/internal/config"
	"github.com/go-drift/timeline/pkg/document"
)

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "List a document's animations and nodes",
		Long: `Load an animation document and describe it.

For each animation the command shows its frame rate, length in frames and
seconds, loop mode, speed and work area. The artboard's nodes are listed
with their parents.`,
		Usage: "timeline inspect <file>",
		Run:   runInspect,
	})
}

func runInspect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one document is required\n\nUsage: timeline inspect <file>")
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	doc, err := loadDocument(args[0], cfg)
	if err != nil {
		return err
	}

	board := doc.Artboard
	fmt.Fprintf(stdout, "Artboard: %s (%gx%g), format %s\n", board.Name(), board.Width(), board.Height(), doc.Format)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Animations:")
	anims := doc.Animations()
	if len(anims) == 0 {
		fmt.Fprintln(stdout, "  (none)")
	}
	for _, a := range anims {
		start, end := a.WorkArea()
		fmt.Fprintf(stdout, "  %-14s %3d fps %5d frames %7.3fs  %-8s speed %g  work %d-%d\n",
			a.Name(), a.FPS(), a.FrameCount(), a.DurationSeconds(), a.Loop(), a.Speed(), start, end)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Nodes:")
	for _, n := range board.Nodes() {
		if n.Parent == "" {
			fmt.Fprintf(stdout, "  %s\n", n.Name)
		} else {
			fmt.Fprintf(stdout, "  %s (parent %s)\n", n.Name, n.Parent)
		}
	}
	return nil
}

func resolveConfig() (*config.Resolved, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func loadDocument(path string, cfg *config.Resolved) (*document.Document, error) {
	doc, err := document.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if !cfg.AcceptsFormat(doc.Format) {
		return nil, fmt.Errorf("%s: format %s is older than the configured minimum %s", path, doc.Format, cfg.MinFormat)
	}
	return doc, nil
}
