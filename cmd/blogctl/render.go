package main

import (
	"encoding/json"
	"fmt"

	"blog-publishing-be/pkg/lexical"

	"github.com/spf13/cobra"
)

type renderOptions struct {
	html     bool
	markdown bool
	json     bool
}

func newRenderCmd(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a serialized document",
		Long: `Render a serialized editor document read from a file or stdin.
Content that is not a document is shown as plain text, one paragraph per line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			out := lexical.Render(string(src))
			if out.Mode == lexical.ModePlainText {
				a.logger.Warn("blogctl", "Input is not a document, rendering as plain text", map[string]interface{}{
					"bytes": len(src),
				})
			}

			w := cmd.OutOrStdout()
			switch {
			case opts.json:
				encoder := json.NewEncoder(w)
				encoder.SetIndent("", "  ")
				return encoder.Encode(map[string]interface{}{
					"mode":   out.Mode,
					"blocks": out.Collect(),
				})
			case opts.html:
				_, err := fmt.Fprintln(w, lexical.HTML(out.Blocks()))
				return err
			case opts.markdown:
				md, err := lexical.Markdown(out.Blocks())
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(w, md)
				return err
			default:
				return writeTerminal(w, out.Blocks())
			}
		},
	}

	cmd.Flags().BoolVar(&opts.html, "html", false, "Output sanitized HTML")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Output markdown")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output display blocks as JSON")
	cmd.MarkFlagsMutuallyExclusive("html", "markdown", "json")

	return cmd
}
