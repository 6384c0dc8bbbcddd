package main

import (
	"fmt"

	"blog-publishing-be/pkg/lexical"
	"blog-publishing-be/pkg/mdimport"

	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file.md]",
		Short: "Convert markdown into a serialized document",
		Long: `Convert markdown read from a file or stdin into the serialized editor
document the API accepts as post content. Links, images and code are kept as text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			doc := mdimport.Import(src)
			serialized, err := lexical.Encode(doc)
			if err != nil {
				return fmt.Errorf("encode document: %w", err)
			}

			a.logger.Info("blogctl", "Imported markdown", map[string]interface{}{
				"blocks": len(doc.Children),
			})

			_, err = fmt.Fprintln(cmd.OutOrStdout(), serialized)
			return err
		},
	}
}
