// Package commands holds the operator subcommands added to the PocketBase
// root command.
package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"contractorpm/collections"
	"contractorpm/handlers"
	"contractorpm/services"
)

// NewOfferCommand renders a project offer to a file, or to stdout with
// --out -. It reads the same data directory as the server.
func NewOfferCommand(app core.App, opts services.OfferOptions) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:          "offer <project-id>",
		Short:        "Render the commercial offer of a project",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(services.OfferFormats, format) {
				return fmt.Errorf("unsupported format %q (want html, pdf or xlsx)", format)
			}

			project, err := app.FindRecordById(collections.Projects, args[0])
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return services.NotFound("Project")
				}
				return fmt.Errorf("find project: %w", err)
			}

			data, err := handlers.LoadOffer(app, project.Id, project.GetString("owner"), opts)
			if err != nil {
				return err
			}

			body, _, err := handlers.RenderOffer(cmd.Context(), data, format)
			if err != nil {
				return fmt.Errorf("render %s offer: %w", format, err)
			}

			if out == "-" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			if out == "" {
				out = services.OfferFilename(data.Project.Name, format)
			}
			if err := os.WriteFile(out, body, 0o644); err != nil {
				return fmt.Errorf("write offer: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s offer for %q to %s\n", format, data.Project.Name, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", services.FormatPDF, "output format: html, pdf or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default offer_<project>.<format>, - for stdout)")
	return cmd
}
