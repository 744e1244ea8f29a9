package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Format string
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the product catalog as JSON or XLSX",
		Example: `  furuth export -o products.json
  furuth export --format xlsx -o products.xlsx`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return export(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "json", "output format (json|xlsx)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func export(cmd *cobra.Command, opts *ExportOptions) error {
	if opts.Format != "json" && opts.Format != "xlsx" {
		return fmt.Errorf("invalid format %q: must be json or xlsx", opts.Format)
	}

	a, err := openApp(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	var w io.Writer = cmd.OutOrStdout()
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if opts.Format == "xlsx" {
		return a.catalog.ExportXLSX(w)
	}
	return a.catalog.ExportJSON(w)
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the product catalog with a JSON export",
		Long: `Replace the product catalog with the products in a JSON export.

Entries without a name, a numeric price or an image are skipped. A file with
no usable entry is rejected and the catalog is left unchanged.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.catalog.ImportJSON(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully imported %d products\n", n)
			return nil
		},
	}
}
