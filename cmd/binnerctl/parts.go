package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/01moynul/binner-golang/internal/export"
	"github.com/01moynul/binner-golang/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newPartsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parts",
		Short: "List, search, export and import parts",
	}
	cmd.AddCommand(newPartsListCmd(opts))
	cmd.AddCommand(newPartsSearchCmd(opts))
	cmd.AddCommand(newPartsExportCmd(opts))
	cmd.AddCommand(newPartsImportCmd(opts))
	return cmd
}

func newPartsListCmd(opts *globalOptions) *cobra.Command {
	var (
		req  models.PaginatedRequest
		desc bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List parts one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if desc {
				req.Direction = models.SortDescending
			}
			parts, err := s.store.GetParts(s.ctx, req)
			if err != nil {
				return err
			}
			renderParts(cmd.OutOrStdout(), parts)
			return nil
		},
	}
	cmd.Flags().IntVar(&req.Page, "page", models.DefaultPage, "page number")
	cmd.Flags().IntVar(&req.Results, "results", 25, "results per page")
	cmd.Flags().StringVar(&req.OrderBy, "order-by", "", "sort column, e.g. partNumber or quantity")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func newPartsSearchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keywords>",
		Short: "Search parts by number, description, keywords and more",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			results, err := s.store.FindParts(s.ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			renderSearchResults(cmd.OutOrStdout(), results)
			return nil
		},
	}
}

func newPartsExportCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write every part to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			parts, err := export.AllParts(s.ctx, s.store)
			if err != nil {
				return err
			}
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := export.WriteParts(f, parts); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d parts to %s\n", len(parts), args[0])
			return nil
		},
	}
}

func newPartsImportCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Add or update parts from a spreadsheet, matched by part number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			sheet, err := export.ReadSheet(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := export.Import(s.ctx, s.store, sheet)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d, updated %d\n", result.Added, result.Updated)
			return nil
		},
	}
}

func renderParts(w io.Writer, parts []*models.Part) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Part Number", "Manufacturer", "Description", "Qty", "Location", "Bin"})
	for _, p := range parts {
		t.AppendRow(table.Row{p.PartID, p.PartNumber, p.Manufacturer, clip(p.Description, 40), p.Quantity, p.Location, p.BinNumber})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
	})
	t.AppendFooter(table.Row{"", "", "", "Total", len(parts)})
	t.Render()
}

func renderSearchResults(w io.Writer, results []models.SearchResult[*models.Part]) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rank", "ID", "Part Number", "Description", "Qty", "Location"})
	for _, r := range results {
		p := r.Result
		t.AppendRow(table.Row{r.Rank, p.PartID, p.PartNumber, clip(p.Description, 40), p.Quantity, p.Location})
	}
	t.Render()
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
