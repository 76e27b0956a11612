package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/locvowork/empdept/internal/service"
	"github.com/locvowork/empdept/pkg/simpleexcel"
)

// Output formats of the run command.
const (
	formatTable = "table"
	formatJSON  = "json"
)

type serviceLoader func(ctx context.Context) (*service.EmployeeService, error)

func newRootCmd(load serviceLoader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "report",
		Short:         "Run queries over the employee and department dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newListCmd(load))
	rootCmd.AddCommand(newRunCmd(load))
	rootCmd.AddCommand(newExportCmd(load))
	return rootCmd
}

func newListCmd(load serviceLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := load(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, r := range svc.Catalog() {
				fmt.Fprintf(w, "%s\t%s\n", r.Name, r.Description)
			}
			return w.Flush()
		},
	}
}

func newRunCmd(load serviceLoader) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "run <name>",
		Short: "Run a report and print its rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatTable && format != formatJSON {
				return fmt.Errorf("unsupported format %q, must be one of: %s, %s", format, formatTable, formatJSON)
			}
			svc, err := load(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if format == formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printTable(cmd.OutOrStdout(), res.Rows)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "Output format (table, json)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{formatTable, formatJSON}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newExportCmd(load serviceLoader) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Export a report to an .xlsx or .csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if out == "" {
				out = name + "." + service.FormatXLSX
			}
			format := strings.TrimPrefix(filepath.Ext(out), ".")

			svc, err := load(cmd.Context())
			if err != nil {
				return err
			}
			data, _, err := svc.Export(cmd.Context(), name, format)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", name, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file; the extension selects the format (default <name>.xlsx)")
	return cmd
}

// printTable renders a slice of structs with one column per field.
func printTable(w io.Writer, rows interface{}) error {
	cols, err := simpleexcel.ColumnsOf(rows)
	if err != nil {
		return err
	}
	values, err := simpleexcel.ConvertToDynamicData(rows)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = strings.ToUpper(c.Header)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, row := range values.([]map[string]interface{}) {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = simpleexcel.TextValue(row[c.FieldName])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
