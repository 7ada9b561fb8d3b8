package cli

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/tui-smartlist/internal/search"
	"github.com/pstuifzand/tui-smartlist/internal/ui"
	"github.com/spf13/cobra"
)

func newSearchCmd(opts *Options) *cobra.Command {
	var format string
	var fields string
	cmd := &cobra.Command{
		Use:   "search <file> <query>...",
		Short: "Print the items matching a query",
		Long: `Print the items matching a query, hidden and collapsed ones included.

Terms are matched fuzzily against text, description and detail.
Use status:<id>, is:header, is:hidden, -term and | as in the TUI search.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := ui.ParseFormatFlag(format)
			if err != nil {
				return err
			}
			lf, err := opts.loadList(args[0])
			if err != nil {
				return err
			}
			expr, err := search.ParseQuery(strings.Join(args[1:], " "))
			if err != nil {
				return fmt.Errorf("invalid query: %w", err)
			}
			matches := search.Find(lf.doc.Items, expr)
			out, err := ui.NewSearchOutputFormatter(lf.doc.Items).FormatResults(matches, outputFormat, ui.ParseFieldsFlag(fields))
			if err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, fields, json, jsonl")
	cmd.Flags().StringVar(&fields, "fields", "", "Comma separated fields (id,text,status,description,detail,visible,header,children,depth,path,parent_id)")
	return cmd
}
