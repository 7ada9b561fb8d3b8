package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/pstuifzand/tui-smartlist/internal/export"
	import_parser "github.com/pstuifzand/tui-smartlist/internal/import"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *Options) *cobra.Command {
	var output, stampFormat string
	var detail, noStamp, expandAll bool
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the list as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lf, err := opts.loadList(args[0])
			if err != nil {
				return err
			}
			session := newSession(lf, renderOptions{expandAll: expandAll})
			eo := export.Options{
				Config:          session.Config(),
				Registry:        session.Registry(),
				Collapsed:       session.Collapsed(),
				IncludeDetail:   detail,
				TimestampFormat: stampFormat,
			}
			if !noStamp {
				eo.Timestamp = time.Now()
			}
			if output == "" || output == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), export.ExportMarkdown(lf.doc, eo))
				return err
			}
			if err := export.ExportToMarkdown(lf.doc, output, eo); err != nil {
				return err
			}
			logrus.Infof("Exported %s to %s", args[0], output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&detail, "detail", false, "Include item details")
	cmd.Flags().BoolVar(&expandAll, "expand-all", false, "Include children of collapsed items")
	cmd.Flags().BoolVar(&noStamp, "no-timestamp", false, "Leave out the export timestamp")
	cmd.Flags().StringVar(&stampFormat, "timestamp-format", export.DefaultTimestampFormat, "strftime format of the export timestamp")
	return cmd
}

func newImportCmd(opts *Options) *cobra.Command {
	var mode, format string
	cmd := &cobra.Command{
		Use:   "import <source> <list>",
		Short: "Import markdown or indented text into a list",
		Long: `Import markdown or indented text into a list.

The list file is created when it does not exist. Lines starting with a
[status] prefix get that status from the configured icon set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, target := args[0], args[1]
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			content, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", source, err)
			}

			store := storage.NewStore(target)
			doc, err := store.Load()
			if err != nil {
				return fmt.Errorf("failed to load list: %w", err)
			}
			if store.ReadOnly {
				return fmt.Errorf("cannot import into a backup")
			}
			listCfg, err := cfg.ApplyTo(cfg.List.Merge(doc.Config))
			if err != nil {
				return err
			}

			f := import_parser.ImportFormat(format)
			if f == import_parser.FormatAuto {
				f = import_parser.DetectFormat(source)
			}
			imported, err := import_parser.ImportFile(string(content), import_parser.ImportOptions{
				Format:    f,
				IconSetID: listCfg.IconSetID,
			})
			if err != nil {
				return err
			}
			if doc.Items, err = import_parser.Insert(doc.Items, imported, mode); err != nil {
				return err
			}
			if err := store.Save(doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items into %s\n", model.CountItems(imported), target)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", import_parser.InsertAppend, "Where imported items go (append|prepend|replace)")
	cmd.Flags().StringVar(&format, "format", string(import_parser.FormatAuto), "Source format (auto|markdown|indented)")
	return cmd
}
