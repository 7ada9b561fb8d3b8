package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pstuifzand/tui-smartlist/internal/diff"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/storage"
	"github.com/spf13/cobra"
)

// NewDiffCmd builds the diff command. It is also the whole of the
// smartlist-diff binary.
func NewDiffCmd() *cobra.Command {
	var verbose, summary bool
	cmd := &cobra.Command{
		Use:   "diff <file> [other]",
		Short: "Show item-level changes between two lists",
		Long: `Show item-level changes between two lists.

With one file, every backup of that file is compared with the next one and
the newest backup with the file itself. With two files, the first is
compared with the second.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 2 {
				return diffFiles(out, args[0], args[1], args[0], args[1], verbose, summary)
			}
			return diffHistory(out, args[0], verbose, summary)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full details")
	cmd.Flags().BoolVarP(&summary, "summary", "s", false, "Only print counts")
	return cmd
}

func loadItems(path string) ([]*model.ListItem, error) {
	doc, err := storage.NewStore(path).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return doc.Items, nil
}

func diffFiles(w io.Writer, from, to, fromLabel, toLabel string, verbose, summary bool) error {
	before, err := loadItems(from)
	if err != nil {
		return err
	}
	after, err := loadItems(to)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "=== Diff: %s → %s ===\n\n", fromLabel, toLabel)
	printDiff(w, diff.ComputeDiff(before, after), verbose, summary)
	return nil
}

func diffHistory(w io.Writer, path string, verbose, summary bool) error {
	bm, err := storage.NewBackupManager()
	if err != nil {
		return fmt.Errorf("failed to initialize backup manager: %w", err)
	}
	backups, err := bm.FindBackupsForFile(path)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found for %s", path)
	}

	versions := make([]string, 0, len(backups)+1)
	for _, b := range backups {
		versions = append(versions, b.FilePath)
	}
	versions = append(versions, path)

	for i := 1; i < len(versions); i++ {
		if i > 1 {
			fmt.Fprintln(w)
		}
		from, to := versions[i-1], versions[i]
		if err := diffFiles(w, from, to, filepath.Base(from), filepath.Base(to), verbose, summary); err != nil {
			return err
		}
	}
	return nil
}

func printDiff(w io.Writer, result *diff.DiffResult, verbose, summary bool) {
	if result.Empty() {
		fmt.Fprintln(w, "No changes detected")
		return
	}
	if summary {
		fmt.Fprintln(w, result.Summary())
		return
	}
	fmt.Fprint(w, diff.Render(diff.BuildDiffLines(result, verbose)))
}
