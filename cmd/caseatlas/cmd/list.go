package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caseatlas/caseatlas/internal/config"
	"github.com/caseatlas/caseatlas/pkg/archive"
)

var listCmd = &cobra.Command{
	Use:   "list [snapshot-file]",
	Short: "List the cases archived in a snapshot",
	Long: `Print the identity columns of every case in a snapshot. Archived
cases carry no judgment text and cannot be re-extracted, only listed.
Without an argument the latest snapshot is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: listCases,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listCases(cmd *cobra.Command, args []string) error {
	settings := config.Load()

	store, err := archive.NewStore(settings.ArchiveDir)
	if err != nil {
		return err
	}

	path, err := resolveSnapshotPath(store, args)
	if err != nil {
		return err
	}

	docs, err := store.LoadCases(path)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CASE\tCITATION\tDATE")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", doc.Title, doc.Citation, doc.JudgmentDate)
	}
	return w.Flush()
}
