package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/caseatlas/caseatlas/internal/config"
	"github.com/caseatlas/caseatlas/pkg/archive"
	"github.com/caseatlas/caseatlas/pkg/errors"
	"github.com/caseatlas/caseatlas/pkg/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [snapshot-file]",
	Short: "Dump a snapshot as a publishable cell grid",
	Long: `Convert an archive snapshot into the cell grid a downstream sheet
publisher consumes: per cell, the value plus any evidence hyperlink,
mismatch note and highlight color. Without an argument the latest
snapshot is exported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: exportSnapshot,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func exportSnapshot(cmd *cobra.Command, args []string) error {
	settings := config.Load()

	store, err := archive.NewStore(settings.ArchiveDir)
	if err != nil {
		return err
	}

	path, err := resolveSnapshotPath(store, args)
	if err != nil {
		return err
	}

	snapshot, err := store.Load(path)
	if err != nil {
		return err
	}

	grid := export.FromSnapshot(snapshot)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(grid)
}

// resolveSnapshotPath picks the explicit argument or falls back to the
// latest snapshot in the archive.
func resolveSnapshotPath(store *archive.Store, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	latest, err := store.Latest("")
	if err != nil {
		return "", err
	}
	if latest == "" {
		return "", &errors.IOError{Operation: "find latest snapshot", Path: store.Dir(), Err: errors.ErrNotFound}
	}
	return latest, nil
}
