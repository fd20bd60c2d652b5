package cmd

import (
	"fmt"

	"github.com/agentstation/utc"
	"github.com/spf13/cobra"

	"github.com/caseatlas/caseatlas/internal/config"
	"github.com/caseatlas/caseatlas/pkg/archive"
	"github.com/caseatlas/caseatlas/pkg/backend"
	"github.com/caseatlas/caseatlas/pkg/cases"
	"github.com/caseatlas/caseatlas/pkg/extract"
	"github.com/caseatlas/caseatlas/pkg/logging"
	"github.com/caseatlas/caseatlas/pkg/pipeline"
	"github.com/caseatlas/caseatlas/pkg/reconcile"
)

var runCmd = &cobra.Command{
	Use:   "run <cases-file>",
	Short: "Extract, reconcile and archive a batch of cases",
	Long: `Run the full pipeline over a case-input file: extract answer fields
with both backends, reconcile the shared field subset, and merge the
results into a new date-named archive snapshot.

Cases whose unique key already appears in the latest snapshot are
carried forward without any backend call.`,
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.Default()
	ctx = logging.WithLogger(ctx, log)

	settings := config.Load()
	if err := settings.RequireKeys(); err != nil {
		return err
	}

	docs, err := cases.LoadFile(args[0])
	if err != nil {
		return err
	}
	log.Info().Int("cases", len(docs)).Str("file", args[0]).Msg("Loaded case input")

	store, err := archive.NewStore(settings.ArchiveDir)
	if err != nil {
		return err
	}

	prior, err := loadPriorSnapshot(store)
	if err != nil {
		return err
	}

	gemini, err := backend.NewGeminiBackend(ctx, settings.GeminiAPIKey, settings.LongFormModel)
	if err != nil {
		return err
	}
	openai, err := backend.NewOpenAIBackend(settings.OpenAIAPIKey, settings.ShortFormModel, settings.OpenAIBaseURL)
	if err != nil {
		return err
	}

	counter, err := extract.NewTiktokenCounter()
	if err != nil {
		return err
	}
	guard := extract.NewBudgetGuard(counter, settings.TokenLimit)

	adapter := extract.NewAdapter([]backend.Backend{gemini, openai}, guard)
	engine := reconcile.NewEngine(gemini, "")
	merger := archive.NewMerger(store)

	runner := pipeline.NewRunner(adapter, engine, merger).WithWorkers(settings.Workers)

	snapshot, err := runner.Run(ctx, docs, prior)
	if err != nil {
		return err
	}

	fmt.Printf("Archive updated: %s (%d records)\n",
		store.SnapshotPath(snapshot.CreatedAt), len(snapshot.Records))
	return nil
}

// loadPriorSnapshot finds and loads the latest snapshot, excluding the
// file the current run will write. A missing prior snapshot is a
// first run, not an error.
func loadPriorSnapshot(store *archive.Store) (*archive.Snapshot, error) {
	current := store.SnapshotPath(utc.Now())
	latest, err := store.Latest(current)
	if err != nil {
		return nil, err
	}
	if latest == "" {
		logging.Info().Msg("No prior snapshot found, starting fresh archive")
		return nil, nil
	}

	prior, err := store.Load(latest)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("snapshot", latest).Int("records", len(prior.Records)).
		Msg("Loaded prior snapshot")
	return prior, nil
}
