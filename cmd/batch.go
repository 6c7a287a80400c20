package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/skillmatch/internal/analysis"
	"github.com/spigell/skillmatch/internal/filtering"
)

const defaultConcurrency = 4

var batchCmd = &cobra.Command{
	Use:   "batch --job FILE RESUME...",
	Short: "Analyze many resumes against one job description and print them ranked",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("job", "", "file with the job description ('-' for stdin)")
	batchCmd.Flags().BoolP("advisory", "a", false, "request advisory suggestions for every resume (overrides advisory.enabled)")
	batchCmd.Flags().IntP("concurrency", "c", 0, "number of resumes analyzed at once (overrides batch.concurrency)")
	batchCmd.Flags().Int("minimum-match-score", 0, "drop resumes below this match score (overrides batch.minimum-match-score)")
	batchCmd.Flags().Int("minimum-experience-match", 0, "drop resumes below this experience match (overrides batch.minimum-experience-match)")
	batchCmd.Flags().StringP("exclude-file", "e", "", "file listing resume names to skip, one per line (overrides batch.exclude-file)")

	batchCmd.MarkFlagRequired("job")
}

func runBatch(cmd *cobra.Command, paths []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync()

	config, err := getConfig()
	if err != nil {
		return err
	}
	applyBatchFlags(cmd, &config.Batch)

	useAdvisory := config.Advisory.Enabled
	if cmd.Flags().Changed("advisory") {
		useAdvisory, _ = cmd.Flags().GetBool("advisory")
	}

	jobPath, _ := cmd.Flags().GetString("job")
	job, err := readText(jobPath, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading job description: %w", err)
	}

	log = log.With(zap.String("run_id", uuid.NewString()))
	log.Info("starting batch analysis",
		zap.Int("resumes", len(paths)),
		zap.Int("concurrency", config.Batch.Concurrency),
		zap.Bool("advisory", useAdvisory),
	)

	engine, err := newEngine(cmd.Context(), config, log, nil, useAdvisory)
	if err != nil {
		return err
	}

	candidates, err := analyzeBatch(cmd.Context(), engine, job, paths, config.Batch.Concurrency, useAdvisory)
	if err != nil {
		return err
	}

	steps := filtering.Default(config.Batch.Config)
	for _, status := range filtering.Describe(steps) {
		log.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	if err := filtering.Run(cmd.Context(), log, steps, candidates); err != nil {
		return fmt.Errorf("filtering failed: %w", err)
	}

	candidates.Rank()

	log.Info("batch analysis finished",
		zap.Int("analyzed", len(paths)),
		zap.Int("left", candidates.Len()),
	)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(candidates.Report())
}

func applyBatchFlags(cmd *cobra.Command, cfg *BatchConfig) {
	flags := cmd.Flags()
	if flags.Changed("concurrency") {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("minimum-match-score") {
		cfg.MinimumMatchScore, _ = flags.GetInt("minimum-match-score")
	}
	if flags.Changed("minimum-experience-match") {
		cfg.MinimumExperienceMatch, _ = flags.GetInt("minimum-experience-match")
	}
	if flags.Changed("exclude-file") {
		cfg.ExcludeFile, _ = flags.GetString("exclude-file")
	}
}

// analyzeBatch analyzes every resume file against job with at most
// concurrency analyses in flight. Candidates keep the order of paths.
func analyzeBatch(ctx context.Context, engine *analysis.Engine, job string, paths []string, concurrency int, useAdvisory bool) (*filtering.Candidates, error) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	items := make([]*filtering.Candidate, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			resume, err := readText(path, nil)
			if err != nil {
				return fmt.Errorf("reading resume %s: %w", path, err)
			}

			result, err := engine.Analyze(ctx, job, resume, useAdvisory)
			if err != nil {
				return fmt.Errorf("analyzing %s: %w", path, err)
			}

			items[i] = &filtering.Candidate{
				Name:   filepath.Base(path),
				Path:   path,
				Result: result,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &filtering.Candidates{Items: items}, nil
}
