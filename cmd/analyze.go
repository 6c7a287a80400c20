package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/logger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description and print the result as JSON",
	Args:  cobra.NoArgs,
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("job", "", "file with the job description ('-' for stdin)")
	analyzeCmd.Flags().String("resume", "", "file with the resume text ('-' for stdin)")
	analyzeCmd.Flags().BoolP("advisory", "a", false, "request advisory suggestions (overrides advisory.enabled)")

	analyzeCmd.MarkFlagRequired("job")
	analyzeCmd.MarkFlagRequired("resume")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync()

	config, err := getConfig()
	if err != nil {
		return err
	}

	job, resume, err := readPair(cmd)
	if err != nil {
		return err
	}

	useAdvisory := config.Advisory.Enabled
	if cmd.Flags().Changed("advisory") {
		useAdvisory, _ = cmd.Flags().GetBool("advisory")
	}

	engine, err := newEngine(cmd.Context(), config, log, nil, useAdvisory)
	if err != nil {
		return err
	}

	result, err := engine.Analyze(cmd.Context(), job, resume, useAdvisory)
	if err != nil {
		return err
	}

	log.Info("analysis finished", append(
		logger.AnalysisFields(result.MatchScore, len(result.MatchedSkills), len(result.MissingSkills),
			result.ExperienceMatch, result.KeywordDensity),
		zap.Bool("advisory", useAdvisory),
	)...)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readPair(cmd *cobra.Command) (string, string, error) {
	jobPath, _ := cmd.Flags().GetString("job")
	resumePath, _ := cmd.Flags().GetString("resume")

	if jobPath == stdinPath && resumePath == stdinPath {
		return "", "", fmt.Errorf("only one of --job and --resume can be read from stdin")
	}

	job, err := readText(jobPath, cmd.InOrStdin())
	if err != nil {
		return "", "", fmt.Errorf("reading job description: %w", err)
	}

	resume, err := readText(resumePath, cmd.InOrStdin())
	if err != nil {
		return "", "", fmt.Errorf("reading resume: %w", err)
	}

	return job, resume, nil
}
