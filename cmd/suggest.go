package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask the advisory provider for three short resume tips",
	Args:  cobra.NoArgs,
	RunE:  runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().String("job", "", "file with the job description ('-' for stdin)")
	suggestCmd.Flags().String("resume", "", "file with the resume text ('-' for stdin)")

	suggestCmd.MarkFlagRequired("job")
	suggestCmd.MarkFlagRequired("resume")
}

func runSuggest(cmd *cobra.Command, _ []string) error {
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

	engine, err := newEngine(cmd.Context(), config, log, nil, true)
	if err != nil {
		return err
	}

	tips, err := engine.Suggest(cmd.Context(), job, resume)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), tips)
	return err
}
