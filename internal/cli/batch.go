package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alvinbaena/pwdcheck/internal/batch"
	"github.com/alvinbaena/pwdcheck/internal/config"
	"github.com/alvinbaena/pwdcheck/internal/util"
	"github.com/alvinbaena/pwdcheck/pkg/hibp"
	"github.com/alvinbaena/pwdcheck/pkg/strength"
)

var (
	batchCmd = &cobra.Command{
		Use:   "batch",
		Short: "Check every password of a file, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return batchCommand(cmd)
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	batchCmd.Flags().StringVarP(&inputFile, "in-file", "i", "", "File with one password per line (required)")
	batchCmd.MarkFlagRequired("in-file")
	batchCmd.Flags().BoolVar(&noHibp, "no-hibp", false, "Do not look the passwords up in Pwned Passwords.")
	batchCmd.Flags().DurationVar(&timeout, "timeout", hibp.DefaultTimeout, "Timeout for each Pwned Passwords lookup.")
	batchCmd.Flags().IntVarP(&threads, "threads", "t", 0, "Number of threads to use. If omitted or less than 1, defaults to twice the number of logical processors of the machine.")
	batchCmd.Flags().IntVar(&rps, "rps", 0, "Maximum Pwned Passwords lookups per second. 0 means no limit.")

	rootCmd.AddCommand(batchCmd)
}

func batchCommand(cmd *cobra.Command) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if !cmd.Flags().Changed("timeout") {
		timeout = cfg.Timeout
	}

	file, err := os.Open(inputFile)
	if err != nil {
		return err
	}

	defer func(file *os.File) {
		if err = file.Close(); err != nil {
			log.Error().Err(err).Msg("error closing passwords file")
		}
	}(file)

	var checker batch.Checker
	if !noHibp {
		checker = cfg.NewClient()
	}

	entries, sum, err := batch.NewRunner(checker, timeout, threads, rps).Run(cmd.Context(), file)
	if err != nil {
		return err
	}

	renderBatch(cmd.OutOrStdout(), entries, sum)
	return nil
}

func renderBatch(w io.Writer, entries []batch.Entry, sum batch.Summary) {
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "line %d: %s (%d / 100), %s\n", e.Line, e.Report.Level, e.Report.Score, leakSummary(e.Leak))
	}

	_, _ = printer.Fprintf(w, "\nChecked %d passwords.\n", sum.Total)
	for l := strength.VeryWeak; l <= strength.VeryStrong; l++ {
		_, _ = printer.Fprintf(w, " - %s: %d\n", l, sum.Levels[l])
	}

	if sum.Skipped == sum.Total {
		return
	}
	_, _ = printer.Fprintf(w, "Leaked: %d, not leaked: %d, lookups failed: %d\n", sum.Found, sum.NotFound, sum.Failed)
}
