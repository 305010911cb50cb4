package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alvinbaena/pwdcheck/internal/config"
	"github.com/alvinbaena/pwdcheck/internal/util"
	"github.com/alvinbaena/pwdcheck/pkg/hibp"
	"github.com/alvinbaena/pwdcheck/pkg/strength"
)

var (
	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Analyze the strength of a password and look it up in public leaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkCommand(cmd)
		},
	}

	errCancelled = errors.New("cancelled by the user")
)

// promptPassword asks for the password without echoing it.
var promptPassword = func() (string, error) {
	prompt := promptui.Prompt{
		Label:       "Password to evaluate",
		Mask:        '*',
		HideEntered: true,
	}

	result, err := prompt.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return "", errCancelled
	}
	return result, err
}

type leakChecker interface {
	Check(ctx context.Context, password string, timeout time.Duration) hibp.Result
}

//goland:noinspection GoUnhandledErrorResult
func init() {
	checkCmd.Flags().StringVarP(&password, "password", "p", "",
		"Password to evaluate. Not recommended, it can end up in your shell history. Leave it out to be prompted instead.")
	checkCmd.Flags().BoolVar(&noHibp, "no-hibp", false, "Do not look the password up in Pwned Passwords.")
	checkCmd.Flags().DurationVar(&timeout, "timeout", hibp.DefaultTimeout, "Timeout for the Pwned Passwords lookup.")
	checkCmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON.")

	rootCmd.AddCommand(checkCmd)
}

func checkCommand(cmd *cobra.Command) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if !cmd.Flags().Changed("timeout") {
		timeout = cfg.Timeout
	}

	out := cmd.OutOrStdout()
	pwd := password
	if pwd != "" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(),
			"[!] Warning: you passed the password as an argument. It may be kept in your shell history.")
	} else {
		pwd, err = promptPassword()
		if errors.Is(err, errCancelled) {
			_, _ = fmt.Fprintln(out, "\nCancelled.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	var checker leakChecker
	if !noHibp {
		checker = cfg.NewClient()
	}

	return runCheck(cmd.Context(), out, checker, pwd, timeout, asJSON)
}

// runCheck analyzes the password and, with a checker, looks it up. Both
// verdicts are rendered to out.
func runCheck(ctx context.Context, out io.Writer, checker leakChecker, pwd string, timeout time.Duration, asJSON bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log.Debug().Int("length", len([]rune(pwd))).Msg("analyzing password")
	report := strength.Analyze(pwd)

	var leak *hibp.Result
	if checker != nil {
		res := checker.Check(ctx, pwd, timeout)
		if res.Failed() {
			log.Debug().Err(res.Err).Msg("leak lookup failed")
		}
		leak = &res
	}

	if asJSON {
		return renderJSON(out, report, leak)
	}

	renderReport(out, report)
	renderLeak(out, leak)
	renderAdvice(out)
	return nil
}
