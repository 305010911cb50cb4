package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alvinbaena/pwdcheck/internal/batch"
	"github.com/alvinbaena/pwdcheck/pkg/hibp"
	"github.com/alvinbaena/pwdcheck/pkg/strength"
)

type stubChecker struct {
	result hibp.Result
	calls  int
}

func (s *stubChecker) Check(context.Context, string, time.Duration) hibp.Result {
	s.calls++
	return s.result
}

func TestRunCheck_Found(t *testing.T) {
	var out bytes.Buffer
	checker := &stubChecker{result: hibp.Result{Status: hibp.Found, Count: 3730471}}

	if err := runCheck(context.Background(), &out, checker, "password", time.Second, false); err != nil {
		t.Fatalf("Should not fail: %s", err)
	}

	text := out.String()
	for _, want := range []string{
		"Length: 8",
		"Approximate entropy: 37.60 bits",
		"Score: 15 / 100",
		"Level: Very weak",
		" - Contains common pattern: 'password'",
		"WARNING: this password appears 3,730,471 times in public leaks.",
		"General advice:",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Output should contain %q:\n%s", want, text)
		}
	}
	if checker.calls != 1 {
		t.Errorf("Checker should be called once, called %d times", checker.calls)
	}
}

func TestRunCheck_Verdicts(t *testing.T) {
	cases := []struct {
		result hibp.Result
		want   string
	}{
		{hibp.Result{Status: hibp.NotFound}, "Not found in the public leaked password database."},
		{hibp.Result{Status: hibp.LookupFailed, Err: errors.New("timeout")}, "Could not query the Pwned Passwords API"},
	}

	for _, tc := range cases {
		var out bytes.Buffer
		if err := runCheck(context.Background(), &out, &stubChecker{result: tc.result}, "Tr0ub4dor&3", time.Second, false); err != nil {
			t.Fatalf("Should not fail: %s", err)
		}
		if !strings.Contains(out.String(), tc.want) {
			t.Errorf("Output for %s should contain %q:\n%s", tc.result.Status, tc.want, out.String())
		}
		if !strings.Contains(out.String(), "No obvious problems found") {
			t.Errorf("A strong password should report no problems:\n%s", out.String())
		}
	}
}

func TestRunCheck_NoHibp(t *testing.T) {
	var out bytes.Buffer
	if err := runCheck(context.Background(), &out, nil, "abc", time.Second, false); err != nil {
		t.Fatalf("Should not fail: %s", err)
	}
	if !strings.Contains(out.String(), "Leak check disabled (--no-hibp).") {
		t.Errorf("Output should say the leak check is disabled:\n%s", out.String())
	}
}

func TestRunCheck_JSON(t *testing.T) {
	var out bytes.Buffer
	checker := &stubChecker{result: hibp.Result{Status: hibp.NotFound}}
	if err := runCheck(context.Background(), &out, checker, "", time.Second, true); err != nil {
		t.Fatalf("Should not fail: %s", err)
	}

	var v struct {
		Report struct {
			Level string `json:"level"`
			Score int    `json:"score"`
		} `json:"report"`
		Leak *struct {
			Status string `json:"status"`
		} `json:"leak"`
	}
	if err := json.Unmarshal(out.Bytes(), &v); err != nil {
		t.Fatalf("Should print valid JSON: %s\n%s", err, out.String())
	}
	if v.Report.Level != "Empty" || v.Report.Score != 0 {
		t.Errorf("Unexpected report: %+v", v.Report)
	}
	if v.Leak == nil || v.Leak.Status != "not_found" {
		t.Errorf("Unexpected leak verdict: %+v", v.Leak)
	}
}

func TestRenderBatch(t *testing.T) {
	found := hibp.Result{Status: hibp.Found, Count: 1200}
	entries := []batch.Entry{
		{Line: 1, Report: strength.Analyze("password"), Leak: &found},
		{Line: 3, Report: strength.Analyze("Tr0ub4dor&3"), Leak: &hibp.Result{Status: hibp.NotFound}},
	}
	sum := batch.Summary{
		Total:    2,
		Levels:   map[strength.Level]int{strength.VeryWeak: 1, strength.VeryStrong: 1},
		Found:    1,
		NotFound: 1,
	}

	var out bytes.Buffer
	renderBatch(&out, entries, sum)

	text := out.String()
	for _, want := range []string{
		"line 1: Very weak (15 / 100), leaked 1,200 times",
		"line 3: Very strong (90 / 100), not leaked",
		"Checked 2 passwords.",
		" - Very strong: 1",
		"Leaked: 1, not leaked: 1, lookups failed: 0",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Output should contain %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Tr0ub4dor&3") {
		t.Errorf("Batch output should never echo passwords:\n%s", text)
	}
}

// executeCheck runs "pwdcheck check args..." and returns what it printed.
func executeCheck(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	// Flag values outlive a run, start from the defaults.
	password, noHibp, asJSON = "", false, false

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(append([]string{"check"}, args...))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// withPrompt replaces the interactive prompt and counts how often it is shown.
func withPrompt(t *testing.T, pwd string, err error) *int {
	t.Helper()

	calls := 0
	prev := promptPassword
	promptPassword = func() (string, error) {
		calls++
		return pwd, err
	}
	t.Cleanup(func() { promptPassword = prev })

	return &calls
}

func TestCheckCommand_Cancelled(t *testing.T) {
	calls := withPrompt(t, "", errCancelled)

	out, _, err := executeCheck(t, "--no-hibp")
	if err != nil {
		t.Fatalf("Cancelling should not be an error: %s", err)
	}
	if *calls != 1 {
		t.Errorf("Prompt should be shown once, shown %d times", *calls)
	}
	if !strings.Contains(out, "Cancelled.") {
		t.Errorf("Output should say the check was cancelled:\n%s", out)
	}
	if strings.Contains(out, "Score:") {
		t.Errorf("Nothing should be analyzed after cancelling:\n%s", out)
	}
}

func TestCheckCommand_PromptError(t *testing.T) {
	withPrompt(t, "", errors.New("no terminal"))

	if _, _, err := executeCheck(t, "--no-hibp"); err == nil || !strings.Contains(err.Error(), "no terminal") {
		t.Errorf("Prompt failures should be returned, got %v", err)
	}
}

func TestCheckCommand_PasswordFlagWarns(t *testing.T) {
	calls := withPrompt(t, "", errCancelled)

	out, errOut, err := executeCheck(t, "--no-hibp", "--password", "x")
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}
	if *calls != 0 {
		t.Errorf("Prompt should not be shown when the password is passed, shown %d times", *calls)
	}
	if !strings.Contains(errOut, "may be kept in your shell history") {
		t.Errorf("Stderr should carry the shell history warning:\n%s", errOut)
	}
	if !strings.Contains(out, "Length: 1") {
		t.Errorf("Passed password should be analyzed:\n%s", out)
	}
}

func TestCheckCommand_EmptyPasswordFlagPrompts(t *testing.T) {
	calls := withPrompt(t, "password", nil)

	out, errOut, err := executeCheck(t, "--no-hibp", "--password=")
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}
	if *calls != 1 {
		t.Errorf("An empty password flag should fall back to the prompt, shown %d times", *calls)
	}
	if strings.Contains(errOut, "shell history") {
		t.Errorf("No warning expected for an empty password flag:\n%s", errOut)
	}
	if !strings.Contains(out, "Score: 15 / 100") {
		t.Errorf("Prompted password should be analyzed:\n%s", out)
	}
}
