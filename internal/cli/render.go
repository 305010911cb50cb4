package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/alvinbaena/pwdcheck/pkg/hibp"
	"github.com/alvinbaena/pwdcheck/pkg/strength"
)

var printer = message.NewPrinter(language.English)

func renderReport(w io.Writer, r strength.Report) {
	_, _ = fmt.Fprintln(w, "\n=== Analysis result ===")
	_, _ = fmt.Fprintf(w, "Length: %d\n", r.Length)
	_, _ = fmt.Fprintf(w, "Approximate entropy: %.2f bits\n", r.Entropy)
	_, _ = fmt.Fprintf(w, "Score: %d / 100\n", r.Score)
	_, _ = fmt.Fprintf(w, "Level: %s\n", r.Level)

	if len(r.Issues) > 0 {
		_, _ = fmt.Fprintln(w, "\nIssues found:")
		for _, i := range r.Issues {
			_, _ = fmt.Fprintf(w, " - %s\n", i)
		}
	} else {
		_, _ = fmt.Fprintln(w, "\nNo obvious problems found in the password structure.")
	}

	if len(r.Suggestions) > 0 {
		_, _ = fmt.Fprintln(w, "\nSuggestions:")
		for _, s := range r.Suggestions {
			_, _ = fmt.Fprintf(w, " - %s\n", s)
		}
	}
}

// renderLeak prints the leak verdict. A nil result means the check was disabled.
func renderLeak(w io.Writer, res *hibp.Result) {
	if res == nil {
		_, _ = fmt.Fprintln(w, "\nLeak check disabled (--no-hibp).")
		return
	}

	_, _ = fmt.Fprintln(w, "\nChecking whether it appears in public leaks (Pwned Passwords)...")
	switch res.Status {
	case hibp.Found:
		_, _ = printer.Fprintf(w, "WARNING: this password appears %d times in public leaks.\n", res.Count)
		_, _ = fmt.Fprintln(w, "Do not use or reuse it.")
	case hibp.NotFound:
		_, _ = fmt.Fprintln(w, "Not found in the public leaked password database.")
	default:
		_, _ = fmt.Fprintln(w, "Could not query the Pwned Passwords API (network problem or rate limit).")
	}
}

func renderAdvice(w io.Writer) {
	_, _ = fmt.Fprintln(w, "\nGeneral advice: use a password manager and never reuse the same password on several sites.")
}

// leakSummary is the one-word verdict used by batch output.
func leakSummary(res *hibp.Result) string {
	if res == nil {
		return "leak check skipped"
	}

	switch res.Status {
	case hibp.Found:
		return printer.Sprintf("leaked %d times", res.Count)
	case hibp.NotFound:
		return "not leaked"
	default:
		return "leak lookup failed"
	}
}

type jsonLeak struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type jsonVerdict struct {
	Report strength.Report `json:"report"`
	Leak   *jsonLeak       `json:"leak,omitempty"`
}

func renderJSON(w io.Writer, r strength.Report, res *hibp.Result) error {
	v := jsonVerdict{Report: r}
	if res != nil {
		v.Leak = &jsonLeak{Status: res.Status.String(), Count: res.Count}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
