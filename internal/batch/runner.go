package batch

import (
	"bufio"
	"context"
	"io"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/thinhdanggroup/executor"

	"github.com/alvinbaena/pwdcheck/internal/util"
	"github.com/alvinbaena/pwdcheck/pkg/hibp"
	"github.com/alvinbaena/pwdcheck/pkg/strength"
)

// Checker is the leak lookup the runner needs. *hibp.Client implements it.
type Checker interface {
	Check(ctx context.Context, password string, timeout time.Duration) hibp.Result
}

// Entry is the verdict for one input line. The password itself is not kept.
type Entry struct {
	Line   int
	Report strength.Report
	// Leak is nil when the leak check was skipped.
	Leak *hibp.Result
}

type Summary struct {
	Total    int
	Levels   map[strength.Level]int
	Found    int
	NotFound int
	Failed   int
	Skipped  int
}

type Runner struct {
	checker     Checker
	timeout     time.Duration
	parallelism int
	rps         int
	tick        time.Duration
}

// NewRunner builds a batch runner. A nil checker skips the leak check. A
// parallelism below 1 defaults to twice the number of logical processors, and
// rps limits the leak lookups per second (0 means no limit).
func NewRunner(checker Checker, timeout time.Duration, parallelism int, rps int) *Runner {
	return &Runner{
		checker:     checker,
		timeout:     timeout,
		parallelism: parallelism,
		rps:         rps,
		tick:        10 * time.Second,
	}
}

// Run reads one password per line (blank lines are ignored) and checks each
// of them on a bounded pool. Entries come back in input order.
func (r *Runner) Run(ctx context.Context, in io.Reader) ([]Entry, Summary, error) {
	s := util.Stats()
	defer s()

	type job struct {
		line     int
		password string
	}

	var jobs []job
	scanner := bufio.NewScanner(in)
	for line := 1; scanner.Scan(); line++ {
		if pwd := scanner.Text(); pwd != "" {
			jobs = append(jobs, job{line: line, password: pwd})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, Summary{}, err
	}

	entries := make([]Entry, len(jobs))
	if len(jobs) == 0 {
		return entries, summarize(entries), nil
	}

	threads := r.parallelism
	if threads < 1 {
		threads = runtime.NumCPU() * 2
	}

	tasks, err := executor.New(executor.Config{
		ReqPerSeconds: r.rps,
		QueueSize:     2 * threads,
		NumWorkers:    threads,
	})
	if err != nil {
		return nil, Summary{}, err
	}
	defer tasks.Close()

	stat := newStatus(len(jobs), r.tick)
	stat.BeginProgress()

	log.Info().Msgf("checking %d passwords with %d threads", len(jobs), threads)
	for i, j := range jobs {
		// Every task owns its slot, no locking needed.
		slot := &entries[i]
		line, password := j.line, j.password
		if err = tasks.Publish(func() {
			r.check(ctx, stat, slot, line, password)
		}); err != nil {
			log.Panic().Err(err).Msgf("there is a programming error here.")
		}
	}

	tasks.Wait()
	stat.Done()

	return entries, summarize(entries), nil
}

func (r *Runner) check(ctx context.Context, stat *status, slot *Entry, line int, password string) {
	slot.Line = line
	slot.Report = strength.Analyze(password)

	if r.checker != nil {
		res := r.checker.Check(ctx, password, r.timeout)
		slot.Leak = &res

		switch res.Status {
		case hibp.Found:
			stat.Leaked()
		case hibp.LookupFailed:
			stat.LookupFailed()
			log.Debug().Err(res.Err).Msgf("leak lookup failed for line %d", line)
		}
	}

	stat.Checked()
}

func summarize(entries []Entry) Summary {
	sum := Summary{Total: len(entries), Levels: make(map[strength.Level]int)}
	for _, e := range entries {
		sum.Levels[e.Report.Level]++

		if e.Leak == nil {
			sum.Skipped++
			continue
		}

		switch e.Leak.Status {
		case hibp.Found:
			sum.Found++
		case hibp.NotFound:
			sum.NotFound++
		default:
			sum.Failed++
		}
	}
	return sum
}
