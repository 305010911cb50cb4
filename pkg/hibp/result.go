// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

// Status is the outcome of a leak lookup. LookupFailed is the zero value so
// a Result nobody filled in reads as inconclusive, never as "not leaked".
type Status int

const (
	LookupFailed Status = iota
	NotFound
	Found
)

func (s Status) String() string {
	switch s {
	case NotFound:
		return "not_found"
	case Found:
		return "found"
	default:
		return "lookup_failed"
	}
}

// Result of a range lookup. Count is only set when Status is Found, Err only
// when Status is LookupFailed.
type Result struct {
	Status Status
	Count  int
	Err    error
}

func notFound() Result {
	return Result{Status: NotFound}
}

func found(count int) Result {
	return Result{Status: Found, Count: count}
}

func failed(err error) Result {
	return Result{Status: LookupFailed, Err: err}
}

// IsFound reports a conclusive positive: the password appears in at least one leak.
func (r Result) IsFound() bool {
	return r.Status == Found
}

// Failed reports an inconclusive lookup. Callers must present it as
// "could not verify", not as a negative.
func (r Result) Failed() bool {
	return r.Status == LookupFailed
}
