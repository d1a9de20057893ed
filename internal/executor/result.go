package executor

import (
	"fmt"
	"time"

	"github.com/aryankumar/hvui/internal/util"
)

// CountSuccessful returns the number of successful results (no error)
func CountSuccessful(results []Result) int {
	count := 0
	for _, r := range results {
		if r.Error == nil {
			count++
		}
	}
	return count
}

// CountFailed returns the number of failed results (has error)
func CountFailed(results []Result) int {
	return len(results) - CountSuccessful(results)
}

// FilterFailed returns only the failed results
func FilterFailed(results []Result) []Result {
	filtered := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Error != nil {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Err combines the errors of all failed results, each tagged with its cluster.
// Returns nil when every task succeeded.
func Err(results []Result) error {
	errs := make([]error, 0, len(results))
	for _, r := range results {
		errs = append(errs, util.WrapClusterError(r.ClusterName, r.Error))
	}
	return util.CombineErrors(errs...)
}

// MaxDuration returns the maximum duration among all results
func MaxDuration(results []Result) time.Duration {
	var longest time.Duration
	for _, r := range results {
		if r.Duration > longest {
			longest = r.Duration
		}
	}
	return longest
}

// Summary provides a summary of execution results
type Summary struct {
	Total       int
	Successful  int
	Failed      int
	MaxDuration time.Duration
}

// Summarize creates a summary of the results
func Summarize(results []Result) Summary {
	successful := CountSuccessful(results)
	return Summary{
		Total:       len(results),
		Successful:  successful,
		Failed:      len(results) - successful,
		MaxDuration: MaxDuration(results),
	}
}

// String returns a human-readable string representation of the summary
func (s Summary) String() string {
	str := fmt.Sprintf("Total: %d, Successful: %d, Failed: %d", s.Total, s.Successful, s.Failed)
	if s.Total > 0 {
		str += fmt.Sprintf(", Max: %s", s.MaxDuration.Round(time.Millisecond))
	}
	return str
}
