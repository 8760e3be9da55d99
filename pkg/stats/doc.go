// Package stats folds GitHub repository listings into profile counters and a
// language byte histogram.
//
// [Aggregate] sums stars, forks and open issues; [AggregateLanguages] fans out
// one language fetch per repository with bounded concurrency and merges the
// per-repository byte maps after every fetch has finished. Both are pure folds:
// the result does not depend on repository order.
//
// Which repositories count toward which result is controlled by [Policy]:
//
//	p := stats.DefaultPolicy()
//	p.ForksInTotals = false // forks no longer add to stars/forks/repo count
//	profile := stats.Aggregate(user, repos, activity, p)
//	hist, err := stats.AggregateLanguages(ctx, repos, client, p)
//	var partial *stats.PartialDataError
//	if errors.As(err, &partial) {
//	    // hist is still valid; partial.Failures lists the skipped repos
//	}
package stats
