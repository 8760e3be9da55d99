// Package pkg provides the core libraries for statcard, a generator of
// GitHub profile stats cards rendered as SVG.
//
// # Overview
//
// A card summarizes one GitHub user: repository and follower counters, a
// letter grade computed from those counters, and a chart of the languages
// used across their repositories. The pkg directory is organized as:
//
//  1. Domain logic: [stats], [rank], [chart], [theme], [render]
//  2. Data sources: [integrations] (GitHub REST client), [snapshot]
//  3. Infrastructure: [cache], [config], [errors], [httputil], [observability]
//  4. Orchestration: [pipeline], used by the CLI, the [server] and the sync job
//
// # Architecture
//
// The typical data flow:
//
//	GitHub REST API (or a snapshot store)
//	         ↓
//	    [stats] package (aggregate profile counters and language bytes)
//	         ↓
//	    [rank] package (score and grade)
//	         ↓
//	    [chart] package (top-N language slices)
//	         ↓
//	    [render/card] package (SVG document)
//
// # Quick Start
//
//	client := github.NewClient(github.Options{Token: token, Cache: c})
//	runner := pipeline.NewRunner(pipeline.NewLiveSource(client, logger), c, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Username: "octocat", Layout: "ring"})
//	os.WriteFile("dashboard.svg", res.SVG, 0o644)
//
// # Testing
//
//	go test ./pkg/...
//
// Store tests against Redis, MongoDB and PostgreSQL run only when
// STATCARD_TEST_REDIS_URL, STATCARD_TEST_MONGO_URI or
// STATCARD_TEST_DATABASE_URL point at a live server.
//
// [stats]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/stats
// [rank]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/rank
// [chart]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/chart
// [theme]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/theme
// [render]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/render
// [render/card]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/render/card
// [integrations]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/integrations
// [snapshot]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/snapshot
// [cache]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/statcard/pkg/server
package pkg
