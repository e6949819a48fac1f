// Package deployer builds the theme×locale job matrix, runs jobs across a
// bounded worker pool, and materializes each theme's layered sources into
// its pub/static output directory.
package deployer

import (
	"path/filepath"
	"time"

	"github.com/avkozyr/static-deploy/pkg/copier"
	"github.com/avkozyr/static-deploy/pkg/errors"
	"github.com/avkozyr/static-deploy/pkg/interrupt"
	"github.com/avkozyr/static-deploy/pkg/logging"
	"github.com/avkozyr/static-deploy/pkg/scanner"
	"github.com/avkozyr/static-deploy/pkg/theme"
)

// DeployJob is the unit of parallel work: one theme deployed for one locale.
// The Theme pointer is shared across all locale jobs for that theme.
type DeployJob struct {
	Theme  *theme.Theme
	Locale theme.LocaleCode
}

// DeployStatus is the outcome of a job.
type DeployStatus int

const (
	// StatusSuccess: all layers copied.
	StatusSuccess DeployStatus = iota
	// StatusFailed: a layer copy or the delegation failed; Err carries the cause.
	StatusFailed
	// StatusCancelled: the cancellation flag was observed mid-job.
	StatusCancelled
	// StatusDelegated: handed off to bin/magento (Luma themes).
	StatusDelegated
)

func (s DeployStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "delegated"
	}
}

// DeployResult records one job's outcome.
type DeployResult struct {
	Job       DeployJob
	Status    DeployStatus
	Err       error
	FileCount uint64
	Duration  time.Duration
}

// Options carries the per-run knobs shared by every job.
type Options struct {
	Verbose    bool
	IncludeDev bool
	// Workers bounds per-file copy concurrency inside each job.
	Workers int
}

// OutputPath returns the deterministic destination directory for a job:
// root/pub/static/{area}/{Vendor}/{name}/{locale}.
func OutputPath(root string, t *theme.Theme, locale theme.LocaleCode) string {
	return filepath.Join(root, "pub", "static",
		t.Area.String(), t.Vendor, t.Name, locale.String())
}

// DeployTheme deploys one job. Luma themes are delegated to bin/magento;
// Hyva themes resolve their parent chain, collect ordered file sources, and
// copy each layer in skip-existing mode so higher-priority layers win per
// destination path. The first observed cancellation or copy failure ends the
// job; sibling jobs are unaffected.
func DeployTheme(job DeployJob, allThemes []*theme.Theme, root string,
	flag *interrupt.Flag, stats *DeployStats, opts Options) DeployResult {

	logger := logging.GetLogger("deployer").With().
		Str("theme", job.Theme.FullName()).
		Str("locale", job.Locale.String()).
		Logger()
	start := time.Now()

	if job.Theme.Type == theme.TypeLuma {
		return delegateToMagento(job, root, start, opts.Verbose)
	}

	parentChain := theme.ResolveParentChain(job.Theme, allThemes)
	sources := scanner.CollectFileSources(job.Theme, parentChain, root)
	outputPath := OutputPath(root, job.Theme, job.Locale)

	logger.Debug().
		Int("sources", len(sources)).
		Int("parents", len(parentChain)).
		Str("output", outputPath).
		Msg("Deploying theme")

	var totalFiles uint64

	for _, source := range sources {
		if flag.IsSet() {
			return DeployResult{Job: job, Status: StatusCancelled,
				FileCount: totalFiles, Duration: time.Since(start)}
		}

		dest := outputPath
		if sub := source.DestSubpath(); sub != "" {
			dest = filepath.Join(outputPath, sub)
		}

		files, bytes, err := copier.CopyTree(source.Path, dest, copier.Options{
			Mode:       copier.SkipExisting,
			IncludeDev: opts.IncludeDev,
			Workers:    opts.Workers,
			Cancel:     flag,
		})
		totalFiles += uint64(files)
		stats.FilesCopied.Add(uint64(files))
		stats.BytesCopied.Add(uint64(bytes))

		if err != nil {
			if errors.IsErrorCode(err, errors.ErrCancelled) {
				return DeployResult{Job: job, Status: StatusCancelled,
					FileCount: totalFiles, Duration: time.Since(start)}
			}
			stats.Errors.Add(1)
			logger.Error().Err(err).Str("source", source.Path).Msg("Layer copy failed")
			return DeployResult{Job: job, Status: StatusFailed, Err: err,
				FileCount: totalFiles, Duration: time.Since(start)}
		}
	}

	return DeployResult{Job: job, Status: StatusSuccess,
		FileCount: totalFiles, Duration: time.Since(start)}
}

// JobMatrix builds the full cross product of themes and locales. Themes are
// shared by pointer across their locale jobs, never duplicated.
func JobMatrix(themes []*theme.Theme, locales []theme.LocaleCode) []DeployJob {
	jobs := make([]DeployJob, 0, len(themes)*len(locales))
	for _, t := range themes {
		for _, locale := range locales {
			jobs = append(jobs, DeployJob{Theme: t, Locale: locale})
		}
	}
	return jobs
}

// CollectResults aggregates job outcomes. Delegated counts as success;
// Cancelled counts as neither success nor failure.
func CollectResults(results []DeployResult) ([]DeployResult, bool, bool) {
	var hasSuccess, hasFailure bool
	for _, result := range results {
		switch result.Status {
		case StatusSuccess, StatusDelegated:
			hasSuccess = true
		case StatusFailed:
			hasFailure = true
		}
	}
	return results, hasSuccess, hasFailure
}

// Run executes the job matrix across a bounded worker pool and returns one
// result per job, in job order. A failing job never aborts its siblings.
func Run(jobs []DeployJob, allThemes []*theme.Theme, root string,
	flag *interrupt.Flag, stats *DeployStats, opts Options,
	onDone func(DeployResult)) []DeployResult {

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]DeployResult, len(jobs))
	sem := make(chan struct{}, workers)
	done := make(chan int, len(jobs))

	for i, job := range jobs {
		go func(i int, job DeployJob) {
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = DeployTheme(job, allThemes, root, flag, stats, opts)
			done <- i
		}(i, job)
	}

	for range jobs {
		i := <-done
		if onDone != nil {
			onDone(results[i])
		}
	}
	return results
}
