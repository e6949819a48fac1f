// Package display renders the end-of-run deployment report and the
// in-flight progress bar.
package display

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/avkozyr/static-deploy/pkg/deployer"
	"github.com/avkozyr/static-deploy/pkg/style"
)

// Report renders deployment results for one run.
type Report struct {
	format Format
}

// NewReport builds a report renderer, detecting terminal capabilities from
// stdout.
func NewReport() *Report {
	return &Report{format: DetectFormat(os.Stdout)}
}

// NewPlainReport builds a renderer that never styles output; used by tests.
func NewPlainReport() *Report {
	return &Report{format: FormatText}
}

// RenderSummary produces the aggregate line followed by one line per job.
// Jobs are sorted by area, theme, and locale so parallel discovery and
// execution order never leak into the report.
func (r *Report) RenderSummary(results []deployer.DeployResult, stats *deployer.DeployStats, elapsed time.Duration) string {
	sorted := make([]deployer.DeployResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Job.Theme.Area != b.Job.Theme.Area {
			return a.Job.Theme.Area < b.Job.Theme.Area
		}
		if a.Job.Theme.FullName() != b.Job.Theme.FullName() {
			return a.Job.Theme.FullName() < b.Job.Theme.FullName()
		}
		return a.Job.Locale < b.Job.Locale
	})

	var out strings.Builder

	totalFiles := stats.FilesCopied.Load()
	throughput := 0.0
	if elapsed.Seconds() > 0 {
		throughput = float64(totalFiles) / elapsed.Seconds()
	}

	header := fmt.Sprintf("Deployed %d files in %.2fs (%.0f files/sec)",
		totalFiles, elapsed.Seconds(), throughput)
	out.WriteString(r.styled(style.TitleStyle, header))
	out.WriteString(r.styled(style.MutedStyle, fmt.Sprintf("  [%s]", formatBytes(stats.BytesCopied.Load()))))
	out.WriteString("\n")

	for _, result := range sorted {
		out.WriteString(fmt.Sprintf("  %s/%s/%s: %s\n",
			result.Job.Theme.Area,
			result.Job.Theme.FullName(),
			result.Job.Locale,
			r.statusLine(result)))
	}

	return out.String()
}

func (r *Report) statusLine(result deployer.DeployResult) string {
	switch result.Status {
	case deployer.StatusSuccess:
		return r.styled(style.SuccessStyle, fmt.Sprintf("%d files", result.FileCount))
	case deployer.StatusDelegated:
		return r.styled(style.MutedStyle, "delegated to bin/magento")
	case deployer.StatusCancelled:
		return r.styled(style.WarningStyle, "cancelled")
	default:
		return r.styled(style.ErrorStyle, fmt.Sprintf("FAILED: %v", result.Err))
	}
}

func (r *Report) styled(s interface{ Render(...string) string }, text string) string {
	if r.format == FormatText {
		return text
	}
	return s.Render(text)
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Progress is a nil-safe wrapper around the pterm progress bar; a nil
// Progress (quiet runs, piped output) drops every update.
type Progress struct {
	bar *pterm.ProgressbarPrinter
}

// StartProgress begins a progress bar over total jobs. Disabled (nil) when
// not wanted or when stdout is not a terminal.
func StartProgress(total int, enabled bool) *Progress {
	if !enabled || DetectFormat(os.Stdout) == FormatText {
		return nil
	}
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("Deploying themes").
		Start()
	if err != nil {
		return nil
	}
	return &Progress{bar: bar}
}

// Increment advances the bar by one job.
func (p *Progress) Increment() {
	if p == nil || p.bar == nil {
		return
	}
	p.bar.Increment()
}

// Stop finishes the bar.
func (p *Progress) Stop() {
	if p == nil || p.bar == nil {
		return
	}
	_, _ = p.bar.Stop()
}
