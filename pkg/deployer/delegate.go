package deployer

import (
	"bytes"
	stderrors "errors"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/avkozyr/static-deploy/pkg/errors"
	"github.com/avkozyr/static-deploy/pkg/logging"
)

// delegateToMagento hands a Luma theme off to bin/magento, which performs
// its own LESS/RequireJS compilation and copying. The subprocess runs with
// the deployment root as working directory and blocks until it exits; there
// is deliberately no timeout (a hung bin/magento blocks this job's worker).
func delegateToMagento(job DeployJob, root string, start time.Time, verbose bool) DeployResult {
	logger := logging.GetLogger("deployer.delegate").With().
		Str("theme", job.Theme.FullName()).
		Str("locale", job.Locale.String()).
		Logger()

	magentoBin := filepath.Join(root, "bin", "magento")
	cmd := exec.Command(magentoBin,
		"setup:static-content:deploy",
		"--area", job.Theme.Area.String(),
		"--theme", job.Theme.FullName(),
		job.Locale.String(),
	)
	cmd.Dir = root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug().Str("bin", magentoBin).Msg("Delegating to bin/magento")
	err := cmd.Run()

	if verbose {
		if stdout.Len() > 0 {
			logger.Info().Msg(stdout.String())
		}
		if stderr.Len() > 0 {
			logger.Info().Msg(stderr.String())
		}
	}

	if err == nil {
		// bin/magento did its own copying; nothing observed here.
		return DeployResult{Job: job, Status: StatusDelegated, Duration: time.Since(start)}
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		ferr := errors.Newf(errors.ErrDelegationFailed,
			"bin/magento setup:static-content:deploy failed with exit code %d", exitErr.ExitCode()).
			WithDetail("stderr", stderr.String()).
			WithDetail("code", exitErr.ExitCode())
		return DeployResult{Job: job, Status: StatusFailed, Err: ferr, Duration: time.Since(start)}
	}

	ferr := errors.Wrap(err, errors.ErrIo, "failed to spawn bin/magento").
		WithDetail("bin", magentoBin)
	return DeployResult{Job: job, Status: StatusFailed, Err: ferr, Duration: time.Since(start)}
}
