// Test Type: Unit Test
// Description: Tests for the errors package - structured error codes, wrapping, and details

package errors_test

import (
	stderrors "errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avkozyr/static-deploy/pkg/errors"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.ErrRootNotFound, "magento root not found")
	assert.Equal(t, "[ROOT_NOT_FOUND] magento root not found", err.Error())
	assert.Equal(t, errors.ErrRootNotFound, err.Code)
	assert.Nil(t, err.Unwrap())
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrThemeNotFound, "theme not found: %s", "Acme/shop")
	assert.Equal(t, "[THEME_NOT_FOUND] theme not found: Acme/shop", err.Error())
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := errors.Wrap(cause, errors.ErrCopyFailed, "failed to copy")

	assert.Equal(t, "[COPY_FAILED] failed to copy: permission denied", err.Error())
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, stderrors.Is(err, cause))
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrIo, "ignored"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrIo, "ignored %d", 1))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrInvalidLocale, "invalid locale").
		WithDetail("locale", "english").
		WithDetail("position", 2)

	assert.Equal(t, "english", err.Details["locale"])
	assert.Equal(t, 2, err.Details["position"])
}

func TestIsErrorCode(t *testing.T) {
	err := errors.New(errors.ErrDiskFull, "no space left on device")

	assert.True(t, errors.IsErrorCode(err, errors.ErrDiskFull))
	assert.False(t, errors.IsErrorCode(err, errors.ErrCopyFailed))
	assert.False(t, errors.IsErrorCode(nil, errors.ErrDiskFull))
	assert.False(t, errors.IsErrorCode(fmt.Errorf("plain"), errors.ErrDiskFull))

	// Detection works through layers of wrapping.
	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrDiskFull))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrCancelled,
		errors.GetErrorCode(errors.New(errors.ErrCancelled, "cancelled")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(fmt.Errorf("plain")))
}

func TestIs_MatchesByCode(t *testing.T) {
	a := errors.New(errors.ErrCancelled, "one")
	b := errors.New(errors.ErrCancelled, "another message entirely")
	require.True(t, stderrors.Is(a, b))

	c := errors.New(errors.ErrIo, "different code")
	assert.False(t, stderrors.Is(a, c))
}

func TestIsDiskFull(t *testing.T) {
	assert.True(t, errors.IsDiskFull(syscall.ENOSPC))
	assert.True(t, errors.IsDiskFull(fmt.Errorf("write: %w", syscall.ENOSPC)))
	assert.False(t, errors.IsDiskFull(syscall.EACCES))
	assert.False(t, errors.IsDiskFull(nil))
}
