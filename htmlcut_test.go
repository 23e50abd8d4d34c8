package htmlcut_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/htmlcut"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := htmlcut.Errorf(htmlcut.ENOTFOUND, "file %q not found", "page.html")

	assert.Equal(t, htmlcut.ENOTFOUND, htmlcut.ErrorCode(err))
	assert.Equal(t, "file \"page.html\" not found", htmlcut.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, htmlcut.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, htmlcut.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("extract: %w", htmlcut.Errorf(htmlcut.EPARSE, "bad input"))

	assert.Equal(t, htmlcut.EPARSE, htmlcut.ErrorCode(err))
	assert.Equal(t, "bad input", htmlcut.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")

	assert.Equal(t, htmlcut.EINTERNAL, htmlcut.ErrorCode(err))
	assert.Equal(t, "Internal error.", htmlcut.ErrorMessage(err))
}
