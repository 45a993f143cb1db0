package snapsearch_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/snapsearch"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := snapsearch.Errorf(snapsearch.ENOTFOUND, "page %q not found", "cordoba_p3.html")

	assert.Equal(t, snapsearch.ENOTFOUND, snapsearch.ErrorCode(err))
	assert.Equal(t, "page \"cordoba_p3.html\" not found", snapsearch.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, snapsearch.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, snapsearch.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch page: %w", snapsearch.Errorf(snapsearch.EUNAVAILABLE, "connection refused"))

	assert.Equal(t, snapsearch.EUNAVAILABLE, snapsearch.ErrorCode(err))
	assert.Equal(t, "connection refused", snapsearch.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, snapsearch.EINTERNAL, snapsearch.ErrorCode(err))
	assert.Equal(t, "Internal error.", snapsearch.ErrorMessage(err))
}
