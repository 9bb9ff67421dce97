package aniscrape_test

import (
	"errors"
	"testing"

	"aniscrape"

	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := aniscrape.Errorf(aniscrape.ENOTFOUND, "record %q not found", "test")

	assert.Equal(t, aniscrape.ENOTFOUND, aniscrape.ErrorCode(err))
	assert.Equal(t, "record \"test\" not found", aniscrape.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, aniscrape.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, aniscrape.EINTERNAL, aniscrape.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, aniscrape.ErrorMessage(nil))
}
