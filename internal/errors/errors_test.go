package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espedit/internal/errors"
)

func TestParseErrorCarriesKey(t *testing.T) {
	cause := fmt.Errorf("expected a string, found int \"42\"")
	err := errors.NewParseError("wrong type for config option", "backend", errors.TypeMismatch, cause)

	assert.Equal(t, "backend", err.Key())
	assert.Contains(t, err.Error(), `key "backend"`)
	assert.True(t, errors.IsTypeMismatch(err))
	assert.ErrorIs(t, err, cause)
}

func TestFileErrorCarriesPath(t *testing.T) {
	err := errors.NewFileError("failed to read file", "/tmp/x.yml", errors.FileNotFound, nil)
	assert.Equal(t, "/tmp/x.yml", err.Path())
	assert.Contains(t, err.Error(), "/tmp/x.yml")
	assert.True(t, errors.IsFileNotFound(err))
}

func TestKindSurvivesWrapping(t *testing.T) {
	base := errors.NewKind("document has validation errors", errors.ValidationBlocked)
	wrapped := errors.Wrap(base, "saving base.yml")

	assert.Equal(t, errors.ValidationBlocked, errors.KindOf(wrapped))
	assert.True(t, errors.IsValidationBlocked(wrapped))
	assert.Contains(t, wrapped.Error(), "saving base.yml")
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, errors.Unknown, errors.KindOf(fmt.Errorf("plain")))
	assert.Equal(t, errors.Unknown, errors.KindOf(nil))
}

func TestAsFindsParseError(t *testing.T) {
	inner := errors.NewParseError("malformed match file document", "", errors.Malformed, nil)
	wrapped := errors.Wrap(inner, "loading match/base.yml")

	var perr *errors.ParseError
	require.True(t, errors.As(wrapped, &perr))
	assert.True(t, errors.IsMalformed(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, errors.Wrap(nil, "context"))
	assert.NoError(t, errors.Wrapf(nil, "context %d", 1))
}
