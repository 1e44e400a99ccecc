package apperrors_test

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudnative-labs/microservices/internal/core/apperrors"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, apperrors.KindValidation, apperrors.KindOf(apperrors.Validation("bad")))
	require.Equal(t, apperrors.KindNotFound, apperrors.KindOf(fmt.Errorf("wrapped: %w", apperrors.NotFound("x"))))
	require.Equal(t, apperrors.KindDependency, apperrors.KindOf(sql.ErrConnDone))
	require.False(t, apperrors.Is(nil, apperrors.KindDependency))
}

func TestError_UnwrapKeepsCause(t *testing.T) {
	err := apperrors.Dependency("failed to list users", sql.ErrConnDone)
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.Contains(t, err.Error(), "dependency")
}
