package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, Status(Validation("title is required")))
	require.Equal(t, http.StatusBadRequest, Status(Required("title")))
	require.Equal(t, http.StatusForbidden, Status(ErrNotAuthorized))
	require.Equal(t, http.StatusNotFound, Status(ErrNotFound))
	require.Equal(t, http.StatusInternalServerError, Status(errors.New("sheets api down")))

	// Wrapped sentinels still map.
	require.Equal(t, http.StatusNotFound, Status(fmt.Errorf("trip t1: %w", ErrNotFound)))
	require.Equal(t, http.StatusBadRequest, Status(fmt.Errorf("trip t1: %w", Validation("bad"))))
}

func TestRequired(t *testing.T) {
	require.EqualError(t, Required("startDate"), "startDate is required")
}
