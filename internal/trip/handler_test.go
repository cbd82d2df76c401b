package trip

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/outingclub/trips-backend/internal/sheetstore"
)

func newTestRouter(t *testing.T, store *fakeStore, cal *fakeCal) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(newTestService(t, store, cal))

	r := gin.New()
	r.GET("/api/trips", h.ListTrips)
	r.POST("/api/trips", h.CreateTrip)
	r.POST("/api/trips/admin", h.ListTripsAdmin)
	r.PATCH("/api/trips/:id", h.UpdateTrip)
	r.DELETE("/api/trips/:id", h.DeleteTrip)
	r.POST("/api/sync", h.Sync)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestCreateTrip_http covers the full request path: officer-gated create,
// envelope shape, and the row landing in the store.
func TestCreateTrip_http(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(t, store, newFakeCal())

	w := doJSON(r, http.MethodPost, "/api/trips", `{
		"officerSecret": "hunter2",
		"title": "Sunset Hike",
		"signupStatus": "request_open",
		"startDate": "2024-09-10",
		"startTime": "18:30",
		"gearAvailable": ["Headlamp", "drone"]
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		OK     bool   `json:"ok"`
		TripID string `json:"tripId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.OK)
	require.Regexp(t, `^2024-09-10-sunset-hike-[a-z0-9]{4}$`, resp.TripID)

	rows := store.snapshot()
	require.Len(t, rows, 1)
	require.Equal(t, "headlamp", rows[0]["gearAvailable"])
}

func TestCreateTrip_http_badSecret(t *testing.T) {
	r := newTestRouter(t, &fakeStore{}, newFakeCal())

	w := doJSON(r, http.MethodPost, "/api/trips", `{
		"officerSecret": "wrong",
		"title": "Sunset Hike",
		"signupStatus": "REQUEST_OPEN",
		"startDate": "2024-09-10"
	}`)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), `"ok":false`)
}

func TestCreateTrip_http_validation(t *testing.T) {
	r := newTestRouter(t, &fakeStore{}, newFakeCal())

	w := doJSON(r, http.MethodPost, "/api/trips", `{
		"officerSecret": "hunter2",
		"title": "Sunset Hike",
		"signupStatus": "REQUEST_OPEN",
		"startDate": "09/10/2024"
	}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "invalid startDate")
}

func TestUpdateTrip_http_notFound(t *testing.T) {
	r := newTestRouter(t, &fakeStore{}, newFakeCal())

	w := doJSON(r, http.MethodPatch, "/api/trips/no-such-trip", `{
		"officerSecret": "hunter2",
		"title": "Sunset Hike",
		"signupStatus": "REQUEST_OPEN",
		"startDate": "2024-09-10"
	}`)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTrips_http(t *testing.T) {
	store := &fakeStore{rows: []sheetstore.Row{tripRow("t1", "ev-1")}}
	r := newTestRouter(t, store, newFakeCal())

	w := doJSON(r, http.MethodGet, "/api/trips", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"tripId":"t1"`)
	require.NotContains(t, w.Body.String(), `"eventId"`)
}

func TestSync_http_badSecret(t *testing.T) {
	r := newTestRouter(t, &fakeStore{}, newFakeCal())

	w := doJSON(r, http.MethodPost, "/api/sync", `{"officerSecret": "wrong"}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, "/api/sync", `{"officerSecret": "hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)
}
