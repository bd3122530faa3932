package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hperssn/roomalloc/internal/catalog"
	httpapi "github.com/hperssn/roomalloc/internal/http"
	"github.com/hperssn/roomalloc/internal/runner"
)

func TestStreamRunEvents(t *testing.T) {
	m := runner.NewRunManager()
	defer m.Close()

	sample := catalog.Sample()
	run, err := m.Submit("alice", sample.Rooms, sample.Sessions)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/runs/{id}/events", httpapi.StreamRunEvents(m))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/"+run.ID+"/events", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Equal(t, 5, strings.Count(body, "event: outcome\n"))
	assert.Contains(t, body, `"sessionId":"201-1A3-VI"`)
	assert.Contains(t, body, `"roomCode":"C209"`)
	assert.True(t, strings.HasSuffix(body, "event: done\ndata: {}\n\n"))
}

func TestStreamRunEventsMissingRun(t *testing.T) {
	m := runner.NewRunManager()
	defer m.Close()

	r := chi.NewRouter()
	r.Get("/runs/{id}/events", httpapi.StreamRunEvents(m))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/nope/events", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
