package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hperssn/roomalloc/internal/runner"
)

// StreamRunEvents replays a run's outcomes as server-sent events, one per
// session in processing order, followed by a "done" event.
func StreamRunEvents(manager *runner.RunManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		events, ok := manager.Events(id)
		if !ok {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		for {
			select {
			case ev, ok := <-events:
				if !ok {
					w.Write([]byte("event: done\ndata: {}\n\n"))
					flusher.Flush()
					return
				}

				data, _ := json.Marshal(ev)
				w.Write([]byte("event: outcome\ndata: "))
				w.Write(data)
				w.Write([]byte("\n\n"))

				flusher.Flush()

			case <-r.Context().Done():
				return
			}
		}
	}
}
