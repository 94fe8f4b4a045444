package api

import (
	"net/http"
	"strconv"

	"github.com/nerrad567/device-timeline/internal/audit"
)

// handleActivity returns the collection's change history, newest first.
//
// Query parameters: action, device, limit, offset.
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := audit.Filter{
		Action:   q.Get("action"),
		DeviceID: q.Get("device"),
	}

	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &filter.Limit}, {"offset", &filter.Offset}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeBadRequest(w, p.name+" must be a non-negative integer")
			return
		}
		*p.dst = n
	}

	res, err := s.audit.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("listing activity failed", "error", err)
		writeInternalError(w, "failed to list activity")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
