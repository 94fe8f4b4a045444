package api

import (
	"net/http"

	"github.com/nerrad567/device-timeline/internal/timeline"
)

// timelineResponse is the screen view of the collection.
type timelineResponse struct {
	Order  string               `json:"order"`
	Label  string               `json:"label"`
	Groups []timeline.YearGroup `json:"groups"`
	Stats  timeline.Stats       `json:"stats"`
}

// handleTimeline returns the projected year groups, most recent first
// unless ?order=asc is given.
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	dir := timeline.Descending
	if o := r.URL.Query().Get("order"); o != "" {
		var ok bool
		if dir, ok = timeline.ParseDirection(o); !ok {
			writeBadRequest(w, "order must be asc or desc")
			return
		}
	}

	devices := s.registry.List()
	writeJSON(w, http.StatusOK, timelineResponse{
		Order:  dir.String(),
		Label:  timeline.CountLabel(len(devices)),
		Groups: timeline.Project(devices, dir),
		Stats:  timeline.Summary(devices),
	})
}
