package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/timeline"
)

// handleListDevices returns the collection.
//
// Query parameters:
//   - order: "asc" or "desc" for chronological order; insertion order when absent
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices := s.registry.List()

	if o := r.URL.Query().Get("order"); o != "" {
		dir, ok := timeline.ParseDirection(o)
		if !ok {
			writeBadRequest(w, "order must be asc or desc")
			return
		}
		devices = timeline.Sorted(devices, dir)
	}

	writeJSON(w, http.StatusOK, map[string]any{"devices": devices, "count": len(devices)})
}

// handleGetDevice returns a single device by ID.
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	dev, err := s.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeNotFound(w, "device not found")
		return
	}
	writeJSON(w, http.StatusOK, dev)
}

// handleCreateDevice adds a manually entered device.
func (s *Server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var dev device.Device
	if err := json.NewDecoder(r.Body).Decode(&dev); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	created, err := s.registry.Add(r.Context(), dev)
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// createFromLookupRequest is the body of POST /devices/from-lookup.
type createFromLookupRequest struct {
	Result   *device.LookupResult `json:"result"`
	ImageURL string               `json:"imageUrl"`
}

// handleCreateFromLookup adds a device built from a lookup result and the
// image the user picked.
func (s *Server) handleCreateFromLookup(w http.ResponseWriter, r *http.Request) {
	var req createFromLookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Result == nil {
		writeBadRequest(w, "result is required")
		return
	}

	created, err := s.registry.AddFromLookup(r.Context(), *req.Result, req.ImageURL)
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateDevice replaces a device. The path ID wins over any ID in the body.
func (s *Server) handleUpdateDevice(w http.ResponseWriter, r *http.Request) {
	var dev device.Device
	if err := json.NewDecoder(r.Body).Decode(&dev); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	dev.ID = chi.URLParam(r, "id")

	updated, err := s.registry.Update(r.Context(), dev)
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteDevice removes a device.
func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeMutationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleResetDevices empties the collection.
func (s *Server) handleResetDevices(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Reset(r.Context()); err != nil {
		writeInternalError(w, "failed to reset collection")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeMutationError maps registry errors to responses.
func (s *Server) writeMutationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, device.ErrDeviceNotFound):
		writeNotFound(w, "device not found")
	case errors.Is(err, device.ErrInvalidDevice):
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
	default:
		s.logger.Error("device mutation failed", "error", err)
		writeInternalError(w, "failed to update collection")
	}
}
