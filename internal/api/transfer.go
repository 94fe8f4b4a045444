package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/nerrad567/device-timeline/internal/device"
)

// importResponse reports the result of POST /import.
type importResponse struct {
	Imported int `json:"imported"`
	Total    int `json:"total"`
}

// handleImport appends a previously exported collection. The payload is
// validated as a whole; any error rejects it and leaves the collection as is.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrCodeImport, "import payload too large")
			return
		}
		writeBadRequest(w, "failed to read body")
		return
	}

	devices, err := device.ParseImport(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeImport, err.Error())
		return
	}

	snapshot, err := s.registry.Import(r.Context(), devices)
	if err != nil {
		s.logger.Error("import failed", "error", err)
		writeInternalError(w, "import failed")
		return
	}

	writeJSON(w, http.StatusOK, importResponse{Imported: len(devices), Total: len(snapshot)})
}
