package api

import "net/http"

// handleLookup searches the encyclopedia. It always answers 200 with an
// array; failures and short queries yield an empty one.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	results := s.lookup.Search(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, results)
}
