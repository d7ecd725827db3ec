package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tallyhq/tally/internal/export"
)

func (s *Server) handleExportGroup(w http.ResponseWriter, r *http.Request) {
	env, err := export.Export(r.Context(), s.store, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	name := strings.ReplaceAll(strings.ToLower(env.Group.Name), " ", "-")
	if name == "" {
		name = "group"
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".json"))
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) handleImportGroup(w http.ResponseWriter, r *http.Request) {
	var env export.Envelope
	if !decode(w, r, &env) {
		return
	}

	// Validation failures carry context the client needs to fix the file,
	// so they are surfaced verbatim rather than through writeError.
	if err := export.Validate(&env); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	group, err := export.Import(r.Context(), s.store, &env)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}
