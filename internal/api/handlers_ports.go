package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/limitlesscruises/portguide/internal/portguide"
	"github.com/limitlesscruises/portguide/internal/render"
	"github.com/limitlesscruises/portguide/internal/store"
)

// Upload actions.
const (
	actionUpsert  = "upsert"
	actionPreview = "preview"
)

type uploadRequest struct {
	Markdown string `json:"markdown"`
	Action   string `json:"action"`
}

// handleUpload builds a port guide from Markdown and either previews or
// persists it.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Markdown) == "" {
		jsonError(w, "markdown is required", http.StatusBadRequest)
		return
	}

	action := req.Action
	if action == "" {
		action = actionUpsert
	}
	if action != actionUpsert && action != actionPreview {
		jsonError(w, fmt.Sprintf("unsupported action: %s", action), http.StatusBadRequest)
		return
	}

	log := s.log.With("action", action)

	g, err := s.buildGuide(req.Markdown)
	if err != nil {
		log.Error("build port record failed", "error", err)
		jsonError(w, "failed to build port record: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := portguide.Validate(g); err != nil {
		log.Info("rejected port document", "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	log = log.With("slug", g.Slug)
	if !portguide.CanonicalSlug(g.Slug) {
		log.Warn("slug is not lowercase-hyphenated, storing as written")
	}

	if action == actionPreview {
		html, err := render.Narrative(g)
		if err != nil {
			log.Warn("render preview failed", "error", err)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"preview": true,
			"port":    g,
			"html":    html,
		})
		return
	}

	res, err := s.store.Upsert(r.Context(), g)
	if err != nil {
		log.Error("store port failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Info("stored port", "result", res.Action(), "id", res.Port.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"action":  res.Action(),
		"port":    res.Port,
	})
}

// buildGuide runs the parser and reports a panic as an error.
func (s *Server) buildGuide(markdown string) (g *portguide.PortGuide, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	return s.parse(markdown, s.parseOpts), nil
}

func (s *Server) handleListPorts(w http.ResponseWriter, r *http.Request) {
	ports, err := s.store.List(r.Context())
	if err != nil {
		jsonError(w, "failed to list ports: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "ports": ports})
}

func (s *Server) handleGetPort(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	g, err := s.store.Get(r.Context(), slug)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "port not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to get port: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "port": g})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]any{"success": false, "error": msg})
}
