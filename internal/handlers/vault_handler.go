// File: internal/handlers/vault_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-vendornexus/internal/domain"
	"github.com/iyunix/go-vendornexus/internal/middleware"
	"github.com/iyunix/go-vendornexus/internal/services/vault"
)

type VaultHandler struct {
	vault  *vault.Service
	logger Logger
}

func NewVaultHandler(v *vault.Service, logger Logger) *VaultHandler {
	return &VaultHandler{vault: v, logger: logger}
}

func (h *VaultHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.vault.List(r.Context(), middleware.OwnerFromContext(r.Context()))
	if err != nil {
		h.logger.Error("vault list failed", "error", err)
		writeError(w, "Could not load sessions", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *VaultHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	session, err := h.vault.Get(r.Context(), middleware.OwnerFromContext(r.Context()), id)
	if errors.Is(err, vault.ErrSessionNotFound) {
		writeError(w, "Session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("vault get failed", "id", id, "error", err)
		writeError(w, "Could not load session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *VaultHandler) Save(w http.ResponseWriter, r *http.Request) {
	var session domain.VaultSession
	if err := decodeJSON(w, r, &session); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	saved, err := h.vault.Save(r.Context(), middleware.OwnerFromContext(r.Context()), session)
	if err != nil {
		h.logger.Error("vault save failed", "id", session.ID, "error", err)
		writeError(w, "Could not save session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *VaultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	remaining, err := h.vault.Delete(r.Context(), middleware.OwnerFromContext(r.Context()), id)
	if err != nil {
		h.logger.Error("vault delete failed", "id", id, "error", err)
		writeError(w, "Could not delete session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, remaining)
}
