// File: internal/handlers/sourcing_handler.go
package handlers

import (
	"bytes"
	"context"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/iyunix/go-vendornexus/internal/domain"
	"github.com/iyunix/go-vendornexus/internal/middleware"
	"github.com/iyunix/go-vendornexus/internal/services/chat"
)

// SessionSaver stores a workspace snapshot in the vault.
type SessionSaver interface {
	Save(ctx context.Context, owner string, session domain.VaultSession) (domain.VaultSession, error)
}

type SourcingHandler struct {
	turns  *chat.TurnService
	vault  SessionSaver
	md     goldmark.Markdown
	logger Logger
}

// NewSourcingHandler wires the UI API. vault may be nil to disable autosave.
func NewSourcingHandler(turns *chat.TurnService, vault SessionSaver, logger Logger) *SourcingHandler {
	return &SourcingHandler{
		turns:  turns,
		vault:  vault,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM), goldmark.WithRendererOptions(html.WithHardWraps())),
		logger: logger,
	}
}

// TurnResponse is what the UI renders after every turn.
type TurnResponse struct {
	Workspace chat.Workspace  `json:"workspace"`
	Prose     string          `json:"prose"`
	HTML      string          `json:"html"`
	Vendors   []domain.Vendor `json:"vendors"`
	Fallback  bool            `json:"fallback"`
	Saved     bool            `json:"saved"`
}

type turnRequest struct {
	Workspace chat.Workspace `json:"workspace"`
	Message   string         `json:"message"`
}

func (h *SourcingHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req domain.Requirement
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	res, err := h.turns.Start(r.Context(), req)
	h.respond(w, r, res, err)
}

func (h *SourcingHandler) Turn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	res, err := h.turns.Continue(r.Context(), req.Workspace, req.Message)
	h.respond(w, r, res, err)
}

func (h *SourcingHandler) More(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	res, err := h.turns.LoadMore(r.Context(), req.Workspace)
	h.respond(w, r, res, err)
}

func (h *SourcingHandler) respond(w http.ResponseWriter, r *http.Request, res *chat.TurnResult, err error) {
	if err != nil {
		if chat.IsValidation(err) {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("sourcing turn failed", "error", err)
		writeError(w, "Could not process the request", http.StatusInternalServerError)
		return
	}

	saved := h.autosave(r.Context(), middleware.OwnerFromContext(r.Context()), &res.Workspace)

	writeJSON(w, http.StatusOK, TurnResponse{
		Workspace: res.Workspace,
		Prose:     res.Reply.Prose,
		HTML:      h.renderHTML(res.Reply.Prose),
		Vendors:   res.Workspace.Vendors,
		Fallback:  res.Reply.Fallback,
		Saved:     saved,
	})
}

// autosave snapshots the workspace when it already has a vault id or holds
// anything worth keeping, and assigns the id on first save.
func (h *SourcingHandler) autosave(ctx context.Context, owner string, ws *chat.Workspace) bool {
	if h.vault == nil || (ws.SessionID == "" && !ws.Meaningful()) {
		return false
	}
	saved, err := h.vault.Save(ctx, owner, domain.VaultSession{
		ID:          ws.SessionID,
		Title:       domain.SessionTitle(ws.Requirement),
		Requirement: ws.Requirement,
		Messages:    ws.Messages,
		Vendors:     ws.Vendors,
	})
	if err != nil {
		h.logger.Error("autosave failed", "session_id", ws.SessionID, "error", err)
		return false
	}
	ws.SessionID = saved.ID
	return true
}

func (h *SourcingHandler) renderHTML(prose string) string {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(prose), &buf); err != nil {
		h.logger.Warn("markdown render failed", "error", err)
		return ""
	}
	return buf.String()
}
