// File: internal/handlers/document_handler.go
package handlers

import (
	"io"
	"net/http"

	"github.com/iyunix/go-vendornexus/internal/services/chat"
	"github.com/iyunix/go-vendornexus/internal/services/extract"
)

const maxUpload = 10 << 20

type DocumentHandler struct {
	logger Logger
}

func NewDocumentHandler(logger Logger) *DocumentHandler {
	return &DocumentHandler{logger: logger}
}

// DocumentResponse carries the extracted text and, when a draft was posted,
// the draft with the document attached.
type DocumentResponse struct {
	FileName string `json:"fileName"`
	Text     string `json:"text"`
	Draft    string `json:"draft"`
}

// Upload accepts a multipart "file" and an optional "draft" field.
// Extraction problems come back as placeholder text, not as errors.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		writeError(w, "Invalid upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, "Could not read upload", http.StatusBadRequest)
		return
	}

	text := extract.Extract(header.Filename, header.Header.Get("Content-Type"), data)
	h.logger.Info("document extracted", "file", header.Filename, "bytes", len(data), "chars", len(text))

	writeJSON(w, http.StatusOK, DocumentResponse{
		FileName: header.Filename,
		Text:     text,
		Draft:    chat.AttachDocument(r.FormValue("draft"), header.Filename, text),
	})
}
