// File: internal/handlers/export_handler.go
package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-vendornexus/internal/domain"
	"github.com/iyunix/go-vendornexus/internal/services/export"
)

type ExportHandler struct {
	logger Logger
	now    func() time.Time
}

func NewExportHandler(logger Logger) *ExportHandler {
	return &ExportHandler{logger: logger, now: time.Now}
}

type exportRequest struct {
	Vendors []domain.Vendor `json:"vendors"`
}

// Export renders the posted vendor list as CSV or PDF, in the posted order.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Vendors) == 0 {
		writeError(w, "No vendors to export", http.StatusBadRequest)
		return
	}

	var (
		buf         bytes.Buffer
		err         error
		contentType string
		fileName    string
	)
	switch format := mux.Vars(r)["format"]; format {
	case "csv":
		err = export.WriteCSV(&buf, req.Vendors)
		contentType, fileName = "text/csv; charset=utf-8", export.CSVFileName
	case "pdf":
		err = export.WritePDF(&buf, req.Vendors, h.now())
		contentType, fileName = "application/pdf", export.PDFFileName
	default:
		writeError(w, "Unsupported export format", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("export failed", "error", err, "vendors", len(req.Vendors))
		writeError(w, "Could not generate export", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
