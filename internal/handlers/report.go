package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gdg-garage/iftar-registration/internal/ledger"
	"github.com/gdg-garage/iftar-registration/internal/report"
)

type ReportHandler struct {
	store    ledger.Store
	currency string
}

func NewReportHandler(store ledger.Store, currency string) *ReportHandler {
	return &ReportHandler{store: store, currency: currency}
}

type ReportResponse struct {
	Body struct {
		Currency string `json:"currency"`
		report.Report
	}
}

func (h *ReportHandler) HandleReport(ctx context.Context, input *struct{}) (*ReportResponse, error) {
	regs, err := h.store.Load(ctx)
	if err != nil {
		return nil, apiError(err)
	}

	res := &ReportResponse{}
	res.Body.Currency = h.currency
	res.Body.Report = report.Build(regs)
	return res, nil
}

// HandleExport streams the ledger as a workbook download.
func (h *ReportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", ledger.ExportContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+ledger.ExportFileName+`"`)

	cw := &countingWriter{w: w}
	if err := h.store.Export(r.Context(), cw); err != nil {
		slog.Error("failed to export ledger", "error", err, "bytes_written", cw.n)
		if cw.n > 0 {
			// The status line is already sent; the client sees a truncated body.
			return
		}
		w.Header().Del("Content-Disposition")
		http.Error(w, "Failed to export ledger", http.StatusInternalServerError)
	}
}

// countingWriter records how much of the response body has been sent.
type countingWriter struct {
	w http.ResponseWriter
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
