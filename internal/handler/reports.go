package handler

import "net/http"

// PaymentReport returns the JSON payment summary
func (h *Handler) PaymentReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.PaymentReport()
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, report)
}

// PaymentReportXML streams the XML payment export
func (h *Handler) PaymentReportXML(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.PaymentReportXML()
	if err != nil {
		h.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="payments.xml"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Errorf("Failed to write report: %v", err)
	}
}
