package httpd

import "net/http"

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.services.Dashboard.GetDashboard(r.Context(), getIntQueryParam(r, "top", 0))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, dashboard)
}
