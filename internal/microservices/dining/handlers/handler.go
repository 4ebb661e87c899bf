package handlers

import (
	"encoding/json"
	"net/http"

	"dining-system/internal/apperr"
	"dining-system/internal/microservices/dining/service"
)

type Handler struct {
	svc service.DiningServiceInterface
}

func New(svc service.DiningServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func Router(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/branches/{branch_id}/tables", h.ListTables)
	mux.HandleFunc("PUT /api/v1/branches/{branch_id}/tables/{table_id}/status", h.SetTableStatus)

	mux.HandleFunc("POST /api/v1/branches/{branch_id}/tables/{table_name}/sessions", h.OpenSession)
	mux.HandleFunc("GET /api/v1/branches/{branch_id}/tables/{table_name}/sessions/active", h.GetActiveSession)
	mux.HandleFunc("POST /api/v1/sessions/{session_id}/complete", h.CompleteSession)
	mux.HandleFunc("POST /api/v1/sessions/{session_id}/payment-request", h.RequestPayment)

	mux.HandleFunc("POST /api/v1/sessions/{session_id}/orders", h.SubmitOrder)
	mux.HandleFunc("GET /api/v1/sessions/{session_id}/orders", h.OrdersForSession)
	mux.HandleFunc("POST /api/v1/orders/{order_id}/status", h.AdvanceOrderStatus)

	mux.HandleFunc("GET /api/v1/sessions/{session_id}/invoice", h.BuildInvoice)

	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeProblem renders errors in a simplified RFC7807 Problem+JSON shape
// with a machine-readable type.
func writeProblem(w http.ResponseWriter, code int, typ, detail string) {
	writeJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}

// writeError maps the core's error kinds onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	code := http.StatusInternalServerError
	typ := "internal"
	switch kind {
	case apperr.KindInvalidArgument:
		code, typ = http.StatusBadRequest, string(kind)
	case apperr.KindNotFound:
		code, typ = http.StatusNotFound, string(kind)
	case apperr.KindConflict:
		code, typ = http.StatusConflict, string(kind)
	case apperr.KindFailedPrecondition:
		code, typ = http.StatusPreconditionFailed, string(kind)
	case apperr.KindInvalidTransition:
		code, typ = http.StatusUnprocessableEntity, string(kind)
	}
	writeProblem(w, code, typ, err.Error())
}
