package handlers

import (
	"encoding/json"
	"net/http"

	"dining-system/internal/apperr"
	"dining-system/internal/microservices/kitchen/service"
)

type Handler struct {
	svc service.KitchenServiceInterface
}

func New(svc service.KitchenServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func Router(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/kitchen/aggregate/{date}", h.Aggregate)
	mux.HandleFunc("GET /api/v1/kitchen/tickets/{date}/{slot}", h.Ticket)
	return mux
}

func (h *Handler) Aggregate(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	agg, err := h.svc.AggregateForDate(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "slots": agg})
}

func (h *Handler) Ticket(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.TicketForSlot(r.Context(), r.PathValue("date"), r.PathValue("slot"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	typ := "internal"
	switch apperr.KindOf(err) {
	case apperr.KindInvalidArgument:
		code, typ = http.StatusBadRequest, string(apperr.KindInvalidArgument)
	case apperr.KindNotFound:
		code, typ = http.StatusNotFound, string(apperr.KindNotFound)
	}
	writeJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": err.Error(),
	})
}
