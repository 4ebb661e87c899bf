package handlers

import (
	"encoding/json"
	"net/http"

	"dining-system/internal/microservices/dining/domain/dto"
)

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.svc.ListEnabledTables(r.Context(), r.PathValue("branch_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tables": tables})
}

func (h *Handler) SetTableStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.SetTableStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_argument", "invalid JSON body")
		return
	}
	if err := h.svc.SetTableStatus(r.Context(), r.PathValue("branch_id"), r.PathValue("table_id"), req.Status); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.OpenSession(r.Context(), r.PathValue("branch_id"), r.PathValue("table_name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.OpenSessionResponse{SessionID: session.ID})
}

func (h *Handler) GetActiveSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.GetActiveSession(r.Context(), r.PathValue("branch_id"), r.PathValue("table_name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.CompleteSession(r.Context(), r.PathValue("session_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) RequestPayment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RequestPayment(r.Context(), r.PathValue("session_id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_argument", "invalid JSON body")
		return
	}
	resp, err := h.svc.SubmitOrder(r.Context(), r.PathValue("session_id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) OrdersForSession(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.OrdersForSession(r.Context(), r.PathValue("session_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) AdvanceOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.AdvanceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_argument", "invalid JSON body")
		return
	}
	order, err := h.svc.AdvanceOrderStatus(r.Context(), r.PathValue("order_id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) BuildInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.svc.BuildInvoice(r.Context(), r.PathValue("session_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}
