package handler

import (
	"net/http"

	"github.com/eventtix/eventtix/internal/model"
	"github.com/eventtix/eventtix/internal/service"
	"github.com/go-chi/chi/v5"
)

// TicketHandler holds the HTTP handlers for the ticket lifecycle.
type TicketHandler struct {
	svc *service.TicketService
}

// NewTicketHandler constructs a TicketHandler.
func NewTicketHandler(svc *service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// Purchase handles POST /tickets
// Buys tickets for the authenticated user against an event's capacity.
func (h *TicketHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req model.PurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ticket, err := h.svc.Purchase(r.Context(), UserID(r.Context()), req.EventID, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

// ListForUser handles GET /tickets/user/{userId}
// Only the owner may list their own tickets; anyone else gets 403.
func (h *TicketHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.svc.ListForUser(r.Context(), UserID(r.Context()), chi.URLParam(r, "userId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if tickets == nil {
		tickets = []model.Ticket{}
	}
	writeJSON(w, http.StatusOK, tickets)
}

// Cancel handles DELETE /tickets/{ticketId}
// Deletes the ticket and restores the seats it consumed.
func (h *TicketHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cancel(r.Context(), UserID(r.Context()), chi.URLParam(r, "ticketId")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "ticket cancelled"})
}
