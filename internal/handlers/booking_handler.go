package handlers

import (
	"encoding/json"
	"net/http"

	"fishhook/internal/models"
	"fishhook/internal/services"
)

type BookingHandler struct {
	Service *services.BookingService
}

func (h *BookingHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	modelID := r.URL.Query().Get(":model_id")
	quote, err := h.Service.Quote(r.Context(), modelID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	req.UserID = accountID(r)

	booking, err := h.Service.CreateBooking(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) DecideBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.URL.Query().Get(":id")
	var req struct {
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	booking, err := h.Service.AcceptOrReject(r.Context(), bookingID, accountID(r), req.Decision)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ConfirmByUser(w http.ResponseWriter, r *http.Request) {
	bookingID := r.URL.Query().Get(":id")
	booking, err := h.Service.ConfirmByUser(r.Context(), bookingID, accountID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ConfirmByModel(w http.ResponseWriter, r *http.Request) {
	bookingID := r.URL.Query().Get(":id")
	booking, err := h.Service.ConfirmByModel(r.Context(), bookingID, accountID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.URL.Query().Get(":id")
	receipt, err := h.Service.CancelByUser(r.Context(), bookingID, accountID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (h *BookingHandler) GetModelBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.BookingsForModel(r.Context(), accountID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) GetUserHistory(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.HistoryForUser(r.Context(), accountID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
