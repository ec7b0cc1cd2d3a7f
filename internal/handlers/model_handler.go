package handlers

import (
	"encoding/json"
	"net/http"

	"fishhook/internal/models"
	"fishhook/internal/services"
)

type ModelHandler struct {
	Service *services.ModelService
}

func (h *ModelHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req services.ModelSignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	m, err := h.Service.SignUp(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *ModelHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	tokens, err := h.Service.SignIn(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

func (h *ModelHandler) GetModelByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	m, err := h.Service.GetModelByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *ModelHandler) GetModels(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.GetModels(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ModelHandler) SetOnline(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsOnline bool `json:"is_online"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	if err := h.Service.SetOnline(r.Context(), accountID(r), req.IsOnline); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
