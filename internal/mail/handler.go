package mail

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/apex-meme-lord/ewsclient/ews"
)

// Handler handles HTTP requests for mailbox operations. Exchange item
// ids contain URL-hostile characters, so items are addressed through the
// item_id query parameter rather than the path.
type Handler struct {
	service Service
}

// NewHandler creates a new mail handler with the given service
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers mail routes on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/mail", func(r chi.Router) {
		r.Get("/messages", h.ListMessages)
		r.Post("/messages", h.CreateMessage)
		r.Get("/message", h.GetMessage)
		r.Delete("/message", h.DeleteMessage)
		r.Post("/message/send", h.SendMessage)
		r.Post("/message/move", h.MoveMessage)
		r.Post("/message/copy", h.CopyMessage)
	})
}

// ListMessages retrieves a page of messages from a folder
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	folder := r.URL.Query().Get("folder")
	delegateFor := r.URL.Query().Get("delegate_for")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.service.ListMessages(r.Context(), folder, delegateFor, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetMessage retrieves the full detail of one message
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	itemID := r.URL.Query().Get("item_id")

	result, err := h.service.GetMessage(r.Context(), itemID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// CreateMessage creates a draft message
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	result, err := h.service.CreateMessage(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// SendMessage submits a stored message for delivery
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	itemID := r.URL.Query().Get("item_id")

	if err := h.service.SendMessage(r.Context(), itemID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// DeleteMessage hard-deletes a message
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	itemID := r.URL.Query().Get("item_id")

	if err := h.service.DeleteMessage(r.Context(), itemID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// MoveMessage moves a message into another folder
func (h *Handler) MoveMessage(w http.ResponseWriter, r *http.Request) {
	itemID := r.URL.Query().Get("item_id")

	var req FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	if err := h.service.MoveMessage(r.Context(), itemID, req.FolderID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "moved"})
}

// CopyMessage copies a message into another folder
func (h *Handler) CopyMessage(w http.ResponseWriter, r *http.Request) {
	itemID := r.URL.Query().Get("item_id")

	var req FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	result, err := h.service.CopyMessage(r.Context(), itemID, req.FolderID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// respondServiceError maps service errors to HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingItemID), errors.Is(err, ErrMissingFolderID), errors.Is(err, ErrMissingSubject):
		respondError(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, ews.ErrMessageNotFound):
		respondError(w, http.StatusNotFound, "Not Found", "message not found")
	default:
		respondError(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, errType, message string) {
	respondJSON(w, status, ErrorResponse{Error: errType, Message: message})
}
