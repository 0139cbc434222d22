package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"tablebook/internal/bookings/service"
	apperrors "tablebook/pkg/errors"
	httputil "tablebook/pkg/http"
	"tablebook/pkg/logger"
	"tablebook/pkg/middleware"
	"tablebook/pkg/model"
)

// CreateBookingResponse is the envelope returned on a successful create.
type CreateBookingResponse struct {
	Success bool           `json:"success"`
	Booking *model.Booking `json:"booking"`
}

// DeleteBookingResponse is the envelope returned on a successful delete.
type DeleteBookingResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(svc service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{service: svc, log: log}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodPost, "/api/bookings", h.Create)
	router.HandlerFunc(http.MethodGet, "/api/bookings", h.GetAll)
	router.Handle(http.MethodDelete, "/api/bookings/:id", h.Delete)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		h.writeError(w, r, apperrors.InvalidInput("invalid request body"))
		return
	}

	created, err := h.service.Create(r.Context(), &booking)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := httputil.WriteCreated(w, CreateBookingResponse{Success: true, Booking: created}); err != nil {
		h.log.Error("failed to write create response", "error", err, "request_id", middleware.RequestID(r.Context()))
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// The list body is the bare array, no envelope.
	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write list response", "error", err, "request_id", middleware.RequestID(r.Context()))
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id := params.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := httputil.WriteSuccess(w, DeleteBookingResponse{Success: true, Message: "booking deleted"}); err != nil {
		h.log.Error("failed to write delete response", "error", err, "request_id", middleware.RequestID(r.Context()))
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.log.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestID(r.Context()),
		)
	}
	if werr := httputil.WriteError(w, appErr); werr != nil {
		h.log.Error("failed to write error response", "error", werr)
	}
}
