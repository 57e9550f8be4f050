package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"carslot/internal/reservations/service"
	apperrors "carslot/pkg/errors"
	httputil "carslot/pkg/http"
	"carslot/pkg/logger"
	"carslot/pkg/timeofday"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability/starts", h.SelectableStarts)
	router.GET("/api/v1/availability/durations", h.ValidDurations)
	router.POST("/api/v1/reservations", h.Create)
	router.GET("/api/v1/reservations", h.GetAll)
	router.POST("/api/v1/reservations/:id/cancel", h.Cancel)
	router.POST("/api/v1/maintenance/sweep", h.Sweep)
}

type createReservationRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	DurationMin int    `json:"duration_min"`
	Resource    string `json:"resource"`
}

type startsResponse struct {
	Date     string   `json:"date"`
	Resource string   `json:"resource"`
	Starts   []string `json:"starts"`
}

type durationsResponse struct {
	Date      string `json:"date"`
	Resource  string `json:"resource"`
	StartTime string `json:"start_time"`
	Durations []int  `json:"durations"`
}

type sweepResponse struct {
	Expired int64 `json:"expired"`
}

func (h *ReservationHandler) SelectableStarts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	date := query.Get("date")
	resource := query.Get("resource")

	var minStart *timeofday.TimeOfDay
	if minStartStr := query.Get("min_start"); minStartStr != "" {
		tod, err := timeofday.Parse(minStartStr)
		if err != nil {
			h.writeError(w, "SelectableStarts", apperrors.InvalidInput(fmt.Sprintf("invalid min_start parameter: %s", minStartStr)))
			return
		}
		minStart = &tod
	}

	starts, err := h.service.SelectableStarts(r.Context(), date, resource, minStart)
	if err != nil {
		h.writeError(w, "SelectableStarts", err)
		return
	}

	formatted := make([]string, len(starts))
	for i, s := range starts {
		formatted[i] = s.String()
	}

	if err := httputil.WriteSuccess(w, startsResponse{
		Date:     date,
		Resource: resource,
		Starts:   formatted,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "SelectableStarts", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) ValidDurations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	date := query.Get("date")
	resource := query.Get("resource")
	startStr := query.Get("start")

	start, err := timeofday.Parse(startStr)
	if err != nil {
		h.writeError(w, "ValidDurations", apperrors.InvalidInput(fmt.Sprintf("invalid start parameter: %s", startStr)))
		return
	}

	durations, err := h.service.ValidDurations(r.Context(), date, resource, start)
	if err != nil {
		h.writeError(w, "ValidDurations", err)
		return
	}

	if err := httputil.WriteSuccess(w, durationsResponse{
		Date:      date,
		Resource:  resource,
		StartTime: start.String(),
		Durations: durations,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "ValidDurations", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	reservation, err := h.service.Create(r.Context(), service.CreateReservationInput{
		Name:        req.Name,
		Date:        req.Date,
		StartTime:   req.StartTime,
		DurationMin: req.DurationMin,
		Resource:    req.Resource,
	})
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	reservations, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, reservations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	idStr := ps.ByName("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.writeError(w, "Cancel", apperrors.InvalidInput(fmt.Sprintf("invalid reservation id: %s", idStr)))
		return
	}

	reservation, err := h.service.CancelByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Sweep(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	count, err := h.service.CancelExpired(r.Context())
	if err != nil {
		h.writeError(w, "Sweep", err)
		return
	}

	if err := httputil.WriteSuccess(w, sweepResponse{Expired: count}); err != nil {
		h.log.Error("failed to write success response", "handler", "Sweep", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}
