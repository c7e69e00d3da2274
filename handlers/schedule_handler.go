package handlers

import (
	"log/slog"
	"net/http"

	"github.com/DucQuyen199/quanlybongda/middleware"
	"github.com/DucQuyen199/quanlybongda/services"
)

const scheduleIDParam = "scheduleID"

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(ss services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: ss,
	}
}

// CreateHandler обрабатывает POST /api/lichtd
func (h *ScheduleHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.UpsertScheduleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	auditLog(r, "schedule created", schedule.ID)
	resp := jsonResponse{"message": "Schedule created successfully.", "data": schedule}
	if err := writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler обрабатывает PUT /api/lichtd/{scheduleID}. Id из пути главнее maLich в теле.
func (h *ScheduleHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, scheduleIDParam)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpsertScheduleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.scheduleService.UpdateSchedule(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	auditLog(r, "schedule updated", schedule.ID)
	resp := jsonResponse{"message": "Schedule updated successfully.", "data": schedule}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScheduleHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, scheduleIDParam)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.scheduleService.GetSchedule(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, schedule, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler обрабатывает GET /api/lichtd?page=&limit=
func (h *ScheduleHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	list, err := h.scheduleService.ListSchedules(r.Context(), page, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, list, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScheduleHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, scheduleIDParam)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.scheduleService.DeleteSchedule(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	auditLog(r, "schedule deleted", id)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "Schedule deleted successfully."}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// auditLog пишет, кто из администраторов изменил расписание.
func auditLog(r *http.Request, msg, scheduleID string) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		userID = "unknown"
	}
	slog.InfoContext(r.Context(), msg,
		slog.String("schedule_id", scheduleID),
		slog.String("user_id", userID))
}
