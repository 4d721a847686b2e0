package http

import (
	"encoding/json"
	"net/http"

	"github.com/kerjahub/hris-backend/internal/domain/attendance"
	"github.com/kerjahub/hris-backend/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler. An empty body defaults to the
// actor's own employee record.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	req := attendance.CheckInRequest{EmployeeID: actor.EmployeeID}
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	att, err := h.attendanceService.CheckIn(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", att)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func attendanceFilter(r *http.Request) attendance.ListFilter {
	page, limit := parsePagination(r)
	return attendance.ListFilter{
		EmployeeID: queryParam(r, "employee_id"),
		Date:       queryParam(r, "date"),
		StartDate:  queryParam(r, "start_date"),
		EndDate:    queryParam(r, "end_date"),
		Status:     queryParam(r, "status"),
		Page:       page,
		Limit:      limit,
	}
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	filter := attendanceFilter(r)
	attendances, total, err := h.attendanceService.List(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, attendances, response.NewMeta(filter.Page, filter.Limit, total))
}

// ListMine implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	filter := attendanceFilter(r)
	attendances, total, err := h.attendanceService.ListMine(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, attendances, response.NewMeta(filter.Page, filter.Limit, total))
}
