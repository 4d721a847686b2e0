package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kerjahub/hris-backend/internal/domain/leave"
	"github.com/kerjahub/hris-backend/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Submit implements LeaveHandler. An omitted employee_id defaults to the
// actor's own employee record.
func (h *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req leave.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.EmployeeID == "" {
		req.EmployeeID = actor.EmployeeID
	}

	request, err := h.leaveService.Submit(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", request)
}

func reviewNotes(r *http.Request) string {
	if r.Body == nil || r.ContentLength == 0 {
		return ""
	}
	var req leave.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return ""
	}
	return req.Notes
}

// Approve implements LeaveHandler.
func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	request, err := h.leaveService.Approve(r.Context(), actor, requestID, reviewNotes(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", request)
}

// Reject implements LeaveHandler.
func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	request, err := h.leaveService.Reject(r.Context(), actor, requestID, reviewNotes(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", request)
}

func leaveFilter(r *http.Request) leave.ListFilter {
	page, limit := parsePagination(r)
	return leave.ListFilter{
		EmployeeID: queryParam(r, "employee_id"),
		LeaveType:  queryParam(r, "leave_type"),
		Status:     queryParam(r, "status"),
		Page:       page,
		Limit:      limit,
	}
}

// List implements LeaveHandler.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	filter := leaveFilter(r)
	requests, total, err := h.leaveService.List(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, response.NewMeta(filter.Page, filter.Limit, total))
}

// ListMine implements LeaveHandler.
func (h *LeaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	filter := leaveFilter(r)
	requests, total, err := h.leaveService.ListMine(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, response.NewMeta(filter.Page, filter.Limit, total))
}
