package leave

import (
	"context"

	"github.com/kerjahub/hris-backend/internal/domain/authz"
)

// LeaveService defines the business operations on leave requests.
type LeaveService interface {
	// Submit files a leave request for the actor's own employee record.
	// Overlap and quota checks run inside a transaction before the insert.
	Submit(ctx context.Context, actor authz.Actor, req SubmitLeaveRequest) (LeaveRequest, error)

	// Approve and Reject move a pending request to its terminal status and
	// stamp the review fields. Reviewer roles only.
	Approve(ctx context.Context, actor authz.Actor, requestID string, notes string) (LeaveRequest, error)
	Reject(ctx context.Context, actor authz.Actor, requestID string, notes string) (LeaveRequest, error)

	List(ctx context.Context, actor authz.Actor, filter ListFilter) ([]LeaveRequest, int64, error)

	ListMine(ctx context.Context, actor authz.Actor, filter ListFilter) ([]LeaveRequest, int64, error)
}
