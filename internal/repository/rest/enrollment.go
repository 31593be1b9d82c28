package rest

import (
	"context"
	"net/http"

	"investiga-web/internal/repository"
)

type enrollmentRepository struct {
	c *Client
}

func NewEnrollmentRepository(c *Client) repository.EnrollmentRepository {
	return &enrollmentRepository{c: c}
}

func (r *enrollmentRepository) post(ctx context.Context, op, path string, body any) error {
	_, err := r.c.do(ctx, call{op: op, method: http.MethodPost, path: path, body: body}, nil)
	return err
}

func (r *enrollmentRepository) Request(ctx context.Context, projectID int32, message string) error {
	return r.post(ctx, "enrollment.request", idPath("/projects/%d/enroll", projectID), withMessage(message))
}

func (r *enrollmentRepository) CancelRequest(ctx context.Context, projectID int32) error {
	return r.post(ctx, "enrollment.cancel_request", idPath("/projects/%d/enroll/cancel", projectID), nil)
}

func (r *enrollmentRepository) Unenroll(ctx context.Context, projectID int32, message string) error {
	return r.post(ctx, "enrollment.unenroll", idPath("/projects/%d/unenroll", projectID), withMessage(message))
}

func (r *enrollmentRepository) Approve(ctx context.Context, projectID, userID int32, message string) error {
	return r.post(ctx, "enrollment.approve", idPath("/projects/%d/requests/%d/approve", projectID, userID), withMessage(message))
}

func (r *enrollmentRepository) Reject(ctx context.Context, projectID, userID int32, message string) error {
	return r.post(ctx, "enrollment.reject", idPath("/projects/%d/requests/%d/reject", projectID, userID), withMessage(message))
}

func (r *enrollmentRepository) Revoke(ctx context.Context, projectID, userID int32, message string) error {
	return r.post(ctx, "enrollment.revoke", idPath("/projects/%d/members/%d/revoke", projectID, userID), withMessage(message))
}

func (r *enrollmentRepository) AcknowledgeKick(ctx context.Context, projectID int32) error {
	return r.post(ctx, "enrollment.acknowledge_kick", idPath("/projects/%d/kick/ack", projectID), nil)
}

func (r *enrollmentRepository) AcceptInvitation(ctx context.Context, projectID int32, message string) error {
	return r.post(ctx, "enrollment.accept_invitation", idPath("/projects/%d/invitation/accept", projectID), withMessage(message))
}

func (r *enrollmentRepository) DeclineInvitation(ctx context.Context, projectID int32, message string) error {
	return r.post(ctx, "enrollment.decline_invitation", idPath("/projects/%d/invitation/decline", projectID), withMessage(message))
}

func (r *enrollmentRepository) CancelInvitation(ctx context.Context, projectID, userID int32) error {
	return r.post(ctx, "enrollment.cancel_invitation", idPath("/projects/%d/invitations/%d/cancel", projectID, userID), nil)
}

func (r *enrollmentRepository) Invite(ctx context.Context, projectID, userID int32, message string) error {
	return r.post(ctx, "enrollment.invite", idPath("/projects/%d/invitations/%d", projectID, userID), withMessage(message))
}
