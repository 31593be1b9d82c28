package enrollment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"investiga-web/internal/cache"
	"investiga-web/internal/domain"
	"investiga-web/internal/logger"
	"investiga-web/internal/notify"
	"investiga-web/internal/repository"
	"investiga-web/internal/sanitize"
)

var (
	ErrNotDispatchable = errors.New("action cannot be dispatched")
	ErrMissingTarget   = errors.New("action requires a target user")
)

// Observer receives the outcome of every dispatched action, used for metrics
type Observer interface {
	ObserveEnrollmentAction(action string, outcome string)
}

// Command is one user-initiated enrollment action
type Command struct {
	Action    Action
	ProjectID int32
	UserID    int32 // target user for admin actions
	Message   string
	Actor     *domain.CurrentUser
	SessionID string
}

func (c Command) key() string {
	return fmt.Sprintf("%s|%s|%d|%d", c.SessionID, c.Action, c.ProjectID, c.UserID)
}

type Dispatcher struct {
	repo     repository.EnrollmentRepository
	observer Observer

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewDispatcher(repo repository.EnrollmentRepository, observer Observer) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		observer: observer,
		inFlight: make(map[string]struct{}),
	}
}

// Dispatch issues exactly one backend call for cmd and returns the notice to
// show. On success the affected keys of scope are invalidated so the next read
// refetches; on failure the cache is left untouched.
func (d *Dispatcher) Dispatch(ctx context.Context, scope *cache.Scope, loc notify.Localizer, cmd Command) (domain.Notice, error) {
	op := cmd.Action.Operation()

	if !cmd.Action.Dispatchable() {
		return loc.Failure(op, ErrNotDispatchable), fmt.Errorf("%w: %q", ErrNotDispatchable, cmd.Action)
	}
	if cmd.Actor == nil || cmd.Actor.ID == 0 {
		d.observe(cmd.Action, "unauthenticated")
		return loc.LoginRequired(), domain.ErrUnauthenticated
	}
	if cmd.Action.RequiresVerifiedEmail() && !cmd.Actor.IsVerified {
		d.observe(cmd.Action, "unverified")
		return loc.Failure(op, domain.ErrUnverifiedEmail), domain.ErrUnverifiedEmail
	}
	if cmd.Action.NeedsTarget() && cmd.UserID == 0 {
		return loc.Failure(op, ErrMissingTarget), ErrMissingTarget
	}

	if !d.acquire(cmd) {
		d.observe(cmd.Action, "in_flight")
		return loc.Failure(op, domain.ErrInFlight), domain.ErrInFlight
	}
	defer d.release(cmd)

	if err := d.call(ctx, cmd); err != nil {
		d.observe(cmd.Action, "failure")
		logger.WarnContext(ctx, "Enrollment action failed",
			"action", cmd.Action, "project_id", cmd.ProjectID, "user_id", cmd.UserID, "actor_id", cmd.Actor.ID, "error", err)
		return loc.Failure(op, err), err
	}

	d.observe(cmd.Action, "success")
	logger.InfoContext(ctx, "Enrollment action dispatched",
		"action", cmd.Action, "project_id", cmd.ProjectID, "user_id", cmd.UserID, "actor_id", cmd.Actor.ID)
	if scope != nil {
		scope.Invalidate(InvalidatedKeys(cmd.Action, cmd.ProjectID)...)
		if !cmd.Action.NeedsTarget() {
			// List rows carry the viewer's own request state
			scope.InvalidatePrefix(cache.ProjectListPrefix)
		}
	}
	return loc.Success(op), nil
}

// InvalidatedKeys lists the cache keys a successful action makes stale
func InvalidatedKeys(a Action, projectID int32) []string {
	keys := []string{cache.ProjectKey(projectID)}
	if a.NeedsTarget() {
		return append(keys, cache.ProjectRequestsKey(projectID))
	}
	return append(keys, cache.CurrentUserKey)
}

func (d *Dispatcher) call(ctx context.Context, cmd Command) error {
	msg := ""
	if cmd.Action.TakesNote() {
		msg = sanitize.String(cmd.Message)
	}

	switch cmd.Action {
	case ActionRequest:
		return d.repo.Request(ctx, cmd.ProjectID, msg)
	case ActionCancelRequest:
		return d.repo.CancelRequest(ctx, cmd.ProjectID)
	case ActionUnenroll:
		return d.repo.Unenroll(ctx, cmd.ProjectID, msg)
	case ActionApprove:
		return d.repo.Approve(ctx, cmd.ProjectID, cmd.UserID, msg)
	case ActionReject:
		return d.repo.Reject(ctx, cmd.ProjectID, cmd.UserID, msg)
	case ActionRevoke:
		return d.repo.Revoke(ctx, cmd.ProjectID, cmd.UserID, msg)
	case ActionAcknowledgeKick:
		return d.repo.AcknowledgeKick(ctx, cmd.ProjectID)
	case ActionAcceptInvitation:
		return d.repo.AcceptInvitation(ctx, cmd.ProjectID, msg)
	case ActionDeclineInvitation:
		return d.repo.DeclineInvitation(ctx, cmd.ProjectID, msg)
	case ActionCancelInvitation:
		return d.repo.CancelInvitation(ctx, cmd.ProjectID, cmd.UserID)
	case ActionInvite:
		return d.repo.Invite(ctx, cmd.ProjectID, cmd.UserID, msg)
	default:
		return fmt.Errorf("%w: %q", ErrNotDispatchable, cmd.Action)
	}
}

func (d *Dispatcher) acquire(cmd Command) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	k := cmd.key()
	if _, busy := d.inFlight[k]; busy {
		return false
	}
	d.inFlight[k] = struct{}{}
	return true
}

func (d *Dispatcher) release(cmd Command) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.inFlight, cmd.key())
}

func (d *Dispatcher) observe(a Action, outcome string) {
	if d.observer != nil {
		d.observer.ObserveEnrollmentAction(string(a), outcome)
	}
}
