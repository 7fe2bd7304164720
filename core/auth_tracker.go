package core

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devlink/desktop/internal/auth"
)

var _ auth.Service = (*AuthTracker)(nil)

// AuthTracker wraps an auth.Service and journals every attempt. Results and
// errors from the wrapped service are returned untouched; a journal failure
// is logged, never surfaced to the caller.
type AuthTracker struct {
	next    auth.Service
	journal *Journal
	logger  *zap.Logger
	now     func() time.Time
}

func NewAuthTracker(next auth.Service, journal *Journal, logger *zap.Logger) *AuthTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthTracker{
		next:    next,
		journal: journal,
		logger:  logger,
		now:     time.Now,
	}
}

func (t *AuthTracker) Login(ctx context.Context, email, password string) (auth.Result, error) {
	attempt := t.begin(auth.OpLogin, email, "")
	result, err := t.next.Login(ctx, email, password)
	t.finish(ctx, attempt, err)
	return result, err
}

func (t *AuthTracker) Register(ctx context.Context, username, email, password string) (auth.Result, error) {
	attempt := t.begin(auth.OpRegister, email, username)
	result, err := t.next.Register(ctx, username, email, password)
	t.finish(ctx, attempt, err)
	return result, err
}

func (t *AuthTracker) begin(op, email, username string) Attempt {
	return Attempt{
		AttemptID: uuid.NewString(),
		Op:        op,
		Email:     email,
		Username:  username,
		StartedAt: t.now(),
	}
}

func (t *AuthTracker) finish(ctx context.Context, a Attempt, err error) {
	a.Duration = t.now().Sub(a.StartedAt)
	a.Success = err == nil
	a.Message = auth.Message(err)

	var authErr *auth.Error
	if errors.As(err, &authErr) {
		a.Status = authErr.Status
	}

	// Emails stay out of Info and above; the journal is where they are kept.
	t.logger.Debug("auth attempt", zap.String("attempt_id", a.AttemptID), zap.String("email", a.Email))

	fields := []zap.Field{
		zap.String("attempt_id", a.AttemptID),
		zap.String("op", a.Op),
		zap.Bool("success", a.Success),
		zap.Duration("duration", a.Duration),
	}
	if err != nil {
		t.logger.Warn("auth attempt failed", append(fields, zap.Int("status", a.Status), zap.Error(err))...)
	} else {
		t.logger.Info("auth attempt succeeded", fields...)
	}

	if t.journal == nil {
		return
	}
	// The caller's context may already be cancelled; the record is still wanted.
	if jerr := t.journal.SaveAttempt(context.WithoutCancel(ctx), a); jerr != nil {
		t.logger.Error("failed to journal auth attempt", zap.String("attempt_id", a.AttemptID), zap.Error(jerr))
	}
}
