package core

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/devlink/desktop/internal/auth"
)

type stubService struct {
	result auth.Result
	err    error
	calls  int
}

func (s *stubService) Login(ctx context.Context, email, password string) (auth.Result, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubService) Register(ctx context.Context, username, email, password string) (auth.Result, error) {
	s.calls++
	return s.result, s.err
}

func TestAuthTrackerRecordsSuccess(t *testing.T) {
	j := openJournal(t)
	stub := &stubService{result: auth.NewResult(map[string]interface{}{"token": "t1"})}
	tracker := NewAuthTracker(stub, j, nil)

	result, err := tracker.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "t1", result.Token())
	assert.Equal(t, 1, stub.calls)

	attempts, err := j.RecentAttempts(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, auth.OpLogin, attempts[0].Op)
	assert.Equal(t, "a@b.com", attempts[0].Email)
	assert.True(t, attempts[0].Success)
	assert.NotEmpty(t, attempts[0].AttemptID)
}

func TestAuthTrackerRecordsFailureAndPassesErrorThrough(t *testing.T) {
	j := openJournal(t)
	wantErr := &auth.Error{Op: auth.OpRegister, Status: 409, Message: "email already exists"}
	tracker := NewAuthTracker(&stubService{err: wantErr}, j, nil)

	result, err := tracker.Register(context.Background(), "u", "a@b.com", "pw")
	assert.Nil(t, result.Body)
	assert.Same(t, wantErr, err)

	attempts, err := j.RecentAttempts(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, auth.OpRegister, attempts[0].Op)
	assert.Equal(t, "u", attempts[0].Username)
	assert.False(t, attempts[0].Success)
	assert.Equal(t, 409, attempts[0].Status)
	assert.Equal(t, "email already exists", attempts[0].Message)
}

func TestAuthTrackerJournalsAfterCancel(t *testing.T) {
	j := openJournal(t)
	tracker := NewAuthTracker(&stubService{err: context.Canceled}, j, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tracker.Login(ctx, "a@b.com", "pw")
	assert.True(t, errors.Is(err, context.Canceled))

	attempts, err := j.RecentAttempts(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, context.Canceled.Error(), attempts[0].Message)
}

func TestAuthTrackerLogsAndSurvivesJournalFailure(t *testing.T) {
	j := NewJournal(filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, j.Connect())
	require.NoError(t, j.Close())

	obsCore, logs := observer.New(zap.InfoLevel)
	tracker := NewAuthTracker(&stubService{result: auth.NewResult(map[string]interface{}{})}, j, zap.New(obsCore))

	_, err := tracker.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("auth attempt succeeded").Len())
	assert.Equal(t, 1, logs.FilterMessage("failed to journal auth attempt").Len())
}

func TestAuthTrackerWithoutJournal(t *testing.T) {
	obsCore, logs := observer.New(zap.InfoLevel)
	tracker := NewAuthTracker(&stubService{err: errors.New("boom")}, nil, zap.New(obsCore))
	tracker.now = fixedClock(time.Unix(0, 0))

	_, err := tracker.Login(context.Background(), "a@b.com", "pw")
	assert.EqualError(t, err, "boom")

	entries := logs.FilterMessage("auth attempt failed").All()
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].ContextMap(), "email")
	assert.Equal(t, 0, logs.FilterMessage("auth attempt").Len())
}

func TestAuthTrackerLogsEmailOnlyAtDebug(t *testing.T) {
	obsCore, logs := observer.New(zap.DebugLevel)
	tracker := NewAuthTracker(&stubService{result: auth.NewResult(nil)}, nil, zap.New(obsCore))

	_, err := tracker.Register(context.Background(), "u", "a@b.com", "pw")
	require.NoError(t, err)

	for _, entry := range logs.All() {
		if entry.Level > zap.DebugLevel {
			assert.NotContains(t, entry.ContextMap(), "email", entry.Message)
		}
	}
	debug := logs.FilterMessage("auth attempt").All()
	require.Len(t, debug, 1)
	assert.Equal(t, zap.DebugLevel, debug[0].Level)
	assert.Equal(t, "a@b.com", debug[0].ContextMap()["email"])
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
