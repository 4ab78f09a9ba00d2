package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wordreader/internal/domain"
)

// ErrSessionNotDelivered is returned when the relay rejects a session record
var ErrSessionNotDelivered = errors.New("session record not delivered")

// Relay delivers payloads to the remote form endpoint
type Relay interface {
	Send(ctx context.Context, payload any) error
	SendAsync(payload any)
}

// SessionService builds session records and hands them to the relay
type SessionService struct {
	relay  Relay
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(relay Relay, logger *zap.Logger) *SessionService {
	return &SessionService{
		relay:  relay,
		logger: logger,
		now:    time.Now,
	}
}

// Start opens a session record for email
func (s *SessionService) Start(email string) *domain.SessionRecord {
	return &domain.SessionRecord{
		ID:            uuid.NewString(),
		User:          email,
		LoginTime:     s.now().UTC().Format(time.RFC3339),
		LoginLocation: domain.UnknownPlace,
	}
}

// Finish fills rec with the table snapshot and elapsed time and posts it
func (s *SessionService) Finish(ctx context.Context, rec *domain.SessionRecord, tableName string, rows [][]string, elapsed string) error {
	rec.TableName = tableName
	rec.TableData = rows
	rec.ElapsedTime = elapsed

	if err := s.relay.Send(ctx, rec); err != nil {
		s.logger.Error("Failed to deliver session record",
			zap.String("session", rec.ID),
			zap.String("user", rec.User),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrSessionNotDelivered, err)
	}

	s.logger.Info("Session record delivered", zap.String("session", rec.ID))
	return nil
}

// Unload posts the snapshot without waiting for the outcome
func (s *SessionService) Unload(snapshot domain.UnloadSnapshot) {
	s.relay.SendAsync(snapshot)
}
