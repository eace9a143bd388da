package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/platform/logging"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the service clock in UTC.
func (s *BaseService) Now() time.Time {
	if s.clock != nil {
		return s.clock().UTC()
	}
	return time.Now().UTC()
}

// ServiceOption is a functional option shared by all services
type ServiceOption func(*BaseService)

// WithClock replaces the wall clock, for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

func newBaseService(options []ServiceOption) BaseService {
	var base BaseService
	for _, option := range options {
		option(&base)
	}
	return base
}

// logWriteError logs expected business rejections at debug level and everything else as errors.
func (s *BaseService) logWriteError(ctx context.Context, err error, msg string, keyvals ...any) {
	if isBusinessError(err) {
		args := append([]any{slog.String("reason", err.Error())}, keyvals...)
		s.LogDebug(ctx, msg, args...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func isBusinessError(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrState) ||
		errors.Is(err, apperrors.ErrDuplicate)
}
