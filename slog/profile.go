package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/kickprof"
)

// Ensure LoggingProfileService implements kickprof.ProfileService.
var _ kickprof.ProfileService = (*LoggingProfileService)(nil)

// LoggingProfileService wraps a ProfileService with extraction logging.
type LoggingProfileService struct {
	next   kickprof.ProfileService
	logger *slog.Logger
}

// NewLoggingProfileService creates a new LoggingProfileService.
func NewLoggingProfileService(next kickprof.ProfileService, logger *slog.Logger) *LoggingProfileService {
	return &LoggingProfileService{next: next, logger: logger}
}

// CreatorProfile delegates to the wrapped service, logging the username,
// project count, and duration, or the error on failure.
func (s *LoggingProfileService) CreatorProfile(ctx context.Context, username string) (*kickprof.CreatorProfile, error) {
	begin := time.Now()
	profile, err := s.next.CreatorProfile(ctx, username)
	if err != nil {
		s.logger.Error("extract profile", "username", username, "err", err, "duration", time.Since(begin))
		return nil, err
	}
	s.logger.Info("extract profile",
		"username", username,
		"projects", len(profile.Projects),
		"duration", time.Since(begin))
	return profile, nil
}
