package mock

import (
	"context"

	"github.com/fwojciec/kickprof"
)

var _ kickprof.ProfileService = (*ProfileService)(nil)

// ProfileService is a mock implementation of kickprof.ProfileService.
type ProfileService struct {
	CreatorProfileFn func(ctx context.Context, username string) (*kickprof.CreatorProfile, error)
}

func (s *ProfileService) CreatorProfile(ctx context.Context, username string) (*kickprof.CreatorProfile, error) {
	return s.CreatorProfileFn(ctx, username)
}

var _ kickprof.ProfileStore = (*ProfileStore)(nil)

// ProfileStore is a mock implementation of kickprof.ProfileStore.
type ProfileStore struct {
	SaveProfileFn           func(ctx context.Context, snap *kickprof.ProfileSnapshot) error
	FindProfileByUsernameFn func(ctx context.Context, username string) (*kickprof.ProfileSnapshot, error)
	FindProfilesFn          func(ctx context.Context, filter kickprof.ProfileFilter) ([]*kickprof.ProfileSnapshot, error)
	DeleteProfileFn         func(ctx context.Context, username string) error
}

func (s *ProfileStore) SaveProfile(ctx context.Context, snap *kickprof.ProfileSnapshot) error {
	return s.SaveProfileFn(ctx, snap)
}

func (s *ProfileStore) FindProfileByUsername(ctx context.Context, username string) (*kickprof.ProfileSnapshot, error) {
	return s.FindProfileByUsernameFn(ctx, username)
}

func (s *ProfileStore) FindProfiles(ctx context.Context, filter kickprof.ProfileFilter) ([]*kickprof.ProfileSnapshot, error) {
	return s.FindProfilesFn(ctx, filter)
}

func (s *ProfileStore) DeleteProfile(ctx context.Context, username string) error {
	return s.DeleteProfileFn(ctx, username)
}
