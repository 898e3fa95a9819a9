package kickprof

import (
	"context"
	"fmt"
	"time"
)

// URL templates for Kickstarter pages. These are deliberately constants:
// the extraction core is written against one page shape and runtime
// reconfiguration would only mask drift.
const (
	profileURLTemplate         = "https://www.kickstarter.com/profile/%s?page=%d"
	createdProjectsURLTemplate = "https://www.kickstarter.com/profile/%s/created?page=%d"
	projectURLTemplate         = "https://www.kickstarter.com/projects/%s"
)

// ProfileURL returns the URL of a creator's profile (bio) page.
func ProfileURL(username string, page int) string {
	return fmt.Sprintf(profileURLTemplate, username, page)
}

// CreatedProjectsURL returns the URL of a creator's launched-projects page.
func CreatedProjectsURL(username string, page int) string {
	return fmt.Sprintf(createdProjectsURLTemplate, username, page)
}

// ProjectURL returns the canonical URL of a project given its slug.
// An empty slug yields a degenerate but well-formed URL.
func ProjectURL(slug string) string {
	return fmt.Sprintf(projectURLTemplate, slug)
}

// CreatorProfile is the assembled result of one profile extraction.
// Every pointer field is independently nullable: absence of one field never
// blocks extraction of another. City and State are the only fields derived
// from a shared source (one "City, State" location string).
//
// The record is a value constructed once per extraction and never mutated
// afterwards.
type CreatorProfile struct {
	URL             *string          `json:"creatorUrl"`
	Name            *string          `json:"creatorName"`
	City            *string          `json:"creatorCity"`
	State           *string          `json:"creatorState"`
	Joined          *time.Time       `json:"creatorJoined"`
	BackerFavorite  bool             `json:"creatorBackerFavorite"`
	Superbacker     bool             `json:"creatorSuperbacker"`
	About           *string          `json:"creatorAbout"`
	BackedProjects  int              `json:"backedProjects"`
	CreatedProjects int              `json:"creatorCreatedProjects"`
	Projects        []ProjectSummary `json:"creatorProjects"`
}

// ProfileService extracts a creator's profile.
type ProfileService interface {
	// CreatorProfile fetches and extracts the profile for username.
	//
	// Extraction is fail-open: transport failures and missing page structure
	// degrade individual fields to their defaults rather than erroring. The
	// only extraction failure that propagates is a joined timestamp that is
	// present but malformed.
	CreatorProfile(ctx context.Context, username string) (*CreatorProfile, error)
}

// ProfileSnapshot is a persisted record of one extraction. Persistence is a
// caller concern; the extraction core never stores anything.
type ProfileSnapshot struct {
	ID          string          `json:"id"`
	Username    string          `json:"username"`
	Profile     *CreatorProfile `json:"profile"`
	ContentHash string          `json:"contentHash"`
	FirstSeenAt time.Time       `json:"firstSeenAt"`
	FetchedAt   time.Time       `json:"fetchedAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *ProfileSnapshot) Validate() error {
	if s.Username == "" {
		return Errorf(EINVALID, "snapshot username required")
	}
	if s.Profile == nil {
		return Errorf(EINVALID, "snapshot profile required")
	}
	return nil
}

// ProfileStore persists profile snapshots.
type ProfileStore interface {
	// SaveProfile inserts a snapshot, or updates the existing snapshot for
	// the same username. The stored ID and FirstSeenAt survive updates.
	SaveProfile(ctx context.Context, snap *ProfileSnapshot) error

	// FindProfileByUsername retrieves the snapshot for a username.
	// Returns ENOTFOUND if no snapshot exists.
	FindProfileByUsername(ctx context.Context, username string) (*ProfileSnapshot, error)

	// FindProfiles retrieves snapshots matching the filter.
	FindProfiles(ctx context.Context, filter ProfileFilter) ([]*ProfileSnapshot, error)

	// DeleteProfile removes the snapshot for a username.
	// Returns ENOTFOUND if no snapshot exists.
	DeleteProfile(ctx context.Context, username string) error
}

// ProfileFilter represents a filter for FindProfiles.
type ProfileFilter struct {
	Username *string `json:"username"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
