package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/kickprof"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ kickprof.ProfileStore = (*ProfileStore)(nil)

// ProfileStore implements kickprof.ProfileStore using SQLite.
// Profiles are stored as JSON alongside an xxhash content hash, so callers
// can detect whether a re-scraped profile actually changed.
type ProfileStore struct {
	db *DB
}

// NewProfileStore creates a new ProfileStore.
func NewProfileStore(db *DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// SaveProfile inserts a snapshot, or updates the existing snapshot for the
// same username. The stored ID and FirstSeenAt survive updates.
func (s *ProfileStore) SaveProfile(ctx context.Context, snap *kickprof.ProfileSnapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(snap.Profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	snap.ContentHash = computeHash(string(payload))

	// Truncate to the precision RFC3339 storage preserves, so in-memory
	// snapshots compare equal to their round-tripped counterparts.
	now := time.Now().UTC().Truncate(time.Second)
	snap.FetchedAt = now

	existing, err := s.FindProfileByUsername(ctx, snap.Username)
	switch kickprof.ErrorCode(err) {
	case "":
		snap.ID = existing.ID
		snap.FirstSeenAt = existing.FirstSeenAt
		_, err = s.db.ExecContext(ctx, `
			UPDATE profiles SET profile = ?, content_hash = ?, fetched_at = ?
			WHERE username = ?
		`, string(payload), snap.ContentHash, snap.FetchedAt.Format(time.RFC3339), snap.Username)
		return err
	case kickprof.ENOTFOUND:
		snap.ID = uuid.New().String()
		snap.FirstSeenAt = now
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO profiles (id, username, profile, content_hash, first_seen_at, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, snap.ID, snap.Username, string(payload), snap.ContentHash,
			snap.FirstSeenAt.Format(time.RFC3339), snap.FetchedAt.Format(time.RFC3339))
		return err
	default:
		return err
	}
}

// FindProfileByUsername retrieves the snapshot for a username.
func (s *ProfileStore) FindProfileByUsername(ctx context.Context, username string) (*kickprof.ProfileSnapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, profile, content_hash, first_seen_at, fetched_at
		FROM profiles
		WHERE username = ?
	`, username)

	snap, err := scanSnapshot(row.Scan)
	if err == sql.ErrNoRows {
		return nil, kickprof.Errorf(kickprof.ENOTFOUND, "profile snapshot not found")
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// FindProfiles retrieves snapshots matching the filter, most recently
// fetched first.
func (s *ProfileStore) FindProfiles(ctx context.Context, filter kickprof.ProfileFilter) ([]*kickprof.ProfileSnapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, username, profile, content_hash, first_seen_at, fetched_at FROM profiles WHERE 1=1`)

	if filter.Username != nil {
		query.WriteString(" AND username = ?")
		args = append(args, *filter.Username)
	}

	query.WriteString(" ORDER BY fetched_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*kickprof.ProfileSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows.Scan)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// DeleteProfile removes the snapshot for a username.
func (s *ProfileStore) DeleteProfile(ctx context.Context, username string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE username = ?`, username)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return kickprof.Errorf(kickprof.ENOTFOUND, "profile snapshot not found")
	}
	return nil
}

// scanSnapshot reads one snapshot row using the provided scan function.
func scanSnapshot(scan func(dest ...any) error) (*kickprof.ProfileSnapshot, error) {
	var snap kickprof.ProfileSnapshot
	var payload, firstSeenAt, fetchedAt string

	if err := scan(&snap.ID, &snap.Username, &payload, &snap.ContentHash, &firstSeenAt, &fetchedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(payload), &snap.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	var err error
	snap.FirstSeenAt, err = time.Parse(time.RFC3339, firstSeenAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse first_seen_at: %w", err)
	}
	snap.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	return &snap, nil
}

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%016x", h)
}
