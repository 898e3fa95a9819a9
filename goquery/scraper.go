// Package goquery implements the profile extraction core on top of
// github.com/PuerkitoBio/goquery.
//
// Each field extractor is an independent pure function over a parsed
// document (or sub-tree) with an explicit default for structural absence,
// so the assembled profile tolerates partial or drifted markup without one
// missing field invalidating the rest.
package goquery

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kickprof"
)

// Ensure Scraper implements kickprof.ProfileService at compile time.
var _ kickprof.ProfileService = (*Scraper)(nil)

// Scraper assembles creator profiles from fetched profile pages.
// Scraper holds no mutable state across calls; each extraction is
// independent and its result depends only on the fetched documents.
type Scraper struct {
	fetcher kickprof.Fetcher
	logger  *slog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithLogger sets the logger used to report recovered transport failures.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// NewScraper creates a new Scraper that fetches pages with fetcher.
func NewScraper(fetcher kickprof.Fetcher, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher: fetcher,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatorProfile fetches the creator's bio and created-projects pages and
// assembles the extracted fields into one profile.
//
// Extraction is fail-open: a transport failure on the bio fetch yields a
// profile populated entirely with defaults, a transport failure on the
// created-projects fetch yields an empty project list without invalidating
// bio data, and a missing bio container leaves every bio-derived field
// absent. The only propagated failure is a joined timestamp that is present
// but malformed.
func (s *Scraper) CreatorProfile(ctx context.Context, username string) (*kickprof.CreatorProfile, error) {
	url := kickprof.ProfileURL(username, 1)

	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Error("fetching creator profile", "username", username, "url", url, "err", err)
		return &kickprof.CreatorProfile{}, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, kickprof.Errorf(kickprof.EINVALID, "failed to parse profile page: %v", err)
	}

	bio := doc.Find("div.profile_bio").First()

	joined, err := ExtractJoined(bio)
	if err != nil {
		return nil, err
	}

	return &kickprof.CreatorProfile{
		URL:             &url,
		Name:            ExtractName(bio),
		City:            ExtractLocation(bio, LocationCity),
		State:           ExtractLocation(bio, LocationState),
		Joined:          joined,
		BackerFavorite:  HasBadge(bio, BadgeBackerFavorite),
		Superbacker:     HasBadge(bio, BadgeSuperbacker),
		About:           ExtractAbout(doc),
		BackedProjects:  ExtractBackedCount(bio),
		CreatedProjects: ExtractCreatedCount(doc),
		Projects:        s.createdProjects(ctx, username),
	}, nil
}

// createdProjects fetches and parses the creator's launched-projects page.
// A transport or parse failure yields an empty list: a secondary fetch
// failure must not invalidate data already obtained from the primary fetch.
func (s *Scraper) createdProjects(ctx context.Context, username string) []kickprof.ProjectSummary {
	url := kickprof.CreatedProjectsURL(username, 1)

	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Error("fetching created projects", "username", username, "url", url, "err", err)
		return []kickprof.ProjectSummary{}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		s.logger.Error("parsing created projects page", "username", username, "err", err)
		return []kickprof.ProjectSummary{}
	}

	return ExtractProjects(doc)
}
