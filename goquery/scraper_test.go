package goquery_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/fwojciec/kickprof"
	"github.com/fwojciec/kickprof/goquery"
	"github.com/fwojciec/kickprof/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bioPageHTML = `<html>
<head><meta property="og:description" content="Maker of fine widgets."></head>
<body>
<div class="profile_bio">
	<h2 class="mb2"> Jane Doe </h2>
	<span class="location"><a href="/places/portland">Portland, OR</a></span>
	<span class="joined">Joined <time datetime="2014-02-21T16:29:53-05:00">February 2014</time></span>
	<span class="backed">Backed 12 projects</span>
	<div data-badges='["superbacker"]'></div>
</div>
<a id="profile_created" href="/created">Created <span class="count">1</span></a>
</body>
</html>`

const createdPageHTML = `<html><body>
<div data-projects='[{"name":"Widget","state":"successful","pledged":500,"goal":400,
"slug":"widget-project","category":{"parents":[{"name":"Design"}]}}]'></div>
</body></html>`

// pagesFetcher serves canned HTML keyed by URL and fails for unknown URLs.
func pagesFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			html, ok := pages[url]
			if !ok {
				return "", errors.New("connection refused")
			}
			return html, nil
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScraper_CreatorProfile(t *testing.T) {
	t.Parallel()

	t.Run("assembles the full profile", func(t *testing.T) {
		t.Parallel()

		fetcher := pagesFetcher(map[string]string{
			kickprof.ProfileURL("janedoe", 1):         bioPageHTML,
			kickprof.CreatedProjectsURL("janedoe", 1): createdPageHTML,
		})
		scraper := goquery.NewScraper(fetcher, goquery.WithLogger(discardLogger()))

		profile, err := scraper.CreatorProfile(context.Background(), "janedoe")
		require.NoError(t, err)

		require.NotNil(t, profile.URL)
		assert.Equal(t, "https://www.kickstarter.com/profile/janedoe?page=1", *profile.URL)
		assert.Equal(t, ptr("Jane Doe"), profile.Name)
		assert.Equal(t, ptr("Portland"), profile.City)
		assert.Equal(t, ptr("OR"), profile.State)
		require.NotNil(t, profile.Joined)
		assert.Equal(t, 2014, profile.Joined.Year())
		assert.True(t, profile.Superbacker)
		assert.False(t, profile.BackerFavorite)
		assert.Equal(t, ptr("Maker of fine widgets."), profile.About)
		assert.Equal(t, 12, profile.BackedProjects)
		assert.Equal(t, 1, profile.CreatedProjects)

		require.Len(t, profile.Projects, 1)
		p := profile.Projects[0]
		assert.Equal(t, "Widget", p.Title)
		assert.Equal(t, "successful", p.Status)
		require.NotNil(t, p.PercentFunded)
		assert.Equal(t, 125, *p.PercentFunded)
		assert.Equal(t, []string{"Design"}, p.Categories)
		assert.Equal(t, "https://www.kickstarter.com/projects/widget-project", p.ProjectURL)
	})

	t.Run("bio fetch failure yields an all-defaults profile", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		fetcher := pagesFetcher(nil) // every fetch fails
		scraper := goquery.NewScraper(fetcher, goquery.WithLogger(logger))

		profile, err := scraper.CreatorProfile(context.Background(), "janedoe")
		require.NoError(t, err)

		assert.Equal(t, &kickprof.CreatorProfile{}, profile)
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "janedoe")
	})

	t.Run("created-projects fetch failure keeps bio data", func(t *testing.T) {
		t.Parallel()

		fetcher := pagesFetcher(map[string]string{
			kickprof.ProfileURL("janedoe", 1): bioPageHTML,
		})
		scraper := goquery.NewScraper(fetcher, goquery.WithLogger(discardLogger()))

		profile, err := scraper.CreatorProfile(context.Background(), "janedoe")
		require.NoError(t, err)

		assert.Equal(t, ptr("Jane Doe"), profile.Name)
		assert.Equal(t, 12, profile.BackedProjects)
		assert.Empty(t, profile.Projects)
	})

	t.Run("missing bio container leaves bio fields absent", func(t *testing.T) {
		t.Parallel()

		fetcher := pagesFetcher(map[string]string{
			kickprof.ProfileURL("janedoe", 1):         `<html><body><p>moved</p></body></html>`,
			kickprof.CreatedProjectsURL("janedoe", 1): createdPageHTML,
		})
		scraper := goquery.NewScraper(fetcher, goquery.WithLogger(discardLogger()))

		profile, err := scraper.CreatorProfile(context.Background(), "janedoe")
		require.NoError(t, err)

		assert.Nil(t, profile.Name)
		assert.Nil(t, profile.City)
		assert.Nil(t, profile.State)
		assert.Nil(t, profile.Joined)
		assert.False(t, profile.BackerFavorite)
		assert.False(t, profile.Superbacker)
		assert.Equal(t, 0, profile.BackedProjects)
		// Projects come from the second page and survive a missing bio.
		assert.Len(t, profile.Projects, 1)
	})

	t.Run("malformed joined timestamp propagates", func(t *testing.T) {
		t.Parallel()

		fetcher := pagesFetcher(map[string]string{
			kickprof.ProfileURL("janedoe", 1): `<div class="profile_bio">
				<span class="joined"><time datetime="last tuesday"></time></span>
			</div>`,
		})
		scraper := goquery.NewScraper(fetcher, goquery.WithLogger(discardLogger()))

		_, err := scraper.CreatorProfile(context.Background(), "janedoe")
		require.Error(t, err)
		assert.Equal(t, kickprof.EINVALID, kickprof.ErrorCode(err))
	})

	t.Run("repeated extraction of identical input is identical", func(t *testing.T) {
		t.Parallel()

		fetcher := pagesFetcher(map[string]string{
			kickprof.ProfileURL("janedoe", 1):         bioPageHTML,
			kickprof.CreatedProjectsURL("janedoe", 1): createdPageHTML,
		})
		scraper := goquery.NewScraper(fetcher, goquery.WithLogger(discardLogger()))

		first, err := scraper.CreatorProfile(context.Background(), "janedoe")
		require.NoError(t, err)
		second, err := scraper.CreatorProfile(context.Background(), "janedoe")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
