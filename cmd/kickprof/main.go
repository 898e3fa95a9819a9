// Command kickprof extracts creator profiles from Kickstarter and prints
// them as text or JSON, optionally persisting snapshots to SQLite.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/kickprof"
	"github.com/fwojciec/kickprof/goquery"
	kickprofhttp "github.com/fwojciec/kickprof/http"
	"github.com/fwojciec/kickprof/rod"
	kickprofslog "github.com/fwojciec/kickprof/slog"
	"github.com/fwojciec/kickprof/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Retries     int           `short:"r" default:"0" help:"Transport retry attempts per fetch"`
	Browser     bool          `short:"b" help:"Fetch with a headless browser instead of plain HTTP"`
	JSON        bool          `short:"j" help:"Emit profiles as JSON"`
	DB          string        `help:"SQLite database path for persisting profile snapshots"`
	Concurrency int           `short:"c" default:"3" help:"Concurrent username limit"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
	Usernames   []string      `arg:"" required:"" help:"Creator usernames to extract"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("kickprof"),
		kong.Description("Extract Kickstarter creator profiles"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelError
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire the transport: base fetcher, retry decorator, logging decorator.
	var fetcher kickprof.Fetcher
	if cli.Browser {
		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
	} else {
		fetcher = kickprofhttp.NewFetcher(kickprofhttp.WithTimeout(cli.Timeout))
	}
	defer fetcher.Close()

	if cli.Retries > 0 {
		delays := make([]time.Duration, cli.Retries)
		for i := range delays {
			delays[i] = time.Second << i
		}
		fetcher = kickprofhttp.NewRetryFetcher(fetcher, kickprofhttp.WithDelays(delays))
	}
	fetcher = kickprofslog.NewLoggingFetcher(fetcher, logger)

	var svc kickprof.ProfileService = goquery.NewScraper(fetcher, goquery.WithLogger(logger))
	svc = kickprofslog.NewLoggingProfileService(svc, logger)

	var store kickprof.ProfileStore
	if cli.DB != "" {
		db := sqlite.NewDB(cli.DB)
		if err := db.Open(); err != nil {
			return err
		}
		defer db.Close()
		store = sqlite.NewProfileStore(db)
	}

	concurrency := cli.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}

	// Usernames run concurrently; each extraction is sequential internally.
	profiles := make([]*kickprof.CreatorProfile, len(cli.Usernames))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, username := range cli.Usernames {
		g.Go(func() error {
			profile, err := svc.CreatorProfile(gctx, username)
			if err != nil {
				return fmt.Errorf("%s: %w", username, err)
			}
			profiles[i] = profile

			if store != nil {
				snap := &kickprof.ProfileSnapshot{Username: username, Profile: profile}
				if err := store.SaveProfile(gctx, snap); err != nil {
					return fmt.Errorf("%s: %w", username, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if cli.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(profiles)
	}

	for i, profile := range profiles {
		writeProfile(stdout, cli.Usernames[i], profile)
	}
	return nil
}

// writeProfile prints a human-readable summary of one profile.
func writeProfile(w io.Writer, username string, p *kickprof.CreatorProfile) {
	fmt.Fprintf(w, "%s\n", username)
	if p.Name != nil {
		fmt.Fprintf(w, "  name:     %s\n", *p.Name)
	}
	if p.City != nil || p.State != nil {
		var parts []string
		if p.City != nil {
			parts = append(parts, *p.City)
		}
		if p.State != nil {
			parts = append(parts, *p.State)
		}
		fmt.Fprintf(w, "  location: %s\n", strings.Join(parts, ", "))
	}
	if p.Joined != nil {
		fmt.Fprintf(w, "  joined:   %s\n", p.Joined.Format("January 2006"))
	}
	var badges []string
	if p.BackerFavorite {
		badges = append(badges, "backer-favorite")
	}
	if p.Superbacker {
		badges = append(badges, "superbacker")
	}
	if len(badges) > 0 {
		fmt.Fprintf(w, "  badges:   %s\n", strings.Join(badges, ", "))
	}
	if p.About != nil {
		fmt.Fprintf(w, "  about:    %s\n", *p.About)
	}
	fmt.Fprintf(w, "  backed:   %d\n", p.BackedProjects)
	fmt.Fprintf(w, "  created:  %d\n", p.CreatedProjects)
	for _, project := range p.Projects {
		funded := "n/a"
		if project.PercentFunded != nil {
			funded = fmt.Sprintf("%d%%", *project.PercentFunded)
		}
		fmt.Fprintf(w, "  project:  %s (%s, %s funded) %s\n",
			project.Title, project.Status, funded, project.ProjectURL)
	}
}
