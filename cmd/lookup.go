package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lepinkainen/cinerelay/internal/catalog"
	"github.com/lepinkainen/cinerelay/internal/config"
	"github.com/lepinkainen/cinerelay/internal/movies"
	"github.com/lepinkainen/cinerelay/internal/tui"
)

// lookupService is the part of movies.Service used by lookup.
type lookupService interface {
	SearchByText(ctx context.Context, text string) (movies.ListResponse, error)
	Watch(ctx context.Context, id int, kind catalog.MediaKind) (catalog.Details, error)
}

var (
	selectResult               = tui.Select
	newLookupService           = func(cfg config.Config) (lookupService, error) { return newService(cfg) }
	output           io.Writer = os.Stdout
)

// LookupCmd represents the lookup command
type LookupCmd struct {
	Query         []string `arg:"" help:"Title to search for"`
	Kind          string   `help:"Media kind of the picked result when the list is ambiguous: movie or tv" enum:"movie,tv" default:"movie"`
	MinVotes      int      `help:"Hide results with fewer votes in the interactive list" default:"0"`
	NoInteractive bool     `help:"Disable the interactive selection (auto-select first result)" default:"false"`
}

func (l *LookupCmd) Run(cfg config.Config) error {
	query := strings.TrimSpace(strings.Join(l.Query, " "))
	if len([]rune(query)) < 2 {
		return fmt.Errorf("query must be at least 2 characters")
	}

	svc, err := newLookupService(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	resp, err := svc.SearchByText(ctx, query)
	if err != nil {
		return err
	}
	if resp.Detail != "" {
		return fmt.Errorf("search unavailable: %s", resp.Detail)
	}
	if len(resp.Results) == 0 {
		_, _ = fmt.Fprintf(output, "No results for %q\n", query)
		return nil
	}

	picked := resp.Results[0]
	if !l.NoInteractive {
		result, err := selectResult(query, resp.Results, l.MinVotes)
		if err != nil {
			return fmt.Errorf("selection failed: %w", err)
		}
		if result.Action != tui.ActionSelected || result.Selection == nil {
			_, _ = fmt.Fprintln(output, "Nothing selected")
			return nil
		}
		picked = *result.Selection
	}

	details, err := svc.Watch(ctx, picked.ID, catalog.ParseMediaKind(l.Kind))
	if err != nil {
		return err
	}

	name := "untitled"
	if picked.Name != nil {
		name = *picked.Name
	}
	_, _ = fmt.Fprintf(output, "%s (#%d)\n", name, picked.ID)
	if posterURL, ok := details["poster_url"].(string); ok {
		_, _ = fmt.Fprintf(output, "Poster: %s\n", posterURL)
	}
	_, _ = fmt.Fprintf(output, "Watch: %s\n", details["view_link"])
	return nil
}
