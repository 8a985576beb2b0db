package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spiffcs/ghdash/config"
	"github.com/spiffcs/ghdash/internal/window"
)

// Options holds the shared command-line options for the ghdash CLI.
type Options struct {
	User      string
	Owner     string
	Repo      string
	Days      int
	FromDate  string
	ToDate    string
	Timezone  string
	Team      []string
	Addr      string
	JSON      bool
	Verbosity int
}

// addWindowFlags registers the time-window flags shared by the reporting
// commands.
func addWindowFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().IntVar(&opts.Days, "days", 0,
		"Days of history to cover (default from config)")
	cmd.Flags().StringVar(&opts.FromDate, "from-date", "",
		"Window start date (YYYY-MM-DD, requires --to-date)")
	cmd.Flags().StringVar(&opts.ToDate, "to-date", "",
		"Window end date (YYYY-MM-DD, requires --from-date)")
	cmd.Flags().StringVar(&opts.Timezone, "timezone", "",
		"IANA timezone the dates are interpreted in (default UTC)")
}

// addRepoFlags registers the repository override flags.
func addRepoFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVar(&opts.Owner, "owner", "", "Repository owner (default from config)")
	cmd.Flags().StringVar(&opts.Repo, "repo", "", "Repository name (default from config)")
}

// resolveWindow builds the query window from the flags, falling back to the
// configured default day count.
func (o *Options) resolveWindow(cfg *config.Config) (window.Window, error) {
	if o.FromDate != "" || o.ToDate != "" {
		return window.FromDates(o.FromDate, o.ToDate, o.Timezone)
	}
	days := o.Days
	if days == 0 {
		days = cfg.DefaultDaysBack
	}
	return window.LastDays(days), nil
}

// resolveRepo applies the flag overrides on top of the configured repository.
func (o *Options) resolveRepo(cfg *config.Config) (string, string) {
	owner, repo := cfg.Owner, cfg.Repo
	if o.Owner != "" {
		owner = o.Owner
	}
	if o.Repo != "" {
		repo = o.Repo
	}
	return owner, repo
}
