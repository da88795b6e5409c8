package backup

import (
	"strings"
)

// Options selects what one save or restore run covers and how restore
// collisions are handled. Zero-value booleans mean disabled; use
// DefaultOptions for an everything-on configuration.
type Options struct {
	// Repository is the target in "owner/repo" form.
	Repository string

	// Dir is the backup directory holding one JSON file per entity type.
	Dir string

	Labels     bool
	Milestones bool

	// Issues and PullRequests support selective inclusion by number.
	Issues       InclusionSpec
	PullRequests InclusionSpec

	Comments                  bool
	PullRequestComments       bool
	PullRequestReviews        bool
	PullRequestReviewComments bool
	SubIssues                 bool

	// Conflict is the restore-time collision policy.
	Conflict ConflictStrategy
}

// DefaultOptions returns options covering every entity type, with the
// skip conflict strategy.
func DefaultOptions(repository, dir string) Options {
	return Options{
		Repository:                repository,
		Dir:                       dir,
		Labels:                    true,
		Milestones:                true,
		Issues:                    IncludeAll(),
		PullRequests:              IncludeAll(),
		Comments:                  true,
		PullRequestComments:       true,
		PullRequestReviews:        true,
		PullRequestReviewComments: true,
		SubIssues:                 true,
		Conflict:                  ConflictSkip,
	}
}

// Validate checks the options before any I/O. All failures are
// configuration errors that abort the run.
func (o Options) Validate() error {
	parts := strings.Split(o.Repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return configErrorf("invalid repository format: %q, expected format: owner/repo", o.Repository)
	}
	if o.Dir == "" {
		return configErrorf("backup directory must not be empty")
	}
	return nil
}
