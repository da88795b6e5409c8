// Package backup implements the save/restore orchestration engine: per
// entity-type strategies, dependency-ordered execution, selective filtering,
// parent-child coupling and restore-time conflict resolution.
package backup

import (
	"context"

	"github.com/repovault/repovault/pkg/models"
)

// RepositoryService is the capability the engine needs from the upstream
// repository API. The implementation owns pagination, authentication, rate
// limiting and caching; failures surface as errors to the calling strategy.
type RepositoryService interface {
	ListLabels(ctx context.Context, repository string) ([]models.Label, error)
	ListMilestones(ctx context.Context, repository string) ([]models.Milestone, error)
	ListIssues(ctx context.Context, repository string) ([]models.Issue, error)
	ListIssueComments(ctx context.Context, repository string) ([]models.Comment, error)
	ListPullRequests(ctx context.Context, repository string) ([]models.PullRequest, error)
	ListPullRequestComments(ctx context.Context, repository string) ([]models.PullRequestComment, error)
	ListPullRequestReviews(ctx context.Context, repository string, pullNumbers []int) ([]models.PullRequestReview, error)
	ListPullRequestReviewComments(ctx context.Context, repository string) ([]models.PullRequestReviewComment, error)
	ListSubIssueLinks(ctx context.Context, repository string, issueNumbers []int) ([]models.SubIssueLink, error)

	CreateLabel(ctx context.Context, repository string, label models.Label) (*models.Label, error)
	UpdateLabel(ctx context.Context, repository string, name string, label models.Label) (*models.Label, error)
	DeleteLabel(ctx context.Context, repository string, name string) error
	CreateMilestone(ctx context.Context, repository string, milestone models.Milestone) (*models.Milestone, error)
	UpdateMilestone(ctx context.Context, repository string, number int, milestone models.Milestone) (*models.Milestone, error)
	DeleteMilestone(ctx context.Context, repository string, number int) error
	CreateIssue(ctx context.Context, repository string, issue models.Issue) (*models.Issue, error)
	CloseIssue(ctx context.Context, repository string, number int) error
	CreateIssueComment(ctx context.Context, repository string, issueNumber int, body string) (*models.Comment, error)
	CreatePullRequest(ctx context.Context, repository string, pull models.PullRequest) (*models.PullRequest, error)
	CreatePullRequestComment(ctx context.Context, repository string, pullNumber int, body string) (*models.PullRequestComment, error)
	CreatePullRequestReview(ctx context.Context, repository string, review models.PullRequestReview) (*models.PullRequestReview, error)
	CreatePullRequestReviewComment(ctx context.Context, repository string, comment models.PullRequestReviewComment) (*models.PullRequestReviewComment, error)
	AddSubIssue(ctx context.Context, repository string, parentNumber, childNumber int) error
}

// StorageService is the capability the engine needs for the on-disk
// representation: one JSON array file per entity type.
type StorageService interface {
	// Save persists v (a slice of entities) at path, creating parent
	// directories as needed.
	Save(path string, v any) error

	// Load reads the file at path into v (a pointer to a slice of
	// entities). A missing file is not an error: Load reports
	// found=false and leaves v empty.
	Load(path string, v any) (found bool, err error)
}
