package backup

import (
	"context"
	"errors"
	"strings"

	"github.com/repovault/repovault/pkg/models"
)

// mockService implements RepositoryService with overridable func fields.
// Unset listing funcs return empty; unset creation funcs echo the input.
type mockService struct {
	ListLabelsFunc                    func(repository string) ([]models.Label, error)
	ListMilestonesFunc                func(repository string) ([]models.Milestone, error)
	ListIssuesFunc                    func(repository string) ([]models.Issue, error)
	ListIssueCommentsFunc             func(repository string) ([]models.Comment, error)
	ListPullRequestsFunc              func(repository string) ([]models.PullRequest, error)
	ListPullRequestCommentsFunc       func(repository string) ([]models.PullRequestComment, error)
	ListPullRequestReviewsFunc        func(repository string, pullNumbers []int) ([]models.PullRequestReview, error)
	ListPullRequestReviewCommentsFunc func(repository string) ([]models.PullRequestReviewComment, error)
	ListSubIssueLinksFunc             func(repository string, issueNumbers []int) ([]models.SubIssueLink, error)

	CreateLabelFunc     func(label models.Label) (*models.Label, error)
	UpdateLabelFunc     func(name string, label models.Label) (*models.Label, error)
	DeleteLabelFunc     func(name string) error
	CreateMilestoneFunc func(milestone models.Milestone) (*models.Milestone, error)
	UpdateMilestoneFunc func(number int, milestone models.Milestone) (*models.Milestone, error)
	DeleteMilestoneFunc func(number int) error
	CreateIssueFunc     func(issue models.Issue) (*models.Issue, error)
	CloseIssueFunc      func(number int) error
	CreateCommentFunc   func(issueNumber int, body string) (*models.Comment, error)
	CreatePullFunc      func(pull models.PullRequest) (*models.PullRequest, error)
	CreatePRCommentFunc func(pullNumber int, body string) (*models.PullRequestComment, error)
	CreateReviewFunc    func(review models.PullRequestReview) (*models.PullRequestReview, error)
	CreateRevCommFunc   func(comment models.PullRequestReviewComment) (*models.PullRequestReviewComment, error)
	AddSubIssueFunc     func(parentNumber, childNumber int) error
}

func (m *mockService) ListLabels(_ context.Context, repository string) ([]models.Label, error) {
	if m.ListLabelsFunc != nil {
		return m.ListLabelsFunc(repository)
	}
	return nil, nil
}

func (m *mockService) ListMilestones(_ context.Context, repository string) ([]models.Milestone, error) {
	if m.ListMilestonesFunc != nil {
		return m.ListMilestonesFunc(repository)
	}
	return nil, nil
}

func (m *mockService) ListIssues(_ context.Context, repository string) ([]models.Issue, error) {
	if m.ListIssuesFunc != nil {
		return m.ListIssuesFunc(repository)
	}
	return nil, nil
}

func (m *mockService) ListIssueComments(_ context.Context, repository string) ([]models.Comment, error) {
	if m.ListIssueCommentsFunc != nil {
		return m.ListIssueCommentsFunc(repository)
	}
	return nil, nil
}

func (m *mockService) ListPullRequests(_ context.Context, repository string) ([]models.PullRequest, error) {
	if m.ListPullRequestsFunc != nil {
		return m.ListPullRequestsFunc(repository)
	}
	return nil, nil
}

func (m *mockService) ListPullRequestComments(_ context.Context, repository string) ([]models.PullRequestComment, error) {
	if m.ListPullRequestCommentsFunc != nil {
		return m.ListPullRequestCommentsFunc(repository)
	}
	return nil, nil
}

func (m *mockService) ListPullRequestReviews(_ context.Context, repository string, pullNumbers []int) ([]models.PullRequestReview, error) {
	if m.ListPullRequestReviewsFunc != nil {
		return m.ListPullRequestReviewsFunc(repository, pullNumbers)
	}
	return nil, nil
}

func (m *mockService) ListPullRequestReviewComments(_ context.Context, repository string) ([]models.PullRequestReviewComment, error) {
	if m.ListPullRequestReviewCommentsFunc != nil {
		return m.ListPullRequestReviewCommentsFunc(repository)
	}
	return nil, nil
}

func (m *mockService) ListSubIssueLinks(_ context.Context, repository string, issueNumbers []int) ([]models.SubIssueLink, error) {
	if m.ListSubIssueLinksFunc != nil {
		return m.ListSubIssueLinksFunc(repository, issueNumbers)
	}
	return nil, nil
}

func (m *mockService) CreateLabel(_ context.Context, _ string, label models.Label) (*models.Label, error) {
	if m.CreateLabelFunc != nil {
		return m.CreateLabelFunc(label)
	}
	return &label, nil
}

func (m *mockService) UpdateLabel(_ context.Context, _ string, name string, label models.Label) (*models.Label, error) {
	if m.UpdateLabelFunc != nil {
		return m.UpdateLabelFunc(name, label)
	}
	return &label, nil
}

func (m *mockService) DeleteLabel(_ context.Context, _ string, name string) error {
	if m.DeleteLabelFunc != nil {
		return m.DeleteLabelFunc(name)
	}
	return nil
}

func (m *mockService) CreateMilestone(_ context.Context, _ string, milestone models.Milestone) (*models.Milestone, error) {
	if m.CreateMilestoneFunc != nil {
		return m.CreateMilestoneFunc(milestone)
	}
	return &milestone, nil
}

func (m *mockService) UpdateMilestone(_ context.Context, _ string, number int, milestone models.Milestone) (*models.Milestone, error) {
	if m.UpdateMilestoneFunc != nil {
		return m.UpdateMilestoneFunc(number, milestone)
	}
	return &milestone, nil
}

func (m *mockService) DeleteMilestone(_ context.Context, _ string, number int) error {
	if m.DeleteMilestoneFunc != nil {
		return m.DeleteMilestoneFunc(number)
	}
	return nil
}

func (m *mockService) CreateIssue(_ context.Context, _ string, issue models.Issue) (*models.Issue, error) {
	if m.CreateIssueFunc != nil {
		return m.CreateIssueFunc(issue)
	}
	return &issue, nil
}

func (m *mockService) CloseIssue(_ context.Context, _ string, number int) error {
	if m.CloseIssueFunc != nil {
		return m.CloseIssueFunc(number)
	}
	return nil
}

func (m *mockService) CreateIssueComment(_ context.Context, _ string, issueNumber int, body string) (*models.Comment, error) {
	if m.CreateCommentFunc != nil {
		return m.CreateCommentFunc(issueNumber, body)
	}
	return &models.Comment{IssueNumber: issueNumber, Body: body}, nil
}

func (m *mockService) CreatePullRequest(_ context.Context, _ string, pull models.PullRequest) (*models.PullRequest, error) {
	if m.CreatePullFunc != nil {
		return m.CreatePullFunc(pull)
	}
	return &pull, nil
}

func (m *mockService) CreatePullRequestComment(_ context.Context, _ string, pullNumber int, body string) (*models.PullRequestComment, error) {
	if m.CreatePRCommentFunc != nil {
		return m.CreatePRCommentFunc(pullNumber, body)
	}
	return &models.PullRequestComment{PullRequestNumber: pullNumber, Body: body}, nil
}

func (m *mockService) CreatePullRequestReview(_ context.Context, _ string, review models.PullRequestReview) (*models.PullRequestReview, error) {
	if m.CreateReviewFunc != nil {
		return m.CreateReviewFunc(review)
	}
	return &review, nil
}

func (m *mockService) CreatePullRequestReviewComment(_ context.Context, _ string, comment models.PullRequestReviewComment) (*models.PullRequestReviewComment, error) {
	if m.CreateRevCommFunc != nil {
		return m.CreateRevCommFunc(comment)
	}
	return &comment, nil
}

func (m *mockService) AddSubIssue(_ context.Context, _ string, parentNumber, childNumber int) error {
	if m.AddSubIssueFunc != nil {
		return m.AddSubIssueFunc(parentNumber, childNumber)
	}
	return nil
}

// mockStorage implements StorageService in memory, keyed by path.
type mockStorage struct {
	files map[string]any

	// failSave, when set, makes Save fail for paths containing it.
	failSave string
}

func newMockStorage() *mockStorage {
	return &mockStorage{files: make(map[string]any)}
}

func (m *mockStorage) Save(path string, v any) error {
	if m.failSave != "" && strings.Contains(path, m.failSave) {
		return errors.New("disk full")
	}
	m.files[path] = v
	return nil
}

func (m *mockStorage) Load(path string, v any) (bool, error) {
	stored, ok := m.files[path]
	if !ok {
		return false, nil
	}
	switch out := v.(type) {
	case *[]models.Label:
		*out = stored.([]models.Label)
	case *[]models.Milestone:
		*out = stored.([]models.Milestone)
	case *[]models.Issue:
		*out = stored.([]models.Issue)
	case *[]models.Comment:
		*out = stored.([]models.Comment)
	case *[]models.PullRequest:
		*out = stored.([]models.PullRequest)
	case *[]models.PullRequestComment:
		*out = stored.([]models.PullRequestComment)
	case *[]models.PullRequestReview:
		*out = stored.([]models.PullRequestReview)
	case *[]models.PullRequestReviewComment:
		*out = stored.([]models.PullRequestReviewComment)
	case *[]models.SubIssueLink:
		*out = stored.([]models.SubIssueLink)
	default:
		return true, errors.New("unexpected load type")
	}
	return true, nil
}
