// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/repovault/repovault/internal/config"
	"github.com/repovault/repovault/internal/logging"
	"github.com/repovault/repovault/pkg/models"
)

// Client encapsulates the GitHub API client. It implements the engine's
// RepositoryService capability: listing and creating repository metadata
// with pagination handled here.
type Client struct {
	client *github.Client
}

// NewClient creates a new GitHub API client using configuration from
// environment variables. It initializes the client with the appropriate
// base URL, authenticates with the GitHub API, and tests the connection.
func NewClient() (*Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	token := cfg.GitHub.Token
	if token == "" {
		return nil, fmt.Errorf("github token not found in configuration")
	}

	domain := cfg.GitHub.Domain
	if domain == "" {
		domain = "github.com"
	}

	var apiURL string
	if domain == "github.com" {
		apiURL = "https://api.github.com/"
	} else {
		apiURL = fmt.Sprintf("https://%s/api/v3/", domain)
	}

	logging.Info("github configuration",
		"domain", domain,
		"api_url", apiURL,
		"token", logging.MaskSensitive(token))

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)

	if domain != "github.com" {
		parsedURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}

		client.BaseURL = parsedURL
		client.UploadURL = parsedURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		logging.Error("failed to test github token", "error", err)
		return nil, fmt.Errorf("error testing github token: %w", err)
	}

	logging.Info("github authentication successful",
		"username", user.GetLogin())

	return &Client{client: client}, nil
}

// parseRepository splits an "owner/repo" repository name.
func parseRepository(repository string) (string, string, error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format: %s, expected format: owner/repo", repository)
	}
	return parts[0], parts[1], nil
}

// parseNumberFromURL extracts the trailing numeric segment of an API URL,
// e.g. ".../repos/o/r/issues/42" -> 42.
func parseNumberFromURL(rawURL string) int {
	idx := strings.LastIndex(rawURL, "/")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(rawURL[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

// ListLabels retrieves all labels from a repository.
func (c *Client) ListLabels(ctx context.Context, repository string) ([]models.Label, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	opts := &github.ListOptions{PerPage: 100}
	var result []models.Label
	for {
		labels, resp, err := c.client.Issues.ListLabels(ctx, owner, repo, opts)
		if err != nil {
			logging.Error("failed to fetch labels", "repository", repository, "error", err)
			return nil, fmt.Errorf("failed to fetch labels: %v", err)
		}

		for _, label := range labels {
			result = append(result, models.Label{
				Name:        label.GetName(),
				Color:       label.GetColor(),
				Description: label.GetDescription(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// CreateLabel creates a label in a repository.
func (c *Client) CreateLabel(ctx context.Context, repository string, label models.Label) (*models.Label, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	created, _, err := c.client.Issues.CreateLabel(ctx, owner, repo, &github.Label{
		Name:        github.String(label.Name),
		Color:       github.String(label.Color),
		Description: github.String(label.Description),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create label %q: %v", label.Name, err)
	}

	return &models.Label{
		Name:        created.GetName(),
		Color:       created.GetColor(),
		Description: created.GetDescription(),
	}, nil
}

// UpdateLabel updates an existing label's fields.
func (c *Client) UpdateLabel(ctx context.Context, repository string, name string, label models.Label) (*models.Label, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	updated, _, err := c.client.Issues.EditLabel(ctx, owner, repo, name, &github.Label{
		Name:        github.String(label.Name),
		Color:       github.String(label.Color),
		Description: github.String(label.Description),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update label %q: %v", name, err)
	}

	return &models.Label{
		Name:        updated.GetName(),
		Color:       updated.GetColor(),
		Description: updated.GetDescription(),
	}, nil
}

// DeleteLabel deletes a label from a repository.
func (c *Client) DeleteLabel(ctx context.Context, repository string, name string) error {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return err
	}

	if _, err := c.client.Issues.DeleteLabel(ctx, owner, repo, name); err != nil {
		return fmt.Errorf("failed to delete label %q: %v", name, err)
	}
	return nil
}

// ListMilestones retrieves all milestones from a repository, open and
// closed.
func (c *Client) ListMilestones(ctx context.Context, repository string) ([]models.Milestone, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	opts := &github.MilestoneListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var result []models.Milestone
	for {
		milestones, resp, err := c.client.Issues.ListMilestones(ctx, owner, repo, opts)
		if err != nil {
			logging.Error("failed to fetch milestones", "repository", repository, "error", err)
			return nil, fmt.Errorf("failed to fetch milestones: %v", err)
		}

		for _, m := range milestones {
			result = append(result, models.Milestone{
				Number:      m.GetNumber(),
				Title:       m.GetTitle(),
				State:       m.GetState(),
				Description: m.GetDescription(),
				DueOn:       m.DueOn,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// CreateMilestone creates a milestone in a repository.
func (c *Client) CreateMilestone(ctx context.Context, repository string, milestone models.Milestone) (*models.Milestone, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	created, _, err := c.client.Issues.CreateMilestone(ctx, owner, repo, &github.Milestone{
		Title:       github.String(milestone.Title),
		State:       github.String(milestone.State),
		Description: github.String(milestone.Description),
		DueOn:       milestone.DueOn,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create milestone %q: %v", milestone.Title, err)
	}

	return &models.Milestone{
		Number:      created.GetNumber(),
		Title:       created.GetTitle(),
		State:       created.GetState(),
		Description: created.GetDescription(),
		DueOn:       created.DueOn,
	}, nil
}

// UpdateMilestone updates an existing milestone's fields.
func (c *Client) UpdateMilestone(ctx context.Context, repository string, number int, milestone models.Milestone) (*models.Milestone, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	updated, _, err := c.client.Issues.EditMilestone(ctx, owner, repo, number, &github.Milestone{
		Title:       github.String(milestone.Title),
		State:       github.String(milestone.State),
		Description: github.String(milestone.Description),
		DueOn:       milestone.DueOn,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update milestone %d: %v", number, err)
	}

	return &models.Milestone{
		Number:      updated.GetNumber(),
		Title:       updated.GetTitle(),
		State:       updated.GetState(),
		Description: updated.GetDescription(),
		DueOn:       updated.DueOn,
	}, nil
}

// DeleteMilestone deletes a milestone from a repository.
func (c *Client) DeleteMilestone(ctx context.Context, repository string, number int) error {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return err
	}

	if _, err := c.client.Issues.DeleteMilestone(ctx, owner, repo, number); err != nil {
		return fmt.Errorf("failed to delete milestone %d: %v", number, err)
	}
	return nil
}

// ListIssues retrieves all issues from a repository, open and closed,
// filtering out pull requests (the issues API returns those too).
func (c *Client) ListIssues(ctx context.Context, repository string) ([]models.Issue, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	opts := &github.IssueListByRepoOptions{
		State: "all",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var result []models.Issue
	for {
		issues, resp, err := c.client.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			logging.Error("failed to fetch issues", "repository", repository, "error", err)
			return nil, fmt.Errorf("failed to fetch issues: %v", err)
		}

		for _, issue := range issues {
			// Skip pull requests
			if issue.PullRequestLinks != nil {
				continue
			}
			result = append(result, convertIssue(issue))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

func convertIssue(issue *github.Issue) models.Issue {
	labelNames := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labelNames = append(labelNames, label.GetName())
	}

	assignees := make([]string, 0, len(issue.Assignees))
	for _, user := range issue.Assignees {
		assignees = append(assignees, user.GetLogin())
	}

	milestoneNumber := 0
	if issue.Milestone != nil {
		milestoneNumber = issue.Milestone.GetNumber()
	}

	return models.Issue{
		Number:          issue.GetNumber(),
		Title:           issue.GetTitle(),
		Body:            issue.GetBody(),
		State:           issue.GetState(),
		Labels:          labelNames,
		Assignees:       assignees,
		MilestoneNumber: milestoneNumber,
		CreatedAt:       issue.GetCreatedAt(),
		UpdatedAt:       issue.GetUpdatedAt(),
		ClosedAt:        issue.ClosedAt,
	}
}

// CreateIssue creates an issue with its labels, assignees and milestone
// reference. Labels that don't exist in the repository are created by
// GitHub automatically.
func (c *Client) CreateIssue(ctx context.Context, repository string, issue models.Issue) (*models.Issue, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	req := &github.IssueRequest{
		Title: github.String(issue.Title),
		Body:  github.String(issue.Body),
	}
	if len(issue.Labels) > 0 {
		labels := issue.Labels
		req.Labels = &labels
	}
	if len(issue.Assignees) > 0 {
		assignees := issue.Assignees
		req.Assignees = &assignees
	}
	if issue.MilestoneNumber > 0 {
		req.Milestone = github.Int(issue.MilestoneNumber)
	}

	created, _, err := c.client.Issues.Create(ctx, owner, repo, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue %q: %v", issue.Title, err)
	}

	converted := convertIssue(created)
	return &converted, nil
}

// CloseIssue transitions an issue to the closed state.
func (c *Client) CloseIssue(ctx context.Context, repository string, number int) error {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return err
	}

	_, _, err = c.client.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{
		State: github.String("closed"),
	})
	if err != nil {
		return fmt.Errorf("failed to close issue #%d: %v", number, err)
	}
	return nil
}

// ListIssueComments retrieves all issue comments from a repository in a
// single repo-wide listing. Comments on pull requests are included; the
// engine's coupling filter separates them by parent.
func (c *Client) ListIssueComments(ctx context.Context, repository string) ([]models.Comment, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var result []models.Comment
	for {
		comments, resp, err := c.client.Issues.ListComments(ctx, owner, repo, 0, opts)
		if err != nil {
			logging.Error("failed to fetch issue comments", "repository", repository, "error", err)
			return nil, fmt.Errorf("failed to fetch issue comments: %v", err)
		}

		for _, comment := range comments {
			result = append(result, models.Comment{
				ID:          comment.GetID(),
				IssueNumber: parseNumberFromURL(comment.GetIssueURL()),
				IssueURL:    comment.GetIssueURL(),
				Body:        comment.GetBody(),
				Author:      comment.GetUser().GetLogin(),
				CreatedAt:   comment.GetCreatedAt(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// CreateIssueComment creates a comment on an issue.
func (c *Client) CreateIssueComment(ctx context.Context, repository string, issueNumber int, body string) (*models.Comment, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	created, _, err := c.client.Issues.CreateComment(ctx, owner, repo, issueNumber, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment on issue #%d: %v", issueNumber, err)
	}

	return &models.Comment{
		ID:          created.GetID(),
		IssueNumber: issueNumber,
		Body:        created.GetBody(),
		Author:      created.GetUser().GetLogin(),
		CreatedAt:   created.GetCreatedAt(),
	}, nil
}

// ListPullRequests retrieves all pull requests from a repository, open
// and closed.
func (c *Client) ListPullRequests(ctx context.Context, repository string) ([]models.PullRequest, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	opts := &github.PullRequestListOptions{
		State: "all",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var result []models.PullRequest
	for {
		pulls, resp, err := c.client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			logging.Error("failed to fetch pull requests", "repository", repository, "error", err)
			return nil, fmt.Errorf("failed to fetch pull requests: %v", err)
		}

		for _, pull := range pulls {
			result = append(result, convertPullRequest(pull))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

func convertPullRequest(pull *github.PullRequest) models.PullRequest {
	labelNames := make([]string, 0, len(pull.Labels))
	for _, label := range pull.Labels {
		labelNames = append(labelNames, label.GetName())
	}

	milestoneNumber := 0
	if pull.Milestone != nil {
		milestoneNumber = pull.Milestone.GetNumber()
	}

	return models.PullRequest{
		Number:          pull.GetNumber(),
		Title:           pull.GetTitle(),
		Body:            pull.GetBody(),
		State:           pull.GetState(),
		BaseRef:         pull.GetBase().GetRef(),
		HeadRef:         pull.GetHead().GetRef(),
		Draft:           pull.GetDraft(),
		Labels:          labelNames,
		MilestoneNumber: milestoneNumber,
		CreatedAt:       pull.GetCreatedAt(),
		MergedAt:        pull.MergedAt,
		ClosedAt:        pull.ClosedAt,
	}
}

// CreatePullRequest creates a pull request, then applies labels, the
// milestone reference and the closed state, which the creation endpoint
// does not accept.
func (c *Client) CreatePullRequest(ctx context.Context, repository string, pull models.PullRequest) (*models.PullRequest, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	created, _, err := c.client.PullRequests.Create(ctx, owner, repo, &github.NewPullRequest{
		Title: github.String(pull.Title),
		Body:  github.String(pull.Body),
		Base:  github.String(pull.BaseRef),
		Head:  github.String(pull.HeadRef),
		Draft: github.Bool(pull.Draft),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request %q: %v", pull.Title, err)
	}

	if len(pull.Labels) > 0 || pull.MilestoneNumber > 0 {
		req := &github.IssueRequest{}
		if len(pull.Labels) > 0 {
			labels := pull.Labels
			req.Labels = &labels
		}
		if pull.MilestoneNumber > 0 {
			req.Milestone = github.Int(pull.MilestoneNumber)
		}
		if _, _, err := c.client.Issues.Edit(ctx, owner, repo, created.GetNumber(), req); err != nil {
			logging.Warn("failed to apply labels/milestone to pull request",
				"pull_request_number", created.GetNumber(),
				"error", err)
		}
	}

	if pull.State == "closed" {
		if _, _, err := c.client.PullRequests.Edit(ctx, owner, repo, created.GetNumber(), &github.PullRequest{
			State: github.String("closed"),
		}); err != nil {
			logging.Warn("failed to close restored pull request",
				"pull_request_number", created.GetNumber(),
				"error", err)
		}
	}

	converted := convertPullRequest(created)
	return &converted, nil
}

// ListPullRequestComments retrieves all conversation comments made on
// pull requests. GitHub serves these through the issue comments API, so
// the listing covers every comment; the engine couples them to the saved
// pull requests.
func (c *Client) ListPullRequestComments(ctx context.Context, repository string) ([]models.PullRequestComment, error) {
	comments, err := c.ListIssueComments(ctx, repository)
	if err != nil {
		return nil, err
	}

	result := make([]models.PullRequestComment, 0, len(comments))
	for _, comment := range comments {
		result = append(result, models.PullRequestComment{
			ID:                comment.ID,
			PullRequestNumber: comment.IssueNumber,
			PullRequestURL:    comment.IssueURL,
			Body:              comment.Body,
			Author:            comment.Author,
			CreatedAt:         comment.CreatedAt,
		})
	}
	return result, nil
}

// CreatePullRequestComment creates a conversation comment on a pull
// request, through the issue comments API.
func (c *Client) CreatePullRequestComment(ctx context.Context, repository string, pullNumber int, body string) (*models.PullRequestComment, error) {
	created, err := c.CreateIssueComment(ctx, repository, pullNumber, body)
	if err != nil {
		return nil, err
	}
	return &models.PullRequestComment{
		ID:                created.ID,
		PullRequestNumber: pullNumber,
		Body:              created.Body,
		Author:            created.Author,
		CreatedAt:         created.CreatedAt,
	}, nil
}

// ListPullRequestReviews retrieves the reviews of the given pull
// requests. Reviews can only be listed per pull request.
func (c *Client) ListPullRequestReviews(ctx context.Context, repository string, pullNumbers []int) ([]models.PullRequestReview, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	var result []models.PullRequestReview
	for _, number := range pullNumbers {
		opts := &github.ListOptions{PerPage: 100}
		for {
			reviews, resp, err := c.client.PullRequests.ListReviews(ctx, owner, repo, number, opts)
			if err != nil {
				logging.Error("failed to fetch reviews", "repository", repository, "pull_request_number", number, "error", err)
				return nil, fmt.Errorf("failed to fetch reviews for pull request #%d: %v", number, err)
			}

			for _, review := range reviews {
				result = append(result, models.PullRequestReview{
					ID:                review.GetID(),
					PullRequestNumber: number,
					State:             review.GetState(),
					Body:              review.GetBody(),
					Author:            review.GetUser().GetLogin(),
					SubmittedAt:       review.SubmittedAt,
				})
			}

			if resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
		}
	}

	return result, nil
}

// reviewEvent maps a saved review state to the event the review creation
// endpoint expects.
func reviewEvent(state string) string {
	switch strings.ToUpper(state) {
	case "APPROVED":
		return "APPROVE"
	case "CHANGES_REQUESTED":
		return "REQUEST_CHANGES"
	default:
		return "COMMENT"
	}
}

// CreatePullRequestReview submits a review on a pull request.
func (c *Client) CreatePullRequestReview(ctx context.Context, repository string, review models.PullRequestReview) (*models.PullRequestReview, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	body := review.Body
	if body == "" {
		// The review endpoint rejects an empty body for COMMENT events.
		body = fmt.Sprintf("Review originally submitted by @%s", review.Author)
	}

	created, _, err := c.client.PullRequests.CreateReview(ctx, owner, repo, review.PullRequestNumber, &github.PullRequestReviewRequest{
		Body:  github.String(body),
		Event: github.String(reviewEvent(review.State)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create review on pull request #%d: %v", review.PullRequestNumber, err)
	}

	return &models.PullRequestReview{
		ID:                created.GetID(),
		PullRequestNumber: review.PullRequestNumber,
		State:             created.GetState(),
		Body:              created.GetBody(),
		Author:            created.GetUser().GetLogin(),
		SubmittedAt:       created.SubmittedAt,
	}, nil
}

// ListPullRequestReviewComments retrieves all inline review comments in
// the repository in a single repo-wide listing.
func (c *Client) ListPullRequestReviewComments(ctx context.Context, repository string) ([]models.PullRequestReviewComment, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	opts := &github.PullRequestListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var result []models.PullRequestReviewComment
	for {
		comments, resp, err := c.client.PullRequests.ListComments(ctx, owner, repo, 0, opts)
		if err != nil {
			logging.Error("failed to fetch review comments", "repository", repository, "error", err)
			return nil, fmt.Errorf("failed to fetch review comments: %v", err)
		}

		for _, comment := range comments {
			result = append(result, models.PullRequestReviewComment{
				ID:                comment.GetID(),
				ReviewID:          comment.GetPullRequestReviewID(),
				PullRequestNumber: parseNumberFromURL(comment.GetPullRequestURL()),
				Path:              comment.GetPath(),
				Position:          comment.GetPosition(),
				Body:              comment.GetBody(),
				Author:            comment.GetUser().GetLogin(),
				CreatedAt:         comment.GetCreatedAt(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// CreatePullRequestReviewComment creates an inline review comment on a
// pull request, anchored to the head commit of the target pull request.
func (c *Client) CreatePullRequestReviewComment(ctx context.Context, repository string, comment models.PullRequestReviewComment) (*models.PullRequestReviewComment, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	pull, _, err := c.client.PullRequests.Get(ctx, owner, repo, comment.PullRequestNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request #%d: %v", comment.PullRequestNumber, err)
	}

	created, _, err := c.client.PullRequests.CreateComment(ctx, owner, repo, comment.PullRequestNumber, &github.PullRequestComment{
		Body:     github.String(comment.Body),
		Path:     github.String(comment.Path),
		Position: github.Int(comment.Position),
		CommitID: github.String(pull.GetHead().GetSHA()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create review comment on pull request #%d: %v", comment.PullRequestNumber, err)
	}

	return &models.PullRequestReviewComment{
		ID:                created.GetID(),
		ReviewID:          created.GetPullRequestReviewID(),
		PullRequestNumber: comment.PullRequestNumber,
		Path:              created.GetPath(),
		Position:          created.GetPosition(),
		Body:              created.GetBody(),
		Author:            created.GetUser().GetLogin(),
		CreatedAt:         created.GetCreatedAt(),
	}, nil
}

// subIssuePayload is the request body of the sub-issue addition endpoint.
type subIssuePayload struct {
	SubIssueID int64 `json:"sub_issue_id"`
}

// ListSubIssueLinks retrieves the sub-issue links of the given issues.
// The sub-issue endpoints have no typed client in this library version,
// so requests are issued directly.
func (c *Client) ListSubIssueLinks(ctx context.Context, repository string, issueNumbers []int) ([]models.SubIssueLink, error) {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return nil, err
	}

	var result []models.SubIssueLink
	for _, number := range issueNumbers {
		page := 1
		for {
			u := fmt.Sprintf("repos/%s/%s/issues/%d/sub_issues?per_page=100&page=%d", owner, repo, number, page)
			req, err := c.client.NewRequest("GET", u, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to build sub-issues request for issue #%d: %v", number, err)
			}

			var subs []*github.Issue
			resp, err := c.client.Do(ctx, req, &subs)
			if err != nil {
				// Repositories without sub-issue support report 404.
				if resp != nil && resp.StatusCode == 404 {
					return result, nil
				}
				logging.Error("failed to fetch sub-issues", "repository", repository, "issue_number", number, "error", err)
				return nil, fmt.Errorf("failed to fetch sub-issues for issue #%d: %v", number, err)
			}

			for _, sub := range subs {
				result = append(result, models.SubIssueLink{
					ParentNumber: number,
					ChildNumber:  sub.GetNumber(),
				})
			}

			if resp.NextPage == 0 {
				break
			}
			page = resp.NextPage
		}
	}

	return result, nil
}

// AddSubIssue links a child issue under a parent issue. The endpoint
// takes the child's id, not its number, so the child is looked up first.
func (c *Client) AddSubIssue(ctx context.Context, repository string, parentNumber, childNumber int) error {
	owner, repo, err := parseRepository(repository)
	if err != nil {
		return err
	}

	child, _, err := c.client.Issues.Get(ctx, owner, repo, childNumber)
	if err != nil {
		return fmt.Errorf("failed to get issue #%d: %v", childNumber, err)
	}

	u := fmt.Sprintf("repos/%s/%s/issues/%d/sub_issues", owner, repo, parentNumber)
	req, err := c.client.NewRequest("POST", u, &subIssuePayload{SubIssueID: child.GetID()})
	if err != nil {
		return fmt.Errorf("failed to build sub-issue request: %v", err)
	}

	if _, err := c.client.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("failed to link issue #%d under #%d: %v", childNumber, parentNumber, err)
	}
	return nil
}
