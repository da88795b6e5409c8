// Package models defines the entity structures shared across the application.
package models

import (
	"time"
)

// Label represents a repository label. Labels are identified by name rather
// than number.
type Label struct {
	// Name is the label's display name (e.g., "bug")
	Name string `json:"name"`

	// Color is the six-digit hex color, without the leading '#'
	Color string `json:"color"`

	// Description is the optional label description
	Description string `json:"description,omitempty"`
}

// Milestone represents a repository milestone.
type Milestone struct {
	// Number is the milestone number in the source repository
	Number int `json:"number"`

	// Title is the milestone's title
	Title string `json:"title"`

	// State is "open" or "closed"
	State string `json:"state"`

	// Description is the milestone body text
	Description string `json:"description,omitempty"`

	// DueOn is the optional due date
	DueOn *time.Time `json:"due_on,omitempty"`
}

// Issue represents a repository issue with its essential fields.
type Issue struct {
	// Number is the issue number in the source repository (e.g., 42)
	Number int `json:"number"`

	// Title is the issue's title or summary
	Title string `json:"title"`

	// Body is the full body text of the issue
	Body string `json:"body,omitempty"`

	// State is "open" or "closed"
	State string `json:"state"`

	// Labels is a slice of label names attached to the issue
	Labels []string `json:"labels,omitempty"`

	// Assignees is a slice of assignee logins
	Assignees []string `json:"assignees,omitempty"`

	// MilestoneNumber is the number of the milestone the issue belongs to,
	// or 0 if none
	MilestoneNumber int `json:"milestone_number,omitempty"`

	// CreatedAt is the timestamp when the issue was created
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the issue was last updated
	UpdatedAt time.Time `json:"updated_at"`

	// ClosedAt is the timestamp when the issue was closed
	ClosedAt *time.Time `json:"closed_at,omitempty"`
}

// Comment represents a comment on an issue.
type Comment struct {
	// ID is the comment's identifier in the source repository
	ID int64 `json:"id"`

	// IssueNumber is the number of the issue the comment belongs to
	IssueNumber int `json:"issue_number"`

	// IssueURL is the API URL of the parent issue as the source reported
	// it. Kept alongside IssueNumber because older backups carry only
	// the URL.
	IssueURL string `json:"issue_url,omitempty"`

	// Body is the comment text
	Body string `json:"body"`

	// Author is the login of the comment author
	Author string `json:"author,omitempty"`

	// CreatedAt is the timestamp when the comment was created
	CreatedAt time.Time `json:"created_at"`
}

// PullRequest represents a pull request with its essential fields.
type PullRequest struct {
	// Number is the pull request number in the source repository
	Number int `json:"number"`

	// Title is the pull request's title
	Title string `json:"title"`

	// Body is the full body text of the pull request
	Body string `json:"body,omitempty"`

	// State is "open" or "closed"
	State string `json:"state"`

	// BaseRef is the name of the branch the pull request targets
	BaseRef string `json:"base_ref"`

	// HeadRef is the name of the branch the pull request comes from
	HeadRef string `json:"head_ref"`

	// Draft reports whether the pull request is a draft
	Draft bool `json:"draft,omitempty"`

	// Labels is a slice of label names attached to the pull request
	Labels []string `json:"labels,omitempty"`

	// MilestoneNumber is the number of the milestone the pull request
	// belongs to, or 0 if none
	MilestoneNumber int `json:"milestone_number,omitempty"`

	// CreatedAt is the timestamp when the pull request was created
	CreatedAt time.Time `json:"created_at"`

	// MergedAt is the timestamp when the pull request was merged
	MergedAt *time.Time `json:"merged_at,omitempty"`

	// ClosedAt is the timestamp when the pull request was closed
	ClosedAt *time.Time `json:"closed_at,omitempty"`
}

// PullRequestComment represents an issue-style conversation comment on a
// pull request, as opposed to an inline review comment.
type PullRequestComment struct {
	// ID is the comment's identifier in the source repository
	ID int64 `json:"id"`

	// PullRequestNumber is the number of the pull request the comment
	// belongs to
	PullRequestNumber int `json:"pull_request_number"`

	// PullRequestURL is the API URL of the parent pull request as the
	// source reported it
	PullRequestURL string `json:"pull_request_url,omitempty"`

	// Body is the comment text
	Body string `json:"body"`

	// Author is the login of the comment author
	Author string `json:"author,omitempty"`

	// CreatedAt is the timestamp when the comment was created
	CreatedAt time.Time `json:"created_at"`
}

// PullRequestReview represents a review submitted on a pull request.
type PullRequestReview struct {
	// ID is the review's identifier in the source repository
	ID int64 `json:"id"`

	// PullRequestNumber is the number of the reviewed pull request
	PullRequestNumber int `json:"pull_request_number"`

	// State is the review state (e.g., "APPROVED", "CHANGES_REQUESTED")
	State string `json:"state"`

	// Body is the review summary text
	Body string `json:"body,omitempty"`

	// Author is the login of the reviewer
	Author string `json:"author,omitempty"`

	// SubmittedAt is the timestamp when the review was submitted
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// PullRequestReviewComment represents an inline comment attached to a pull
// request review.
type PullRequestReviewComment struct {
	// ID is the comment's identifier in the source repository
	ID int64 `json:"id"`

	// ReviewID is the identifier of the review the comment belongs to
	ReviewID int64 `json:"review_id"`

	// PullRequestNumber is the number of the pull request the comment was
	// made on
	PullRequestNumber int `json:"pull_request_number"`

	// Path is the file path the comment is anchored to
	Path string `json:"path"`

	// Position is the diff position the comment is anchored to
	Position int `json:"position,omitempty"`

	// Body is the comment text
	Body string `json:"body"`

	// Author is the login of the comment author
	Author string `json:"author,omitempty"`

	// CreatedAt is the timestamp when the comment was created
	CreatedAt time.Time `json:"created_at"`
}

// SubIssueLink records a parent/child relationship between two issues.
type SubIssueLink struct {
	// ParentNumber is the issue number of the parent
	ParentNumber int `json:"parent_number"`

	// ChildNumber is the issue number of the child
	ChildNumber int `json:"child_number"`
}
