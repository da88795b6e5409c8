package backup

import (
	"context"
	"strconv"

	"github.com/repovault/repovault/pkg/models"
)

// newLabelSaver saves every label in the repository.
func newLabelSaver() Strategy {
	return &entitySaver[models.Label]{
		name: EntityLabels,
		collect: func(ctx context.Context, svc RepositoryService, repository string, _ *Context) ([]models.Label, error) {
			return svc.ListLabels(ctx, repository)
		},
	}
}

// newMilestoneSaver saves every milestone in the repository.
func newMilestoneSaver() Strategy {
	return &entitySaver[models.Milestone]{
		name: EntityMilestones,
		collect: func(ctx context.Context, svc RepositoryService, repository string, _ *Context) ([]models.Milestone, error) {
			return svc.ListMilestones(ctx, repository)
		},
	}
}

// newIssueSaver saves the issues admitted by spec. It depends on
// milestones so that issue milestone references point at saved data.
func newIssueSaver(spec InclusionSpec) Strategy {
	return &entitySaver[models.Issue]{
		name: EntityIssues,
		deps: []string{EntityMilestones},
		collect: func(ctx context.Context, svc RepositoryService, repository string, _ *Context) ([]models.Issue, error) {
			return svc.ListIssues(ctx, repository)
		},
		process: func(items []models.Issue, _ *Context) []models.Issue {
			return applySelection(items, spec, func(i models.Issue) int { return i.Number }, EntityIssues)
		},
	}
}

// newCommentSaver saves the comments whose parent issue was saved.
func newCommentSaver(selective bool) Strategy {
	return &entitySaver[models.Comment]{
		name: EntityComments,
		deps: []string{EntityIssues},
		collect: func(ctx context.Context, svc RepositoryService, repository string, _ *Context) ([]models.Comment, error) {
			return svc.ListIssueComments(ctx, repository)
		},
		process: func(items []models.Comment, run *Context) []models.Comment {
			parents := issueParentIDs(ProducedAs[models.Issue](run, EntityIssues))
			return filterChildrenByParents(items, parents, commentParentRef, selective, EntityComments)
		},
	}
}

// newPullRequestSaver saves the pull requests admitted by spec.
func newPullRequestSaver(spec InclusionSpec) Strategy {
	return &entitySaver[models.PullRequest]{
		name: EntityPullRequests,
		deps: []string{EntityMilestones},
		collect: func(ctx context.Context, svc RepositoryService, repository string, _ *Context) ([]models.PullRequest, error) {
			return svc.ListPullRequests(ctx, repository)
		},
		process: func(items []models.PullRequest, _ *Context) []models.PullRequest {
			return applySelection(items, spec, func(p models.PullRequest) int { return p.Number }, EntityPullRequests)
		},
	}
}

// newPullRequestCommentSaver saves the conversation comments whose parent
// pull request was saved.
func newPullRequestCommentSaver(selective bool) Strategy {
	return &entitySaver[models.PullRequestComment]{
		name: EntityPRComments,
		deps: []string{EntityPullRequests},
		collect: func(ctx context.Context, svc RepositoryService, repository string, _ *Context) ([]models.PullRequestComment, error) {
			return svc.ListPullRequestComments(ctx, repository)
		},
		process: func(items []models.PullRequestComment, run *Context) []models.PullRequestComment {
			parents := pullParentIDs(ProducedAs[models.PullRequest](run, EntityPullRequests))
			return filterChildrenByParents(items, parents, prCommentParentRef, selective, EntityPRComments)
		},
	}
}

// newPullRequestReviewSaver saves the reviews of the saved pull requests.
// Reviews are listed per pull request, so collection is coupled to the
// produced pull requests by construction.
func newPullRequestReviewSaver() Strategy {
	return &entitySaver[models.PullRequestReview]{
		name: EntityPRReviews,
		deps: []string{EntityPullRequests},
		collect: func(ctx context.Context, svc RepositoryService, repository string, run *Context) ([]models.PullRequestReview, error) {
			var numbers []int
			for _, p := range ProducedAs[models.PullRequest](run, EntityPullRequests) {
				numbers = append(numbers, p.Number)
			}
			return svc.ListPullRequestReviews(ctx, repository, numbers)
		},
	}
}

// newReviewCommentSaver saves the inline review comments whose parent
// review was saved.
func newReviewCommentSaver(selective bool) Strategy {
	return &entitySaver[models.PullRequestReviewComment]{
		name: EntityPRReviewComments,
		deps: []string{EntityPRReviews},
		collect: func(ctx context.Context, svc RepositoryService, repository string, _ *Context) ([]models.PullRequestReviewComment, error) {
			return svc.ListPullRequestReviewComments(ctx, repository)
		},
		process: func(items []models.PullRequestReviewComment, run *Context) []models.PullRequestReviewComment {
			var ids []int64
			for _, r := range ProducedAs[models.PullRequestReview](run, EntityPRReviews) {
				ids = append(ids, r.ID)
			}
			parents := buildParentIDSet(ids)
			return filterChildrenByParents(items, parents, reviewCommentParentRef, selective, EntityPRReviewComments)
		},
	}
}

// newSubIssueSaver saves the parent/child links among the saved issues.
// Links are listed per issue, so collection is coupled to the produced
// issues by construction; links pointing outside the saved set are
// dropped in processing.
func newSubIssueSaver() Strategy {
	return &entitySaver[models.SubIssueLink]{
		name: EntitySubIssues,
		deps: []string{EntityIssues},
		collect: func(ctx context.Context, svc RepositoryService, repository string, run *Context) ([]models.SubIssueLink, error) {
			var numbers []int
			for _, i := range ProducedAs[models.Issue](run, EntityIssues) {
				numbers = append(numbers, i.Number)
			}
			return svc.ListSubIssueLinks(ctx, repository, numbers)
		},
		process: func(items []models.SubIssueLink, run *Context) []models.SubIssueLink {
			saved := make(map[int]struct{})
			for _, i := range ProducedAs[models.Issue](run, EntityIssues) {
				saved[i.Number] = struct{}{}
			}
			var kept []models.SubIssueLink
			for _, link := range items {
				if _, ok := saved[link.ParentNumber]; !ok {
					continue
				}
				if _, ok := saved[link.ChildNumber]; !ok {
					continue
				}
				kept = append(kept, link)
			}
			return kept
		},
	}
}

// issueParentIDs builds the identifier set for a group of issues.
func issueParentIDs(issues []models.Issue) parentIDSet {
	var numbers []int64
	for _, i := range issues {
		numbers = append(numbers, int64(i.Number))
	}
	return buildParentIDSet(numbers, "issues")
}

// pullParentIDs builds the identifier set for a group of pull requests.
// Pull requests appear under both "issues" and "pulls" API paths.
func pullParentIDs(pulls []models.PullRequest) parentIDSet {
	var numbers []int64
	for _, p := range pulls {
		numbers = append(numbers, int64(p.Number))
	}
	return buildParentIDSet(numbers, "issues", "pulls")
}

func commentParentRef(c models.Comment) string {
	if c.IssueURL != "" {
		return c.IssueURL
	}
	return strconv.Itoa(c.IssueNumber)
}

func prCommentParentRef(c models.PullRequestComment) string {
	if c.PullRequestURL != "" {
		return c.PullRequestURL
	}
	return strconv.Itoa(c.PullRequestNumber)
}

func reviewCommentParentRef(c models.PullRequestReviewComment) string {
	return strconv.FormatInt(c.ReviewID, 10)
}
