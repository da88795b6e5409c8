package backup

import (
	"context"
	"fmt"

	"github.com/repovault/repovault/internal/logging"
	"github.com/repovault/repovault/pkg/models"
)

// newLabelRestorer restores labels, arbitrating name collisions with the
// configured conflict strategy. Labels have no numeric identity, so no
// remapping table is produced.
func newLabelRestorer(conflict ConflictStrategy) Strategy {
	existing := make(map[string]models.Label)

	return &entityRestorer[models.Label]{
		name: EntityLabels,
		prepare: func(ctx context.Context, svc RepositoryService, repository string, items []models.Label, _ *Context) error {
			current, err := svc.ListLabels(ctx, repository)
			if err != nil {
				return fmt.Errorf("failed to list existing labels: %w", err)
			}
			for _, l := range current {
				existing[l.Name] = l
			}
			return prepareCollisions(ctx, svc, repository, conflict, items, existing)
		},
		create: func(ctx context.Context, svc RepositoryService, repository string, item models.Label) (*models.Label, error) {
			current, exists := existing[item.Name]
			action := resolveCollision(conflict, exists, exists && labelsEqual(current, item))
			switch action {
			case ActionUpdate:
				created, err := svc.UpdateLabel(ctx, repository, item.Name, item)
				if err != nil {
					return nil, err
				}
				logging.Debug("label conflict resolved", "label", item.Name, "outcome", outcomeFor(conflict, action, nil))
				return created, nil
			case ActionSkipExisting:
				logging.Warn("label already exists, keeping existing",
					"label", item.Name,
					"conflict_strategy", conflict.String())
				return nil, nil
			case ActionAbort:
				return nil, fmt.Errorf("label %q already exists", item.Name)
			}
			return svc.CreateLabel(ctx, repository, item)
		},
	}
}

// prepareCollisions runs the up-front part of conflict resolution:
// fail-if-existing and fail-if-conflict abort the entity type before any
// creation is attempted, delete-all clears the remote side.
func prepareCollisions(ctx context.Context, svc RepositoryService, repository string, conflict ConflictStrategy, items []models.Label, existing map[string]models.Label) error {
	switch conflict {
	case ConflictFailIfExisting:
		for _, item := range items {
			if _, ok := existing[item.Name]; ok {
				logging.Error("conflict pre-check failed", "outcome", outcomeFor(conflict, ActionAbort, nil))
				return fmt.Errorf("label %q already exists in the target repository (conflict strategy %s)", item.Name, conflict)
			}
		}
	case ConflictFailIfConflict:
		for _, item := range items {
			if current, ok := existing[item.Name]; ok && !labelsEqual(current, item) {
				logging.Error("conflict pre-check failed", "outcome", outcomeFor(conflict, ActionAbort, nil))
				return fmt.Errorf("label %q exists with different fields (conflict strategy %s)", item.Name, conflict)
			}
		}
	case ConflictDeleteAll:
		for name := range existing {
			if err := svc.DeleteLabel(ctx, repository, name); err != nil {
				return fmt.Errorf("failed to delete existing label %q: %w", name, err)
			}
			delete(existing, name)
		}
	}
	return nil
}

func labelsEqual(a, b models.Label) bool {
	return a.Color == b.Color && a.Description == b.Description
}

// newMilestoneRestorer restores milestones and records the old-to-new
// number mapping consumed by issue and pull request restoration. A title
// collision resolved to skip maps the old number onto the existing
// milestone, so dependents still resolve their references.
func newMilestoneRestorer(conflict ConflictStrategy) Strategy {
	existing := make(map[string]models.Milestone)

	return &entityRestorer[models.Milestone]{
		name: EntityMilestones,
		prepare: func(ctx context.Context, svc RepositoryService, repository string, items []models.Milestone, _ *Context) error {
			current, err := svc.ListMilestones(ctx, repository)
			if err != nil {
				return fmt.Errorf("failed to list existing milestones: %w", err)
			}
			for _, m := range current {
				existing[m.Title] = m
			}
			switch conflict {
			case ConflictFailIfExisting:
				for _, item := range items {
					if _, ok := existing[item.Title]; ok {
						return fmt.Errorf("milestone %q already exists in the target repository (conflict strategy %s)", item.Title, conflict)
					}
				}
			case ConflictFailIfConflict:
				for _, item := range items {
					if current, ok := existing[item.Title]; ok && !milestonesEqual(current, item) {
						return fmt.Errorf("milestone %q exists with different fields (conflict strategy %s)", item.Title, conflict)
					}
				}
			case ConflictDeleteAll:
				for title, m := range existing {
					if err := svc.DeleteMilestone(ctx, repository, m.Number); err != nil {
						return fmt.Errorf("failed to delete existing milestone %q: %w", title, err)
					}
					delete(existing, title)
				}
			}
			return nil
		},
		create: func(ctx context.Context, svc RepositoryService, repository string, item models.Milestone) (*models.Milestone, error) {
			current, exists := existing[item.Title]
			action := resolveCollision(conflict, exists, exists && milestonesEqual(current, item))
			switch action {
			case ActionUpdate:
				created, err := svc.UpdateMilestone(ctx, repository, current.Number, item)
				if err != nil {
					return nil, err
				}
				return created, nil
			case ActionSkipExisting:
				logging.Warn("milestone already exists, mapping onto existing",
					"milestone", item.Title,
					"conflict_strategy", conflict.String())
				kept := current
				return &kept, nil
			case ActionAbort:
				return nil, fmt.Errorf("milestone %q already exists", item.Title)
			}
			return svc.CreateMilestone(ctx, repository, item)
		},
		postCreate: func(original models.Milestone, created *models.Milestone, run *Context) {
			run.SetMapping(EntityMilestones, int64(original.Number), int64(created.Number))
		},
	}
}

func milestonesEqual(a, b models.Milestone) bool {
	return a.State == b.State && a.Description == b.Description
}

// newIssueRestorer restores issues. The milestone reference is optional:
// when its mapping is unresolved the reference is dropped with a warning
// rather than skipping the issue.
func newIssueRestorer() Strategy {
	return &entityRestorer[models.Issue]{
		name: EntityIssues,
		deps: []string{EntityLabels, EntityMilestones},
		transform: func(item models.Issue, run *Context) (models.Issue, bool) {
			item.MilestoneNumber = remapMilestone(run, EntityIssues, item.Number, item.MilestoneNumber)
			return item, true
		},
		create: func(ctx context.Context, svc RepositoryService, repository string, item models.Issue) (*models.Issue, error) {
			created, err := svc.CreateIssue(ctx, repository, item)
			if err != nil {
				return nil, err
			}
			if item.State == "closed" {
				if err := svc.CloseIssue(ctx, repository, created.Number); err != nil {
					logging.Warn("failed to close restored issue",
						"issue_number", created.Number,
						"error", err)
				}
			}
			return created, nil
		},
		postCreate: func(original models.Issue, created *models.Issue, run *Context) {
			run.SetMapping(EntityIssues, int64(original.Number), int64(created.Number))
		},
	}
}

// remapMilestone resolves an optional milestone reference, returning 0
// when the reference cannot be resolved.
func remapMilestone(run *Context, entity string, number, milestoneNumber int) int {
	if milestoneNumber == 0 {
		return 0
	}
	mapped, ok := run.MappedID(EntityMilestones, int64(milestoneNumber))
	if !ok {
		logging.Warn("dropping unresolved milestone reference",
			"entity_type", entity,
			"number", number,
			"milestone_number", milestoneNumber)
		return 0
	}
	return int(mapped)
}

// newCommentRestorer restores issue comments onto their remapped parent
// issues. The issue reference is required: an unresolved mapping means the
// issue strategy was skipped or the issue excluded, so the comment is
// skipped rather than failing the batch.
func newCommentRestorer() Strategy {
	return &entityRestorer[models.Comment]{
		name: EntityComments,
		deps: []string{EntityIssues},
		transform: func(item models.Comment, run *Context) (models.Comment, bool) {
			mapped, ok := run.MappedID(EntityIssues, int64(item.IssueNumber))
			if !ok {
				logging.Warn("skipping comment: parent issue was not restored",
					"comment_id", item.ID,
					"issue_number", item.IssueNumber)
				return item, false
			}
			item.IssueNumber = int(mapped)
			item.IssueURL = ""
			return item, true
		},
		create: func(ctx context.Context, svc RepositoryService, repository string, item models.Comment) (*models.Comment, error) {
			return svc.CreateIssueComment(ctx, repository, item.IssueNumber, item.Body)
		},
	}
}

// newPullRequestRestorer restores pull requests. Creation requires the
// base and head branches to exist in the target repository; a pull
// request whose branches are gone is recorded as a per-item failure.
func newPullRequestRestorer() Strategy {
	return &entityRestorer[models.PullRequest]{
		name: EntityPullRequests,
		deps: []string{EntityLabels, EntityMilestones},
		transform: func(item models.PullRequest, run *Context) (models.PullRequest, bool) {
			item.MilestoneNumber = remapMilestone(run, EntityPullRequests, item.Number, item.MilestoneNumber)
			return item, true
		},
		create: func(ctx context.Context, svc RepositoryService, repository string, item models.PullRequest) (*models.PullRequest, error) {
			return svc.CreatePullRequest(ctx, repository, item)
		},
		postCreate: func(original models.PullRequest, created *models.PullRequest, run *Context) {
			run.SetMapping(EntityPullRequests, int64(original.Number), int64(created.Number))
		},
	}
}

// newPullRequestCommentRestorer restores conversation comments onto their
// remapped pull requests.
func newPullRequestCommentRestorer() Strategy {
	return &entityRestorer[models.PullRequestComment]{
		name: EntityPRComments,
		deps: []string{EntityPullRequests},
		transform: func(item models.PullRequestComment, run *Context) (models.PullRequestComment, bool) {
			mapped, ok := run.MappedID(EntityPullRequests, int64(item.PullRequestNumber))
			if !ok {
				logging.Warn("skipping comment: parent pull request was not restored",
					"comment_id", item.ID,
					"pull_request_number", item.PullRequestNumber)
				return item, false
			}
			item.PullRequestNumber = int(mapped)
			item.PullRequestURL = ""
			return item, true
		},
		create: func(ctx context.Context, svc RepositoryService, repository string, item models.PullRequestComment) (*models.PullRequestComment, error) {
			return svc.CreatePullRequestComment(ctx, repository, item.PullRequestNumber, item.Body)
		},
	}
}

// newPullRequestReviewRestorer restores reviews onto their remapped pull
// requests and records the old-to-new review id mapping consumed by
// review comment restoration.
func newPullRequestReviewRestorer() Strategy {
	return &entityRestorer[models.PullRequestReview]{
		name: EntityPRReviews,
		deps: []string{EntityPullRequests},
		transform: func(item models.PullRequestReview, run *Context) (models.PullRequestReview, bool) {
			mapped, ok := run.MappedID(EntityPullRequests, int64(item.PullRequestNumber))
			if !ok {
				logging.Warn("skipping review: parent pull request was not restored",
					"review_id", item.ID,
					"pull_request_number", item.PullRequestNumber)
				return item, false
			}
			item.PullRequestNumber = int(mapped)
			return item, true
		},
		create: func(ctx context.Context, svc RepositoryService, repository string, item models.PullRequestReview) (*models.PullRequestReview, error) {
			return svc.CreatePullRequestReview(ctx, repository, item)
		},
		postCreate: func(original models.PullRequestReview, created *models.PullRequestReview, run *Context) {
			run.SetMapping(EntityPRReviews, original.ID, created.ID)
		},
	}
}

// newReviewCommentRestorer restores inline review comments. Both the
// review and pull request references are required.
func newReviewCommentRestorer() Strategy {
	return &entityRestorer[models.PullRequestReviewComment]{
		name: EntityPRReviewComments,
		deps: []string{EntityPRReviews},
		transform: func(item models.PullRequestReviewComment, run *Context) (models.PullRequestReviewComment, bool) {
			review, ok := run.MappedID(EntityPRReviews, item.ReviewID)
			if !ok {
				logging.Warn("skipping review comment: parent review was not restored",
					"comment_id", item.ID,
					"review_id", item.ReviewID)
				return item, false
			}
			pull, ok := run.MappedID(EntityPullRequests, int64(item.PullRequestNumber))
			if !ok {
				logging.Warn("skipping review comment: parent pull request was not restored",
					"comment_id", item.ID,
					"pull_request_number", item.PullRequestNumber)
				return item, false
			}
			item.ReviewID = review
			item.PullRequestNumber = int(pull)
			return item, true
		},
		create: func(ctx context.Context, svc RepositoryService, repository string, item models.PullRequestReviewComment) (*models.PullRequestReviewComment, error) {
			return svc.CreatePullRequestReviewComment(ctx, repository, item)
		},
	}
}

// newSubIssueRestorer re-links sub-issue hierarchies among the remapped
// issues. Both ends of a link are required.
func newSubIssueRestorer() Strategy {
	return &entityRestorer[models.SubIssueLink]{
		name: EntitySubIssues,
		deps: []string{EntityIssues},
		transform: func(item models.SubIssueLink, run *Context) (models.SubIssueLink, bool) {
			parent, ok := run.MappedID(EntityIssues, int64(item.ParentNumber))
			if !ok {
				logging.Warn("skipping sub-issue link: parent issue was not restored",
					"parent_number", item.ParentNumber,
					"child_number", item.ChildNumber)
				return item, false
			}
			child, ok := run.MappedID(EntityIssues, int64(item.ChildNumber))
			if !ok {
				logging.Warn("skipping sub-issue link: child issue was not restored",
					"parent_number", item.ParentNumber,
					"child_number", item.ChildNumber)
				return item, false
			}
			item.ParentNumber = int(parent)
			item.ChildNumber = int(child)
			return item, true
		},
		create: func(ctx context.Context, svc RepositoryService, repository string, item models.SubIssueLink) (*models.SubIssueLink, error) {
			if err := svc.AddSubIssue(ctx, repository, item.ParentNumber, item.ChildNumber); err != nil {
				return nil, err
			}
			return &item, nil
		},
	}
}
