package backup

import (
	"github.com/repovault/repovault/internal/logging"
)

// featureParents declares which parent feature each child entity type
// requires. A child requested without its parent is excluded with a
// warning rather than failing the run: the parent data its coupling and
// id remapping depend on would never exist.
var featureParents = map[string]string{
	EntityComments:         EntityIssues,
	EntitySubIssues:        EntityIssues,
	EntityPRComments:       EntityPullRequests,
	EntityPRReviews:        EntityPullRequests,
	EntityPRReviewComments: EntityPRReviews,
}

// NewSaveStrategies builds the dependency-ordered strategy set for a save
// run. Configuration problems surface as errors before any I/O.
func NewSaveStrategies(opts Options) ([]Strategy, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	enabled := enabledEntities(opts)
	var strategies []Strategy
	add := func(entity string, build func() Strategy) {
		if !enabled[entity] {
			return
		}
		if parent, ok := featureParents[entity]; ok && !enabled[parent] {
			logging.Warn("excluding entity type: required parent type is disabled",
				"entity_type", entity,
				"requires", parent)
			enabled[entity] = false
			return
		}
		strategies = append(strategies, build())
	}

	add(EntityLabels, newLabelSaver)
	add(EntityMilestones, newMilestoneSaver)
	add(EntityIssues, func() Strategy { return newIssueSaver(opts.Issues) })
	add(EntityComments, func() Strategy { return newCommentSaver(opts.Issues.Selective()) })
	add(EntityPullRequests, func() Strategy { return newPullRequestSaver(opts.PullRequests) })
	add(EntityPRComments, func() Strategy { return newPullRequestCommentSaver(opts.PullRequests.Selective()) })
	add(EntityPRReviews, newPullRequestReviewSaver)
	add(EntityPRReviewComments, func() Strategy { return newReviewCommentSaver(opts.PullRequests.Selective()) })
	add(EntitySubIssues, newSubIssueSaver)

	return resolveOrder(strategies)
}

// NewRestoreStrategies builds the dependency-ordered strategy set for a
// restore run.
func NewRestoreStrategies(opts Options) ([]Strategy, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	enabled := enabledEntities(opts)
	var strategies []Strategy
	add := func(entity string, build func() Strategy) {
		if !enabled[entity] {
			return
		}
		if parent, ok := featureParents[entity]; ok && !enabled[parent] {
			logging.Warn("excluding entity type: required parent type is disabled",
				"entity_type", entity,
				"requires", parent)
			enabled[entity] = false
			return
		}
		strategies = append(strategies, build())
	}

	add(EntityLabels, func() Strategy { return newLabelRestorer(opts.Conflict) })
	add(EntityMilestones, func() Strategy { return newMilestoneRestorer(opts.Conflict) })
	add(EntityIssues, newIssueRestorer)
	add(EntityComments, newCommentRestorer)
	add(EntityPullRequests, newPullRequestRestorer)
	add(EntityPRComments, newPullRequestCommentRestorer)
	add(EntityPRReviews, newPullRequestReviewRestorer)
	add(EntityPRReviewComments, newReviewCommentRestorer)
	add(EntitySubIssues, newSubIssueRestorer)

	return resolveOrder(strategies)
}

// enabledEntities flattens the per-type inclusion settings. Exclusion
// ordering matters: the add helpers consult this map as they go, so a
// child disabled because its parent is off also disables grandchildren.
func enabledEntities(opts Options) map[string]bool {
	return map[string]bool{
		EntityLabels:           opts.Labels,
		EntityMilestones:       opts.Milestones,
		EntityIssues:           opts.Issues.Enabled(),
		EntityComments:         opts.Comments,
		EntityPullRequests:     opts.PullRequests.Enabled(),
		EntityPRComments:       opts.PullRequestComments,
		EntityPRReviews:        opts.PullRequestReviews,
		EntityPRReviewComments: opts.PullRequestReviewComments,
		EntitySubIssues:        opts.SubIssues,
	}
}
