package engine

import (
	"context"

	"github.com/ripplr-app/backend/internal/models"
	"github.com/ripplr-app/backend/internal/repositories"
)

// suggestionSampleSize is how many profiles SuggestToFollow draws
// before filtering. The result may be smaller; the sample is never
// widened to compensate.
const suggestionSampleSize = 3

// Recommender derives "users to follow" and "users you might like"
// from the follow graph. Both derivations are pure, read-only,
// single-pass computations over fetched documents.
type Recommender struct {
	users repositories.UserRepository
}

// NewRecommender creates a new Recommender
func NewRecommender(users repositories.UserRepository) *Recommender {
	return &Recommender{users: users}
}

// SuggestToFollow draws a uniform random sample of profiles and
// filters out the caller and anyone the caller already follows.
// Sampling is uniform over all users, independent of graph position.
func (rc *Recommender) SuggestToFollow(ctx context.Context, userID string) ([]models.UserSummary, error) {
	sampled, err := rc.users.SampleProfiles(ctx, suggestionSampleSize)
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.UserSummary, 0, len(sampled))
	for i := range sampled {
		candidate := &sampled[i]
		if candidate.ID.Hex() == userID {
			continue
		}
		// The caller already follows the candidate iff the caller
		// appears in the candidate's followers.
		if containsID(candidate.Followers, userID) {
			continue
		}
		suggestions = append(suggestions, candidate.Summary())
	}
	return suggestions, nil
}

// SuggestYouMightLike expands the follow graph to radius 2: for every
// user the caller follows, collect that user's followers; the union,
// minus the caller and anyone already followed, is the candidate set.
// Candidates keep first-seen order during the union build.
func (rc *Recommender) SuggestYouMightLike(ctx context.Context, userID string) ([]models.UserSummary, error) {
	user, err := rc.users.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var suggestions []models.UserSummary
	for _, followedID := range user.Following {
		followed, err := rc.users.GetProfileByID(ctx, followedID)
		if err != nil {
			return nil, err
		}
		for _, candidateID := range followed.Followers {
			if candidateID == userID || seen[candidateID] || containsID(user.Following, candidateID) {
				continue
			}
			seen[candidateID] = true
			candidate, err := rc.users.GetProfileByID(ctx, candidateID)
			if err != nil {
				return nil, err
			}
			suggestions = append(suggestions, candidate.Summary())
		}
	}
	return suggestions, nil
}
