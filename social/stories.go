package social

import (
	"fmt"
	"sort"
	"time"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

const storyLifetime = 24 * time.Hour

// StoryGroup bundles one author's active stories for the tray.
type StoryGroup struct {
	AuthorId       uuid.UUID      `json:"author_id"`
	AuthorUsername string         `json:"author_username"`
	AuthorPhoto    string         `json:"author_photo"`
	Stories        []domain.Story `json:"stories"`
	HasUnseen      bool           `json:"has_unseen"`
}

// CreateStory stores a story that expires after 24 hours.
func (s *Service) CreateStory(authorId uuid.UUID, mediaURL, mediaType, thumbnailURL string) (*domain.Story, error) {
	if _, err := s.readUser(authorId); err != nil {
		return nil, err
	}
	now := time.Now()
	story := &domain.Story{
		Id:           uuid.New(),
		AuthorId:     authorId,
		MediaURL:     mediaURL,
		MediaType:    mediaType,
		ThumbnailURL: thumbnailURL,
		CreatedAt:    now,
		ExpiresAt:    now.Add(storyLifetime),
	}
	if err := s.store.CreateStory(story); err != nil {
		return nil, err
	}
	return s.readStory(story.Id)
}

// ActiveStories returns the viewer's story tray: active stories of the
// viewer and the accounts they follow, grouped per author. The
// viewer's own group sorts first, then groups with unseen stories,
// then by story count.
func (s *Service) ActiveStories(viewerId uuid.UUID) ([]StoryGroup, error) {
	err, followingIds := s.store.ReadFollowingIds(viewerId)
	if err != nil {
		return nil, err
	}
	authorIds := append(followingIds, viewerId)

	err, stories := s.store.ReadActiveStoriesByAuthors(authorIds, time.Now())
	if err != nil {
		return nil, err
	}

	groupByAuthor := map[uuid.UUID]*StoryGroup{}
	var order []uuid.UUID
	for _, story := range *stories {
		err, viewed := s.store.StoryViewExists(story.Id, viewerId)
		if err != nil {
			return nil, err
		}
		story.IsViewed = viewed

		group, ok := groupByAuthor[story.AuthorId]
		if !ok {
			group = &StoryGroup{
				AuthorId:       story.AuthorId,
				AuthorUsername: story.AuthorUsername,
				AuthorPhoto:    story.AuthorPhoto,
			}
			groupByAuthor[story.AuthorId] = group
			order = append(order, story.AuthorId)
		}
		group.Stories = append(group.Stories, story)
		if !viewed && story.AuthorId != viewerId {
			group.HasUnseen = true
		}
	}

	groups := make([]StoryGroup, 0, len(order))
	for _, authorId := range order {
		groups = append(groups, *groupByAuthor[authorId])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if (a.AuthorId == viewerId) != (b.AuthorId == viewerId) {
			return a.AuthorId == viewerId
		}
		if a.HasUnseen != b.HasUnseen {
			return a.HasUnseen
		}
		return len(a.Stories) > len(b.Stories)
	})
	return groups, nil
}

// GetStory returns one active story if the viewer may see its author.
func (s *Service) GetStory(viewerId, storyId uuid.UUID) (*domain.Story, error) {
	story, err := s.readStory(storyId)
	if err != nil {
		return nil, err
	}
	if story.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("story %s: %w", storyId, domain.ErrNotFound)
	}
	visible, err := s.visibleAuthor(viewerId, story.AuthorId)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, fmt.Errorf("story %s: %w", storyId, domain.ErrForbidden)
	}
	err, viewed := s.store.StoryViewExists(storyId, viewerId)
	if err != nil {
		return nil, err
	}
	story.IsViewed = viewed
	return story, nil
}

// StoryViewers lists who has seen an own story, most recent first.
func (s *Service) StoryViewers(callerId, storyId uuid.UUID) ([]domain.StoryViewer, error) {
	story, err := s.readStory(storyId)
	if err != nil {
		return nil, err
	}
	if story.AuthorId != callerId {
		return nil, fmt.Errorf("story %s: %w", storyId, domain.ErrForbidden)
	}
	err, viewers := s.store.ReadStoryViewers(storyId)
	if err != nil {
		return nil, err
	}
	return *viewers, nil
}

// DeleteStory removes an own story together with its view edges.
func (s *Service) DeleteStory(callerId, storyId uuid.UUID) error {
	story, err := s.readStory(storyId)
	if err != nil {
		return err
	}
	if story.AuthorId != callerId {
		return fmt.Errorf("story %s: %w", storyId, domain.ErrForbidden)
	}
	return s.store.DeleteStoryCascade(storyId)
}
