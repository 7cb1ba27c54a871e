package social

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/MimansaPatle/pictogram/db"
	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

// Page is one page of a post listing. Total and HasMore reflect the
// unfiltered result set; visibility filtering can only shrink a page.
type Page struct {
	Posts   []domain.Post `json:"posts"`
	Total   int           `json:"total"`
	HasMore bool          `json:"has_more"`
}

// IsVisible reports whether the viewer may see the post. Own posts are
// always visible, a block in either direction hides everything, public
// authors are visible to all, private authors only to followers.
func (s *Service) IsVisible(viewerId uuid.UUID, post *domain.Post) (bool, error) {
	return s.visibleAuthor(viewerId, post.AuthorId)
}

func (s *Service) visibleAuthor(viewerId, authorId uuid.UUID) (bool, error) {
	if viewerId == authorId {
		return true, nil
	}
	err, blocked := s.store.BlockExistsEither(viewerId, authorId)
	if err != nil {
		return false, err
	}
	if blocked {
		return false, nil
	}
	err, author := s.store.ReadUserById(authorId)
	if errors.Is(err, sql.ErrNoRows) {
		// Orphaned post; nothing to hide behind
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if !author.IsPrivate {
		return true, nil
	}
	err, following := s.store.FollowExists(viewerId, authorId)
	return following, err
}

// FilterVisible keeps the visible prefix of posts, up to limit. The
// author verdict is cached so a page dominated by a few authors costs a
// handful of lookups.
func (s *Service) FilterVisible(viewerId uuid.UUID, posts []domain.Post, limit int) ([]domain.Post, error) {
	visible := []domain.Post{}
	verdicts := map[uuid.UUID]bool{}
	for _, post := range posts {
		ok, cached := verdicts[post.AuthorId]
		if !cached {
			var err error
			ok, err = s.visibleAuthor(viewerId, post.AuthorId)
			if err != nil {
				return nil, err
			}
			verdicts[post.AuthorId] = ok
		}
		if !ok {
			continue
		}
		visible = append(visible, post)
		if len(visible) >= limit {
			break
		}
	}
	return visible, nil
}

// visiblePage runs a query with an oversized fetch, filters the result
// down to the requested page size and decorates it for the viewer.
// Total and HasMore come from the unfiltered count.
func (s *Service) visiblePage(viewerId uuid.UUID, query *db.PostQuery) (*Page, error) {
	err, total := s.store.CountPosts(query)
	if err != nil {
		return nil, err
	}

	limit := query.Limit
	fetch := *query
	fetch.Limit = limit * 2
	err, posts := s.store.QueryPosts(&fetch)
	if err != nil {
		return nil, err
	}

	visible, err := s.FilterVisible(viewerId, *posts, limit)
	if err != nil {
		return nil, err
	}
	if err := s.DecoratePosts(viewerId, visible); err != nil {
		return nil, err
	}
	return &Page{
		Posts:   visible,
		Total:   total,
		HasMore: query.Skip+limit < total,
	}, nil
}

// Feed returns posts from the viewer and the accounts they follow.
// Follow edges already encode access, so no visibility filter runs.
func (s *Service) Feed(viewerId uuid.UUID, skip, limit int) (*Page, error) {
	err, followingIds := s.store.ReadFollowingIds(viewerId)
	if err != nil {
		return nil, err
	}
	authorIds := append(followingIds, viewerId)

	query := &db.PostQuery{AuthorIds: authorIds, Skip: skip, Limit: limit}
	err, total := s.store.CountPosts(query)
	if err != nil {
		return nil, err
	}
	err, posts := s.store.QueryPosts(query)
	if err != nil {
		return nil, err
	}
	result := *posts
	if err := s.DecoratePosts(viewerId, result); err != nil {
		return nil, err
	}
	return &Page{Posts: result, Total: total, HasMore: skip+limit < total}, nil
}

// Explore returns a filtered page over all authors.
func (s *Service) Explore(viewerId uuid.UUID, mediaType, sortBy, order string, skip, limit int) (*Page, error) {
	return s.visiblePage(viewerId, &db.PostQuery{
		MediaType: mediaType,
		SortBy:    sortBy,
		Order:     order,
		Skip:      skip,
		Limit:     limit,
	})
}

// UserPosts lists one author's posts. A private profile is gated as a
// whole before any posts are fetched.
func (s *Service) UserPosts(viewerId, authorId uuid.UUID, skip, limit int) (*Page, error) {
	if _, err := s.readUser(authorId); err != nil {
		return nil, err
	}
	visible, err := s.visibleAuthor(viewerId, authorId)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, fmt.Errorf("profile %s is private: %w", authorId, domain.ErrForbidden)
	}

	query := &db.PostQuery{AuthorIds: []uuid.UUID{authorId}, Skip: skip, Limit: limit}
	err, total := s.store.CountPosts(query)
	if err != nil {
		return nil, err
	}
	err, posts := s.store.QueryPosts(query)
	if err != nil {
		return nil, err
	}
	result := *posts
	if err := s.DecoratePosts(viewerId, result); err != nil {
		return nil, err
	}
	return &Page{Posts: result, Total: total, HasMore: skip+limit < total}, nil
}

// TaggedPosts lists posts mentioning the user.
func (s *Service) TaggedPosts(viewerId, userId uuid.UUID, skip, limit int) ([]domain.Post, error) {
	err, posts := s.store.ReadPostsByMention(userId, skip, limit*2)
	if err != nil {
		return nil, err
	}
	visible, err := s.FilterVisible(viewerId, *posts, limit)
	if err != nil {
		return nil, err
	}
	if err := s.DecoratePosts(viewerId, visible); err != nil {
		return nil, err
	}
	return visible, nil
}

// HashtagPosts lists posts under a tag, with the unfiltered tag total.
func (s *Service) HashtagPosts(viewerId uuid.UUID, tag string, skip, limit int) (*Page, error) {
	err, total := s.store.CountPostsByTag(tag)
	if err != nil {
		return nil, err
	}
	err, posts := s.store.ReadPostsByTag(tag, skip, limit*2)
	if err != nil {
		return nil, err
	}
	visible, err := s.FilterVisible(viewerId, *posts, limit)
	if err != nil {
		return nil, err
	}
	if err := s.DecoratePosts(viewerId, visible); err != nil {
		return nil, err
	}
	return &Page{Posts: visible, Total: total, HasMore: skip+limit < total}, nil
}

// BookmarkedPosts lists the caller's bookmarks, newest first. Posts
// from authors who went private or blocked the caller drop out.
func (s *Service) BookmarkedPosts(callerId uuid.UUID, skip, limit int) ([]domain.Post, error) {
	err, postIds := s.store.ReadBookmarkedPostIds(callerId, skip, limit*2)
	if err != nil {
		return nil, err
	}
	err, posts := s.store.ReadPostsByIds(postIds)
	if err != nil {
		return nil, err
	}
	visible, err := s.FilterVisible(callerId, *posts, limit)
	if err != nil {
		return nil, err
	}
	if err := s.DecoratePosts(callerId, visible); err != nil {
		return nil, err
	}
	return visible, nil
}

// DecoratePosts sets the viewer-specific IsLiked and IsBookmarked flags.
func (s *Service) DecoratePosts(viewerId uuid.UUID, posts []domain.Post) error {
	for i := range posts {
		post := &posts[i]
		err, liked := s.store.LikeExists(post.Id, viewerId)
		if err != nil {
			return err
		}
		post.IsLiked = liked
		err, bookmarked := s.store.BookmarkExists(post.Id, viewerId)
		if err != nil {
			return err
		}
		post.IsBookmarked = bookmarked
	}
	return nil
}
