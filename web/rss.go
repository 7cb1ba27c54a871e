package web

import (
	"fmt"
	"time"

	"github.com/MimansaPatle/pictogram/util"
	"github.com/gorilla/feeds"
)

const rssFeedSize = 50

// GetRSS renders a public user's posts as an RSS feed. Private
// profiles have no feed.
func (h *handlers) GetRSS(username string) (string, error) {
	user, posts, err := h.service.PublicUserFeed(username, rssFeedSize)
	if err != nil {
		return "", err
	}

	link := fmt.Sprintf("%s/feed?username=%s", h.conf.Conf.BaseURL, username)
	email := fmt.Sprintf("%s@%s", user.Username, util.Name)

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("Pictogram - %s", user.Username),
		Link:        &feeds.Link{Href: link},
		Description: user.Bio,
		Author:      &feeds.Author{Name: user.DisplayName, Email: email},
		Created:     time.Now(),
	}

	var feedItems []*feeds.Item
	for _, post := range posts {
		feedItems = append(feedItems,
			&feeds.Item{
				Id:      post.Id.String(),
				Title:   post.CreatedAt.Format(util.DateTimeFormat()),
				Link:    &feeds.Link{Href: fmt.Sprintf("%s/posts/%s", h.conf.Conf.BaseURL, post.Id)},
				Content: post.Content,
				Author:  &feeds.Author{Name: post.AuthorUsername, Email: email},
				Created: post.CreatedAt,
			})
	}

	feed.Items = feedItems
	return feed.ToRss()
}
