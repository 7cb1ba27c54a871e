package social

import (
	"math"
	"time"

	"github.com/MimansaPatle/pictogram/db"
	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

const trendingPostWindow = 7 * 24 * time.Hour

// TrendingPosts returns the most liked posts of the last week that the
// viewer may see.
func (s *Service) TrendingPosts(viewerId uuid.UUID, limit int) ([]domain.Post, error) {
	err, posts := s.store.ReadTrendingPosts(time.Now().Add(-trendingPostWindow), limit*2)
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

// UserStats is the public engagement summary of one account.
type UserStats struct {
	UserId             uuid.UUID `json:"user_id"`
	Username           string    `json:"username"`
	PostsCount         int       `json:"posts_count"`
	FollowersCount     int       `json:"followers_count"`
	FollowingCount     int       `json:"following_count"`
	TotalLikesReceived int       `json:"total_likes_received"`
	CreatedAt          time.Time `json:"created_at"`
}

func (s *Service) UserStats(userId uuid.UUID) (*UserStats, error) {
	user, err := s.readUser(userId)
	if err != nil {
		return nil, err
	}
	err, likes := s.store.SumLikesReceived(userId)
	if err != nil {
		return nil, err
	}
	return &UserStats{
		UserId:             user.Id,
		Username:           user.Username,
		PostsCount:         user.PostsCount,
		FollowersCount:     user.FollowersCount,
		FollowingCount:     user.FollowingCount,
		TotalLikesReceived: likes,
		CreatedAt:          user.CreatedAt,
	}, nil
}

// DashboardOverview aggregates the caller's lifetime engagement.
// EngagementRate is (likes + comments) per hundred views; LikesGrowth
// compares likes on posts of the last week against the week before.
type DashboardOverview struct {
	TotalPosts     int     `json:"total_posts"`
	TotalLikes     int     `json:"total_likes"`
	TotalComments  int     `json:"total_comments"`
	TotalViews     int     `json:"total_views"`
	FollowersCount int     `json:"followers_count"`
	FollowingCount int     `json:"following_count"`
	EngagementRate float64 `json:"engagement_rate"`
	LikesGrowth    float64 `json:"likes_growth"`
}

type Dashboard struct {
	Overview       DashboardOverview     `json:"overview"`
	PostsByDate    []db.DailyActivity    `json:"posts_by_date"`
	TopPosts       []domain.Post         `json:"top_posts"`
	RecentActivity []domain.Notification `json:"recent_activity"`
}

const dashboardTopPosts = 5
const dashboardActivitySize = 10

// Dashboard assembles the caller's analytics overview.
func (s *Service) Dashboard(callerId uuid.UUID) (*Dashboard, error) {
	user, err := s.readUser(callerId)
	if err != nil {
		return nil, err
	}
	err, totals := s.store.ReadPostTotals(callerId)
	if err != nil {
		return nil, err
	}

	overview := DashboardOverview{
		TotalPosts:     totals.Posts,
		TotalLikes:     totals.Likes,
		TotalComments:  totals.Comments,
		TotalViews:     totals.Views,
		FollowersCount: user.FollowersCount,
		FollowingCount: user.FollowingCount,
	}
	if totals.Views > 0 {
		overview.EngagementRate = round2(float64(totals.Likes+totals.Comments) / float64(totals.Views) * 100)
	}

	now := time.Now()
	weekAgo := now.Add(-trendingPostWindow)
	twoWeeksAgo := now.Add(-2 * trendingPostWindow)
	err, recentLikes := s.store.SumLikesBetween(callerId, weekAgo, now.Add(time.Second))
	if err != nil {
		return nil, err
	}
	err, previousLikes := s.store.SumLikesBetween(callerId, twoWeeksAgo, weekAgo)
	if err != nil {
		return nil, err
	}
	if previousLikes > 0 {
		overview.LikesGrowth = round2(float64(recentLikes-previousLikes) / float64(previousLikes) * 100)
	}

	err, days := s.store.ReadDailyActivity(callerId, now.Add(-30*24*time.Hour))
	if err != nil {
		return nil, err
	}
	err, top := s.store.ReadTopPosts(callerId, dashboardTopPosts)
	if err != nil {
		return nil, err
	}
	topPosts := *top
	if err := s.DecoratePosts(callerId, topPosts); err != nil {
		return nil, err
	}
	activity, err := s.ListNotifications(callerId, false, 0, dashboardActivitySize)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Overview:       overview,
		PostsByDate:    *days,
		TopPosts:       topPosts,
		RecentActivity: activity,
	}, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// SearchPosts runs the advanced search and keeps only posts the viewer
// may see. Total and HasMore come from the unfiltered count, like the
// other filtered listings.
func (s *Service) SearchPosts(viewerId uuid.UUID, query *db.PostSearch) (*Page, error) {
	err, total := s.store.CountSearchPosts(query)
	if err != nil {
		return nil, err
	}

	limit := query.Limit
	fetch := *query
	fetch.Limit = limit * 2
	err, posts := s.store.SearchPosts(&fetch)
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
