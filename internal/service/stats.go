package service

import (
	"context"
	"sort"

	"github.com/vialtyfake/vialty-blog/internal/models"
)

// Stats is the admin dashboard summary.
type Stats struct {
	TotalPosts     int            `json:"totalPosts"`
	PublishedPosts int            `json:"publishedPosts"`
	DraftPosts     int            `json:"draftPosts"`
	TotalViews     int64          `json:"totalViews"`
	PopularPosts   []models.Post  `json:"popularPosts"`
	RecentPosts    []models.Post  `json:"recentPosts"`
	TagCounts      map[string]int `json:"tagCounts"`
}

// Stats aggregates totals, the five most viewed and most recent posts, and
// per-tag frequencies across the whole collection.
func (s *PostService) Stats(ctx context.Context) (*Stats, error) {
	posts, err := s.ListAdmin(ctx)
	if err != nil {
		return nil, err
	}

	out := &Stats{
		TotalPosts: len(posts),
		TagCounts:  make(map[string]int),
	}

	withViews := make([]models.Post, len(posts))
	copy(withViews, posts)
	for i := range withViews {
		views, err := s.Views(ctx, withViews[i].ID)
		if err != nil {
			return nil, err
		}
		withViews[i].Views = views
		out.TotalViews += views

		if withViews[i].IsPublished {
			out.PublishedPosts++
		} else {
			out.DraftPosts++
		}
		for _, tag := range withViews[i].DecodedTags() {
			out.TagCounts[tag]++
		}
	}

	popular := make([]models.Post, len(withViews))
	copy(popular, withViews)
	sort.SliceStable(popular, func(i, j int) bool { return popular[i].Views > popular[j].Views })
	out.PopularPosts = topFive(popular)

	recent := make([]models.Post, len(withViews))
	copy(recent, withViews)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].CreatedAt.After(recent[j].CreatedAt) })
	out.RecentPosts = topFive(recent)

	return out, nil
}

func topFive(posts []models.Post) []models.Post {
	if len(posts) > 5 {
		return posts[:5]
	}
	return posts
}
