package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"linkstash/pkg/linkstash/errs"
	"linkstash/pkg/linkstash/models"
)

// Display limits. The dashboard panel shows fewer upcoming deadlines than
// the standalone list; the two are deliberately independent because
// unifying them would change observable dashboard contents.
const (
	RecentLinksLimit       = 6
	DashboardDeadlineLimit = 3
	UpcomingListLimit      = 5
)

// Stats summarizes a user's link collection
type Stats struct {
	TotalLinks        int64 `json:"totalLinks"`
	CompletedLinks    int64 `json:"completedLinks"`
	TagsUsed          int64 `json:"tagsUsed"`
	UpcomingDeadlines int64 `json:"upcomingDeadlines"`
}

// Summary is the dashboard payload: counts plus two derived link lists
type Summary struct {
	Stats                 Stats         `json:"stats"`
	RecentLinks           []models.Link `json:"recentLinks"`
	UpcomingDeadlineLinks []models.Link `json:"upcomingDeadlineLinks"`
}

// Aggregator computes dashboard summaries from the store
type Aggregator struct {
	db *gorm.DB
}

// NewAggregator creates an aggregator over the given store handle
func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// upcomingScope selects links that still have a live deadline: not
// completed or rejected, dated, and due no earlier than now.
func upcomingScope(db *gorm.DB, ownerID uint, now time.Time) *gorm.DB {
	return db.Model(&models.Link{}).
		Where("user_id = ?", ownerID).
		Where("status NOT IN ?", []models.LinkStatus{models.StatusCompleted, models.StatusRejected}).
		Where("deadline IS NOT NULL").
		Where("deadline >= ?", now)
}

// Summary computes all dashboard figures for the owner. The six reads are
// independent and run concurrently; each sees its own consistent snapshot,
// which is all the dashboard needs.
func (a *Aggregator) Summary(ctx context.Context, ownerID uint) (*Summary, error) {
	now := time.Now()
	var s Summary

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := a.db.WithContext(ctx).Model(&models.Link{}).
			Where("user_id = ?", ownerID).
			Count(&s.Stats.TotalLinks).Error
		if err != nil {
			return &errs.DependencyError{Op: "count links", Err: err}
		}
		return nil
	})

	g.Go(func() error {
		err := a.db.WithContext(ctx).Model(&models.Link{}).
			Where("user_id = ? AND status = ?", ownerID, models.StatusCompleted).
			Count(&s.Stats.CompletedLinks).Error
		if err != nil {
			return &errs.DependencyError{Op: "count completed links", Err: err}
		}
		return nil
	})

	g.Go(func() error {
		err := a.db.WithContext(ctx).Model(&models.Tag{}).
			Where("user_id = ?", ownerID).
			Count(&s.Stats.TagsUsed).Error
		if err != nil {
			return &errs.DependencyError{Op: "count tags", Err: err}
		}
		return nil
	})

	g.Go(func() error {
		err := upcomingScope(a.db.WithContext(ctx), ownerID, now).
			Count(&s.Stats.UpcomingDeadlines).Error
		if err != nil {
			return &errs.DependencyError{Op: "count upcoming deadlines", Err: err}
		}
		return nil
	})

	g.Go(func() error {
		recent, err := a.RecentLinks(ctx, ownerID, RecentLinksLimit)
		if err != nil {
			return err
		}
		s.RecentLinks = recent
		return nil
	})

	g.Go(func() error {
		upcoming, err := a.UpcomingDeadlineLinks(ctx, ownerID, DashboardDeadlineLimit)
		if err != nil {
			return err
		}
		s.UpcomingDeadlineLinks = upcoming
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

// RecentLinks returns the owner's most recently created links, newest
// first, regardless of status
func (a *Aggregator) RecentLinks(ctx context.Context, ownerID uint, limit int) ([]models.Link, error) {
	var links []models.Link
	err := a.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").Order("id ASC").
		Limit(limit).
		Find(&links).Error
	if err != nil {
		return nil, &errs.DependencyError{Op: "recent links", Err: err}
	}
	return links, nil
}

// UpcomingDeadlineLinks returns links with live deadlines, soonest first
func (a *Aggregator) UpcomingDeadlineLinks(ctx context.Context, ownerID uint, limit int) ([]models.Link, error) {
	var links []models.Link
	err := upcomingScope(a.db.WithContext(ctx), ownerID, time.Now()).
		Order("deadline ASC").Order("id ASC").
		Limit(limit).
		Find(&links).Error
	if err != nil {
		return nil, &errs.DependencyError{Op: "upcoming deadline links", Err: err}
	}
	return links, nil
}
