package links

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"linkstash/pkg/linkstash/errs"
	"linkstash/pkg/linkstash/models"
)

// Sort fields accepted by ListOptions.
const (
	SortCreatedAt = "createdAt"
	SortDeadline  = "deadline"
	SortTitle     = "title"
	SortPriority  = "priority"
)

// Order directions accepted by ListOptions.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListOptions enumerates every recognized link filter. Unknown query keys
// never reach this struct, so they cannot be silently honored or ignored
// ambiguously.
type ListOptions struct {
	Search     string
	CategoryID uint
	Status     string
	TagNames   []string
	Sort       string
	Order      string
	Page       int
	Limit      int
}

// normalize validates enum fields and fills defaults. Page and Limit below 1
// fall back to their defaults rather than erroring.
func (o *ListOptions) normalize() error {
	if o.Status != "" && !models.ValidStatus(o.Status) {
		return &errs.ValidationError{Field: "status", Message: fmt.Sprintf("invalid status %q", o.Status)}
	}

	switch o.Sort {
	case "":
		o.Sort = SortCreatedAt
	case SortCreatedAt, SortDeadline, SortTitle, SortPriority:
	default:
		return &errs.ValidationError{Field: "sort", Message: fmt.Sprintf("invalid sort field %q", o.Sort)}
	}

	switch o.Order {
	case "":
		o.Order = OrderDesc
	case OrderAsc, OrderDesc:
	default:
		return &errs.ValidationError{Field: "order", Message: fmt.Sprintf("invalid order %q", o.Order)}
	}

	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	return nil
}

// orderClause builds the ORDER BY expression for the chosen sort field.
// Links without a deadline sort last regardless of direction, so
// deadline-ascending views surface dated items first. Priority sorts by
// severity, not lexically.
func orderClause(sort, order string) string {
	dir := "DESC"
	if order == OrderAsc {
		dir = "ASC"
	}

	switch sort {
	case SortDeadline:
		return fmt.Sprintf("(deadline IS NULL) ASC, deadline %s", dir)
	case SortTitle:
		return fmt.Sprintf("title %s", dir)
	case SortPriority:
		return fmt.Sprintf("CASE priority WHEN 'Low' THEN 0 WHEN 'Medium' THEN 1 WHEN 'High' THEN 2 ELSE 3 END %s", dir)
	default:
		return fmt.Sprintf("created_at %s", dir)
	}
}

// Query returns one page of the owner's links. The pipeline is fixed:
// owner scope, then search/category/status filters, then sort (ties broken
// by id ascending), then pagination, and finally the tag-intersection
// filter over the paginated window.
//
// Because the tag filter runs after pagination, a page may hold fewer than
// Limit rows even when later pages contain more matches. Callers that need
// globally paginated tag filtering must pre-filter before paging.
func Query(db *gorm.DB, ownerID uint, opts ListOptions) ([]models.Link, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	q := db.Where("user_id = ?", ownerID)

	if opts.Search != "" {
		term := "%" + strings.ToLower(opts.Search) + "%"
		q = q.Where(
			"lower(title) LIKE ? OR lower(url) LIKE ? OR lower(coalesce(notes, '')) LIKE ?",
			term, term, term,
		)
	}
	if opts.CategoryID != 0 {
		q = q.Where("category_id = ?", opts.CategoryID)
	}
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}

	q = q.Order(orderClause(opts.Sort, opts.Order)).Order("id ASC")
	q = q.Offset((opts.Page - 1) * opts.Limit).Limit(opts.Limit)

	var page []models.Link
	if err := q.Find(&page).Error; err != nil {
		return nil, &errs.DependencyError{Op: "list links", Err: err}
	}

	if len(opts.TagNames) > 0 {
		return filterByTags(db, ownerID, page, opts.TagNames)
	}
	return page, nil
}

// filterByTags keeps only the links carrying every requested tag. Tag names
// are resolved within the owner's tags; a requested name the owner does not
// have makes the whole result empty rather than partially matching.
func filterByTags(db *gorm.DB, ownerID uint, page []models.Link, names []string) ([]models.Link, error) {
	wanted := dedupe(names)

	var tags []models.Tag
	if err := db.Where("user_id = ? AND name IN ?", ownerID, wanted).Find(&tags).Error; err != nil {
		return nil, &errs.DependencyError{Op: "resolve tag filter", Err: err}
	}
	if len(tags) < len(wanted) {
		return []models.Link{}, nil
	}

	tagIDs := make([]uint, len(tags))
	for i, t := range tags {
		tagIDs[i] = t.ID
	}

	if len(page) == 0 {
		return page, nil
	}
	linkIDs := make([]uint, len(page))
	for i, l := range page {
		linkIDs[i] = l.ID
	}

	var rows []models.LinkTag
	if err := db.Where("link_id IN ? AND tag_id IN ?", linkIDs, tagIDs).Find(&rows).Error; err != nil {
		return nil, &errs.DependencyError{Op: "load tag associations", Err: err}
	}

	counts := make(map[uint]int, len(page))
	for _, row := range rows {
		counts[row.LinkID]++
	}

	filtered := make([]models.Link, 0, len(page))
	for _, l := range page {
		if counts[l.ID] == len(tagIDs) {
			filtered = append(filtered, l)
		}
	}
	return filtered, nil
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
