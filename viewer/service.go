// Package viewer serves the paginated, read-only listing of deletion records.
package viewer

import (
	"context"
	"net/url"
	"strconv"

	"github.com/nanoncore/ont-cleaner/model"
	"github.com/nanoncore/ont-cleaner/store"
)

// Row is one rendered deletion record
type Row struct {
	Timestamp   string
	Port        int
	ONTsDeleted int
	Status      string
}

// Listing is everything the index page renders
type Listing struct {
	Rows       []Row
	Total      int64
	Zone       Zone
	Zones      []Zone
	Pagination Pagination
}

// Service reads listings from the store. It never writes.
type Service struct {
	store   store.Store
	perPage int
}

// NewService creates a service over s with the default page size
func NewService(s store.Store) *Service {
	return &Service{store: s, perPage: PerPage}
}

// ListPage returns page (1-based, values below 1 read as 1) with timestamps
// rendered in the curated zone called timezone, or UTC if it is not one.
// A page past the end has no rows and is answered without a find.
func (s *Service) ListPage(ctx context.Context, page int, timezone string) (*Listing, error) {
	page = clampPage(page)
	zone := ResolveZone(timezone)
	loc := zone.Location()

	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}

	var records []model.DeletionRecord
	if skip := int64(page-1) * int64(s.perPage); skip < total {
		records, err = s.store.FindPage(ctx, skip, int64(s.perPage))
		if err != nil {
			return nil, err
		}
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{
			Timestamp:   FormatTimestamp(rec.Timestamp, loc),
			Port:        rec.Port,
			ONTsDeleted: rec.ONTsDeleted,
			Status:      rec.Status,
		})
	}

	return &Listing{
		Rows:       rows,
		Total:      total,
		Zone:       zone,
		Zones:      Zones,
		Pagination: NewPagination(page, total, s.perPage, pageURL(zone)),
	}, nil
}

// Ping checks the store answers a count
func (s *Service) Ping(ctx context.Context) error {
	_, err := s.store.Count(ctx)
	return err
}

// pageURL keeps the selected zone in every page link
func pageURL(zone Zone) func(int) string {
	return func(n int) string {
		q := url.Values{}
		q.Set("page", strconv.Itoa(n))
		q.Set("timezone", zone.Name)
		return "?" + q.Encode()
	}
}
