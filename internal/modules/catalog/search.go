package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"stadiumbooking/internal/domain"
	"stadiumbooking/internal/pkg/geo"

	"go.opentelemetry.io/otel/attribute"
)

// cacheKey keeps coordinates at full precision; distances in a cached result
// are relative to the exact origin.
func (q SearchQuery) cacheKey() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", q.Date, q.Start, q.End,
		strconv.FormatFloat(q.Latitude, 'g', -1, 64), strconv.FormatFloat(q.Longitude, 'g', -1, 64))
}

func (s *Service) validateSearch(q SearchQuery) error {
	slot := domain.Slot{Start: q.Start, End: q.End}
	if q.Date.IsZero() || !slot.Valid() {
		return ErrValidation
	}
	if domain.InPast(q.Date, q.Start, s.now()) {
		return ErrValidation
	}
	if !geo.ValidCoordinate(q.Latitude, q.Longitude) {
		return ErrValidation
	}
	return nil
}

// SearchStadiums returns the stadiums with no blocking booking overlapping
// [q.Start, q.End) on q.Date, nearest first.
func (s *Service) SearchStadiums(ctx context.Context, q SearchQuery) ([]StadiumDistance, error) {
	ctx, span := tracer.Start(ctx, "catalog.search")
	defer span.End()
	span.SetAttributes(attribute.String("search.date", q.Date.String()))

	if err := s.validateSearch(q); err != nil {
		return nil, err
	}

	key := q.cacheKey()
	raw, gen, ok, cacheErr := s.cache.Get(ctx, key)
	if cacheErr != nil {
		s.loggerf("level=warn msg=search cache read failed key=%s err=%v", key, cacheErr)
	} else if ok {
		var cached []StadiumDistance
		if err := json.Unmarshal(raw, &cached); err == nil {
			span.SetAttributes(attribute.Bool("search.cache_hit", true))
			return cached, nil
		}
		s.loggerf("level=warn msg=search cache entry corrupt key=%s", key)
	}

	stadiums, err := s.stadiums.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stadiums: %w", err)
	}
	bookings, err := s.bookings.ListBlockingOn(ctx, q.Date)
	if err != nil {
		return nil, fmt.Errorf("list bookings on %s: %w", q.Date, err)
	}

	out := FilterAvailable(stadiums, bookings, domain.Slot{Start: q.Start, End: q.End}, q.Latitude, q.Longitude)

	if cacheErr == nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, gen, key, raw); err != nil {
				s.loggerf("level=warn msg=search cache write failed key=%s err=%v", key, err)
			}
		}
	}
	span.SetAttributes(attribute.Int("search.results", len(out)))
	return out, nil
}

// FilterAvailable drops every stadium that has a blocking booking overlapping
// slot, removes duplicate ids, and stable-sorts the rest by distance from
// (lat, lon). Input order breaks distance ties.
func FilterAvailable(stadiums []domain.Stadium, bookings []domain.Booking, slot domain.Slot, lat, lon float64) []StadiumDistance {
	busy := make(map[int64]bool)
	for _, b := range bookings {
		if b.Status.Blocks() && b.Slot().Overlaps(slot) {
			busy[b.StadiumID] = true
		}
	}

	seen := make(map[int64]bool, len(stadiums))
	out := make([]StadiumDistance, 0, len(stadiums))
	for _, st := range stadiums {
		if busy[st.ID] || seen[st.ID] {
			continue
		}
		seen[st.ID] = true
		out = append(out, StadiumDistance{
			Stadium:    st,
			DistanceKm: geo.DistanceKm(lat, lon, st.Latitude, st.Longitude),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}
