package history

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testSource(query func(ctx context.Context, sql string) ([]WeeklyPoint, error)) *Source {
	return &Source{
		timeout:  time.Second,
		cacheTTL: time.Minute,
		logger:   zerolog.New(&bytes.Buffer{}),
		query:    query,
		cache:    make(map[string]cached),
	}
}

func TestWeeklySeries(t *testing.T) {
	points := []WeeklyPoint{
		{WeekEnding: "2025-01-04", Minutes: 3.2},
		{WeekEnding: "2025-01-11", Minutes: 2.8},
	}
	s := testSource(func(ctx context.Context, sql string) ([]WeeklyPoint, error) {
		return points, nil
	})

	got, err := s.WeeklyAvgHold(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].WeekEnding != "2025-01-04" {
		t.Errorf("unexpected series: %+v", got)
	}
}

func TestSeriesCaching(t *testing.T) {
	calls := 0
	s := testSource(func(ctx context.Context, sql string) ([]WeeklyPoint, error) {
		calls++
		return []WeeklyPoint{{WeekEnding: "2025-01-04", Minutes: 1}}, nil
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := s.WeeklyAvgHold(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 query within TTL, got %d", calls)
	}

	// A different series misses the cache
	if _, err := s.WeeklyTopHoldAvg(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 queries for 2 series, got %d", calls)
	}
}

func TestSeriesCacheExpiry(t *testing.T) {
	calls := 0
	s := testSource(func(ctx context.Context, sql string) ([]WeeklyPoint, error) {
		calls++
		return nil, nil
	})
	s.cacheTTL = -time.Second // every entry is already expired

	ctx := context.Background()
	s.WeeklyAvgHold(ctx)
	s.WeeklyAvgHold(ctx)
	if calls != 2 {
		t.Errorf("expected expired cache to re-query, got %d calls", calls)
	}
}

func TestSeriesQueryFailure(t *testing.T) {
	s := testSource(func(ctx context.Context, sql string) ([]WeeklyPoint, error) {
		return nil, errors.New("connection refused")
	})

	_, err := s.WeeklyAvgHold(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestNewWithBadDSN(t *testing.T) {
	_, err := New(context.Background(), "::not a dsn::", time.Second, time.Minute, zerolog.New(&bytes.Buffer{}))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
