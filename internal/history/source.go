// Package history reads weekly historical aggregates from the team's
// relational call-log archive for trend charts. It is a best-effort
// collaborator: when the database is down the caller shows an
// "unavailable" state and the rest of the report carries on.
package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ErrUnavailable means the archive could not be reached or queried.
var ErrUnavailable = errors.New("history source unavailable")

// WeeklyPoint is one week-ending data point of a trend series.
type WeeklyPoint struct {
	WeekEnding string  `json:"weekEnding"` // YYYY-MM-DD, a Saturday
	Minutes    float64 `json:"minutes"`
}

const (
	// avgHoldSQL averages hold time per week ending Saturday, year to date.
	avgHoldSQL = `
		SELECT (start_time::date + ((6 - EXTRACT(DOW FROM start_time)::int) % 7))::date AS week_ending,
		       AVG(hold_time_seconds) / 60.0 AS minutes
		FROM call_log_history
		WHERE hold_time_seconds IS NOT NULL
		  AND start_time >= date_trunc('year', now())
		GROUP BY week_ending
		ORDER BY week_ending`

	// topHoldSQL averages the three longest holds of each week.
	topHoldSQL = `
		SELECT week_ending, AVG(hold_time_seconds) / 60.0 AS minutes
		FROM (
			SELECT (start_time::date + ((6 - EXTRACT(DOW FROM start_time)::int) % 7))::date AS week_ending,
			       hold_time_seconds,
			       ROW_NUMBER() OVER (
			           PARTITION BY (start_time::date + ((6 - EXTRACT(DOW FROM start_time)::int) % 7))
			           ORDER BY hold_time_seconds DESC
			       ) AS rn
			FROM call_log_history
			WHERE hold_time_seconds IS NOT NULL
			  AND start_time >= date_trunc('year', now())
		) ranked
		WHERE rn <= 3
		GROUP BY week_ending
		ORDER BY week_ending`
)

type cached struct {
	points  []WeeklyPoint
	expires time.Time
}

// Source queries the archive, memoizing each series for the cache TTL
// since trend data is not safety-critical to the pipeline.
type Source struct {
	timeout  time.Duration
	cacheTTL time.Duration
	logger   zerolog.Logger

	// query runs one SQL statement and scans the series. Swappable in
	// tests; backed by the pool otherwise.
	query func(ctx context.Context, sql string) ([]WeeklyPoint, error)

	mu    sync.Mutex
	cache map[string]cached
}

// New connects to the archive. A failed connection is returned as
// ErrUnavailable so the caller can run without trends.
func New(ctx context.Context, dsn string, timeout, cacheTTL time.Duration, logger zerolog.Logger) (*Source, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing dsn: %v", ErrUnavailable, err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: creating pool: %v", ErrUnavailable, err)
	}

	s := &Source{
		timeout:  timeout,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "history").Logger(),
		cache:    make(map[string]cached),
	}
	s.query = func(ctx context.Context, sql string) ([]WeeklyPoint, error) {
		rows, err := pool.Query(ctx, sql)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var points []WeeklyPoint
		for rows.Next() {
			var week time.Time
			var minutes float64
			if err := rows.Scan(&week, &minutes); err != nil {
				return nil, err
			}
			points = append(points, WeeklyPoint{
				WeekEnding: week.Format("2006-01-02"),
				Minutes:    minutes,
			})
		}
		return points, rows.Err()
	}
	return s, nil
}

// WeeklyAvgHold returns the year-to-date weekly average hold series.
func (s *Source) WeeklyAvgHold(ctx context.Context) ([]WeeklyPoint, error) {
	return s.series(ctx, "avg_hold", avgHoldSQL)
}

// WeeklyTopHoldAvg returns the year-to-date average of each week's
// three longest holds.
func (s *Source) WeeklyTopHoldAvg(ctx context.Context) ([]WeeklyPoint, error) {
	return s.series(ctx, "top_hold", topHoldSQL)
}

func (s *Source) series(ctx context.Context, key, sql string) ([]WeeklyPoint, error) {
	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && time.Now().Before(entry.expires) {
		s.mu.Unlock()
		return entry.points, nil
	}
	s.mu.Unlock()

	qctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	points, err := s.query(qctx, sql)
	if err != nil {
		s.logger.Warn().Err(err).Str("series", key).Msg("history query failed")
		return nil, ErrUnavailable
	}

	s.mu.Lock()
	s.cache[key] = cached{points: points, expires: time.Now().Add(s.cacheTTL)}
	s.mu.Unlock()
	return points, nil
}
