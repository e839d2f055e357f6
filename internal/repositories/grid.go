package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

var ErrEmptyGrid = errors.New("grid dataset is empty")

const gridSchema = `
CREATE TABLE IF NOT EXISTS grid_samples (
  time      INTEGER NOT NULL,
  latitude  REAL    NOT NULL,
  longitude REAL    NOT NULL,
  t2m       REAL,
  u10       REAL,
  v10       REAL,
  tp6h      REAL,
  PRIMARY KEY (latitude, longitude, time)
);
CREATE INDEX IF NOT EXISTS idx_grid_samples_time ON grid_samples(time);
CREATE INDEX IF NOT EXISTS idx_grid_samples_lon ON grid_samples(longitude);
`

// GridPoint is one node of the reanalysis grid.
type GridPoint struct {
	Latitude  float64
	Longitude float64
}

// GridRecord is one timestamped row of the dataset. Variables may be missing.
// Temperature is kept in Kelvin as delivered by the source.
type GridRecord struct {
	Time      int64    `json:"time"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	T2m       *float64 `json:"t2m"`
	U10       *float64 `json:"u10"`
	V10       *float64 `json:"v10"`
	Tp6h      *float64 `json:"tp6h"`
}

// GridRepository serves the gridded dataset stored in SQLite.
type GridRepository struct {
	db *sql.DB
}

// OpenGrid opens (or creates) the dataset file and bootstraps the schema.
func OpenGrid(ctx context.Context, path string) (*GridRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	// Single writer; readers share the connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	g := NewGridRepository(db)
	if err := g.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return g, nil
}

func NewGridRepository(db *sql.DB) *GridRepository {
	return &GridRepository{db: db}
}

func (g *GridRepository) EnsureSchema(ctx context.Context) error {
	if _, err := g.db.ExecContext(ctx, gridSchema); err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}
	return nil
}

func (g *GridRepository) Close() error {
	if g == nil || g.db == nil {
		return nil
	}
	return g.db.Close()
}

// Ping is used by the readiness probe.
func (g *GridRepository) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

// NearestPoint picks the closest latitude and the closest longitude independently.
func (g *GridRepository) NearestPoint(ctx context.Context, lat, lon float64) (GridPoint, error) {
	var p GridPoint

	err := g.db.QueryRowContext(ctx,
		`SELECT latitude FROM (SELECT DISTINCT latitude FROM grid_samples)
		 ORDER BY ABS(latitude - ?) LIMIT 1`, lat).Scan(&p.Latitude)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrEmptyGrid
	}
	if err != nil {
		return p, fmt.Errorf("nearest latitude: %w", err)
	}

	err = g.db.QueryRowContext(ctx,
		`SELECT longitude FROM (SELECT DISTINCT longitude FROM grid_samples)
		 ORDER BY ABS(longitude - ?) LIMIT 1`, lon).Scan(&p.Longitude)
	if err != nil {
		return p, fmt.Errorf("nearest longitude: %w", err)
	}

	return p, nil
}

// Samples returns the rows at p with start <= time <= end, ordered by time.
func (g *GridRepository) Samples(ctx context.Context, p GridPoint, start, end int64) ([]GridRecord, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT time, latitude, longitude, t2m, u10, v10, tp6h
		 FROM grid_samples
		 WHERE latitude = ? AND longitude = ? AND time BETWEEN ? AND ?
		 ORDER BY time ASC`, p.Latitude, p.Longitude, start, end)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var out []GridRecord
	for rows.Next() {
		var (
			r                  GridRecord
			t2m, u10, v10, tp6 sql.NullFloat64
		)
		if err := rows.Scan(&r.Time, &r.Latitude, &r.Longitude, &t2m, &u10, &v10, &tp6); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		r.T2m = nullable(t2m)
		r.U10 = nullable(u10)
		r.V10 = nullable(v10)
		r.Tp6h = nullable(tp6)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}

	return out, nil
}

// Insert upserts records in a single transaction.
func (g *GridRepository) Insert(ctx context.Context, records []GridRecord) (err error) {
	if len(records) == 0 {
		return nil
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO grid_samples(time, latitude, longitude, t2m, u10, v10, tp6h)
		 VALUES(?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err = stmt.ExecContext(ctx, r.Time, r.Latitude, r.Longitude,
			nullFloat(r.T2m), nullFloat(r.U10), nullFloat(r.V10), nullFloat(r.Tp6h)); err != nil {
			return fmt.Errorf("insert sample: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (g *GridRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := g.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM grid_samples`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count samples: %w", err)
	}
	return n, nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
