// Package ingest loads JSON-lines grid records into the dataset, thinning
// the grid to every stride-th latitude and longitude.
package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"weather-explorer/internal/repositories"
	"weather-explorer/pkg/logger"
)

const (
	DefaultStride    = 10
	DefaultBatchSize = 5000

	maxLineSize = 1024 * 1024
)

// Inserter is the write side of the grid dataset.
type Inserter interface {
	Insert(ctx context.Context, records []repositories.GridRecord) error
}

// line is one input record. Variables other than these four are ignored.
type line struct {
	Time      json.RawMessage `json:"time"`
	Latitude  *float64        `json:"latitude"`
	Longitude *float64        `json:"longitude"`
	T2m       *float64        `json:"t2m"`
	U10       *float64        `json:"u10"`
	V10       *float64        `json:"v10"`
	Tp6h      *float64        `json:"tp6h"`
}

// ParseTime accepts epoch seconds or an ISO-8601 timestamp (UTC when no zone is given).
func ParseTime(raw json.RawMessage) (int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, errors.New("missing time")
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, errors.Errorf("unsupported time %s", s)
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02T15_04_05"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, errors.Errorf("unsupported time %q", str)
}

// Scan decodes every non-blank line of r and passes it to fn.
func Scan(r io.Reader, fn func(repositories.GridRecord) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	n := 0
	for sc.Scan() {
		n++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}

		var ln line
		if err := json.Unmarshal([]byte(raw), &ln); err != nil {
			return errors.Wrapf(err, "line %d", n)
		}
		if ln.Latitude == nil || ln.Longitude == nil {
			return errors.Errorf("line %d: latitude and longitude are required", n)
		}
		ts, err := ParseTime(ln.Time)
		if err != nil {
			return errors.Wrapf(err, "line %d", n)
		}

		if err := fn(repositories.GridRecord{
			Time:      ts,
			Latitude:  *ln.Latitude,
			Longitude: *ln.Longitude,
			T2m:       ln.T2m,
			U10:       ln.U10,
			V10:       ln.V10,
			Tp6h:      ln.Tp6h,
		}); err != nil {
			return err
		}
	}

	return errors.Wrap(sc.Err(), "read input")
}

// Decimation keeps every stride-th distinct coordinate on each axis,
// starting with the first in sorted order.
type Decimation struct {
	lats map[float64]struct{}
	lons map[float64]struct{}
}

func NewDecimation(lats, lons []float64, stride int) *Decimation {
	return &Decimation{
		lats: every(lats, stride),
		lons: every(lons, stride),
	}
}

func every(values []float64, stride int) map[float64]struct{} {
	if stride < 1 {
		stride = 1
	}

	uniq := make(map[float64]struct{}, len(values))
	for _, v := range values {
		uniq[v] = struct{}{}
	}

	sorted := make([]float64, 0, len(uniq))
	for v := range uniq {
		sorted = append(sorted, v)
	}
	sort.Float64s(sorted)

	keep := make(map[float64]struct{}, len(sorted)/stride+1)
	for i := 0; i < len(sorted); i += stride {
		keep[sorted[i]] = struct{}{}
	}
	return keep
}

func (d *Decimation) Keep(lat, lon float64) bool {
	_, okLat := d.lats[lat]
	_, okLon := d.lons[lon]
	return okLat && okLon
}

func (d *Decimation) Size() (lats, lons int) {
	return len(d.lats), len(d.lons)
}

type Stats struct {
	Read    int
	Written int
	Lats    int
	Lons    int
}

type Importer struct {
	store     Inserter
	stride    int
	batchSize int
	l         *logger.Logger
}

func NewImporter(store Inserter, stride, batchSize int, l *logger.Logger) *Importer {
	if stride < 1 {
		stride = DefaultStride
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Importer{store: store, stride: stride, batchSize: batchSize, l: l}
}

// Import reads the input twice: once for the grid axes, once to write the kept rows.
func (im *Importer) Import(ctx context.Context, open func() (io.ReadCloser, error)) (Stats, error) {
	var stats Stats

	var lats, lons []float64
	err := im.pass(open, func(r repositories.GridRecord) error {
		lats = append(lats, r.Latitude)
		lons = append(lons, r.Longitude)
		return nil
	})
	if err != nil {
		return stats, errors.Wrap(err, "scan grid axes")
	}

	dec := NewDecimation(lats, lons, im.stride)
	stats.Lats, stats.Lons = dec.Size()

	im.l.Info("grid axes decimated", map[string]any{
		"stride": im.stride,
		"lats":   stats.Lats,
		"lons":   stats.Lons,
	})

	batch := make([]repositories.GridRecord, 0, im.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := im.store.Insert(ctx, batch); err != nil {
			return err
		}
		stats.Written += len(batch)
		batch = batch[:0]
		return nil
	}

	err = im.pass(open, func(r repositories.GridRecord) error {
		stats.Read++
		if !dec.Keep(r.Latitude, r.Longitude) {
			return nil
		}
		batch = append(batch, r)
		if len(batch) >= im.batchSize {
			return flush()
		}
		return ctx.Err()
	})
	if err == nil {
		err = flush()
	}
	if err != nil {
		return stats, errors.Wrap(err, "write samples")
	}

	return stats, nil
}

func (im *Importer) pass(open func() (io.ReadCloser, error), fn func(repositories.GridRecord) error) error {
	rc, err := open()
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer rc.Close()

	return Scan(rc, fn)
}
