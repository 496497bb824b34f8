package geo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrNoGeometry is returned when a landmass source holds no polygons.
var ErrNoGeometry = errors.New("geo: no polygon geometry")

// Ring is a closed polygon outline.
type Ring []LatLng

// Landmass is the polygon set drawn by the 2D fallback silhouette.
type Landmass struct {
	Rings []Ring
}

// ParseGeoJSON extracts polygon outer and inner rings from a feature collection.
func ParseGeoJSON(data []byte) (*Landmass, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing geojson: %w", err)
	}

	lm := &Landmass{}
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			lm.addPolygon(g)
		case orb.MultiPolygon:
			for _, p := range g {
				lm.addPolygon(p)
			}
		}
	}
	if len(lm.Rings) == 0 {
		return nil, ErrNoGeometry
	}
	return lm, nil
}

func (lm *Landmass) addPolygon(p orb.Polygon) {
	for _, r := range p {
		ring := make(Ring, 0, len(r))
		for _, pt := range r {
			ring = append(ring, LatLng{Lat: pt.Lat(), Lng: pt.Lon()})
		}
		if len(ring) > 1 {
			lm.Rings = append(lm.Rings, ring)
		}
	}
}

// LandmassResult is a finished landmass load tagged with the generation it
// was requested for.
type LandmassResult struct {
	Generation uint64
	Source     string
	Landmass   *Landmass
	Err        error
}

// Fetcher loads landmass geometry in the background. Results arrive on
// Results() in completion order; consumers discard stale generations.
type Fetcher struct {
	client  *retryablehttp.Client
	timeout time.Duration
	results chan LandmassResult

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFetcher creates a fetcher. retryMax bounds HTTP retries.
func NewFetcher(timeout time.Duration, retryMax int) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.Logger = slog.Default()

	ctx, cancel := context.WithCancel(context.Background())
	return &Fetcher{
		client:  client,
		timeout: timeout,
		results: make(chan LandmassResult, 4),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Results returns the channel completed loads are delivered on.
func (f *Fetcher) Results() <-chan LandmassResult {
	return f.results
}

// Request starts loading src for the given generation.
func (f *Fetcher) Request(generation uint64, src string) {
	if src == "" {
		return
	}
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()

		ctx := f.ctx
		if f.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, f.timeout)
			defer cancel()
		}

		lm, err := f.load(ctx, src)
		res := LandmassResult{Generation: generation, Source: src, Landmass: lm, Err: err}
		select {
		case f.results <- res:
		case <-f.ctx.Done():
		}
	}()
}

// Close cancels outstanding loads and waits for them to exit.
func (f *Fetcher) Close() {
	f.cancel()
	f.wg.Wait()
}

func (f *Fetcher) load(ctx context.Context, src string) (*Landmass, error) {
	var data []byte
	var err error
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		data, err = f.download(ctx, src)
	} else {
		data, err = os.ReadFile(src)
		if err != nil {
			err = fmt.Errorf("reading landmass file: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}
	return ParseGeoJSON(data)
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building landmass request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching landmass: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching landmass: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading landmass body: %w", err)
	}
	return data, nil
}
