package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vialtech/rutalerta/config"
	"github.com/vialtech/rutalerta/db"
	"github.com/vialtech/rutalerta/geo"
	"github.com/vialtech/rutalerta/models"
)

const (
	maxAttempts    = 3
	requestTimeout = 90 * time.Second
	userAgent      = "rutalerta-importer/1.0"
)

// pointKinds maps an OSM amenity/shop value to our fixed point type.
var pointKinds = map[string]string{
	"hospital":         "hospital",
	"clinic":           "hospital",
	"police":           "police",
	"fuel":             "fuel",
	"charging_station": "fuel",
	"car_repair":       "workshop",
	"car_wash":         "workshop",
	"tyres":            "workshop",
	"car_parts":        "workshop",
	"motorcycle":       "workshop",
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Tags map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// Importer pulls points of interest around the configured center from
// the Overpass API and reloads the fixed_points table.
type Importer struct {
	Config  *config.Config
	repo    db.FixedPointRepository
	client  *http.Client
	logger  *logrus.Logger
	backoff time.Duration
}

func New(repo db.FixedPointRepository, conf *config.Config, logger *logrus.Logger) *Importer {
	return &Importer{
		Config:  conf,
		repo:    repo,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger,
		backoff: 5 * time.Second,
	}
}

// Run fetches, filters and reloads. Existing rows are replaced wholesale;
// the table is reference data, not user data.
func (i *Importer) Run() error {
	query := i.buildQuery()
	elements, err := i.fetch(query)
	if err != nil {
		return err
	}
	i.logger.WithField("elements", len(elements)).Info("overpass fetch complete")

	points := i.filter(elements)
	i.logger.WithField("points", len(points)).Info("points after separation filter")

	if err := i.repo.Truncate(); err != nil {
		return err
	}
	if err := i.repo.BulkInsert(points); err != nil {
		return err
	}
	i.logger.WithField("inserted", len(points)).Info("fixed points reloaded")
	return nil
}

func (i *Importer) buildQuery() string {
	lat := i.Config.ImportCenterLat
	lng := i.Config.ImportCenterLng
	radius := i.Config.ImportRadiusM

	var b strings.Builder
	b.WriteString("[out:json][timeout:60];(")
	for _, amenity := range []string{"hospital", "clinic", "police", "fuel", "charging_station"} {
		fmt.Fprintf(&b, "node[amenity=%s](around:%d,%f,%f);", amenity, radius, lat, lng)
		fmt.Fprintf(&b, "way[amenity=%s](around:%d,%f,%f);", amenity, radius, lat, lng)
	}
	for _, shop := range []string{"car_repair", "car_wash", "tyres", "car_parts", "motorcycle"} {
		fmt.Fprintf(&b, "node[shop=%s](around:%d,%f,%f);", shop, radius, lat, lng)
		fmt.Fprintf(&b, "way[shop=%s](around:%d,%f,%f);", shop, radius, lat, lng)
	}
	b.WriteString(");out center;")
	return b.String()
}

// fetch posts the query, retrying up to maxAttempts times. 429 responses
// back off longer since Overpass rate limits by IP.
func (i *Importer) fetch(query string) ([]overpassElement, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		elements, err := i.fetchOnce(query)
		if err == nil {
			return elements, nil
		}
		lastErr = err
		wait := time.Duration(attempt) * i.backoff
		if strings.Contains(err.Error(), "429") {
			wait = time.Duration(attempt) * 6 * i.backoff
		}
		i.logger.WithError(err).WithField("attempt", attempt).Warn("overpass request failed")
		if attempt < maxAttempts {
			time.Sleep(wait)
		}
	}
	return nil, errors.Wrap(lastErr, "overpass fetch exhausted retries")
}

func (i *Importer) fetchOnce(query string) ([]overpassElement, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequest(http.MethodPost, i.Config.OverpassURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("overpass returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(err, "decoding overpass response")
	}
	return parsed.Elements, nil
}

// filter converts elements to fixed points, dropping unnamed ones and any
// point closer than the minimum spacing to an already accepted point of
// the same type.
func (i *Importer) filter(elements []overpassElement) []models.FixedPoint {
	accepted := make(map[string][][2]float64)
	points := make([]models.FixedPoint, 0, len(elements))

	for _, el := range elements {
		lat, lng := el.Lat, el.Lon
		if el.Center != nil {
			lat, lng = el.Center.Lat, el.Center.Lon
		}
		if lat == 0 && lng == 0 {
			continue
		}

		kind := pointKind(el.Tags)
		if kind == "" {
			continue
		}
		name := el.Tags["name"]
		if name == "" {
			continue
		}

		if tooClose(accepted[kind], lat, lng, i.Config.ImportMinSpacingM) {
			continue
		}
		accepted[kind] = append(accepted[kind], [2]float64{lat, lng})

		points = append(points, models.FixedPoint{
			ID:        uuid.New(),
			Name:      name,
			Type:      kind,
			Latitude:  lat,
			Longitude: lng,
			Address:   address(el.Tags),
			Phone:     el.Tags["phone"],
			Hours:     el.Tags["opening_hours"],
		})
	}
	return points
}

func pointKind(tags map[string]string) string {
	if kind, ok := pointKinds[tags["amenity"]]; ok {
		return kind
	}
	if kind, ok := pointKinds[tags["shop"]]; ok {
		return kind
	}
	return ""
}

func tooClose(existing [][2]float64, lat, lng, minSpacing float64) bool {
	for _, loc := range existing {
		if geo.Distance(lat, lng, loc[0], loc[1]) < minSpacing {
			return true
		}
	}
	return false
}

func address(tags map[string]string) string {
	street := tags["addr:street"]
	number := tags["addr:housenumber"]
	if street == "" {
		return ""
	}
	if number == "" {
		return street
	}
	return street + " " + number
}
