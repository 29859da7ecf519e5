package importer

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vialtech/rutalerta/config"
	"github.com/vialtech/rutalerta/models"
)

type fakeFixedPointRepo struct {
	inserted  []models.FixedPoint
	truncated bool
}

func (f *fakeFixedPointRepo) GetAllFixedPoints() ([]models.FixedPoint, error) { return nil, nil }
func (f *fakeFixedPointRepo) CreateFixedPoint(*models.FixedPoint) error       { return nil }
func (f *fakeFixedPointRepo) BulkInsert(points []models.FixedPoint) error {
	f.inserted = points
	return nil
}
func (f *fakeFixedPointRepo) GetLocations() ([][2]float64, error) { return nil, nil }
func (f *fakeFixedPointRepo) Truncate() error {
	f.truncated = true
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

const overpassPayload = `{
	"elements": [
		{"type": "node", "id": 1, "lat": -32.9000, "lon": -68.8000,
		 "tags": {"amenity": "hospital", "name": "Hospital Central", "phone": "+54 261 420 0600"}},
		{"type": "node", "id": 2, "lat": -32.9001, "lon": -68.8001,
		 "tags": {"amenity": "hospital", "name": "Hospital Duplicado"}},
		{"type": "node", "id": 3, "lat": -32.9500, "lon": -68.8500,
		 "tags": {"amenity": "police", "name": "Comisaria 1", "addr:street": "San Martin", "addr:housenumber": "100"}},
		{"type": "node", "id": 4, "lat": -32.9600, "lon": -68.8600,
		 "tags": {"amenity": "fuel"}},
		{"type": "way", "id": 5, "center": {"lat": -33.0000, "lon": -68.9000},
		 "tags": {"shop": "car_repair", "name": "Taller Gomez"}}
	]
}`

func newTestImporter(url string, repo *fakeFixedPointRepo) *Importer {
	conf := &config.Config{
		OverpassURL:       url,
		ImportCenterLat:   -32.9750,
		ImportCenterLng:   -68.7830,
		ImportRadiusM:     60000,
		ImportMinSpacingM: 300,
	}
	imp := New(repo, conf, quietLogger())
	imp.backoff = time.Millisecond
	return imp
}

func TestRunFiltersAndReloads(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("user agent = %q", ua)
		}
		w.Write([]byte(overpassPayload))
	}))
	defer ts.Close()

	repo := &fakeFixedPointRepo{}
	imp := newTestImporter(ts.URL, repo)

	if err := imp.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.truncated {
		t.Error("table should be reloaded from scratch")
	}

	// Element 2 is within 300m of element 1 (same type) and is dropped;
	// element 4 has no name and is dropped.
	if len(repo.inserted) != 3 {
		t.Fatalf("inserted = %d points, want 3", len(repo.inserted))
	}

	byName := map[string]models.FixedPoint{}
	for _, p := range repo.inserted {
		byName[p.Name] = p
	}
	if _, ok := byName["Hospital Duplicado"]; ok {
		t.Error("duplicate hospital inside min spacing should be dropped")
	}
	if p, ok := byName["Comisaria 1"]; !ok {
		t.Error("police station missing")
	} else if p.Address != "San Martin 100" {
		t.Errorf("address = %q", p.Address)
	}
	if p, ok := byName["Taller Gomez"]; !ok {
		t.Error("way with center coords missing")
	} else if p.Type != "workshop" {
		t.Errorf("type = %q, want workshop", p.Type)
	}
}

func TestFetchRetriesThenFails(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	repo := &fakeFixedPointRepo{}
	imp := newTestImporter(ts.URL, repo)

	if err := imp.Run(); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != maxAttempts {
		t.Errorf("attempts = %d, want %d", attempts, maxAttempts)
	}
	if repo.truncated {
		t.Error("a failed fetch must not touch existing data")
	}
}

func TestFetchRecoversAfterTransientError(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"elements": []}`))
	}))
	defer ts.Close()

	imp := newTestImporter(ts.URL, &fakeFixedPointRepo{})
	if err := imp.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}
