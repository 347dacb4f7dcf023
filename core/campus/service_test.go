package campus

import (
	"context"
	"math"
	"testing"
)

type fakeRepository struct {
	locations []Location
}

func (repo *fakeRepository) QueryLocations(ctx context.Context, filter *QueryFilter) ([]Location, error) {
	if filter == nil || filter.Type == "" {
		return repo.locations, nil
	}
	var matched []Location
	for _, loc := range repo.locations {
		if loc.Type == filter.Type {
			matched = append(matched, loc)
		}
	}
	return matched, nil
}

func TestService_Map(t *testing.T) {
	locations := []Location{
		{ID: 1, Name: "Main Library", Type: "academic", Coordinates: Coordinates{Lat: 7.3780, Lng: 3.9465}},
		{ID: 2, Name: "Health Center", Type: "health", Coordinates: Coordinates{Lat: 7.3765, Lng: 3.9455}},
		{ID: 3, Name: "Sports Complex", Type: "recreation", Coordinates: Coordinates{Lat: 7.3760, Lng: 3.9470}},
	}
	svc := NewService(&fakeRepository{locations: locations})

	m, err := svc.Map(context.Background())
	if err != nil {
		t.Fatalf("Map() unexpected error = %v", err)
	}
	if len(m.Locations) != len(locations) {
		t.Errorf("len(Locations) = %d, want %d", len(m.Locations), len(locations))
	}

	approxEqual := func(got, want float64) bool { return math.Abs(got-want) < 1e-9 }
	if wantLat := (7.3780 + 7.3765 + 7.3760) / 3; !approxEqual(m.Center.Lat, wantLat) {
		t.Errorf("Center.Lat = %v, want %v", m.Center.Lat, wantLat)
	}
	if wantLng := (3.9465 + 3.9455 + 3.9470) / 3; !approxEqual(m.Center.Lng, wantLng) {
		t.Errorf("Center.Lng = %v, want %v", m.Center.Lng, wantLng)
	}

	wantBounds := Bounds{
		North: 7.3780 + boundsPadding,
		South: 7.3760 - boundsPadding,
		East:  3.9470 + boundsPadding,
		West:  3.9455 - boundsPadding,
	}
	if m.Bounds != wantBounds {
		t.Errorf("Bounds = %+v, want %+v", m.Bounds, wantBounds)
	}
}

func TestService_Map_noLocations(t *testing.T) {
	svc := NewService(&fakeRepository{})

	m, err := svc.Map(context.Background())
	if err != nil {
		t.Fatalf("Map() unexpected error = %v", err)
	}
	if len(m.Locations) != 0 {
		t.Errorf("len(Locations) = %d, want 0", len(m.Locations))
	}
	if m.Center != (Coordinates{}) || m.Bounds != (Bounds{}) {
		t.Errorf("Center/Bounds not zero for empty campus: %+v %+v", m.Center, m.Bounds)
	}
}

func TestService_Query(t *testing.T) {
	locations := []Location{
		{ID: 1, Name: "Main Library", Type: "academic"},
		{ID: 2, Name: "Science Building", Type: "academic"},
		{ID: 3, Name: "Health Center", Type: "health"},
	}
	svc := NewService(&fakeRepository{locations: locations})
	ctx := context.Background()

	tests := []struct {
		name   string
		filter *QueryFilter
		want   int
	}{
		{name: "all", want: 3},
		{name: "by type", filter: &QueryFilter{Type: "academic"}, want: 2},
		{name: "unknown type", filter: &QueryFilter{Type: "hostel"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locs, err := svc.Query(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Query() unexpected error = %v", err)
			}
			if len(locs) != tt.want {
				t.Errorf("len(locs) = %d, want %d", len(locs), tt.want)
			}
		})
	}
}
