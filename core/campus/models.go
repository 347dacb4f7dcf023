package campus

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	ID           int               `json:"id"`
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Coordinates  Coordinates       `json:"coordinates"`
	Description  string            `json:"description"`
	Facilities   []string          `json:"facilities,omitempty"`
	Services     []string          `json:"services,omitempty"`
	OpeningHours map[string]string `json:"opening_hours,omitempty"`
	Contact      string            `json:"contact,omitempty"`
}

// Bounds is the bounding box enclosing all locations, padded for map display.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Map is the full campus map payload.
type Map struct {
	Locations []Location  `json:"locations"`
	Center    Coordinates `json:"center"`
	Bounds    Bounds      `json:"bounds"`
}

type QueryFilter struct {
	Type string `query:"type"`
}
