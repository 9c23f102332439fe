package models

import "strings"

// Station is a transit stop with a stable global identifier
type Station struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Place    string   `json:"place,omitempty"`
	Products []string `json:"products,omitempty"`
}

// DisplayName returns the station name, qualified by its place when the
// place is not already part of the name.
func (s Station) DisplayName() string {
	if s.Place == "" || strings.Contains(s.Name, s.Place) {
		return s.Name
	}
	return s.Name + ", " + s.Place
}

// StationResponse represents one entry of the full station list
type StationResponse struct {
	Name         string   `json:"name"`
	Place        string   `json:"place"`
	ID           string   `json:"id"`
	DivaID       int      `json:"divaId"`
	Abbreviation string   `json:"abbreviation"`
	TariffZones  string   `json:"tariffZones"`
	Products     []string `json:"products"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
}

// ToStation converts the raw response to a Station
func (r *StationResponse) ToStation() *Station {
	return &Station{
		ID:       r.ID,
		Name:     strings.TrimSpace(r.Name),
		Place:    strings.TrimSpace(r.Place),
		Products: r.Products,
	}
}

// LocationResponse represents one result of a location search
type LocationResponse struct {
	Type           string   `json:"type"`
	GlobalID       string   `json:"globalId"`
	Name           string   `json:"name"`
	Place          string   `json:"place"`
	DivaID         int      `json:"divaId"`
	TransportTypes []string `json:"transportTypes"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
}

// IsStation reports whether the search result is a station (as opposed to
// an address or point of interest).
func (r *LocationResponse) IsStation() bool {
	return r.Type == "STATION" && r.GlobalID != ""
}

// ToStation converts the search result to a Station
func (r *LocationResponse) ToStation() *Station {
	return &Station{
		ID:       r.GlobalID,
		Name:     strings.TrimSpace(r.Name),
		Place:    strings.TrimSpace(r.Place),
		Products: r.TransportTypes,
	}
}
