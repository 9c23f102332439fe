package models

import (
	"strconv"
	"strings"
	"time"
)

// Departure represents a single scheduled departure at a station
type Departure struct {
	Line          string     `json:"line"`
	Destination   string     `json:"destination"`
	TransportType string     `json:"transportType"`
	Planned       *time.Time `json:"planned,omitempty"`
	Realtime      *time.Time `json:"realtime,omitempty"`
	Delay         int        `json:"delay"`
	Platform      string     `json:"platform,omitempty"`
	IsCancelled   bool       `json:"isCancelled"`
	Messages      []string   `json:"messages,omitempty"`
}

// DepartureResponse represents the raw JSON for a single departure entry
type DepartureResponse struct {
	PlannedDepartureTime  int64  `json:"plannedDepartureTime"`
	Realtime              bool   `json:"realtime"`
	DelayInMinutes        int    `json:"delayInMinutes"`
	RealtimeDepartureTime int64  `json:"realtimeDepartureTime"`
	TransportType         string `json:"transportType"`
	Label                 string `json:"label"`
	Destination           string `json:"destination"`
	Cancelled             bool   `json:"cancelled"`
	Platform              *int   `json:"platform"`
	StopPointGlobalID     string `json:"stopPointGlobalId"`
	Messages              []struct {
		Text string `json:"text"`
	} `json:"messages"`
}

// ToDeparture converts the raw response to a Departure
func (r *DepartureResponse) ToDeparture(loc *time.Location) *Departure {
	dep := &Departure{
		Line:          strings.TrimSpace(r.Label),
		Destination:   strings.TrimSpace(r.Destination),
		TransportType: r.TransportType,
		IsCancelled:   r.Cancelled,
	}

	if r.PlannedDepartureTime > 0 {
		t := time.UnixMilli(r.PlannedDepartureTime).In(loc)
		dep.Planned = &t
	}
	if r.Realtime && r.RealtimeDepartureTime > 0 {
		t := time.UnixMilli(r.RealtimeDepartureTime).In(loc)
		dep.Realtime = &t
	}

	if dep.Planned != nil && dep.Realtime != nil {
		dep.Delay = int(dep.Realtime.Sub(*dep.Planned).Minutes())
	} else {
		dep.Delay = r.DelayInMinutes
	}

	if r.Platform != nil {
		dep.Platform = strconv.Itoa(*r.Platform)
	}

	for _, msg := range r.Messages {
		if text := strings.TrimSpace(msg.Text); text != "" {
			dep.Messages = append(dep.Messages, text)
		}
	}

	return dep
}

// When returns the realtime departure time if known, otherwise the planned one
func (d *Departure) When() *time.Time {
	if d.Realtime != nil {
		return d.Realtime
	}
	return d.Planned
}

// MinutesUntil returns the whole minutes from now until departure, or -1
// when the departure has no time.
func (d *Departure) MinutesUntil(now time.Time) int {
	when := d.When()
	if when == nil {
		return -1
	}
	minutes := int(when.Sub(now).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// HeadsTowards reports whether the destination matches one of the given
// directions (case-insensitive substring match).
func (d *Departure) HeadsTowards(directions []string) bool {
	dest := strings.ToLower(d.Destination)
	for _, dir := range directions {
		dir = strings.ToLower(strings.TrimSpace(dir))
		if dir != "" && strings.Contains(dest, dir) {
			return true
		}
	}
	return false
}
