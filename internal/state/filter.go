package state

import (
	"strings"

	"github.com/mobil-koeln/mvg-tui/internal/models"
)

// FilterDepartures keeps the departures whose transport type is in allow,
// preserving order. A nil allow-list means no filter is configured and deps
// is returned as is.
func FilterDepartures(deps []models.Departure, allow []string) []models.Departure {
	if allow == nil {
		return deps
	}

	filtered := make([]models.Departure, 0, len(deps))
	for _, d := range deps {
		if containsFold(allow, d.TransportType) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), s) {
			return true
		}
	}
	return false
}
