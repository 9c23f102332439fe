package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mobil-koeln/mvg-tui/internal/models"
)

// TableOptions configures the departure table
type TableOptions struct {
	Colors *Colors
	// Now is the reference time for the countdown column
	Now time.Time
	// Width is the terminal width; zero means DefaultWidth
	Width int
	// FavDirections highlights departures heading to these destinations
	FavDirections []string
	ShowMessages  bool
}

const (
	lineWidth    = 5
	minDestWidth = 12
	// time(5) countdown(7) delay(4) line platform(6) and separators
	fixedColumns = 5 + 1 + 7 + 1 + 4 + 2 + lineWidth + 2 + 6 + 2 + 2
)

func (o TableOptions) colors() *Colors {
	if o.Colors == nil {
		return NewColors(ColorNever)
	}
	return o.Colors
}

// FormatCountdown returns "now", "N min" or "" when the departure has no time
func FormatCountdown(dep *models.Departure, now time.Time) string {
	minutes := dep.MinutesUntil(now)
	switch {
	case minutes < 0:
		return ""
	case minutes == 0:
		return "now"
	default:
		return fmt.Sprintf("%d min", minutes)
	}
}

// RenderDepartures renders departures as a formatted table
func RenderDepartures(w io.Writer, departures []models.Departure, opts TableOptions) {
	if len(departures) == 0 {
		_, _ = fmt.Fprintln(w, "No departures found.")
		return
	}

	c := opts.colors()
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	destWidth := width - fixedColumns
	if destWidth < minDestWidth {
		destWidth = minDestWidth
	}

	for i := range departures {
		dep := &departures[i]

		timeStr := "??:??"
		if when := dep.When(); when != nil {
			timeStr = when.Format("15:04")
		}
		countdown := fmt.Sprintf("%7s", FormatCountdown(dep, now))

		line := Pad(Truncate(dep.Line, lineWidth), lineWidth)

		platformStr := "      "
		if dep.Platform != "" {
			platformStr = fmt.Sprintf("Pl.%-3s", Truncate(dep.Platform, 3))
		}

		marker := " "
		dest := Pad(Truncate(dep.Destination, destWidth), destWidth)
		switch {
		case dep.IsCancelled:
			dest = c.Canceled("%s", Pad(Truncate(dep.Destination+" [CANCELED]", destWidth), destWidth))
		case dep.HeadsTowards(opts.FavDirections):
			marker = c.Favorite("*")
			dest = c.Favorite("%s", dest)
		default:
			dest = c.Dest("%s", dest)
		}

		// TIME COUNTDOWN DELAY  LINE  DEST  PLATFORM
		_, _ = fmt.Fprintf(w, "%s%s %s %s  %s  %s  %s\n",
			marker,
			c.Time(timeStr),
			c.Countdown("%s", countdown),
			c.FormatDelay(dep.Delay),
			c.Line(dep.TransportType, "%s", line),
			dest,
			c.Platform("%s", platformStr),
		)

		if opts.ShowMessages {
			for _, msg := range dep.Messages {
				_, _ = fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", 22), c.Message("%s", Truncate(msg, width-22)))
			}
		}
	}
}

// StationListOptions configures the station list
type StationListOptions struct {
	Colors *Colors
	// Filter keeps stations whose name contains it, ignoring case
	Filter string
	// FavStationIdx marks the configured favorite
	FavStationIdx *int
}

// RenderStations prints the station list with the indices accepted by the
// fav_station_idx setting. Filtering never renumbers stations.
func RenderStations(w io.Writer, stations []models.Station, opts StationListOptions) int {
	c := opts.Colors
	if c == nil {
		c = NewColors(ColorNever)
	}

	filter := strings.ToLower(strings.TrimSpace(opts.Filter))
	idxWidth := len(fmt.Sprint(len(stations)))
	shown := 0

	for i, st := range stations {
		name := st.DisplayName()
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		shown++

		marker := " "
		if opts.FavStationIdx != nil && *opts.FavStationIdx == i {
			marker = c.Favorite("*")
			name = c.Favorite("%s", name)
		}

		_, _ = fmt.Fprintf(w, "%s%s %s %s\n",
			marker,
			c.Index("%*d", idxWidth, i),
			name,
			c.Muted("%s", st.ID),
		)
	}

	if shown == 0 {
		_, _ = fmt.Fprintln(w, "No stations found.")
	}
	return shown
}

// RenderSearchResults renders station search results
func RenderSearchResults(w io.Writer, stations []models.Station, c *Colors) {
	if len(stations) == 0 {
		_, _ = fmt.Fprintln(w, "No stations found.")
		return
	}
	if c == nil {
		c = NewColors(ColorNever)
	}

	_, _ = fmt.Fprintln(w, c.Header("Found stations:"))
	_, _ = fmt.Fprintln(w)

	for _, st := range stations {
		_, _ = fmt.Fprintf(w, "  %s\n", c.Header("%s", st.DisplayName()))
		if len(st.Products) > 0 {
			_, _ = fmt.Fprintf(w, "    %s %s\n", c.Muted("Lines:"), strings.Join(st.Products, ", "))
		}
		_, _ = fmt.Fprintf(w, "    %s mvg departures %s\n", c.Muted("Use:"), st.ID)
		_, _ = fmt.Fprintln(w)
	}
}
