package api

const (
	// BaseURL is the base URL for the MVG API
	BaseURL = "https://www.mvg.de"

	// EndpointStations returns the full station list
	EndpointStations = "/.rest/zdm/stations"

	// EndpointDepartures returns departures at a station
	// Required params: globalId; optional: limit, offsetInMinutes, transportTypes
	EndpointDepartures = "/api/bgw-pt/v3/departures"

	// EndpointLocations searches stations, addresses and points of interest
	// Required params: query; optional: locationTypes
	EndpointLocations = "/api/bgw-pt/v3/locations"
)

// TransportTypes contains the transport type tags the API reports
var TransportTypes = []string{
	"UBAHN",
	"SBAHN",
	"TRAM",
	"BUS",
	"REGIONAL_BUS",
	"BAHN",
	"SCHIFF",
}
