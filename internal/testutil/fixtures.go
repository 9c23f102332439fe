package testutil

// Sample JSON responses for API testing

// SampleStationsResponse is a minimal valid station list response
const SampleStationsResponse = `[
	{
		"name": "Marienplatz",
		"place": "München",
		"id": "de:09162:2",
		"divaId": 2,
		"abbreviation": "MP",
		"tariffZones": "m",
		"products": ["UBAHN", "SBAHN", "BUS"],
		"latitude": 48.13725,
		"longitude": 11.57542
	},
	{
		"name": "Hauptbahnhof",
		"place": "München",
		"id": "de:09162:6",
		"divaId": 6,
		"abbreviation": "HBF",
		"tariffZones": "m",
		"products": ["UBAHN", "SBAHN", "TRAM", "BUS", "BAHN"],
		"latitude": 48.14003,
		"longitude": 11.56107
	},
	{
		"name": "Garching, Forschungszentrum",
		"place": "Garching (b München)",
		"id": "de:09184:460",
		"divaId": 1460,
		"abbreviation": "",
		"tariffZones": "1",
		"products": ["UBAHN", "BUS"],
		"latitude": 48.26498,
		"longitude": 11.67117
	}
]`

// SampleDeparturesResponse is a minimal valid departure list response.
// Times are 2024-01-01 14:30 and 14:35 Europe/Berlin.
const SampleDeparturesResponse = `[
	{
		"plannedDepartureTime": 1704115800000,
		"realtime": true,
		"delayInMinutes": 2,
		"realtimeDepartureTime": 1704115920000,
		"transportType": "UBAHN",
		"label": "U3",
		"destination": "Fürstenried West",
		"cancelled": false,
		"platform": 1,
		"stopPointGlobalId": "de:09162:2:52:52",
		"messages": []
	},
	{
		"plannedDepartureTime": 1704116100000,
		"realtime": false,
		"delayInMinutes": 0,
		"realtimeDepartureTime": 1704116100000,
		"transportType": "BUS",
		"label": "52",
		"destination": "Tierpark (Alemannenstr.)",
		"cancelled": true,
		"platform": null,
		"stopPointGlobalId": "de:09162:2:3:3",
		"messages": [{"text": "Umleitung wegen Bauarbeiten"}]
	}
]`

// SampleLocationResponse is a minimal valid location search response
const SampleLocationResponse = `[
	{
		"type": "STATION",
		"globalId": "de:09162:2",
		"divaId": 2,
		"name": "Marienplatz",
		"place": "München",
		"transportTypes": ["UBAHN", "SBAHN", "BUS"],
		"latitude": 48.13725,
		"longitude": 11.57542
	},
	{
		"type": "ADDRESS",
		"name": "Marienplatz 8",
		"place": "München",
		"latitude": 48.13712,
		"longitude": 11.57588
	},
	{
		"type": "STATION",
		"globalId": "de:09162:1110",
		"divaId": 1110,
		"name": "Marienstraße",
		"place": "München",
		"transportTypes": ["BUS"],
		"latitude": 48.13841,
		"longitude": 11.58164
	}
]`

// SampleErrorResponse is a typical error payload
const SampleErrorResponse = `{
	"error": "Not Found",
	"message": "Station not found"
}`

// SampleEmptyListResponse is an empty result list
const SampleEmptyListResponse = `[]`
