// Package nvdb talks to the Norwegian national road database read API
// (NVDB Les API v4): the segmented road network endpoint and the road
// object endpoints for the restriction datasets.
package nvdb

// Object type ids for the datasets the pipeline needs.
const (
	ObjectTypeBridge         = 60
	ObjectTypeBruksklasse    = 900
	ObjectTypeBruksklasseVtr = 904
	ObjectTypeHeight         = 591
)

// Property type ids picked out of the returned egenskaper lists.
const (
	PropBruksklasse       = 10901
	PropMaxLength         = 10903
	PropVegliste          = 10905
	PropBridgeName        = 1082
	PropBridgeLoad        = 10911
	PropBridgeCategory    = 1263
	PropHeightComputed    = 10247
	PropHeightSigned      = 5277
	PropBruksklasseVinter = 10951
)

// Property is one egenskap on a road object. Verdi comes back as string,
// number or bool depending on the property type, so it stays raw here and
// is interpreted by the parse helpers.
type Property struct {
	ID    int    `json:"id"`
	Navn  string `json:"navn"`
	Verdi any    `json:"verdi"`
}

// Placement is one stedfesting: the object's interval on a road-link
// sequence.
type Placement struct {
	VeglenkesekvensID int64   `json:"veglenkesekvensid"`
	StartPosisjon     float64 `json:"startposisjon"`
	SluttPosisjon     float64 `json:"sluttposisjon"`
	Retning           string  `json:"retning"`
}

// Location is the lokasjon block of a road object.
type Location struct {
	Kommuner      []int       `json:"kommuner"`
	Stedfestinger []Placement `json:"stedfestinger"`
	Geometri      *Geometry   `json:"geometri"`
}

// Geometry carries WKT plus its spatial reference id.
type Geometry struct {
	WKT  string `json:"wkt"`
	SRID int    `json:"srid"`
}

// RoadObject is one vegobjekt from the object endpoints.
type RoadObject struct {
	ID         int64      `json:"id"`
	Egenskaper []Property `json:"egenskaper"`
	Lokasjon   *Location  `json:"lokasjon"`
}

// NextPage is the metadata.neste block of a paginated response. Start is
// the token for the next page; Href is a full URL carrying the same token.
type NextPage struct {
	Start string `json:"start"`
	Href  string `json:"href"`
}

// PageMetadata describes one page of a paginated response.
type PageMetadata struct {
	Antall    int       `json:"antall"`
	Returnert int       `json:"returnert"`
	Neste     *NextPage `json:"neste"`
}

// ObjectPage is one page from a vegobjekter endpoint.
type ObjectPage struct {
	Objekter []RoadObject `json:"objekter"`
	Metadata PageMetadata `json:"metadata"`
}

// RoadSystemRef is the vegsystemreferanse block of a network segment.
type RoadSystemRef struct {
	Vegsystem struct {
		Vegkategori string `json:"vegkategori"`
		Fase        string `json:"fase"`
		Nummer      int    `json:"nummer"`
	} `json:"vegsystem"`
	Kortform string `json:"kortform"`
}

// TrafficGroupVehicles marks segments carrying motorized traffic; the
// other value, "G", is the walking and cycling network.
const TrafficGroupVehicles = "K"

// NetworkSegment is one segment from the segmented road network endpoint.
type NetworkSegment struct {
	VeglenkesekvensID  int64          `json:"veglenkesekvensid"`
	StartPosisjon      float64        `json:"startposisjon"`
	SluttPosisjon      float64        `json:"sluttposisjon"`
	Kommune            int            `json:"kommune"`
	Trafikantgruppe    string         `json:"trafikantgruppe"`
	Vegsystemreferanse *RoadSystemRef `json:"vegsystemreferanse"`
	Geometri           *Geometry      `json:"geometri"`
}

// NetworkPage is one page from the segmented road network endpoint.
type NetworkPage struct {
	Objekter []NetworkSegment `json:"objekter"`
	Metadata PageMetadata     `json:"metadata"`
}
