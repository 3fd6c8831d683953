package persistence

// Column names follow the Norwegian dataset vocabulary so the exported
// tables read like the authority's own registers.

// SegmentModel is a road network segment in the database.
type SegmentModel struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	VeglenkesekvID int64   `gorm:"column:veglenkesekv_id;index"`
	StartPos       float64 `gorm:"column:startpos"`
	SluttPos       float64 `gorm:"column:sluttpos"`
	Vegkategori    string  `gorm:"column:vegkategori;size:8"`
	Vegnummer      int     `gorm:"column:vegnummer;index"`
	Kommune        int     `gorm:"column:kommune;index"`
	GeometriWKT    string  `gorm:"column:geometri_wkt;type:text"`
}

// TableName returns the table name.
func (SegmentModel) TableName() string {
	return "vegnett_segmenter"
}

// WeightModel is a Bruksklasse (road-rule weight class) record.
type WeightModel struct {
	ID             int64    `gorm:"primaryKey;autoIncrement"`
	VeglenkesekvID int64    `gorm:"column:veglenkesekv_id;index"`
	StartPos       float64  `gorm:"column:startpos"`
	SluttPos       float64  `gorm:"column:sluttpos"`
	BKVerdi        *float64 `gorm:"column:bk_verdi"`
	BKTekst        string   `gorm:"column:bk_tekst;size:255"`
	MaksLengde     *float64 `gorm:"column:maks_lengde"`
	Spesiell       bool     `gorm:"column:spesiell;default:false"`
	GeometriWKT    string   `gorm:"column:geometri_wkt;type:text"`
}

// TableName returns the table name.
func (WeightModel) TableName() string {
	return "bruksklasser"
}

// BridgeModel is a bridge with its permitted load.
type BridgeModel struct {
	ID             int64    `gorm:"primaryKey;autoIncrement"`
	NVDBID         int64    `gorm:"column:nvdb_id;index"`
	VeglenkesekvID int64    `gorm:"column:veglenkesekv_id;index"`
	StartPos       float64  `gorm:"column:startpos"`
	SluttPos       float64  `gorm:"column:sluttpos"`
	Navn           string   `gorm:"column:navn;size:255"`
	BrukslastTekst string   `gorm:"column:brukslast_tekst;size:255"`
	TillattTonn    *float64 `gorm:"column:tillatt_tonn"`
	GeometriWKT    string   `gorm:"column:geometri_wkt;type:text"`
}

// TableName returns the table name.
func (BridgeModel) TableName() string {
	return "bruer"
}

// HeightModel is a clearance restriction.
type HeightModel struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	VeglenkesekvID int64   `gorm:"column:veglenkesekv_id;index"`
	StartPos       float64 `gorm:"column:startpos"`
	SluttPos       float64 `gorm:"column:sluttpos"`
	Hoyde          float64 `gorm:"column:hoyde"`
	Kilde          string  `gorm:"column:kilde;size:32"`
	GeometriWKT    string  `gorm:"column:geometri_wkt;type:text"`
}

// TableName returns the table name.
func (HeightModel) TableName() string {
	return "hoydebegrensninger"
}

// ProfileModel is the derived allowed profile of one segment, including the
// corridor minima once propagation has run.
type ProfileModel struct {
	ID             int64    `gorm:"primaryKey;autoIncrement"`
	VeglenkesekvID int64    `gorm:"column:veglenkesekv_id;index"`
	StartPos       float64  `gorm:"column:startpos"`
	SluttPos       float64  `gorm:"column:sluttpos"`
	BKVerdi        *float64 `gorm:"column:bk_verdi"`
	BKTekst        string   `gorm:"column:bk_tekst;size:255"`
	MaksLengde     *float64 `gorm:"column:maks_lengde"`
	Spesiell       bool     `gorm:"column:spesiell;default:false"`
	MinBru         *float64 `gorm:"column:min_bru"`
	MinHoyde       *float64 `gorm:"column:min_hoyde"`
	TillattTonn    *float64 `gorm:"column:tillatt_tonn"`
	KorridorTonn   *float64 `gorm:"column:korridor_tonn"`
	KorridorLengde *float64 `gorm:"column:korridor_lengde"`
	KorridorHoyde  *float64 `gorm:"column:korridor_hoyde"`
	DimKilde       string   `gorm:"column:dim_kilde;size:16"`
	Propagert      bool     `gorm:"column:propagert;default:false"`
	GeometriWKT    string   `gorm:"column:geometri_wkt;type:text"`
}

// TableName returns the table name.
func (ProfileModel) TableName() string {
	return "tillatt_profil"
}

// BottleneckModel is a segment failing at least one vehicle requirement.
type BottleneckModel struct {
	ID              int64    `gorm:"primaryKey;autoIncrement"`
	VeglenkesekvID  int64    `gorm:"column:veglenkesekv_id;index"`
	StartPos        float64  `gorm:"column:startpos"`
	SluttPos        float64  `gorm:"column:sluttpos"`
	Kommune         int      `gorm:"column:kommune;index"`
	Vegnummer       int      `gorm:"column:vegnummer;index"`
	BegrensningType string   `gorm:"column:begrensning_type;size:64"`
	Beskrivelse     string   `gorm:"column:beskrivelse;size:255"`
	Arsak           string   `gorm:"column:arsak;size:32"`
	TillattTonn     *float64 `gorm:"column:tillatt_tonn"`
	MaksLengde      *float64 `gorm:"column:maks_lengde"`
	MinHoyde        *float64 `gorm:"column:min_hoyde"`
	DimKilde        string   `gorm:"column:dim_kilde;size:16"`
	GeometriWKT     string   `gorm:"column:geometri_wkt;type:text"`
}

// TableName returns the table name.
func (BottleneckModel) TableName() string {
	return "flaskehalser"
}

// CorridorModel is a road-link sequence with its corridor-wide minima and
// dissolved geometry.
type CorridorModel struct {
	ID              int64    `gorm:"primaryKey;autoIncrement"`
	VeglenkesekvID  int64    `gorm:"column:veglenkesekv_id;uniqueIndex"`
	Vegnummer       int      `gorm:"column:vegnummer;index"`
	Kommune         int      `gorm:"column:kommune;index"`
	TillattTonn     *float64 `gorm:"column:tillatt_tonn"`
	MaksLengde      *float64 `gorm:"column:maks_lengde"`
	MinHoyde        *float64 `gorm:"column:min_hoyde"`
	DimKilde        string   `gorm:"column:dim_kilde;size:16"`
	AntallSegmenter int      `gorm:"column:antall_segmenter"`
	GeometriWKT     string   `gorm:"column:geometri_wkt;type:text"`
}

// TableName returns the table name.
func (CorridorModel) TableName() string {
	return "korridorer"
}

// RutParcelModel is one fixed-length parcel with its aggregated rut depth.
type RutParcelModel struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	Vegnummer      int     `gorm:"column:vegnummer;index"`
	ParsellStart   float64 `gorm:"column:parsell_start"`
	ParsellSlutt   float64 `gorm:"column:parsell_slutt"`
	SporP90        float64 `gorm:"column:spor_p90"`
	AntallMalinger int     `gorm:"column:antall_malinger"`
}

// TableName returns the table name.
func (RutParcelModel) TableName() string {
	return "spordybde_parseller"
}
