package report

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"

	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/infrastructure/geometry"
	"github.com/mrfylke/vegprofil/internal/database"
)

// gpkgApplicationID is "GPKG", the SQLite application_id that marks a file
// as a GeoPackage.
const gpkgApplicationID = 0x47504B47

// gpkgUserVersion encodes GeoPackage spec version 1.3.0.
const gpkgUserVersion = 10300

// WriteBottlenecksGPKG writes bottlenecks as a GeoPackage with a line layer
// named "flaskehalser", plus a "korridorer" layer with the dissolved
// corridor geometries when corridors are given. The file is a plain SQLite
// database with the GeoPackage metadata tables, readable by QGIS and the
// authority's GIS tooling.
func WriteBottlenecksGPKG(ctx context.Context, path string, srid int, bottlenecks []roadnet.Bottleneck, corridors []roadnet.Corridor) error {
	db, err := database.NewDatabase(ctx, "sqlite:///"+path)
	if err != nil {
		return fmt.Errorf("create geopackage: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := initGeoPackage(ctx, db, srid); err != nil {
		return err
	}

	const layer = "flaskehalser"
	ddl := fmt.Sprintf(`CREATE TABLE %s (
		fid INTEGER PRIMARY KEY AUTOINCREMENT,
		geom BLOB,
		veglenkesekv_id INTEGER,
		startpos REAL,
		sluttpos REAL,
		kommune INTEGER,
		vegnummer INTEGER,
		begrensning_type TEXT,
		beskrivelse TEXT,
		arsak TEXT,
		tillatt_tonn REAL,
		maks_lengde REAL,
		min_hoyde REAL,
		dim_kilde TEXT
	)`, layer)
	if err := db.Session(ctx).Exec(ddl).Error; err != nil {
		return fmt.Errorf("create layer table: %w", err)
	}

	if err := registerLayer(ctx, db, layer, "LINESTRING", srid); err != nil {
		return err
	}

	insert := fmt.Sprintf(`INSERT INTO %s
		(geom, veglenkesekv_id, startpos, sluttpos, kommune, vegnummer,
		 begrensning_type, beskrivelse, arsak, tillatt_tonn, maks_lengde, min_hoyde, dim_kilde)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, layer)

	for _, b := range bottlenecks {
		var blob []byte
		if line, err := geometry.ParseLine(b.WKT()); err == nil {
			blob, err = encodeGPKGGeometry(line, srid)
			if err != nil {
				return fmt.Errorf("encode geometry: %w", err)
			}
		}

		err := db.Session(ctx).Exec(insert,
			blob, b.LinkID(), b.Position().Start(), b.Position().End(),
			b.Municipality(), b.RoadNumber(),
			b.LimitationType(), b.Description(), b.Cause(),
			nullable(b.Tonnage()), nullable(b.MaxLength()), nullable(b.MinHeight()),
			b.DimSource(),
		).Error
		if err != nil {
			return fmt.Errorf("insert feature: %w", err)
		}
	}

	if len(corridors) == 0 {
		return nil
	}
	return writeCorridorLayer(ctx, db, srid, corridors)
}

// writeCorridorLayer adds the dissolved corridor geometries as a second
// layer. Corridors with a geometry gap dissolve into a MULTILINESTRING, so
// the layer is registered with the generic GEOMETRY type.
func writeCorridorLayer(ctx context.Context, db database.Database, srid int, corridors []roadnet.Corridor) error {
	const layer = "korridorer"
	ddl := fmt.Sprintf(`CREATE TABLE %s (
		fid INTEGER PRIMARY KEY AUTOINCREMENT,
		geom BLOB,
		veglenkesekv_id INTEGER,
		kommune INTEGER,
		vegnummer INTEGER,
		tillatt_tonn REAL,
		maks_lengde REAL,
		min_hoyde REAL,
		dim_kilde TEXT,
		antall_segmenter INTEGER
	)`, layer)
	if err := db.Session(ctx).Exec(ddl).Error; err != nil {
		return fmt.Errorf("create layer table: %w", err)
	}

	if err := registerLayer(ctx, db, layer, "GEOMETRY", srid); err != nil {
		return err
	}

	insert := fmt.Sprintf(`INSERT INTO %s
		(geom, veglenkesekv_id, kommune, vegnummer,
		 tillatt_tonn, maks_lengde, min_hoyde, dim_kilde, antall_segmenter)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, layer)

	for _, c := range corridors {
		var blob []byte
		if g, err := geometry.Parse(c.WKT()); err == nil {
			blob, err = encodeGPKGGeometry(g, srid)
			if err != nil {
				return fmt.Errorf("encode geometry: %w", err)
			}
		}

		err := db.Session(ctx).Exec(insert,
			blob, c.LinkID(), c.Municipality(), c.RoadNumber(),
			nullable(c.Tonnage()), nullable(c.MaxLength()), nullable(c.MinHeight()),
			c.DimSource(), c.Segments(),
		).Error
		if err != nil {
			return fmt.Errorf("insert feature: %w", err)
		}
	}
	return nil
}

// initGeoPackage writes the mandatory GeoPackage metadata: the application
// id pragmas, the spatial reference table with its required default rows,
// and the contents/geometry-columns registries.
func initGeoPackage(ctx context.Context, db database.Database, srid int) error {
	session := db.Session(ctx)

	pragmas := []string{
		fmt.Sprintf("PRAGMA application_id = %d", gpkgApplicationID),
		fmt.Sprintf("PRAGMA user_version = %d", gpkgUserVersion),
	}
	for _, p := range pragmas {
		if err := session.Exec(p).Error; err != nil {
			return fmt.Errorf("set pragma: %w", err)
		}
	}

	ddl := []string{
		`CREATE TABLE gpkg_spatial_ref_sys (
			srs_name TEXT NOT NULL,
			srs_id INTEGER PRIMARY KEY,
			organization TEXT NOT NULL,
			organization_coordsys_id INTEGER NOT NULL,
			definition TEXT NOT NULL,
			description TEXT
		)`,
		`CREATE TABLE gpkg_contents (
			table_name TEXT PRIMARY KEY,
			data_type TEXT NOT NULL,
			identifier TEXT UNIQUE,
			description TEXT DEFAULT '',
			last_change DATETIME DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
			min_x DOUBLE, min_y DOUBLE, max_x DOUBLE, max_y DOUBLE,
			srs_id INTEGER,
			CONSTRAINT fk_gc_r_srs_id FOREIGN KEY (srs_id) REFERENCES gpkg_spatial_ref_sys(srs_id)
		)`,
		`CREATE TABLE gpkg_geometry_columns (
			table_name TEXT NOT NULL,
			column_name TEXT NOT NULL,
			geometry_type_name TEXT NOT NULL,
			srs_id INTEGER NOT NULL,
			z TINYINT NOT NULL,
			m TINYINT NOT NULL,
			CONSTRAINT pk_geom_cols PRIMARY KEY (table_name, column_name)
		)`,
	}
	for _, stmt := range ddl {
		if err := session.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create metadata table: %w", err)
		}
	}

	srs := `INSERT INTO gpkg_spatial_ref_sys (srs_name, srs_id, organization, organization_coordsys_id, definition) VALUES (?, ?, ?, ?, ?)`
	rows := []struct {
		name  string
		id    int
		org   string
		orgID int
		def   string
	}{
		{"Undefined cartesian SRS", -1, "NONE", -1, "undefined"},
		{"Undefined geographic SRS", 0, "NONE", 0, "undefined"},
		{"WGS 84", 4326, "EPSG", 4326, "GEOGCS[\"WGS 84\",DATUM[\"WGS_1984\",SPHEROID[\"WGS 84\",6378137,298.257223563]]]"},
		{fmt.Sprintf("EPSG:%d", srid), srid, "EPSG", srid, fmt.Sprintf("PROJCS[\"EPSG:%d\"]", srid)},
	}
	for _, r := range rows {
		if err := session.Exec(srs, r.name, r.id, r.org, r.orgID, r.def).Error; err != nil {
			return fmt.Errorf("insert srs row: %w", err)
		}
	}

	return nil
}

// registerLayer adds a feature table to the contents and geometry-column
// registries.
func registerLayer(ctx context.Context, db database.Database, name, geomType string, srid int) error {
	session := db.Session(ctx)

	err := session.Exec(
		`INSERT INTO gpkg_contents (table_name, data_type, identifier, srs_id) VALUES (?, 'features', ?, ?)`,
		name, name, srid,
	).Error
	if err != nil {
		return fmt.Errorf("register contents: %w", err)
	}

	err = session.Exec(
		`INSERT INTO gpkg_geometry_columns (table_name, column_name, geometry_type_name, srs_id, z, m) VALUES (?, 'geom', ?, ?, 0, 0)`,
		name, geomType, srid,
	).Error
	if err != nil {
		return fmt.Errorf("register geometry column: %w", err)
	}
	return nil
}

// encodeGPKGGeometry wraps little-endian WKB in the GeoPackage binary
// header: the "GP" magic, version 0, an envelope flag and the srs id,
// followed by the coordinate envelope.
func encodeGPKGGeometry(g orb.Geometry, srid int) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('G')
	buf.WriteByte('P')
	buf.WriteByte(0)
	// Flags: little-endian byte order with a [minx,maxx,miny,maxy] envelope.
	buf.WriteByte(0b0000_0011)

	if err := binary.Write(&buf, binary.LittleEndian, int32(srid)); err != nil {
		return nil, err
	}

	bound := g.Bound()
	for _, v := range []float64{bound.Min[0], bound.Max[0], bound.Min[1], bound.Max[1]} {
		if err := binary.Write(&buf, binary.LittleEndian, math.Float64bits(v)); err != nil {
			return nil, err
		}
	}

	data, err := wkb.Marshal(g, wkb.DefaultByteOrder)
	if err != nil {
		return nil, err
	}
	buf.Write(data)

	return buf.Bytes(), nil
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
