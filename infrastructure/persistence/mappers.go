package persistence

import (
	"github.com/mrfylke/vegprofil/domain/linearref"
	"github.com/mrfylke/vegprofil/domain/roadnet"
)

// SegmentMapper converts between RoadSegment and SegmentModel.
type SegmentMapper struct{}

// ToModel converts a domain segment to its database model.
func (SegmentMapper) ToModel(s roadnet.RoadSegment) SegmentModel {
	return SegmentModel{
		VeglenkesekvID: s.LinkID(),
		StartPos:       s.Position().Start(),
		SluttPos:       s.Position().End(),
		Vegkategori:    s.Category(),
		Vegnummer:      s.RoadNumber(),
		Kommune:        s.Municipality(),
		GeometriWKT:    s.WKT(),
	}
}

// ToDomain converts a database model to a domain segment.
func (SegmentMapper) ToDomain(m SegmentModel) roadnet.RoadSegment {
	return roadnet.NewRoadSegment(
		m.VeglenkesekvID,
		linearref.NewInterval(m.StartPos, m.SluttPos),
		m.Vegkategori,
		m.Vegnummer,
		m.Kommune,
		m.GeometriWKT,
	)
}

// WeightMapper converts between WeightRestriction and WeightModel.
type WeightMapper struct{}

// ToModel converts a domain weight restriction to its database model.
func (WeightMapper) ToModel(w roadnet.WeightRestriction) WeightModel {
	return WeightModel{
		VeglenkesekvID: w.LinkID(),
		StartPos:       w.Position().Start(),
		SluttPos:       w.Position().End(),
		BKVerdi:        w.Tonnage(),
		BKTekst:        w.Text(),
		MaksLengde:     w.MaxLength(),
		Spesiell:       w.Special(),
		GeometriWKT:    w.WKT(),
	}
}

// ToDomain converts a database model to a domain weight restriction.
func (WeightMapper) ToDomain(m WeightModel) roadnet.WeightRestriction {
	return roadnet.NewWeightRestriction(
		m.VeglenkesekvID,
		linearref.NewInterval(m.StartPos, m.SluttPos),
		m.BKVerdi,
		m.BKTekst,
		m.MaksLengde,
		m.Spesiell,
		m.GeometriWKT,
	)
}

// BridgeMapper converts between BridgeRestriction and BridgeModel.
type BridgeMapper struct{}

// ToModel converts a domain bridge to its database model.
func (BridgeMapper) ToModel(b roadnet.BridgeRestriction) BridgeModel {
	return BridgeModel{
		NVDBID:         b.NVDBID(),
		VeglenkesekvID: b.LinkID(),
		StartPos:       b.Position().Start(),
		SluttPos:       b.Position().End(),
		Navn:           b.Name(),
		BrukslastTekst: b.LoadText(),
		TillattTonn:    b.Tonnage(),
		GeometriWKT:    b.WKT(),
	}
}

// ToDomain converts a database model to a domain bridge.
func (BridgeMapper) ToDomain(m BridgeModel) roadnet.BridgeRestriction {
	return roadnet.NewBridgeRestriction(
		m.VeglenkesekvID,
		linearref.NewInterval(m.StartPos, m.SluttPos),
		m.TillattTonn,
		m.NVDBID,
		m.Navn,
		m.BrukslastTekst,
		m.GeometriWKT,
	)
}

// HeightMapper converts between HeightRestriction and HeightModel.
type HeightMapper struct{}

// ToModel converts a domain height restriction to its database model.
func (HeightMapper) ToModel(h roadnet.HeightRestriction) HeightModel {
	return HeightModel{
		VeglenkesekvID: h.LinkID(),
		StartPos:       h.Position().Start(),
		SluttPos:       h.Position().End(),
		Hoyde:          h.Height(),
		Kilde:          h.Source(),
		GeometriWKT:    h.WKT(),
	}
}

// ToDomain converts a database model to a domain height restriction.
func (HeightMapper) ToDomain(m HeightModel) roadnet.HeightRestriction {
	return roadnet.NewHeightRestriction(
		m.VeglenkesekvID,
		linearref.NewInterval(m.StartPos, m.SluttPos),
		m.Hoyde,
		m.Kilde,
		m.GeometriWKT,
	)
}

// ProfileMapper converts between SegmentProfile and ProfileModel.
type ProfileMapper struct{}

// ToModel converts a domain segment profile to its database model. The
// derived allowed tonnage is stored alongside its inputs so reports can
// read it without recomputing.
func (ProfileMapper) ToModel(p roadnet.SegmentProfile) ProfileModel {
	return ProfileModel{
		VeglenkesekvID: p.LinkID(),
		StartPos:       p.Position().Start(),
		SluttPos:       p.Position().End(),
		BKVerdi:        p.BKValue(),
		BKTekst:        p.BKText(),
		MaksLengde:     p.MaxLength(),
		Spesiell:       p.Special(),
		MinBru:         p.MinBridge(),
		MinHoyde:       p.MinHeight(),
		TillattTonn:    p.AllowedTonnage(),
		KorridorTonn:   p.PropTonnage(),
		KorridorLengde: p.PropLength(),
		KorridorHoyde:  p.PropHeight(),
		DimKilde:       p.DimSource(),
		Propagert:      p.Propagated(),
		GeometriWKT:    p.WKT(),
	}
}

// ToDomain converts a database model to a domain segment profile.
func (ProfileMapper) ToDomain(m ProfileModel) roadnet.SegmentProfile {
	p := roadnet.NewSegmentProfile(
		m.VeglenkesekvID,
		linearref.NewInterval(m.StartPos, m.SluttPos),
		m.GeometriWKT,
		roadnet.ProfileValues{
			BKValue:   m.BKVerdi,
			BKText:    m.BKTekst,
			MaxLength: m.MaksLengde,
			Special:   m.Spesiell,
			MinBridge: m.MinBru,
			MinHeight: m.MinHoyde,
		},
	)
	if m.Propagert {
		p = p.WithPropagation(m.KorridorTonn, m.KorridorLengde, m.KorridorHoyde, m.DimKilde)
	}
	return p
}

// BottleneckMapper converts between Bottleneck and BottleneckModel.
type BottleneckMapper struct{}

// ToModel converts a domain bottleneck to its database model.
func (BottleneckMapper) ToModel(b roadnet.Bottleneck) BottleneckModel {
	return BottleneckModel{
		VeglenkesekvID:  b.LinkID(),
		StartPos:        b.Position().Start(),
		SluttPos:        b.Position().End(),
		Kommune:         b.Municipality(),
		Vegnummer:       b.RoadNumber(),
		BegrensningType: b.LimitationType(),
		Beskrivelse:     b.Description(),
		Arsak:           b.Cause(),
		TillattTonn:     b.Tonnage(),
		MaksLengde:      b.MaxLength(),
		MinHoyde:        b.MinHeight(),
		DimKilde:        b.DimSource(),
		GeometriWKT:     b.WKT(),
	}
}

// ToDomain converts a database model to a domain bottleneck.
func (BottleneckMapper) ToDomain(m BottleneckModel) roadnet.Bottleneck {
	return roadnet.NewBottleneck(
		m.VeglenkesekvID,
		linearref.NewInterval(m.StartPos, m.SluttPos),
		m.Kommune,
		m.Vegnummer,
		m.BegrensningType,
		m.Beskrivelse,
		m.Arsak,
		m.TillattTonn,
		m.MaksLengde,
		m.MinHoyde,
		m.DimKilde,
		m.GeometriWKT,
	)
}

// CorridorMapper converts between Corridor and CorridorModel.
type CorridorMapper struct{}

// ToModel converts a domain corridor to its database model.
func (CorridorMapper) ToModel(c roadnet.Corridor) CorridorModel {
	return CorridorModel{
		VeglenkesekvID:  c.LinkID(),
		Vegnummer:       c.RoadNumber(),
		Kommune:         c.Municipality(),
		TillattTonn:     c.Tonnage(),
		MaksLengde:      c.MaxLength(),
		MinHoyde:        c.MinHeight(),
		DimKilde:        c.DimSource(),
		AntallSegmenter: c.Segments(),
		GeometriWKT:     c.WKT(),
	}
}

// ToDomain converts a database model to a domain corridor.
func (CorridorMapper) ToDomain(m CorridorModel) roadnet.Corridor {
	return roadnet.NewCorridor(
		m.VeglenkesekvID,
		m.Vegnummer,
		m.Kommune,
		m.TillattTonn,
		m.MaksLengde,
		m.MinHoyde,
		m.DimKilde,
		m.AntallSegmenter,
		m.GeometriWKT,
	)
}

// RutParcelMapper converts between RutParcel and RutParcelModel.
type RutParcelMapper struct{}

// ToModel converts a domain rut parcel to its database model.
func (RutParcelMapper) ToModel(r roadnet.RutParcel) RutParcelModel {
	return RutParcelModel{
		Vegnummer:      r.RoadNumber(),
		ParsellStart:   r.StartMeter(),
		ParsellSlutt:   r.EndMeter(),
		SporP90:        r.P90(),
		AntallMalinger: r.Measurements(),
	}
}

// ToDomain converts a database model to a domain rut parcel.
func (RutParcelMapper) ToDomain(m RutParcelModel) roadnet.RutParcel {
	return roadnet.NewRutParcel(m.Vegnummer, m.ParsellStart, m.ParsellSlutt, m.SporP90, m.AntallMalinger)
}
