package roadnet

// VehicleProfile holds the thresholds a road stretch must satisfy for a
// vehicle class to pass: required permitted weight, an independent bridge
// requirement, vehicle length and clearance height.
type VehicleProfile struct {
	name          string
	tonnage       float64
	bridgeTonnage float64
	maxLength     float64
	minHeight     float64
}

// NewVehicleProfile creates a VehicleProfile.
func NewVehicleProfile(name string, tonnage, bridgeTonnage, maxLength, minHeight float64) VehicleProfile {
	return VehicleProfile{
		name:          name,
		tonnage:       tonnage,
		bridgeTonnage: bridgeTonnage,
		maxLength:     maxLength,
		minHeight:     minHeight,
	}
}

// Name returns the profile name (e.g. NORMALTRANSPORT, TOMMERTRANSPORT).
func (v VehicleProfile) Name() string { return v.name }

// Tonnage returns the required permitted weight in tonnes.
func (v VehicleProfile) Tonnage() float64 { return v.tonnage }

// BridgeTonnage returns the independent bridge requirement in tonnes.
// A bridge below it is a bottleneck regardless of the road-rule class.
func (v VehicleProfile) BridgeTonnage() float64 { return v.bridgeTonnage }

// MaxLength returns the required vehicle length in meters.
func (v VehicleProfile) MaxLength() float64 { return v.maxLength }

// MinHeight returns the required clearance in meters.
func (v VehicleProfile) MinHeight() float64 { return v.minHeight }
