package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// profileFile is the on-disk shape of a vehicle-profile file:
//
//	profiles:
//	  - name: TOMMERTRANSPORT
//	    tonnage: 60
//	    bridge_tonnage: 60
//	    max_length: 24
//	    min_height: 4.2
type profileFile struct {
	Profiles []VehicleConfig `yaml:"profiles"`
}

// LoadVehicleProfiles reads vehicle profiles from a YAML file.
func LoadVehicleProfiles(path string) ([]VehicleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile file: %w", err)
	}

	var f profileFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse profile file %s: %w", path, err)
	}
	if len(f.Profiles) == 0 {
		return nil, fmt.Errorf("profile file %s contains no profiles", path)
	}

	for i, p := range f.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("profile file %s: profile %d has no name", path, i)
		}
	}
	return f.Profiles, nil
}

// SelectVehicleProfile returns the named profile from a profile file, or the
// first profile when name is empty.
func SelectVehicleProfile(profiles []VehicleConfig, name string) (VehicleConfig, error) {
	if name == "" {
		return profiles[0], nil
	}
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return VehicleConfig{}, fmt.Errorf("vehicle profile %q not found", name)
}
