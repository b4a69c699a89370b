package env

import (
	"errors"
	"fmt"
	"os"

	"browser-mcp/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

type profilesFile struct {
	Profiles []entity.LaunchProfile `yaml:"profiles"`
}

// LoadLaunchProfiles reads the ordered startup fallback list from a YAML
// file:
//
//	profiles:
//	  - name: robust
//	    stealth: true
//	    args: [no-sandbox, disable-dev-shm-usage]
//	  - name: minimal
func LoadLaunchProfiles(path string) ([]entity.LaunchProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read launch profiles: %w", err)
	}
	return ParseLaunchProfiles(data)
}

func ParseLaunchProfiles(data []byte) ([]entity.LaunchProfile, error) {
	var f profilesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse launch profiles: %w", err)
	}
	if len(f.Profiles) == 0 {
		return nil, errors.New("launch profiles: list is empty")
	}
	seen := make(map[string]bool, len(f.Profiles))
	for i, p := range f.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("launch profiles: entry %d has no name", i+1)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("launch profiles: duplicate name %q", p.Name)
		}
		seen[p.Name] = true
	}
	return f.Profiles, nil
}
