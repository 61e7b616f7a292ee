package interview

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const maxExperienceYears = 50

// ProfileFromFields decodes loosely typed form fields into a Profile. List
// fields accept either a list or a comma separated string; numbers may arrive
// as strings. The result is normalised but not validated.
func ProfileFromFields(fields map[string]any) (Profile, error) {
	var p Profile

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return Profile{}, fmt.Errorf("creating profile decoder: %w", err)
	}

	if err := decoder.Decode(fields); err != nil {
		return Profile{}, &ValidationError{Detail: err.Error()}
	}

	return p.normalize(), nil
}

func (p Profile) normalize() Profile {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Location = strings.TrimSpace(p.Location)
	p.DesiredPositions = trimList(p.DesiredPositions)
	p.TechStack = trimList(p.TechStack)
	return p
}

// Validate returns a *ValidationError naming every missing or invalid field.
func (p Profile) Validate() error {
	var missing []string

	if strings.TrimSpace(p.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(p.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(p.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(p.Location) == "" {
		missing = append(missing, "location")
	}
	if p.ExperienceYears < 0 || p.ExperienceYears > maxExperienceYears {
		missing = append(missing, "experience_years")
	}
	if len(trimList(p.DesiredPositions)) == 0 {
		missing = append(missing, "desired_positions")
	}
	if len(trimList(p.TechStack)) == 0 {
		missing = append(missing, "tech_stack")
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func trimList(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
