package repository

import (
	"context"

	"sarvekshan/internal/model"
)

type mockDirectory struct {
	schools map[string]model.School
}

// NewMockDirectory creates an in-memory directory with the demo registry.
// Used when no MONGO_URI is configured.
func NewMockDirectory() SchoolDirectory {
	return &mockDirectory{schools: demoSchools()}
}

// NewStaticDirectory creates an in-memory directory over the given schools.
func NewStaticDirectory(schools []model.School) SchoolDirectory {
	m := make(map[string]model.School, len(schools))
	for _, s := range schools {
		m[s.UDISECode] = s
	}
	return &mockDirectory{schools: m}
}

func (d *mockDirectory) Resolve(_ context.Context, udise string) (*model.School, error) {
	school, ok := d.schools[udise]
	if !ok {
		return nil, nil
	}
	return &school, nil
}

// DemoSchools returns the demo registry records, also used by cmd/seed.
func DemoSchools() []model.School {
	m := demoSchools()
	out := make([]model.School, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	return out
}

func demoSchools() map[string]model.School {
	return map[string]model.School{
		"12345678901": {
			UDISECode: "12345678901",
			Name:      "Government Primary School, Ahmedabad",
			District:  "Ahmedabad",
			State:     "Gujarat",
		},
		"23456789012": {
			UDISECode: "23456789012",
			Name:      "Sarva Shiksha Abhiyan School",
			District:  "Surat",
			State:     "Gujarat",
		},
		"34567890123": {
			UDISECode: "34567890123",
			Name:      "Municipal Corporation School",
			District:  "Vadodara",
			State:     "Gujarat",
		},
	}
}
