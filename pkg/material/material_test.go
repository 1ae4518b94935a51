package material

import (
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
)

func TestDefaultMaterial(t *testing.T) {
	m := DefaultMaterial()

	if m.Color != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected white, got %v", m.Color)
	}
	if m.Ambient != 0.1 || m.Diffuse != 0.9 || m.Specular != 0.9 || m.Shininess != 200 {
		t.Errorf("Unexpected coefficients %+v", m)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Expected default material to be valid, got %v", err)
	}
}

func TestMaterial_Equals(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(m *Material)
		expected bool
	}{
		{"identical", func(m *Material) {}, true},
		{"within epsilon", func(m *Material) { m.Diffuse += 0.000001 }, true},
		{"different color", func(m *Material) { m.Color = core.NewVec3(1, 0, 0) }, false},
		{"different ambient", func(m *Material) { m.Ambient = 0.2 }, false},
		{"different shininess", func(m *Material) { m.Shininess = 10 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := DefaultMaterial()
			tt.modify(&other)
			if got := DefaultMaterial().Equals(other); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMaterial_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(m *Material)
		wantErr bool
	}{
		{"default", func(m *Material) {}, false},
		{"zero specular", func(m *Material) { m.Specular = 0 }, false},
		{"negative diffuse", func(m *Material) { m.Diffuse = -0.5 }, true},
		{"zero shininess", func(m *Material) { m.Shininess = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMaterial()
			tt.modify(&m)
			if err := m.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
