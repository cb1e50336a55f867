package lighting

import "testing"

func TestRadiance(t *testing.T) {
	tests := []struct {
		name  string
		color [3]float32
		scale float32
		want  [3]float32
	}{
		{"white", [3]float32{1, 1, 1}, 1.2, [3]float32{1.2, 1.2, 1.2}},
		{"gray", [3]float32{0.25, 0.5, 1}, 2, [3]float32{0.5, 1, 2}},
		{"off", [3]float32{1, 1, 1}, 0, [3]float32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (AmbientLight{Color: tt.color, Intensity: tt.scale}).Radiance(); got != tt.want {
				t.Errorf("ambient Radiance() = %v, want %v", got, tt.want)
			}
			if got := (PointLight{Color: tt.color, Intensity: tt.scale}).Radiance(); got != tt.want {
				t.Errorf("point Radiance() = %v, want %v", got, tt.want)
			}
		})
	}
}
