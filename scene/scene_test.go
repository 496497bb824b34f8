package scene

import "testing"

func TestModeFor(t *testing.T) {
	belt := map[string]bool{"asteroid-belt": true}
	if ModeFor("earth", belt) != Planet {
		t.Error("expected earth to be a planet")
	}
	if ModeFor("asteroid-belt", belt) != Belt {
		t.Error("expected asteroid-belt to be a belt")
	}
	if ModeFor("earth", nil) != Planet {
		t.Error("expected planet without belt identifiers")
	}
}

func TestModeDecisions(t *testing.T) {
	tests := []struct {
		mode       Mode
		clip       float64
		silhouette bool
		scatters   bool
		flyTo      bool
		spread     float64
		idle       float64
	}{
		{Planet, 90, true, false, true, 1, 0.05},
		{Belt, 0, false, true, false, 1.6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := tt.mode.ClipAngle(); got != tt.clip {
				t.Errorf("ClipAngle = %f, want %f", got, tt.clip)
			}
			if got := tt.mode.DrawsSilhouette(); got != tt.silhouette {
				t.Errorf("DrawsSilhouette = %v, want %v", got, tt.silhouette)
			}
			if got := tt.mode.UsesSurface(); got != tt.silhouette {
				t.Errorf("UsesSurface = %v, want %v", got, tt.silhouette)
			}
			if got := tt.mode.Scatters(); got != tt.scatters {
				t.Errorf("Scatters = %v, want %v", got, tt.scatters)
			}
			if got := tt.mode.AllowsFlyTo(); got != tt.flyTo {
				t.Errorf("AllowsFlyTo = %v, want %v", got, tt.flyTo)
			}
			if got := tt.mode.Spread(1.6); got != tt.spread {
				t.Errorf("Spread = %f, want %f", got, tt.spread)
			}
			if got := tt.mode.IdleDrift(0.05); got != tt.idle {
				t.Errorf("IdleDrift = %f, want %f", got, tt.idle)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"capital", CategoryCapital, false},
		{" Port ", CategoryPort, false},
		{"", CategoryCity, false},
		{"asteroid", CategoryAsteroid, false},
		{"volcano", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfigurationFind(t *testing.T) {
	cfg := Configuration{Points: []Point{{Name: "Ceres"}, {Name: "Vesta", Lat: 3}}}
	p, ok := cfg.Find("Vesta")
	if !ok || p.Lat != 3 {
		t.Errorf("expected to find Vesta, got %+v ok=%v", p, ok)
	}
	if _, ok := cfg.Find("Pluto"); ok {
		t.Error("did not expect to find Pluto")
	}
}
