package eta

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if p.SpectrumType != NormalizedDifferential {
		t.Errorf("expected SpectrumType=%q, got %q", NormalizedDifferential, p.SpectrumType)
	}
	if p.MaxWeight != 125.0 {
		t.Errorf("expected MaxWeight=125.0, got %v", p.MaxWeight)
	}
	if p.Src != 5e15 {
		t.Errorf("expected Src=5e15, got %v", p.Src)
	}
	if p.FillMat != "Air (dry near sea level)" {
		t.Errorf("expected default fill material, got %q", p.FillMat)
	}
	if len(p.NASFoilMats) != 5 || len(p.NASFoilThickness) != 5 {
		t.Errorf("expected 5 NAS foils, got %d mats / %d thicknesses",
			len(p.NASFoilMats), len(p.NASFoilThickness))
	}
	if p.MaxVert != 3 || p.MaxHoriz != 7 {
		t.Errorf("expected search bounds 3/7, got %d/%d", p.MaxVert, p.MaxHoriz)
	}

	// Default fissile foil is Pb, the second TOAD foil (t=0.0127 cm).
	want := 5e8 / (5e15 * 1.252 * 1.252 * math.Pi * 0.0127)
	if math.Abs(p.MinFiss-want)/want > 1e-12 {
		t.Errorf("expected normalized MinFiss=%g, got %g", want, p.MinFiss)
	}
}

func TestNew_FoilPairMismatch(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"nas materials shorter", WithNASFoilMats([]string{"Zr", "Zn"})},
		{"nas thicknesses shorter", WithNASFoilThickness([]float64{0.1})},
		{"toad materials shorter", WithTOADFoilMats([]string{"Au"})},
		{"toad thicknesses longer", WithTOADFoilThickness([]float64{0.1, 0.2, 0.3})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			if !errors.Is(err, ErrFoilPairMismatch) {
				t.Errorf("expected ErrFoilPairMismatch, got %v", err)
			}
		})
	}
}

func TestNew_FissileNotInTOAD(t *testing.T) {
	_, err := New(WithFissileMat("U"))
	if !errors.Is(err, ErrFissileNotInTOAD) {
		t.Errorf("expected ErrFissileNotInTOAD, got %v", err)
	}
}

func TestNew_InvalidFields(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"negative wall thickness", WithWallThickness(-0.5)},
		{"negative source", WithSrc(-1)},
		{"cone angle zero", WithConeAngle(0)},
		{"cone angle too wide", WithConeAngle(180)},
		{"empty structural material", WithStructMat("")},
		{"non-positive max vert", WithMaxVert(0)},
		{"negative max horiz", WithMaxHoriz(-2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt); err == nil {
				t.Error("expected construction error")
			}
		})
	}
}

// Regression: default foil lists must never share backing arrays across
// instances.
func TestNew_DefaultSlicesAreFresh(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	a.NASFoilMats[0] = "Au"
	a.TOADFoilThickness[0] = 99.0
	if b.NASFoilMats[0] != "Zr" {
		t.Errorf("NAS foil materials are shared between instances")
	}
	if b.TOADFoilThickness[0] != 0.0254 {
		t.Errorf("TOAD foil thicknesses are shared between instances")
	}
}

func TestOptions_CopyListInputs(t *testing.T) {
	mats := []string{"Au", "Pb"}
	p, err := New(WithTOADFoilMats(mats))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	mats[1] = "W"
	if p.TOADFoilMats[1] != "Pb" {
		t.Error("WithTOADFoilMats aliased the caller's slice")
	}
}

func TestParams_String(t *testing.T) {
	p, err := New(WithSpectrum(Normalized, []SpectrumPoint{{1.0, 0.1}, {2.0, 0.05}}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s := p.String()
	for _, want := range []string{
		"ETA design constraints and objective function:",
		"Maximum ETA weight = 125 kg",
		"ETA cone opening angle = 70.22 degrees",
		"ETA Void Fill Material = Air (dry near sea level)",
		"TOAD Activation Foils = [Au Pb]",
		"Objective function type = normalized",
		"Energy    Flux",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q", want)
		}
	}

	if s != p.String() {
		t.Error("String() is not deterministic")
	}
}

func TestParams_GoString(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	r := p.GoString()
	if !strings.HasPrefix(r, "eta.Params(") {
		t.Errorf("unexpected GoString prefix: %s", r)
	}
	// Positional order: spectrum type first, search bounds last.
	if !strings.HasPrefix(r, "eta.Params(normalized differential, ") {
		t.Errorf("spectrum type not first: %s", r)
	}
	if !strings.HasSuffix(r, ", 3, 7)") {
		t.Errorf("search bounds not last: %s", r)
	}
}

func TestClone_Independence(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c := p.clone()
	c.NASFoilMats[0] = "Au"
	c.MaxWeight = 1.0
	if p.NASFoilMats[0] != "Zr" || p.MaxWeight != 125.0 {
		t.Error("clone shares state with the original")
	}
}
