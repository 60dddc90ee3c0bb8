// Package eta holds the design parameters, constraints, and objective
// spectrum for an Experimental Tuning Assembly (ETA) — the neutron
// spectrometry fixture whose geometry is searched by the optimizer.
//
// A Params value is built once per design run with New, optionally
// populated from an objective spectrum file (ReadObjective) and an ETA
// constraints file (ReadConstraints), and then handed to the optimizer
// as read-only input. Both readers recompute the normalized
// minimum-fission threshold, so MinFiss is always consistent with the
// TOAD foil stack it was derived from.
package eta

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	// ErrFoilPairMismatch reports NAS or TOAD foil thickness and material
	// lists of different lengths.
	ErrFoilPairMismatch = errors.New("foil thickness and material lists differ in length")

	// ErrUnreadable reports an input file that could not be opened or read.
	ErrUnreadable = errors.New("input file unreadable")

	// ErrFissileNotInTOAD reports a fissile material that does not appear
	// in the TOAD foil stack, leaving the fission normalization undefined.
	ErrFissileNotInTOAD = errors.New("fissile material not present in TOAD foils")

	// ErrZeroNormDenominator reports a zero source strength, foil radius,
	// or foil thickness in the fission normalization.
	ErrZeroNormDenominator = errors.New("fission normalization denominator is zero")
)

// Params is the complete set of ETA design constraints and the objective
// function. All lengths are in cm, angles in degrees, weights in kg.
type Params struct {
	// SpectrumType tags how the objective spectrum is represented.
	SpectrumType SpectrumType
	// Spectrum holds the upper energy bin bounds and flux per bin, in
	// file order. Not fluence-normalized here.
	Spectrum []SpectrumPoint

	// MinFiss is the minimum-fission requirement for the fissile foil.
	// After construction it holds the normalized per-unit-volume,
	// per-source-neutron threshold, not the absolute count; the absolute
	// requirement is retained internally so recomputation after a
	// constraints parse derives from the configured value, never from an
	// already-normalized one.
	MinFiss float64 `validate:"gte=0"`
	// MaxWeight is the maximum ETA assembly weight [kg].
	MaxWeight float64 `validate:"gte=0"`
	// Src is the source neutrons in 4pi.
	Src float64 `validate:"gte=0"`

	// TCCDist is the distance from the ETA front face to target chamber
	// center [cm].
	TCCDist float64 `validate:"gte=0"`
	// DebrisShieldThickness is the debris cover and cone section
	// thickness [cm].
	DebrisShieldThickness float64 `validate:"gte=0"`
	// WallThickness is the ETA structural wall thickness [cm].
	WallThickness float64 `validate:"gte=0"`
	// SnoutDist is the snout mount distance from TCC [cm].
	SnoutDist float64 `validate:"gte=0"`
	// CoverThickness is the ETA back cover thickness [cm].
	CoverThickness float64 `validate:"gte=0"`
	// MountThickness is the nose-cone-to-snout mount thickness [cm].
	MountThickness float64 `validate:"gte=0"`
	// FaceRadius is the ETA opening radius from centerline [cm].
	FaceRadius float64 `validate:"gte=0"`
	// OuterRadius is the maximum ETA structure outer radius [cm].
	OuterRadius float64 `validate:"gte=0"`
	// ConeAngle is the cone opening angle from the face plane [degrees].
	ConeAngle float64 `validate:"gt=0,lt=180"`

	// Materials below must name a natural element or a materials
	// compendium entry; resolution happens in the compendium, not here.
	DebrisShieldMat string `validate:"required"`
	StructMat       string `validate:"required"`
	FillMat         string `validate:"required"`
	FissileMat      string `validate:"required"`

	// NASThickness is the neutron activation spectrometer thickness [cm].
	NASThickness float64 `validate:"gte=0"`
	// NASRadius is the neutron activation spectrometer radius [cm].
	NASRadius float64 `validate:"gte=0"`
	NASMat    string  `validate:"required"`

	// NASFoilThickness and NASFoilMats are parallel per-foil lists and
	// must be the same length.
	NASFoilThickness []float64 `validate:"dive,gte=0"`
	NASFoilRadius    float64   `validate:"gte=0"`
	NASFoilMats      []string  `validate:"dive,required"`
	// TOADLoc names the NAS material the TOAD stack follows.
	TOADLoc string

	TOADMat string `validate:"required"`
	// TOADFoilThickness and TOADFoilMats are parallel per-foil lists and
	// must be the same length.
	TOADFoilThickness []float64 `validate:"dive,gte=0"`
	TOADFoilRadius    float64   `validate:"gte=0"`
	TOADFoilMats      []string  `validate:"dive,required"`

	HolderMat           string  `validate:"required"`
	HolderFillMat       string  `validate:"required"`
	HolderWallThickness float64 `validate:"gte=0"`

	// MaxVert and MaxHoriz bound the number of vertical and horizontal
	// macrobodies the geometry search may place.
	MaxVert  int `validate:"gt=0"`
	MaxHoriz int `validate:"gt=0"`

	// absMinFiss is the absolute fission-count requirement MinFiss is
	// derived from.
	absMinFiss float64

	logger         *zap.Logger
	missingIsEmpty bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// defaultParams returns the documented NIF baseline design. Every slice
// is freshly allocated so instances never share backing arrays.
func defaultParams() *Params {
	return &Params{
		SpectrumType: NormalizedDifferential,

		MinFiss:    5e8,
		absMinFiss: 5e8,
		MaxWeight:  125.0,
		Src:        5e15,

		TCCDist:               15.24,
		DebrisShieldThickness: 0.3,
		WallThickness:         0.5,
		SnoutDist:             52.14,
		CoverThickness:        1.0,
		MountThickness:        2.4,
		FaceRadius:            5.48,
		OuterRadius:           9.39,
		ConeAngle:             70.22,

		DebrisShieldMat: "Al",
		StructMat:       "Al",
		FillMat:         "Air (dry near sea level)",
		FissileMat:      "Pb",

		NASThickness: 0.014,
		NASRadius:    2.69,
		NASMat:       "Al",

		NASFoilThickness: []float64{0.1, 0.1, 0.1, 0.1, 0.01},
		NASFoilRadius:    2.5,
		NASFoilMats:      []string{"Zr", "Zn", "In", "Al", "Ta"},
		TOADLoc:          "In",

		TOADMat:           "Al",
		TOADFoilThickness: []float64{0.0254, 0.0127},
		TOADFoilRadius:    1.252,
		TOADFoilMats:      []string{"Au", "Pb"},

		HolderMat:           "Al",
		HolderFillMat:       "Fe",
		HolderWallThickness: 2.0,

		MaxVert:  3,
		MaxHoriz: 7,

		logger: zap.NewNop(),
	}
}

// New builds a Params with the documented defaults, applies the given
// overrides, validates every invariant, and computes the normalized
// minimum-fission threshold from the as-constructed fields.
func New(opts ...Option) (*Params, error) {
	p := defaultParams()
	for _, opt := range opts {
		opt(p)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := p.normalizeMinFiss(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the structural invariants: paired foil lists of equal
// length, non-negative dimensions, cone angle inside (0, 180), named
// materials, and positive search-space bounds.
func (p *Params) Validate() error {
	if len(p.NASFoilThickness) != len(p.NASFoilMats) {
		return fmt.Errorf("%w: NAS has %d thicknesses and %d materials",
			ErrFoilPairMismatch, len(p.NASFoilThickness), len(p.NASFoilMats))
	}
	if len(p.TOADFoilThickness) != len(p.TOADFoilMats) {
		return fmt.Errorf("%w: TOAD has %d thicknesses and %d materials",
			ErrFoilPairMismatch, len(p.TOADFoilThickness), len(p.TOADFoilMats))
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid ETA parameters: %w", err)
	}
	return nil
}

// clone deep-copies p so a parse can stage changes and commit only on
// success.
func (p *Params) clone() *Params {
	c := *p
	c.Spectrum = slices.Clone(p.Spectrum)
	c.NASFoilThickness = slices.Clone(p.NASFoilThickness)
	c.NASFoilMats = slices.Clone(p.NASFoilMats)
	c.TOADFoilThickness = slices.Clone(p.TOADFoilThickness)
	c.TOADFoilMats = slices.Clone(p.TOADFoilMats)
	return &c
}

// String renders every field with its physical unit followed by the
// objective spectrum table. For human review and logs; the constraints
// and spectrum files remain the machine round-trip formats.
func (p *Params) String() string {
	var b strings.Builder
	b.WriteString("\nETA design constraints and objective function:\n")
	fmt.Fprintf(&b, "Minimum number of fissions = %v fissions\n", p.MinFiss)
	fmt.Fprintf(&b, "Maximum ETA weight = %v kg\n", p.MaxWeight)
	fmt.Fprintf(&b, "Source Neutrons in 4 pi = %v neutrons\n", p.Src)
	fmt.Fprintf(&b, "ETA distance from TCC = %v cm\n", p.TCCDist)
	fmt.Fprintf(&b, "Debris Shield thickness = %v cm\n", p.DebrisShieldThickness)
	fmt.Fprintf(&b, "ETA structural thickness = %v cm\n", p.WallThickness)
	fmt.Fprintf(&b, "Snout distance from TCC = %v cm\n", p.SnoutDist)
	fmt.Fprintf(&b, "ETA back cover thickness = %v cm\n", p.CoverThickness)
	fmt.Fprintf(&b, "ETA to snout mount thickness = %v cm\n", p.MountThickness)
	fmt.Fprintf(&b, "ETA face radius = %v cm\n", p.FaceRadius)
	fmt.Fprintf(&b, "ETA cylinder outer radius = %v cm\n", p.OuterRadius)
	fmt.Fprintf(&b, "ETA cone opening angle = %v degrees\n", p.ConeAngle)
	fmt.Fprintf(&b, "Debris Shield Material = %s\n", p.DebrisShieldMat)
	fmt.Fprintf(&b, "ETA Structural Material = %s\n", p.StructMat)
	fmt.Fprintf(&b, "ETA Void Fill Material = %s\n", p.FillMat)
	fmt.Fprintf(&b, "Fissile Material = %s\n", p.FissileMat)
	fmt.Fprintf(&b, "NAS Thickness = %v cm\n", p.NASThickness)
	fmt.Fprintf(&b, "NAS Radius = %v cm\n", p.NASRadius)
	fmt.Fprintf(&b, "NAS Material = %s\n", p.NASMat)
	fmt.Fprintf(&b, "NAS Activation Foils = %v\n", p.NASFoilMats)
	fmt.Fprintf(&b, "NAS Activation Foil Thickness = %v cm\n", p.NASFoilThickness)
	fmt.Fprintf(&b, "NAS Activation Foil Radius = %v cm\n", p.NASFoilRadius)
	fmt.Fprintf(&b, "TOAD Follows Material = %s\n", p.TOADLoc)
	fmt.Fprintf(&b, "TOAD Material = %s\n", p.TOADMat)
	fmt.Fprintf(&b, "TOAD Activation Foils = %v\n", p.TOADFoilMats)
	fmt.Fprintf(&b, "TOAD Activation Foil Thickness = %v cm\n", p.TOADFoilThickness)
	fmt.Fprintf(&b, "TOAD Activation Foil Radius = %v cm\n", p.TOADFoilRadius)
	fmt.Fprintf(&b, "Holder Material = %s\n", p.HolderMat)
	fmt.Fprintf(&b, "Holder Fill Material = %s\n", p.HolderFillMat)
	fmt.Fprintf(&b, "Holder wall thickness = %v cm\n", p.HolderWallThickness)
	fmt.Fprintf(&b, "Max vertical components = %d\n", p.MaxVert)
	fmt.Fprintf(&b, "Max horizontal components = %d\n", p.MaxHoriz)
	fmt.Fprintf(&b, "Objective function type = %s\n", p.SpectrumType)
	b.WriteString("\nObjective function spectra:\n")
	b.WriteString("Energy    Flux\n")
	for _, pt := range p.Spectrum {
		fmt.Fprintf(&b, "%-10v%v\n", pt.Energy, pt.Flux)
	}
	return b.String()
}

// GoString lists all fields positionally in construction order, so %#v
// output is enough to reconstruct the instance.
func (p *Params) GoString() string {
	return fmt.Sprintf("eta.Params(%v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, "+
		"%v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v)",
		p.SpectrumType, p.Spectrum,
		p.MinFiss, p.MaxWeight, p.Src,
		p.TCCDist, p.DebrisShieldThickness, p.WallThickness, p.SnoutDist,
		p.CoverThickness, p.MountThickness, p.FaceRadius, p.OuterRadius, p.ConeAngle,
		p.DebrisShieldMat, p.StructMat, p.FillMat, p.FissileMat,
		p.NASThickness, p.NASRadius, p.NASMat,
		p.NASFoilThickness, p.NASFoilRadius, p.NASFoilMats, p.TOADLoc,
		p.TOADMat, p.TOADFoilThickness, p.TOADFoilRadius, p.TOADFoilMats,
		p.HolderMat, p.HolderFillMat, p.HolderWallThickness,
		p.MaxVert, p.MaxHoriz)
}
