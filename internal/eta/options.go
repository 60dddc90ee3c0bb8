package eta

import (
	"slices"

	"go.uber.org/zap"
)

// Option overrides one default when constructing a Params. Options are
// the keyword arguments of New: unspecified fields keep their documented
// defaults, and list-valued options copy their input so callers cannot
// alias the model's backing arrays.
type Option func(*Params)

// WithLogger routes parser diagnostics (unknown keywords, open
// failures, odd spectrum tags) to log. Without it diagnostics are
// dropped.
func WithLogger(log *zap.Logger) Option {
	return func(p *Params) {
		if log != nil {
			p.logger = log
		}
	}
}

// WithKeepDefaultsOnMissing makes ReadObjective and ReadConstraints
// treat a non-existent input file as "keep the defaults" instead of an
// error. Permission and I/O failures still surface.
func WithKeepDefaultsOnMissing() Option {
	return func(p *Params) { p.missingIsEmpty = true }
}

// WithSpectrum sets the objective spectrum and its type tag.
func WithSpectrum(t SpectrumType, pts []SpectrumPoint) Option {
	return func(p *Params) {
		p.SpectrumType = t
		p.Spectrum = slices.Clone(pts)
	}
}

// WithMinFiss sets the absolute minimum fission count; New normalizes it.
func WithMinFiss(v float64) Option {
	return func(p *Params) {
		p.MinFiss = v
		p.absMinFiss = v
	}
}

// WithMaxWeight sets the maximum assembly weight [kg].
func WithMaxWeight(v float64) Option { return func(p *Params) { p.MaxWeight = v } }

// WithSrc sets the source neutrons in 4pi.
func WithSrc(v float64) Option { return func(p *Params) { p.Src = v } }

// WithTCCDist sets the front-face distance from target chamber center [cm].
func WithTCCDist(v float64) Option { return func(p *Params) { p.TCCDist = v } }

// WithDebrisShieldThickness sets the debris shield thickness [cm].
func WithDebrisShieldThickness(v float64) Option {
	return func(p *Params) { p.DebrisShieldThickness = v }
}

// WithWallThickness sets the structural wall thickness [cm].
func WithWallThickness(v float64) Option { return func(p *Params) { p.WallThickness = v } }

// WithSnoutDist sets the snout mount distance from TCC [cm].
func WithSnoutDist(v float64) Option { return func(p *Params) { p.SnoutDist = v } }

// WithCoverThickness sets the back cover thickness [cm].
func WithCoverThickness(v float64) Option { return func(p *Params) { p.CoverThickness = v } }

// WithMountThickness sets the snout mount thickness [cm].
func WithMountThickness(v float64) Option { return func(p *Params) { p.MountThickness = v } }

// WithFaceRadius sets the ETA face radius [cm].
func WithFaceRadius(v float64) Option { return func(p *Params) { p.FaceRadius = v } }

// WithOuterRadius sets the maximum structure outer radius [cm].
func WithOuterRadius(v float64) Option { return func(p *Params) { p.OuterRadius = v } }

// WithConeAngle sets the cone opening angle [degrees].
func WithConeAngle(v float64) Option { return func(p *Params) { p.ConeAngle = v } }

// WithDebrisShieldMat names the debris shield material.
func WithDebrisShieldMat(m string) Option { return func(p *Params) { p.DebrisShieldMat = m } }

// WithStructMat names the ETA structural material.
func WithStructMat(m string) Option { return func(p *Params) { p.StructMat = m } }

// WithFillMat names the void fill material.
func WithFillMat(m string) Option { return func(p *Params) { p.FillMat = m } }

// WithFissileMat names the fissile foil material; it must appear in the
// TOAD foil stack.
func WithFissileMat(m string) Option { return func(p *Params) { p.FissileMat = m } }

// WithNASThickness sets the NAS structure thickness [cm].
func WithNASThickness(v float64) Option { return func(p *Params) { p.NASThickness = v } }

// WithNASRadius sets the NAS structure radius [cm].
func WithNASRadius(v float64) Option { return func(p *Params) { p.NASRadius = v } }

// WithNASMat names the NAS structure material.
func WithNASMat(m string) Option { return func(p *Params) { p.NASMat = m } }

// WithNASFoilThickness sets the per-foil NAS thicknesses [cm]; must stay
// paired with the NAS foil materials.
func WithNASFoilThickness(v []float64) Option {
	return func(p *Params) { p.NASFoilThickness = slices.Clone(v) }
}

// WithNASFoilRadius sets the NAS activation foil radius [cm].
func WithNASFoilRadius(v float64) Option { return func(p *Params) { p.NASFoilRadius = v } }

// WithNASFoilMats names the NAS activation foils in stack order.
func WithNASFoilMats(m []string) Option {
	return func(p *Params) { p.NASFoilMats = slices.Clone(m) }
}

// WithTOADLoc names the NAS material the TOAD stack follows.
func WithTOADLoc(m string) Option { return func(p *Params) { p.TOADLoc = m } }

// WithTOADMat names the TOAD structure material.
func WithTOADMat(m string) Option { return func(p *Params) { p.TOADMat = m } }

// WithTOADFoilThickness sets the per-foil TOAD thicknesses [cm]; must
// stay paired with the TOAD foil materials.
func WithTOADFoilThickness(v []float64) Option {
	return func(p *Params) { p.TOADFoilThickness = slices.Clone(v) }
}

// WithTOADFoilRadius sets the TOAD activation foil radius [cm].
func WithTOADFoilRadius(v float64) Option { return func(p *Params) { p.TOADFoilRadius = v } }

// WithTOADFoilMats names the TOAD activation foils in stack order.
func WithTOADFoilMats(m []string) Option {
	return func(p *Params) { p.TOADFoilMats = slices.Clone(m) }
}

// WithHolderMat names the NAS holder material.
func WithHolderMat(m string) Option { return func(p *Params) { p.HolderMat = m } }

// WithHolderFillMat names the holder fill material.
func WithHolderFillMat(m string) Option { return func(p *Params) { p.HolderFillMat = m } }

// WithHolderWallThickness sets the holder wall thickness [cm].
func WithHolderWallThickness(v float64) Option {
	return func(p *Params) { p.HolderWallThickness = v }
}

// WithMaxVert bounds the vertical component count of candidate geometries.
func WithMaxVert(n int) Option { return func(p *Params) { p.MaxVert = n } }

// WithMaxHoriz bounds the horizontal component count of candidate geometries.
func WithMaxHoriz(n int) Option { return func(p *Params) { p.MaxHoriz = n } }
