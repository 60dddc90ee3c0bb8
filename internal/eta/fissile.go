package eta

import (
	"fmt"
	"math"
)

// fissileIndex resolves the position of the fissile material within the
// TOAD foil stack. The last occurrence wins. An absent fissile material
// is an explicit configuration error, never a silent mis-index.
func (p *Params) fissileIndex() (int, error) {
	idx := -1
	for i, m := range p.TOADFoilMats {
		if m == p.FissileMat {
			idx = i
		}
	}
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q not in %v", ErrFissileNotInTOAD, p.FissileMat, p.TOADFoilMats)
	}
	return idx, nil
}

// normalizeMinFiss converts the absolute minimum fission count into a
// per-unit-volume, per-source-neutron threshold:
//
//	MinFiss = absolute / (Src * r^2 * pi * t)
//
// where r is the TOAD foil radius and t the thickness of the fissile
// TOAD foil. Called at construction and again at the end of every
// successful constraints parse; it is not reactive, so any direct field
// mutation that touches Src, the TOAD foil stack, or FissileMat must be
// followed by a fresh construction or parse. Deriving from the retained
// absolute requirement keeps the computation idempotent across repeated
// parses.
func (p *Params) normalizeMinFiss() error {
	idx, err := p.fissileIndex()
	if err != nil {
		return err
	}
	denom := p.Src * p.TOADFoilRadius * p.TOADFoilRadius * math.Pi * p.TOADFoilThickness[idx]
	if denom == 0 {
		return fmt.Errorf("%w: src=%g foil radius=%g foil thickness=%g",
			ErrZeroNormDenominator, p.Src, p.TOADFoilRadius, p.TOADFoilThickness[idx])
	}
	p.MinFiss = p.absMinFiss / denom
	return nil
}
