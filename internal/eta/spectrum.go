package eta

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// SpectrumType tags the representation of the objective spectrum.
type SpectrumType string

const (
	Normalized             SpectrumType = "normalized"
	NormalizedDifferential SpectrumType = "normalized differential"
	NormalizedLethargy     SpectrumType = "normalized lethargy"
)

// Known reports whether t is one of the recognized spectrum types.
func (t SpectrumType) Known() bool {
	switch t {
	case Normalized, NormalizedDifferential, NormalizedLethargy:
		return true
	}
	return false
}

// SpectrumPoint is one objective spectrum bin: the upper energy bound
// and the flux or fluence of the bin.
type SpectrumPoint struct {
	Energy float64
	Flux   float64
}

// ReadObjective parses an objective spectrum file into the model. The
// first line is the spectrum type tag; every following line is an
// "energy,flux" pair. Rows are kept in file order with no re-sorting
// and no range or ordering checks. The model is only mutated once the
// whole file has parsed.
func (p *Params) ReadObjective(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if p.missingIsEmpty && errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("objective spectrum file missing, keeping default spectrum",
				zap.String("path", path))
			return nil
		}
		p.logger.Error("cannot open objective spectrum file",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: objective spectrum %s: %w", ErrUnreadable, path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return fmt.Errorf("%w: reading objective spectrum %s: %w", ErrUnreadable, path, err)
		}
		return fmt.Errorf("objective spectrum %s: empty file", path)
	}
	st := SpectrumType(strings.TrimSpace(sc.Text()))
	if !st.Known() {
		p.logger.Warn("unrecognized spectrum type tag",
			zap.String("path", path), zap.String("type", string(st)))
	}

	var spectrum []SpectrumPoint
	line := 1
	for sc.Scan() {
		line++
		raw := sc.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		// Columns past the second are ignored.
		fields := strings.Split(raw, ",")
		if len(fields) < 2 {
			return fmt.Errorf("objective spectrum %s line %d: %q: want energy,flux", path, line, raw)
		}
		energy, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return fmt.Errorf("objective spectrum %s line %d: %q: bad energy bound: %w", path, line, raw, err)
		}
		flux, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return fmt.Errorf("objective spectrum %s line %d: %q: bad flux: %w", path, line, raw, err)
		}
		spectrum = append(spectrum, SpectrumPoint{Energy: energy, Flux: flux})
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: reading objective spectrum %s: %w", ErrUnreadable, path, err)
	}
	if len(spectrum) == 0 {
		return fmt.Errorf("objective spectrum %s: no data rows", path)
	}

	p.SpectrumType = st
	p.Spectrum = spectrum
	return nil
}

// WriteObjective writes the model's spectrum in the same format
// ReadObjective accepts, making the spectrum file a round-trip format.
func (p *Params) WriteObjective(path string) error {
	var b strings.Builder
	b.WriteString(string(p.SpectrumType))
	b.WriteByte('\n')
	for _, pt := range p.Spectrum {
		fmt.Fprintf(&b, "%g,%g\n", pt.Energy, pt.Flux)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing objective spectrum %s: %w", path, err)
	}
	return nil
}
