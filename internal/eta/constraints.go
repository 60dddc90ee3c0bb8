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

// constraintSetter parses the value tokens of one constraints line and
// writes the corresponding field.
type constraintSetter func(p *Params, args []string) error

func floatField(field func(*Params) *float64) constraintSetter {
	return func(p *Params, args []string) error {
		if len(args) == 0 {
			return errors.New("missing value")
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
		if err != nil {
			return fmt.Errorf("bad float %q: %w", strings.TrimSpace(args[0]), err)
		}
		*field(p) = v
		return nil
	}
}

func intField(field func(*Params) *int) constraintSetter {
	return func(p *Params, args []string) error {
		if len(args) == 0 {
			return errors.New("missing value")
		}
		v, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return fmt.Errorf("bad integer %q: %w", strings.TrimSpace(args[0]), err)
		}
		*field(p) = v
		return nil
	}
}

func stringField(field func(*Params) *string) constraintSetter {
	return func(p *Params, args []string) error {
		if len(args) == 0 {
			return errors.New("missing value")
		}
		*field(p) = strings.TrimSpace(args[0])
		return nil
	}
}

// floatListField consumes every remaining token on the line.
func floatListField(field func(*Params) *[]float64) constraintSetter {
	return func(p *Params, args []string) error {
		if len(args) == 0 {
			return errors.New("missing values")
		}
		vals := make([]float64, 0, len(args))
		for _, a := range args {
			v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
			if err != nil {
				return fmt.Errorf("bad float %q: %w", strings.TrimSpace(a), err)
			}
			vals = append(vals, v)
		}
		*field(p) = vals
		return nil
	}
}

// stringListField consumes every remaining token on the line.
func stringListField(field func(*Params) *[]string) constraintSetter {
	return func(p *Params, args []string) error {
		if len(args) == 0 {
			return errors.New("missing values")
		}
		vals := make([]string, 0, len(args))
		for _, a := range args {
			vals = append(vals, strings.TrimSpace(a))
		}
		*field(p) = vals
		return nil
	}
}

// constraintSetters maps each recognized keyword, lower-cased, to its
// field action. Lookup is exact after trimming and case folding; an
// absent keyword is the explicit unknown branch in ReadConstraints.
var constraintSetters = map[string]constraintSetter{
	// "Minimum Fissions" is the absolute requirement; the normalized
	// MinFiss is recomputed from it once the whole file has parsed.
	"minimum fissions": floatField(func(p *Params) *float64 { return &p.absMinFiss }),
	"eta max weight":   floatField(func(p *Params) *float64 { return &p.MaxWeight }),
	"source strength":  floatField(func(p *Params) *float64 { return &p.Src }),

	"tcc to eta distance":          floatField(func(p *Params) *float64 { return &p.TCCDist }),
	"debris shield thickness":      floatField(func(p *Params) *float64 { return &p.DebrisShieldThickness }),
	"eta wall thickness":           floatField(func(p *Params) *float64 { return &p.WallThickness }),
	"snout distance":               floatField(func(p *Params) *float64 { return &p.SnoutDist }),
	"eta back cover thickness":     floatField(func(p *Params) *float64 { return &p.CoverThickness }),
	"eta to snout mount thickness": floatField(func(p *Params) *float64 { return &p.MountThickness }),
	"eta face radius":              floatField(func(p *Params) *float64 { return &p.FaceRadius }),
	"eta cone outer radius":        floatField(func(p *Params) *float64 { return &p.OuterRadius }),
	"eta cone opening angle":       floatField(func(p *Params) *float64 { return &p.ConeAngle }),

	"debris shield material":  stringField(func(p *Params) *string { return &p.DebrisShieldMat }),
	"eta structural material": stringField(func(p *Params) *string { return &p.StructMat }),
	"eta void fill material":  stringField(func(p *Params) *string { return &p.FillMat }),
	"fissile foil":            stringField(func(p *Params) *string { return &p.FissileMat }),

	"nas thickness": floatField(func(p *Params) *float64 { return &p.NASThickness }),
	"nas radius":    floatField(func(p *Params) *float64 { return &p.NASRadius }),
	"nas material":  stringField(func(p *Params) *string { return &p.NASMat }),

	"nas activation foils":          stringListField(func(p *Params) *[]string { return &p.NASFoilMats }),
	"nas activation foil thickness": floatListField(func(p *Params) *[]float64 { return &p.NASFoilThickness }),
	"nas activation foil radius":    floatField(func(p *Params) *float64 { return &p.NASFoilRadius }),
	"toad follows material":         stringField(func(p *Params) *string { return &p.TOADLoc }),

	"toad material":                  stringField(func(p *Params) *string { return &p.TOADMat }),
	"toad activation foils":          stringListField(func(p *Params) *[]string { return &p.TOADFoilMats }),
	"toad activation foil thickness": floatListField(func(p *Params) *[]float64 { return &p.TOADFoilThickness }),
	"toad activation foil radius":    floatField(func(p *Params) *float64 { return &p.TOADFoilRadius }),

	"holder material":       stringField(func(p *Params) *string { return &p.HolderMat }),
	"holder fill material":  stringField(func(p *Params) *string { return &p.HolderFillMat }),
	"holder wall thickness": floatField(func(p *Params) *float64 { return &p.HolderWallThickness }),

	"max vertical components":   intField(func(p *Params) *int { return &p.MaxVert }),
	"max horizontal components": intField(func(p *Params) *int { return &p.MaxHoriz }),
}

// ReadConstraints parses an ETA constraints file into the model. Each
// line is "Keyword,value[,value...]"; keywords are matched
// case-insensitively after trimming, list keywords consume every
// remaining token, later lines overwrite earlier ones, lines whose
// first token starts with "/" are comments, and unrecognized keywords
// are logged as warnings and skipped. After the last line the
// invariants are revalidated and the normalized minimum-fission
// threshold is recomputed exactly once; nothing is committed to the
// model unless all of that succeeds.
func (p *Params) ReadConstraints(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if p.missingIsEmpty && errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("constraints file missing, keeping default constraints",
				zap.String("path", path))
			return nil
		}
		p.logger.Error("cannot open constraints file",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: constraints %s: %w", ErrUnreadable, path, err)
	}
	defer f.Close()

	work := p.clone()
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Split(sc.Text(), ",")
		keyword := strings.TrimSpace(fields[0])
		if keyword == "" || strings.HasPrefix(keyword, "/") {
			continue
		}
		set, ok := constraintSetters[strings.ToLower(keyword)]
		if !ok {
			p.logger.Warn("unrecognized constraint keyword",
				zap.String("path", path), zap.Int("line", line), zap.String("keyword", keyword))
			continue
		}
		if err := set(work, fields[1:]); err != nil {
			return fmt.Errorf("constraints %s line %d (%s): %w", path, line, keyword, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: reading constraints %s: %w", ErrUnreadable, path, err)
	}

	if err := work.Validate(); err != nil {
		return fmt.Errorf("constraints %s: %w", path, err)
	}
	if err := work.normalizeMinFiss(); err != nil {
		return fmt.Errorf("constraints %s: %w", path, err)
	}
	*p = *work
	return nil
}
