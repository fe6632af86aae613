package benchmark

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Suite is an optional YAML description of a whole benchmark run: the
// commands, the parameter sweeps and the custom measurements. Command-line
// flags override the suite settings.
type Suite struct {
	TimeLimit  float64 `yaml:"time_limit"`
	WarmupTime float64 `yaml:"warmup_time"`
	Runs       int     `yaml:"runs"`
	MinRuns    int     `yaml:"min_runs"`
	MaxRuns    int     `yaml:"max_runs"`
	Prepare    string  `yaml:"prepare"`
	Shell      string  `yaml:"shell"`
	Workers    int     `yaml:"workers"`
	NResamples int     `yaml:"nresamp"`

	Commands     []string     `yaml:"commands"`
	Params       []SuiteParam `yaml:"params"`
	Measurements []SuiteMeas  `yaml:"measurements"`
}

// SuiteParam declares one parameter sweep, either as an explicit value list
// or as a numeric range
type SuiteParam struct {
	Name  string      `yaml:"name"`
	List  []string    `yaml:"list"`
	Range *SuiteRange `yaml:"range"`
}

// SuiteRange is an inclusive numeric range with a step
type SuiteRange struct {
	Begin float64 `yaml:"begin"`
	End   float64 `yaml:"end"`
	Step  float64 `yaml:"step"`
}

// SuiteMeas declares one custom measurement
type SuiteMeas struct {
	Name  string `yaml:"name"`
	Units string `yaml:"units"`
	Cmd   string `yaml:"cmd"`
}

// LoadSuite reads and parses a suite file
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrConfig, "cannot read suite file %q", path)
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(ErrConfig, "cannot parse suite file %q: %v", path, err)
	}
	return &s, nil
}

// ParamList converts the suite sweep declarations into Param values
func (s *Suite) ParamList() ([]Param, error) {
	params := make([]Param, 0, len(s.Params))
	for _, sp := range s.Params {
		switch {
		case sp.Name == "":
			return nil, errors.Wrap(ErrConfig, "suite parameter without a name")
		case len(sp.List) > 0:
			params = append(params, Param{Name: sp.Name, Values: sp.List})
		case sp.Range != nil:
			p, err := ParamFromRange(sp.Name, sp.Range.Begin, sp.Range.End, sp.Range.Step)
			if err != nil {
				return nil, err
			}
			params = append(params, p)
		default:
			return nil, errors.Wrapf(ErrConfig, "suite parameter %q has neither list nor range", sp.Name)
		}
	}
	return params, nil
}

// MeasList converts the suite measurement declarations into descriptors
func (s *Suite) MeasList() []Meas {
	meas := make([]Meas, 0, len(s.Measurements))
	for _, sm := range s.Measurements {
		meas = append(meas, Meas{Name: sm.Name, Cmd: sm.Cmd, Unit: ParseUnit(sm.Units)})
	}
	return meas
}
