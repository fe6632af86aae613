package analyze

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/Holodome/csbench/benchmark"
)

// The measurement file format. Sample vectors are exported verbatim so that
// external tooling can rerun any analysis offline.

type exportSettings struct {
	TimeLimit  float64 `json:"time_limit"`
	Runs       int     `json:"runs"`
	MinRuns    int     `json:"min_runs"`
	MaxRuns    int     `json:"max_runs"`
	WarmupTime float64 `json:"warmup_time"`
	NResamp    int     `json:"nresamp"`
}

type exportMeas struct {
	Name  string    `json:"name"`
	Units string    `json:"units"`
	Cmd   string    `json:"cmd"`
	Val   []float64 `json:"val"`
}

type exportBench struct {
	Prepare    string       `json:"prepare"`
	Command    string       `json:"command"`
	RunCount   int          `json:"run_count"`
	Wallclock  []float64    `json:"wallclock"`
	Sys        []float64    `json:"sys"`
	User       []float64    `json:"user"`
	ExitCodes  []int        `json:"exit_codes"`
	CustomMeas []exportMeas `json:"custom_meas"`
}

type exportFile struct {
	Settings exportSettings `json:"settings"`
	Benches  []exportBench  `json:"benches"`
}

// ExportJSON writes the raw measurement data of a results bundle
func ExportJSON(w io.Writer, cfg benchmark.Config, res *Results) error {
	file := exportFile{
		Settings: exportSettings{
			TimeLimit:  cfg.TimeLimit,
			Runs:       cfg.Runs,
			MinRuns:    cfg.MinRuns,
			MaxRuns:    cfg.MaxRuns,
			WarmupTime: cfg.WarmupTime,
			NResamp:    cfg.NResamples,
		},
	}

	for _, b := range res.Benches {
		eb := exportBench{
			Prepare:   b.PrepareCmd,
			Command:   b.Cmd.Str,
			RunCount:  b.RunCount(),
			Wallclock: b.Wall(),
			Sys:       b.SysTimes,
			User:      b.UserTimes,
			ExitCodes: b.ExitCodes,
		}
		for i, m := range res.Meas[1:] {
			eb.CustomMeas = append(eb.CustomMeas, exportMeas{
				Name:  m.Name,
				Units: m.Unit.String(),
				Cmd:   m.Cmd,
				Val:   b.Meas[i+1],
			})
		}
		file.Benches = append(file.Benches, eb)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&file); err != nil {
		return errors.Wrap(err, "cannot export measurements")
	}
	return nil
}
