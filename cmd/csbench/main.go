// csbench is a command-line microbenchmark harness. It runs the given
// commands repeatedly, measures wall-clock and CPU time per run, optionally
// extracts custom measurements from captured stdout, and prints statistical
// summaries with cross-command comparisons and complexity fits.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"golang.org/x/term"

	"github.com/Holodome/csbench/analyze"
	"github.com/Holodome/csbench/benchmark"
	"github.com/Holodome/csbench/logger"
)

// options is the full CLI surface
type options struct {
	Verbose []bool `short:"v" long:"verbose" description:"Show verbose debug information (-v - info, -vv - debug)"`
	Quiet   bool   `short:"Q" long:"quiet" description:"be quiet and print as less information as possible"`

	Warmup    float64 `short:"W" long:"warmup" description:"perform warmup runs for this number of seconds before measuring" default:"0"`
	TimeLimit float64 `short:"T" long:"time-limit" description:"wall time budget of the measurement loop in seconds" default:"5"`
	Runs      int     `short:"R" long:"runs" description:"perform exactly this number of runs (0 enables the adaptive loop)" default:"0"`
	MinRuns   int     `long:"min-runs" description:"lower bound on the number of runs in adaptive mode" default:"0"`
	MaxRuns   int     `long:"max-runs" description:"upper bound on the number of runs in adaptive mode" default:"0"`

	Prepare    string `long:"prepare" description:"command executed between measured runs"`
	NResamples int    `long:"nrs" description:"bootstrap resample count" default:"100000"`
	Shell      string `short:"S" long:"shell" description:"shell used to execute commands, or 'none' to exec directly" default:"/bin/sh"`
	Input      string `long:"input" description:"stdin of the benchmarked command ('null' or a file path)" default:"null"`
	Output     string `long:"output" description:"stdout of the benchmarked command (null|inherit)" default:"null"`
	Jobs       int    `short:"j" long:"jobs" description:"number of parallel workers" default:"1"`
	RandSeed   int64  `short:"s" long:"randseed" description:"seed used for bootstrap resampling" default:"1"`

	Scan     []string `long:"scan" description:"numeric parameter sweep, format name/begin/end[/step]"`
	ScanList []string `long:"scanl" description:"list parameter sweep, format name/v1,v2,..."`
	Custom   []string `long:"custom" description:"custom measurement parsing stdout as a number"`
	CustomX  []string `long:"custom-x" description:"custom measurement, format name/units/extractor-command"`

	Suite      string `long:"suite" description:"YAML suite file with commands, parameters and measurements"`
	ExportJSON string `long:"export-json" description:"export raw measurements as JSON to this file"`
	OutDir     string `short:"o" long:"out-dir" description:"write analysis artifacts to this directory"`
}

// fatal prints an error message and exits with a non-zero code
func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func logLevel(opts *options) logger.LogLevel {
	if opts.Quiet {
		return logger.LevelError
	}
	return logger.LogLevel(len(opts.Verbose)) + logger.LevelWarn
}

// buildConfig assembles the engine configuration from the suite file (when
// given) and the flags; flags changed from their defaults win
func buildConfig(opts *options, suite *benchmark.Suite) benchmark.Config {
	cfg := benchmark.DefaultConfig()

	if suite != nil {
		if suite.TimeLimit > 0 {
			cfg.TimeLimit = suite.TimeLimit
		}
		cfg.WarmupTime = suite.WarmupTime
		cfg.Runs = suite.Runs
		cfg.MinRuns = suite.MinRuns
		cfg.MaxRuns = suite.MaxRuns
		cfg.Prepare = suite.Prepare
		if suite.Shell != "" {
			cfg.Shell = suite.Shell
		}
		if suite.Workers > 0 {
			cfg.Workers = suite.Workers
		}
		if suite.NResamples > 0 {
			cfg.NResamples = suite.NResamples
		}
	}

	if opts.TimeLimit != 5 {
		cfg.TimeLimit = opts.TimeLimit
	}
	if opts.Warmup != 0 {
		cfg.WarmupTime = opts.Warmup
	}
	if opts.Runs != 0 {
		cfg.Runs = opts.Runs
	}
	if opts.MinRuns != 0 {
		cfg.MinRuns = opts.MinRuns
	}
	if opts.MaxRuns != 0 {
		cfg.MaxRuns = opts.MaxRuns
	}
	if opts.Prepare != "" {
		cfg.Prepare = opts.Prepare
	}
	if opts.Shell != "/bin/sh" {
		cfg.Shell = opts.Shell
	}
	if opts.Jobs != 1 {
		cfg.Workers = opts.Jobs
	}
	if opts.NResamples != 100000 {
		cfg.NResamples = opts.NResamples
	}
	cfg.Input = opts.Input
	cfg.RandSeed = opts.RandSeed

	switch opts.Output {
	case "", "null":
		cfg.Output = benchmark.OutputNull
	case "inherit":
		cfg.Output = benchmark.OutputInherit
	default:
		fatal("invalid output policy %q, expected null|inherit", opts.Output)
	}

	return cfg
}

// parseParams converts --scan and --scanl flags into sweep definitions
func parseParams(opts *options, suite *benchmark.Suite) ([]benchmark.Param, error) {
	var params []benchmark.Param
	if suite != nil {
		suiteParams, err := suite.ParamList()
		if err != nil {
			return nil, err
		}
		params = suiteParams
	}

	for _, spec := range opts.Scan {
		parts := strings.Split(spec, "/")
		if len(parts) != 3 && len(parts) != 4 {
			fatal("invalid --scan %q, expected name/begin/end[/step]", spec)
		}
		begin, err1 := strconv.ParseFloat(parts[1], 64)
		end, err2 := strconv.ParseFloat(parts[2], 64)
		if err1 != nil || err2 != nil {
			fatal("invalid --scan %q, bounds are not numbers", spec)
		}
		step := 1.0
		if len(parts) == 4 {
			var err error
			step, err = strconv.ParseFloat(parts[3], 64)
			if err != nil {
				fatal("invalid --scan %q, step is not a number", spec)
			}
		}
		p, err := benchmark.ParamFromRange(parts[0], begin, end, step)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}

	for _, spec := range opts.ScanList {
		name, values, ok := strings.Cut(spec, "/")
		if !ok || name == "" || values == "" {
			fatal("invalid --scanl %q, expected name/v1,v2,...", spec)
		}
		params = append(params, benchmark.Param{Name: name, Values: strings.Split(values, ",")})
	}

	return params, nil
}

// parseMeas converts --custom and --custom-x flags into measurement
// descriptors
func parseMeas(opts *options, suite *benchmark.Suite) []benchmark.Meas {
	var customs []benchmark.Meas
	if suite != nil {
		customs = suite.MeasList()
	}

	for _, name := range opts.Custom {
		customs = append(customs, benchmark.Meas{Name: name, Unit: benchmark.ParseUnit("")})
	}
	for _, spec := range opts.CustomX {
		parts := strings.SplitN(spec, "/", 3)
		if len(parts) != 3 {
			fatal("invalid --custom-x %q, expected name/units/command", spec)
		}
		customs = append(customs, benchmark.Meas{
			Name: parts[0],
			Cmd:  parts[2],
			Unit: benchmark.ParseUnit(parts[1]),
		})
	}

	return customs
}

func main() {
	var opts options
	parser := flags.NewNamedParser("csbench", flags.Default)
	parser.Usage = "[OPTIONS] COMMAND..."
	if _, err := parser.AddGroup("Benchmark options", "", &opts); err != nil {
		fatal("%v", err)
	}

	templates, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	log := logger.NewPlaneLogger(logLevel(&opts), false)

	var suite *benchmark.Suite
	if opts.Suite != "" {
		suite, err = benchmark.LoadSuite(opts.Suite)
		if err != nil {
			fatal("%v", err)
		}
		templates = append(templates, suite.Commands...)
	}

	cfg := buildConfig(&opts, suite)

	engine, err := benchmark.NewEngine(cfg, log)
	if err != nil {
		fatal("%v", err)
	}
	engine.AdjustFilenoUlimit()

	meas, err := benchmark.MeasList(parseMeas(&opts, suite))
	if err != nil {
		fatal("%v", err)
	}

	params, err := parseParams(&opts, suite)
	if err != nil {
		fatal("%v", err)
	}

	cmds, groups, err := benchmark.ExpandTemplates(
		templates, params, engine.Shell(), cfg.InputFile(), cfg.Output, meas)
	if err != nil {
		fatal("%v", err)
	}

	benches := make([]*benchmark.Bench, len(cmds))
	for i, cmd := range cmds {
		benches[i] = benchmark.NewBench(cmd, cfg.Prepare)
	}

	if err := engine.Run(benches); err != nil {
		fatal("%v", err)
	}

	res := &analyze.Results{Meas: meas, Benches: benches, Groups: groups}

	a, err := analyze.Analyze(res, cfg.NResamples, uint32(cfg.RandSeed))
	if err != nil {
		fatal("%v", err)
	}

	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	if err := analyze.WriteReport(os.Stdout, a); err != nil {
		fatal("%v", err)
	}

	if opts.ExportJSON != "" {
		f, err := os.Create(opts.ExportJSON)
		if err != nil {
			fatal("cannot create export file: %v", err)
		}
		if err := analyze.ExportJSON(f, cfg, res); err != nil {
			f.Close()
			fatal("%v", err)
		}
		f.Close()
	}

	if opts.OutDir != "" {
		if err := analyze.WriteArtifacts(opts.OutDir, a); err != nil {
			fatal("%v", err)
		}
	}
}
