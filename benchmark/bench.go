package benchmark

// Bench is the record of one benchmarked command. It is created before
// execution, mutated only by the dispatcher worker that owns it, and holds
// one sample vector per collected quantity. After n runs every vector has
// length n and the i-th position of every vector belongs to the same run.
type Bench struct {
	Cmd *Command
	// PrepareCmd is executed between measured runs, empty disables it
	PrepareCmd string

	ExitCodes []int
	UserTimes []float64
	SysTimes  []float64
	// Meas holds one sample vector per measurement descriptor;
	// Meas[0] is the wall clock
	Meas [][]float64

	err error
}

// NewBench creates an empty record for the given command
func NewBench(cmd *Command, prepare string) *Bench {
	return &Bench{
		Cmd:        cmd,
		PrepareCmd: prepare,
		Meas:       make([][]float64, len(cmd.Meas)),
	}
}

// RunCount returns the number of completed measured runs
func (b *Bench) RunCount() int {
	return len(b.ExitCodes)
}

// Wall returns the wall-clock sample vector
func (b *Bench) Wall() []float64 {
	return b.Meas[0]
}

// Err returns the error that terminated this benchmark, if any
func (b *Bench) Err() error {
	return b.err
}

// record appends the samples of one completed run to every vector
func (b *Bench) record(rm runMeasurement, customs []float64) {
	b.ExitCodes = append(b.ExitCodes, rm.exitCode)
	b.UserTimes = append(b.UserTimes, rm.user)
	b.SysTimes = append(b.SysTimes, rm.sys)
	b.Meas[0] = append(b.Meas[0], rm.wall)
	for i, v := range customs {
		b.Meas[i+1] = append(b.Meas[i+1], v)
	}
}
