package benchmark

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// maxExtractorOutput bounds how much of the extractor's stdout is parsed
const maxExtractorOutput = 4096

// defaultShell runs prepare and extractor commands when the benchmark shell
// is disabled
var defaultShell = []string{"/bin/sh"}

// runMeasurement is the raw result of a single child process run
type runMeasurement struct {
	exitCode int
	wall     float64
	user     float64
	sys      float64
}

// spawnWait runs the command once and measures it. The wall clock samples
// bracket the spawn..wait region using the monotonic clock. When capture is
// non-nil the child's stdout goes there and stderr is discarded, otherwise
// the configured output policy applies.
func (e *Engine) spawnWait(cmd *Command, capture *os.File) (runMeasurement, error) {
	var rm runMeasurement

	c := &exec.Cmd{Path: cmd.Exec, Args: cmd.Argv}

	if cmd.Input != "" {
		in, err := os.Open(cmd.Input)
		if err != nil {
			return rm, errors.Wrapf(ErrChildSpawn, "cannot open input file %q", cmd.Input)
		}
		defer in.Close()
		c.Stdin = in
	}

	if capture != nil {
		c.Stdout = capture
	} else if cmd.Output == OutputInherit {
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
	}

	start := time.Now()
	if err := c.Start(); err != nil {
		return rm, errors.Wrapf(ErrChildSpawn, "command %q: %v", cmd.Str, err)
	}

	err := c.Wait()
	rm.wall = time.Since(start).Seconds()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return rm, errors.Wrapf(ErrChildWait, "command %q: %v", cmd.Str, err)
	}

	st := c.ProcessState
	rm.exitCode = exitStatus(st)
	rm.user = st.UserTime().Seconds()
	rm.sys = st.SystemTime().Seconds()
	return rm, nil
}

// newCaptureFile creates a uniquely named temporary file for the child's
// stdout. The caller releases it with releaseCaptureFile on every exit path.
func newCaptureFile() (*os.File, error) {
	path := filepath.Join(os.TempDir(), "csbench-"+uuid.NewString())
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, errors.Wrapf(ErrChildSpawn, "cannot create capture file: %v", err)
	}
	return f, nil
}

func releaseCaptureFile(f *os.File) {
	name := f.Name()
	f.Close()
	os.Remove(name)
}

var floatPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// parseLeadingFloat parses the leading floating-point number of s,
// skipping leading whitespace
func parseLeadingFloat(s string) (float64, error) {
	s = strings.TrimLeft(s, " \t\r\n")
	m := floatPrefix.FindString(s)
	if m == "" {
		return 0, errors.New("no number prefix")
	}
	return strconv.ParseFloat(m, 64)
}

// extract produces the scalar of one custom measurement from the captured
// stdout. A non-empty extractor command runs under the shell with the
// capture as its stdin; an empty one parses the capture directly.
func (e *Engine) extract(capture *os.File, m Meas) (float64, error) {
	if _, err := capture.Seek(0, io.SeekStart); err != nil {
		return 0, errors.Wrapf(ErrExtractor, "measurement %q: %v", m.Name, err)
	}

	var raw []byte
	if m.Cmd == "" {
		buf := make([]byte, maxExtractorOutput)
		n, err := io.ReadFull(capture, buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return 0, errors.Wrapf(ErrExtractor, "measurement %q: %v", m.Name, err)
		}
		raw = buf[:n]
	} else {
		shell := e.shell
		if len(shell) == 0 {
			shell = defaultShell
		}

		c := exec.Command(shell[0], append(shell[1:], "-c", m.Cmd)...)
		c.Stdin = capture
		var out bytes.Buffer
		c.Stdout = &out
		if err := c.Run(); err != nil {
			return 0, errors.Wrapf(ErrExtractor, "measurement %q: extractor %q: %v", m.Name, m.Cmd, err)
		}

		raw = out.Bytes()
		if len(raw) > maxExtractorOutput {
			raw = raw[:maxExtractorOutput]
		}
	}

	v, err := parseLeadingFloat(string(raw))
	if err != nil {
		return 0, errors.Wrapf(ErrExtractor, "measurement %q: %v", m.Name, err)
	}
	return v, nil
}

// runPrepare runs the prepare command under the shell with all stdio
// redirected to /dev/null and requires a clean exit
func (e *Engine) runPrepare(prepare string) error {
	shell := e.shell
	if len(shell) == 0 {
		shell = defaultShell
	}

	c := exec.Command(shell[0], append(shell[1:], "-c", prepare)...)
	if err := c.Run(); err != nil {
		return errors.Wrapf(ErrPrepare, "%q: %v", prepare, err)
	}
	return nil
}
