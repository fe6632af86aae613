package benchmark

import (
	"os/exec"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/shlex"
	"github.com/pkg/errors"
)

// OutputKind is the policy for the child's stdout when it is not captured
type OutputKind int

const (
	// OutputNull redirects the child's stdout to /dev/null
	OutputNull OutputKind = iota
	// OutputInherit attaches the child's stdout to the parent's
	OutputInherit
)

// Command describes one benchmarked command line
type Command struct {
	// Str is the command as the user wrote it
	Str string
	// Exec is the executable path resolved against PATH
	Exec string
	// Argv is the full argument vector; Argv[0] repeats the executable name
	Argv []string
	// Input is the stdin policy: empty means /dev/null, otherwise a file path
	Input string
	// Output is the stdout policy applied when stdout is not captured
	Output OutputKind
	// Meas is the measurement descriptor list shared by every command
	Meas []Meas
}

// GroupValue is one (parameter value, command index) element of a group
type GroupValue struct {
	Value  string
	CmdIdx int
}

// CmdGroup is a family of commands produced from a single template by
// substituting one parameter across multiple values
type CmdGroup struct {
	Template string
	Var      string
	Values   []GroupValue
}

// Param is one parameter sweep definition
type Param struct {
	Name   string
	Values []string
}

// ParamFromRange builds a sweep from an inclusive numeric range
func ParamFromRange(name string, begin, end, step float64) (Param, error) {
	if step <= 0 {
		return Param{}, errors.Wrapf(ErrConfig, "parameter %q: step must be positive", name)
	}
	if end < begin {
		return Param{}, errors.Wrapf(ErrConfig, "parameter %q: empty range", name)
	}

	p := Param{Name: name}
	for i := 0; ; i++ {
		v := begin + float64(i)*step
		if v > end+step*1e-9 {
			break
		}
		p.Values = append(p.Values, strconv.FormatFloat(v, 'g', 10, 64))
	}
	return p, nil
}

// SplitShell parses the shell setting into an argument vector.
// "none" (or an empty string) disables the shell and returns nil.
func SplitShell(shell string) ([]string, error) {
	if shell == "" || shell == "none" {
		return nil, nil
	}
	words, err := shlex.Split(shell)
	if err != nil {
		return nil, errors.Wrapf(ErrConfig, "invalid shell %q: %v", shell, err)
	}
	if len(words) == 0 {
		return nil, errors.Wrapf(ErrConfig, "invalid shell %q", shell)
	}
	return words, nil
}

// NewCommand builds a command descriptor. When shell is nil the command
// string is tokenized with POSIX-like quoting and exec'd directly, otherwise
// the invocation is `<shell-argv> -c <command>`.
func NewCommand(cmdStr string, shell []string, input string, output OutputKind, meas []Meas) (*Command, error) {
	var argv []string
	if len(shell) == 0 {
		words, err := shlex.Split(cmdStr)
		if err != nil {
			return nil, errors.Wrapf(ErrConfig, "invalid command %q: %v", cmdStr, err)
		}
		if len(words) == 0 {
			return nil, errors.Wrapf(ErrConfig, "empty command")
		}
		argv = words
	} else {
		argv = make([]string, 0, len(shell)+2)
		argv = append(argv, shell...)
		argv = append(argv, "-c", cmdStr)
	}

	exe, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, errors.Wrapf(ErrConfig, "cannot find executable %q", argv[0])
	}

	return &Command{
		Str:    cmdStr,
		Exec:   exe,
		Argv:   argv,
		Input:  input,
		Output: output,
		Meas:   meas,
	}, nil
}

func paramRef(name string) string {
	return "{" + name + "}"
}

// ExpandTemplates turns command templates and parameter sweeps into the flat
// command vector and its groups. A template referencing a parameter expands
// into one command per value; templates may reference at most one parameter.
func ExpandTemplates(templates []string, params []Param, shell []string, input string, output OutputKind, meas []Meas) ([]*Command, []CmdGroup, error) {
	if len(templates) == 0 {
		return nil, nil, errors.Wrap(ErrConfig, "empty command list")
	}

	names := mapset.NewThreadUnsafeSet[string]()
	for _, p := range params {
		if len(p.Values) == 0 {
			return nil, nil, errors.Wrapf(ErrConfig, "parameter %q has no values", p.Name)
		}
		if !names.Add(p.Name) {
			return nil, nil, errors.Wrapf(ErrConfig, "duplicate parameter %q", p.Name)
		}
	}

	var cmds []*Command
	var groups []CmdGroup
	for _, tmpl := range templates {
		var matched []Param
		for _, p := range params {
			if strings.Contains(tmpl, paramRef(p.Name)) {
				matched = append(matched, p)
			}
		}

		switch len(matched) {
		case 0:
			cmd, err := NewCommand(tmpl, shell, input, output, meas)
			if err != nil {
				return nil, nil, err
			}
			cmds = append(cmds, cmd)
		case 1:
			p := matched[0]
			group := CmdGroup{Template: tmpl, Var: p.Name}
			for _, value := range p.Values {
				cmdStr := strings.ReplaceAll(tmpl, paramRef(p.Name), value)
				cmd, err := NewCommand(cmdStr, shell, input, output, meas)
				if err != nil {
					return nil, nil, err
				}
				group.Values = append(group.Values, GroupValue{Value: value, CmdIdx: len(cmds)})
				cmds = append(cmds, cmd)
			}
			groups = append(groups, group)
		default:
			return nil, nil, errors.Wrapf(ErrConfig, "template %q references more than one parameter", tmpl)
		}
	}

	return cmds, groups, nil
}
