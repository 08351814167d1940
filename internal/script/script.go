// Package script runs sessions of tree operations described in YAML.
//
//	mode: color-only
//	operations:
//	  - fill 10 20 30
//	  - op: insert
//	    args: [40]
//	  - rebalance-step
//	  - check
//
// Each operation is either a line "name arg1 arg2 ..." or a mapping with
// the "op" and "args" keys. The names are listed by Registry.Names().
package script

import (
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Command is a single line of the script.
type Command struct {
	Op   string
	Args []int
}

// String formats the command the way ParseCommand() accepts it.
func (cmd Command) String() string {
	parts := []string{cmd.Op}
	for _, arg := range cmd.Args {
		parts = append(parts, strconv.Itoa(arg))
	}
	return strings.Join(parts, " ")
}

// UnmarshalYAML accepts both the line and the mapping forms.
func (cmd *Command) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var line string
	if err := unmarshal(&line); err == nil {
		parsed, err := ParseCommand(line)
		if err != nil {
			return err
		}
		*cmd = parsed
		return nil
	}
	var mapping struct {
		Op   string `yaml:"op"`
		Args []int  `yaml:"args"`
	}
	if err := unmarshal(&mapping); err != nil {
		return err
	}
	if mapping.Op == "" {
		return errors.New("operation without \"op\"")
	}
	cmd.Op = strings.ToLower(mapping.Op)
	cmd.Args = mapping.Args
	return nil
}

// ParseCommand splits "name arg1 arg2 ..." into a Command.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.New("empty operation")
	}
	cmd := Command{Op: strings.ToLower(fields[0])}
	for _, field := range fields[1:] {
		arg, err := strconv.Atoi(field)
		if err != nil {
			return Command{}, errors.Errorf("%s: argument '%s' is not an integer", cmd.Op, field)
		}
		cmd.Args = append(cmd.Args, arg)
	}
	return cmd, nil
}

// Script is the parsed session.
type Script struct {
	// Mode is the operation which is executed first: "full", "color-only" or empty.
	Mode       string    `yaml:"mode"`
	Operations []Command `yaml:"operations"`
}

// Parse reads the script from YAML.
func Parse(data []byte) (*Script, error) {
	script := &Script{}
	if err := yaml.Unmarshal(data, script); err != nil {
		return nil, errors.Wrap(err, "invalid script")
	}
	switch script.Mode {
	case "", OperationName(&Full{}), OperationName(&ColorOnly{}):
	default:
		return nil, errors.Errorf("unknown mode \"%s\"", script.Mode)
	}
	for i, cmd := range script.Operations {
		if err := Validate(cmd); err != nil {
			return nil, errors.Wrapf(err, "operation #%d", i+1)
		}
	}
	return script, nil
}

// Load reads the script from the file in fs.
func Load(fs billy.Filesystem, path string) (*Script, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}
	script, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load %s", path)
	}
	return script, nil
}

// Commands returns the operations to execute, including the initial mode switch.
func (script *Script) Commands() []Command {
	if script.Mode == "" {
		return script.Operations
	}
	return append([]Command{{Op: script.Mode}}, script.Operations...)
}

// Validate checks that the operation exists and accepts the arguments.
func Validate(cmd Command) error {
	op, exists := Registry.Summon(cmd.Op)
	if !exists {
		return errors.Errorf("unknown operation \"%s\"", cmd.Op)
	}
	min, max := op.Arity()
	if len(cmd.Args) < min || (max >= 0 && len(cmd.Args) > max) {
		return errors.Errorf("%s: wrong number of arguments %d", cmd.Op, len(cmd.Args))
	}
	return nil
}
