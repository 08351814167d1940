package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/cyraxred/redblack/internal/core"
	"github.com/cyraxred/redblack/internal/pb"
	"github.com/cyraxred/redblack/internal/rbtree"
	"github.com/cyraxred/redblack/internal/report"
	"github.com/cyraxred/redblack/internal/yaml"
)

// Result is the outcome of a single Command.
type Result struct {
	Command
	// Steps are the step log entries written by the operation.
	Steps  []string
	Output []string
	// Diff is the line diff of the rendering, empty unless Runner.Diff is set.
	Diff   string
	Digest uint64
}

// ToPB converts the result to the Protocol Buffers message.
func (r Result) ToPB() *pb.Operation {
	return &pb.Operation{
		Name:      r.Op,
		Arguments: pb.ToInt64s(r.Args),
		Steps:     r.Steps,
		Output:    r.Output,
		Diff:      r.Diff,
		Digest:    report.FormatDigest(r.Digest),
	}
}

// Runner applies commands to a tree. The step log of the tree is drained
// after every command and moved to the corresponding Result.
type Runner struct {
	Tree *rbtree.Tree
	// Diff enables the rendering diffs.
	Diff bool
	// OnProgress is called after each command, may be nil.
	OnProgress func(done, total int)

	l core.Logger
}

// NewRunner creates a Runner for the tree.
func NewRunner(tree *rbtree.Tree, logger core.Logger) *Runner {
	if logger == nil {
		logger = core.NewLogger(false)
	}
	return &Runner{Tree: tree, l: logger}
}

// Run executes the commands of the script. The script is validated first, so
// the tree is not touched if any command is invalid.
func (runner *Runner) Run(script *Script) ([]Result, error) {
	commands := script.Commands()
	for _, cmd := range commands {
		if err := Validate(cmd); err != nil {
			return nil, err
		}
	}
	runner.Tree.DrainSteps()
	results := make([]Result, 0, len(commands))
	for i, cmd := range commands {
		result, err := runner.Exec(cmd)
		if err != nil {
			return results, err
		}
		results = append(results, result)
		if runner.OnProgress != nil {
			runner.OnProgress(i+1, len(commands))
		}
	}
	return results, nil
}

// Exec applies a single command.
func (runner *Runner) Exec(cmd Command) (Result, error) {
	if err := Validate(cmd); err != nil {
		return Result{}, err
	}
	op, _ := Registry.Summon(cmd.Op)
	var before string
	if runner.Diff {
		before = report.Render(runner.Tree)
	}
	output := op.Apply(runner.Tree, cmd.Args)
	result := Result{
		Command: cmd,
		Steps:   runner.Tree.DrainSteps(),
		Output:  output,
		Digest:  report.Digest(runner.Tree),
	}
	if runner.Diff {
		result.Diff = diffLines(before, report.Render(runner.Tree))
	}
	for _, line := range output {
		runner.l.Info(line)
	}
	return result, nil
}

// diffLines returns the changed lines prefixed with "-" and "+", the same lines
// prefixed with " ". The result is empty if nothing changed.
func diffLines(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	src, dst, lines := dmp.DiffLinesToRunes(before+"\n", after+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(src, dst, false), lines)
	builder := &strings.Builder{}
	for _, edit := range diffs {
		prefix := " "
		switch edit.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.SplitAfter(edit.Text, "\n") {
			if line == "" {
				continue
			}
			builder.WriteString(prefix + line)
		}
	}
	return strings.TrimRight(builder.String(), "\n")
}

// SerializeText writes the results as a YAML sequence.
//
// `indent` is the current YAML indentation level - the number of spaces.
func SerializeText(results []Result, writer io.Writer, indent int) {
	prefix := strings.Repeat(" ", indent)
	if len(results) == 0 {
		fmt.Fprintf(writer, "%s[]\n", prefix)
		return
	}
	for _, r := range results {
		fmt.Fprintf(writer, "%s- op: %s\n", prefix, yaml.SafeString(r.Op))
		yaml.PrintInts(writer, r.Args, indent+2, "args")
		yaml.PrintStrings(writer, r.Steps, indent+2, "steps")
		if len(r.Output) > 0 {
			yaml.PrintStrings(writer, r.Output, indent+2, "output")
		}
		if r.Diff != "" {
			yaml.PrintBlock(writer, r.Diff, indent+2, "diff")
		}
		fmt.Fprintf(writer, "%s  digest: %s\n", prefix, yaml.SafeString(report.FormatDigest(r.Digest)))
	}
}
