package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cyraxred/redblack/internal/rbtree"
	"github.com/cyraxred/redblack/internal/verify"
	"github.com/cyraxred/redblack/internal/yaml"
)

// verifyCmd runs the randomized self-check
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the Red-Black properties on random sessions.",
	Long: `Run independent random sessions of insertions and deletions in parallel and check
the Red-Black properties together with the set of keys after every operation. The failed
sessions are printed as the lists of operations which reproduce them with "run".`,
	Args: cobra.MaximumNArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		getInt := func(name string) int {
			value, err := flags.GetInt(name)
			if err != nil {
				panic(err)
			}
			return value
		}
		colorOnly, err := flags.GetBool("color-only")
		if err != nil {
			panic(err)
		}
		seed, err := flags.GetInt64("seed")
		if err != nil {
			panic(err)
		}
		opts := verify.Options{
			Trials:     getInt("trials"),
			Operations: getInt("operations"),
			KeyRange:   getInt("key-range"),
			Seed:       seed,
			ColorOnly:  colorOnly,
			Workers:    getInt("workers"),
		}
		update, finish := newProgressBar(isQuiet(cmd), "verify")
		done := 0
		summary, err := verify.Run(opts, newLogger(cmd), func() {
			done++
			update(done, opts.Trials)
		})
		finish()
		if err != nil {
			return err
		}
		printHeader(os.Stdout, "verify")
		printSummary(os.Stdout, opts, summary)
		if len(summary.Failures) > 0 {
			return errors.Errorf("%d trial(s) out of %d failed", len(summary.Failures), summary.Trials)
		}
		return nil
	},
}

func printSummary(writer io.Writer, opts verify.Options, summary verify.Summary) {
	mode := rbtree.FullMode
	if opts.ColorOnly {
		mode = rbtree.ColorOnlyMode
	}
	fmt.Fprintln(writer, "verify:")
	fmt.Fprintf(writer, "  mode: %s\n", yaml.SafeString(mode.String()))
	fmt.Fprintf(writer, "  seed: %d\n", opts.Seed)
	fmt.Fprintf(writer, "  trials: %d\n", summary.Trials)
	fmt.Fprintf(writer, "  operations: %d\n", summary.Operations)
	fmt.Fprintf(writer, "  failed: %d\n", len(summary.Failures))
	if len(summary.Failures) == 0 {
		fmt.Fprintln(writer, "  failures: []")
		return
	}
	fmt.Fprintln(writer, "  failures:")
	for _, failure := range summary.Failures {
		fmt.Fprintf(writer, "    - trial: %d\n", failure.Trial)
		fmt.Fprintf(writer, "      seed: %d\n", failure.Seed)
		messages := make([]string, len(failure.Violations))
		for i, v := range failure.Violations {
			messages[i] = v.Message
		}
		yaml.PrintStrings(writer, messages, 6, "violations")
		yaml.PrintInts(writer, failure.Missing, 6, "missing")
		yaml.PrintInts(writer, failure.Unexpected, 6, "unexpected")
		yaml.PrintInts(writer, failure.Unreachable, 6, "unreachable")
		commands := make([]string, len(failure.Commands))
		for i, c := range failure.Commands {
			commands[i] = c.String()
		}
		yaml.PrintStrings(writer, commands, 6, "operations")
	}
}

func init() {
	flags := verifyCmd.Flags()
	flags.Int("trials", 100, "Number of independent random sessions.")
	flags.Int("operations", verify.DefaultOperations, "Number of operations in each session.")
	flags.Int("key-range", verify.DefaultKeyRange, "The keys are generated from [0, key-range).")
	flags.Int64("seed", 0, "Random generator seed of the first session, the next ones increment it.")
	flags.Int("workers", 0, "Number of parallel workers, the number of CPUs if zero.")
}
