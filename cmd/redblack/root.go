package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"
	"unicode"

	"github.com/Masterminds/sprig"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/gogo/protobuf/proto"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/ssh/terminal"
	progress "gopkg.in/cheggaaa/pb.v1"

	"github.com/cyraxred/redblack"
	"github.com/cyraxred/redblack/internal/core"
	"github.com/cyraxred/redblack/internal/keyfile"
	"github.com/cyraxred/redblack/internal/pb"
	"github.com/cyraxred/redblack/internal/rbtree"
	"github.com/cyraxred/redblack/internal/report"
	"github.com/cyraxred/redblack/internal/script"
)

// treeOptions describe where the initial keys come from.
type treeOptions struct {
	ColorOnly   bool
	Load        string
	Save        string
	Random      int
	Seed        int64
	MedianFirst bool
	Keys        []int
}

func addTreeFlags(flags *pflag.FlagSet) {
	flags.String("load", "", "Path to the text file with the whitespace separated keys to insert.")
	flags.String("save", "", "Write the keys of the resulting tree to this file.")
	flags.Int("random", 0, "Insert this number of random keys.")
	flags.Int64("seed", -1, "Random generator seed, negative means the current time.")
	flags.Bool("median-first", false, "Insert the median key first. Together with --random, "+
		"generates the keys from a wider range which may repeat and rebalances after each "+
		"insertion in the full mode.")
	flags.Bool("pb", false, "The output format will be Protocol Buffers instead of YAML.")
}

func readTreeOptions(cmd *cobra.Command, args []string) (treeOptions, error) {
	flags := cmd.Flags()
	getBool := func(name string) bool {
		value, err := flags.GetBool(name)
		if err != nil {
			panic(err)
		}
		return value
	}
	getString := func(name string) string {
		value, err := flags.GetString(name)
		if err != nil {
			panic(err)
		}
		return value
	}
	opts := treeOptions{
		ColorOnly:   getBool("color-only"),
		Load:        getString("load"),
		Save:        getString("save"),
		MedianFirst: getBool("median-first"),
	}
	var err error
	if opts.Random, err = flags.GetInt("random"); err != nil {
		panic(err)
	}
	if opts.Seed, err = flags.GetInt64("seed"); err != nil {
		panic(err)
	}
	if opts.Random < 0 {
		return opts, errors.Errorf("--random must not be negative, got %d", opts.Random)
	}
	opts.Keys, err = parseKeys(args)
	return opts, err
}

func parseKeys(args []string) ([]int, error) {
	keys := make([]int, 0, len(args))
	for _, arg := range args {
		key, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.Errorf("'%s' is not an integer key", arg)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// openFS returns the OS filesystem rooted at the parent directory of path and
// the file name inside it. "~" is expanded.
func openFS(path string) (billy.Filesystem, string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, "", errors.Wrapf(err, "cannot expand %s", path)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, "", errors.Wrapf(err, "cannot resolve %s", path)
	}
	return osfs.New(filepath.Dir(abs)), filepath.Base(abs), nil
}

// keyBatch is the group of keys from one source.
type keyBatch struct {
	Keys []int
	// Drain rebalances after each insertion, otherwise the nodes stay pending.
	Drain bool
	// Full inserts the keys in FullMode regardless of --color-only.
	Full bool
}

// collectKeys gathers the keys from --load, --random and the positional
// arguments, in this order. The loaded and the random keys are left pending,
// the balanced random keys and the positional keys are rebalanced one by one.
// The second returned value describes the source.
func collectKeys(opts treeOptions, fs billy.Filesystem, logger core.Logger) ([]keyBatch, string, error) {
	var batches []keyBatch
	var sources []string
	if opts.Load != "" {
		loaded, err := keyfile.Load(fs, opts.Load, logger)
		if err != nil {
			return nil, "", err
		}
		logger.Infof("Loaded %d nodes from file: %s", len(loaded), opts.Load)
		batches = append(batches, keyBatch{Keys: loaded})
		sources = append(sources, opts.Load)
	}
	if opts.Random > 0 {
		seed := opts.Seed
		if seed < 0 {
			seed = time.Now().UnixNano()
		}
		rnd := rand.New(rand.NewSource(seed))
		batch := keyBatch{}
		var err error
		if opts.MedianFirst {
			batch.Keys, err = keyfile.Balanced(rnd, opts.Random)
			batch.Drain = true
			batch.Full = true
		} else {
			batch.Keys, err = keyfile.Random(rnd, opts.Random)
		}
		if err != nil {
			return nil, "", err
		}
		logger.Infof("Generated %d keys with seed %d.", opts.Random, seed)
		batches = append(batches, batch)
		sources = append(sources, fmt.Sprintf("random:%d:%d", opts.Random, seed))
	}
	if len(opts.Keys) > 0 {
		keys := opts.Keys
		if opts.MedianFirst && opts.Random == 0 {
			keys = keyfile.MedianFirst(keys)
		}
		batches = append(batches, keyBatch{Keys: keys, Drain: true})
		sources = append(sources, "args")
	}
	return batches, strings.Join(sources, ","), nil
}

// buildTree inserts the batches in order. Draining a batch also fixes the
// nodes left pending by the previous ones.
func buildTree(batches []keyBatch, colorOnly bool, logger core.Logger,
	onProgress func(done, total int)) *rbtree.Tree {
	tree := rbtree.New(colorOnly)
	tree.SetLogger(logger)
	total := 0
	for _, batch := range batches {
		total += len(batch.Keys)
	}
	done := 0
	for _, batch := range batches {
		forced := batch.Full && tree.ColorOnly()
		if forced {
			tree.SetMode(rbtree.FullMode)
		}
		for _, key := range batch.Keys {
			tree.Insert(key)
			if batch.Drain {
				tree.RebalanceAll()
			}
			done++
			if onProgress != nil {
				onProgress(done, total)
			}
		}
		if forced {
			tree.SetMode(rbtree.ColorOnlyMode)
		}
	}
	return tree
}

// saveKeys writes the inorder keys of the tree if path is not empty.
func saveKeys(tree *rbtree.Tree, fs billy.Filesystem, path string, logger core.Logger) error {
	if path == "" {
		return nil
	}
	keys := tree.Keys()
	if err := keyfile.Save(fs, path, keys); err != nil {
		return err
	}
	logger.Infof("Saved %d nodes to file: %s", len(keys), path)
	return nil
}

// fsFor works like openFS() but keeps the empty path empty.
func fsFor(path string) (billy.Filesystem, string, error) {
	if path == "" {
		return nil, "", nil
	}
	return openFS(path)
}

// newProgressBar returns the progress callback and the finalizer. Both do
// nothing if quiet is true.
func newProgressBar(quiet bool, action string) (func(done, total int), func()) {
	if quiet {
		return func(int, int) {}, func() {}
	}
	var bar *progress.ProgressBar
	update := func(done, total int) {
		if bar == nil {
			bar = progress.New(total)
			bar.Callback = func(msg string) {
				os.Stderr.WriteString("\033[2K\r" + msg)
			}
			bar.NotPrint = true
			bar.ShowPercent = false
			bar.ShowSpeed = false
			bar.SetMaxWidth(80).Start()
		}
		bar.Set(done).Postfix(" [" + action + "] ")
	}
	finish := func() {
		if bar != nil {
			bar.Finish()
			fmt.Fprint(os.Stderr, "\033[2K\r")
		}
	}
	return update, finish
}

func newLogger(cmd *cobra.Command) *core.DefaultLogger {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		panic(err)
	}
	return core.NewLogger(verbose)
}

func isQuiet(cmd *cobra.Command) bool {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		panic(err)
	}
	return quiet
}

func isProtobuf(cmd *cobra.Command) bool {
	value, err := cmd.Flags().GetBool("pb")
	if err != nil {
		panic(err)
	}
	return value
}

// prepareTree is the common part of build and run: collect the keys, build the tree.
func prepareTree(cmd *cobra.Command, args []string, logger core.Logger) (
	*rbtree.Tree, treeOptions, string, error) {
	opts, err := readTreeOptions(cmd, args)
	if err != nil {
		return nil, opts, "", err
	}
	loadFS, loadPath, err := fsFor(opts.Load)
	if err != nil {
		return nil, opts, "", err
	}
	opts.Load = loadPath
	batches, source, err := collectKeys(opts, loadFS, logger)
	if err != nil {
		return nil, opts, "", err
	}
	update, finish := newProgressBar(isQuiet(cmd), "insert")
	tree := buildTree(batches, opts.ColorOnly, logger, update)
	finish()
	return tree, opts, source, nil
}

func printHeader(writer io.Writer, source string) {
	fmt.Fprintln(writer, "redblack:")
	fmt.Fprintf(writer, "  version: %d\n", redblack.BinaryVersion)
	fmt.Fprintln(writer, "  hash:", redblack.BinaryGitHash)
	fmt.Fprintln(writer, "  source:", strconv.Quote(source))
}

func metadata(source string) *pb.Metadata {
	return &pb.Metadata{
		Version: int32(redblack.BinaryVersion),
		Hash:    redblack.BinaryGitHash,
		Source:  source,
	}
}

func printResults(writer io.Writer, source string, results []script.Result, final report.Report) {
	printHeader(writer, source)
	if results != nil {
		fmt.Fprintln(writer, "operations:")
		script.SerializeText(results, writer, 2)
	}
	fmt.Fprintln(writer, "tree:")
	final.SerializeText(writer, 2)
}

func protobufResults(writer io.Writer, source string, results []script.Result,
	final report.Report) error {
	message := pb.Results{
		Header: metadata(source),
		Final:  final.ToPB(),
	}
	for _, r := range results {
		message.Operations = append(message.Operations, r.ToPB())
	}
	serialized, err := proto.Marshal(&message)
	if err != nil {
		return err
	}
	_, err = writer.Write(serialized)
	return err
}

func writeResults(cmd *cobra.Command, source string, results []script.Result,
	final report.Report) error {
	if !isQuiet(cmd) && !terminal.IsTerminal(int(os.Stdout.Fd())) {
		// if not a terminal, the user will not see the output, so show the status
		fmt.Fprint(os.Stderr, "writing...\r")
		defer fmt.Fprint(os.Stderr, "\033[2K\r")
	}
	if isProtobuf(cmd) {
		return protobufResults(os.Stdout, source, results, final)
	}
	printResults(os.Stdout, source, results, final)
	return nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "redblack",
	Short: "Build and inspect Red-Black trees step by step.",
	Long: `redblack drives a Red-Black tree whose insertion fixup runs one step at a time.
Every rotation and recoloring is written to the step log. The insertion fixup either
restores all the Red-Black properties (the default) or only recolors (--color-only),
which may leave the tree invalid; the property check reports what is broken.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// buildCmd inserts the keys and prints the resulting tree
var buildCmd = &cobra.Command{
	Use:   "build [keys...]",
	Short: "Insert the keys and print the tree.",
	Long: `Insert the keys from --load, --random and the positional arguments, in this order.
The loaded and the random keys stay in the pending queue so that the fixup can be
stepped through with "run". The pending queue is drained after each positional key
and after each key generated with --random --median-first; the latter always use
the full mode.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		tree, opts, source, err := prepareTree(cmd, args, logger)
		if err != nil {
			return err
		}
		saveFS, savePath, err := fsFor(opts.Save)
		if err != nil {
			return err
		}
		if err = saveKeys(tree, saveFS, savePath, logger); err != nil {
			return err
		}
		return writeResults(cmd, source, nil, report.New(tree))
	},
}

// runCmd executes a YAML session
var runCmd = &cobra.Command{
	Use:   "run <script> [keys...]",
	Short: "Execute the operations from the YAML script.",
	Long: `Build the initial tree the same way as "build" does and execute the operations
from the YAML script. The list of the operations is printed in --help.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		scriptFS, scriptPath, err := openFS(args[0])
		if err != nil {
			return err
		}
		session, err := script.Load(scriptFS, scriptPath)
		if err != nil {
			return err
		}
		tree, opts, source, err := prepareTree(cmd, args[1:], logger)
		if err != nil {
			return err
		}
		diff, err := cmd.Flags().GetBool("diff")
		if err != nil {
			panic(err)
		}
		runner := script.NewRunner(tree, logger)
		runner.Diff = diff
		update, finish := newProgressBar(isQuiet(cmd), "run")
		runner.OnProgress = update
		results, err := runner.Run(session)
		finish()
		if err != nil {
			return err
		}
		saveFS, savePath, err := fsFor(opts.Save)
		if err != nil {
			return err
		}
		if err = saveKeys(tree, saveFS, savePath, logger); err != nil {
			return err
		}
		if source == "" {
			source = args[0]
		} else {
			source = args[0] + "," + source
		}
		return writeResults(cmd, source, results, report.New(tree))
	},
}

// trimRightSpace removes the trailing whitespace characters.
func trimRightSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// rpad adds padding to the right of a string.
func rpad(s string, padding int) string {
	return fmt.Sprintf(fmt.Sprintf("%%-%ds", padding), s)
}

// tmpl was adapted from cobra/cobra.go
func tmpl(w io.Writer, text string, data interface{}) error {
	var templateFuncs = template.FuncMap{
		"trim":                    strings.TrimSpace,
		"trimRightSpace":          trimRightSpace,
		"trimTrailingWhitespaces": trimRightSpace,
		"rpad":                    rpad,
		"gt":                      cobra.Gt,
		"eq":                      cobra.Eq,
	}
	for k, v := range sprig.TxtFuncMap() {
		templateFuncs[k] = v
	}
	t := template.New("top")
	t.Funcs(templateFuncs)
	template.Must(t.Parse(text))
	return t.Execute(w, data)
}

type operationUsage struct {
	Name        string
	Arity       string
	Description string
}

func listOperations() []operationUsage {
	var result []operationUsage
	for _, name := range script.Registry.Names() {
		op, _ := script.Registry.Summon(name)
		min, max := op.Arity()
		arity := ""
		switch {
		case max < 0:
			arity = "<key>..."
		case min > 0:
			arity = "<key>"
		}
		result = append(result, operationUsage{Name: name, Arity: arity, Description: op.Description()})
	}
	return result
}

const helpTemplate = `Usage:{{if .c.Runnable}}
  {{.c.UseLine}}{{end}}{{if .c.HasAvailableSubCommands}}
  {{.c.CommandPath}} [command]{{end}}{{if gt (len .c.Aliases) 0}}

Aliases:
  {{.c.NameAndAliases}}{{end}}{{if .c.HasExample}}

Examples:
{{.c.Example}}{{end}}{{if .c.HasAvailableSubCommands}}

Available Commands:{{range .c.Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .c.HasAvailableLocalFlags}}

Flags:
{{.c.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .operations}}

Script Operations:{{range .operations}}
  {{rpad (print .Name " " .Arity | trim) 28}}{{.Description | wrap 72 | indent 30 | substr 30 -1}}{{end}}{{end}}{{if .c.HasAvailableInheritedFlags}}

Global Flags:
{{.c.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .c.HasAvailableSubCommands}}

Use "{{.c.CommandPath}} [command] --help" for more information about a command.{{end}}
`

func formatUsage(c *cobra.Command) error {
	args := map[string]interface{}{
		"c": c,
	}
	if c == runCmd {
		args["operations"] = listOperations()
	}
	buffer := &bytes.Buffer{}
	err := tmpl(buffer, helpTemplate, args)
	if err != nil {
		c.Println(err)
		return err
	}
	_, err = c.OutOrStderr().Write(buffer.Bytes())
	return err
}

// versionCmd prints the API version and the Git commit hash
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information and exit.",
	Long:  ``,
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Version: %d\nGit:     %s\n", redblack.BinaryVersion, redblack.BinaryGitHash)
	},
}

func init() {
	rootFlags := rootCmd.PersistentFlags()
	rootFlags.Bool("color-only", false, "Rebalance the insertions by recoloring only, without rotations.")
	rootFlags.Bool("quiet", !terminal.IsTerminal(int(os.Stdin.Fd())),
		"Do not print status updates to stderr.")
	rootFlags.Bool("verbose", false, "Print every step log entry to stderr.")

	addTreeFlags(buildCmd.Flags())
	addTreeFlags(runCmd.Flags())
	runCmd.Flags().Bool("diff", false, "Include the diff of the tree rendering for every operation.")
	for _, cmd := range []*cobra.Command{buildCmd, runCmd} {
		for _, name := range []string{"load", "save"} {
			if err := cmd.MarkFlagFilename(name); err != nil {
				panic(err)
			}
		}
	}

	rootCmd.SetUsageFunc(formatUsage)
	rootCmd.AddCommand(buildCmd, runCmd, verifyCmd, versionCmd)
	versionCmd.SetUsageFunc(versionCmd.UsageFunc())
}
