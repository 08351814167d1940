// Package verify runs randomized sessions against the tree engine and checks
// the Red-Black properties together with the key set after every operation.
package verify

import (
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/Jeffail/tunny"
	"github.com/pkg/errors"

	"github.com/cyraxred/redblack/internal/core"
	"github.com/cyraxred/redblack/internal/rbtree"
	"github.com/cyraxred/redblack/internal/script"
)

const (
	// DefaultOperations is the default number of operations in each trial.
	DefaultOperations = 200
	// DefaultKeyRange is the default upper bound of the generated keys.
	DefaultKeyRange = 1000
)

// Options configure Run().
type Options struct {
	Trials     int
	Operations int
	KeyRange   int
	Seed       int64
	ColorOnly  bool
	// Workers is the size of the goroutine pool, runtime.NumCPU() if zero.
	Workers int
}

// Failure is the first broken check of a trial.
type Failure struct {
	Trial int
	Seed  int64
	// Commands reproduce the failure when run on an empty tree.
	Commands   []script.Command
	Violations []rbtree.Violation
	// Missing and Unexpected are the differences between the tree keys and the expected keys.
	Missing    []int
	Unexpected []int
	// Unreachable keys are listed by the traversal but cannot be found by the search.
	Unreachable []int
}

// Summary is the outcome of Run().
type Summary struct {
	Trials     int
	Operations int
	Failures   []Failure
}

type trialTask struct {
	Lock    *sync.Mutex
	Index   int
	Seed    int64
	Options *Options
	Summary *Summary
}

type worker struct {
	Logger core.Logger
}

func (w worker) Process(data interface{}) interface{} {
	task := data.(trialTask)
	failure, operations := runTrial(task.Index, task.Seed, task.Options, w.Logger)
	task.Lock.Lock()
	defer task.Lock.Unlock()
	task.Summary.Trials++
	task.Summary.Operations += operations
	if failure != nil {
		task.Summary.Failures = append(task.Summary.Failures, *failure)
	}
	return nil
}
func (w worker) BlockUntilReady() {}
func (w worker) Interrupt()       {}
func (w worker) Terminate()       {}

// Run executes opts.Trials independent trials on a pool of workers.
// progress is called after each finished trial and may be nil.
// The failures are sorted by the trial index.
func Run(opts Options, logger core.Logger, progress func()) (Summary, error) {
	if opts.Trials < 1 {
		return Summary{}, errors.Errorf("the number of trials must be positive, got %d", opts.Trials)
	}
	if opts.Operations == 0 {
		opts.Operations = DefaultOperations
	}
	if opts.Operations < 0 {
		return Summary{}, errors.Errorf("the number of operations must be positive, got %d",
			opts.Operations)
	}
	if opts.KeyRange < 1 {
		opts.KeyRange = DefaultKeyRange
	}
	poolSize := opts.Workers
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}
	if logger == nil {
		logger = core.NewLogger(false)
	}
	pool := tunny.New(poolSize, func() tunny.Worker {
		return worker{Logger: logger}
	})
	defer pool.Close()

	summary := &Summary{}
	lock := sync.Mutex{}
	wg := sync.WaitGroup{}
	for i := 0; i < opts.Trials; i++ {
		wg.Add(1)
		go func(task interface{}) {
			pool.Process(task)
			if progress != nil {
				lock.Lock()
				progress()
				lock.Unlock()
			}
			wg.Done()
		}(trialTask{
			Lock:    &lock,
			Index:   i,
			Seed:    opts.Seed + int64(i),
			Options: &opts,
			Summary: summary,
		})
	}
	wg.Wait()
	sort.Slice(summary.Failures, func(i, j int) bool {
		return summary.Failures[i].Trial < summary.Failures[j].Trial
	})
	return *summary, nil
}

// runTrial returns the first failure, if any, and the number of executed operations.
func runTrial(index int, seed int64, opts *Options, logger core.Logger) (*Failure, int) {
	rnd := rand.New(rand.NewSource(seed))
	tree := rbtree.New(opts.ColorOnly)
	runner := script.NewRunner(tree, logger)
	expected := map[int]bool{}
	var history []script.Command
	for op := 0; op < opts.Operations; op++ {
		cmd := nextCommand(rnd, expected, opts.KeyRange)
		history = append(history, cmd)
		if _, err := runner.Exec(cmd); err != nil {
			logger.Errorf("trial %d: %v", index, err)
			return nil, op
		}
		if cmd.Op == "fill" {
			expected[cmd.Args[0]] = true
		} else {
			delete(expected, cmd.Args[0])
		}
		violations := tree.Validate()
		missing, unexpected := compareKeys(tree.Keys(), expected)
		lost := unreachable(tree)
		if len(violations) > 0 || len(missing) > 0 || len(unexpected) > 0 || len(lost) > 0 {
			logger.Debugf("trial %d with seed %d failed after %d operations", index, seed, op+1)
			return &Failure{
				Trial:       index,
				Seed:        seed,
				Commands:    history,
				Violations:  violations,
				Missing:     missing,
				Unexpected:  unexpected,
				Unreachable: lost,
			}, op + 1
		}
	}
	return nil, opts.Operations
}

// nextCommand inserts with the probability 0.6, otherwise deletes. Half of the
// deletions target existing keys.
func nextCommand(rnd *rand.Rand, expected map[int]bool, keyRange int) script.Command {
	if len(expected) == 0 || rnd.Intn(10) < 6 {
		return script.Command{Op: "fill", Args: []int{rnd.Intn(keyRange)}}
	}
	if rnd.Intn(2) == 0 {
		keys := sortedKeys(expected)
		return script.Command{Op: "delete", Args: []int{keys[rnd.Intn(len(keys))]}}
	}
	return script.Command{Op: "delete", Args: []int{rnd.Intn(keyRange)}}
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}

// compareKeys returns the expected keys which are absent in actual and the
// keys of actual which are not expected.
func compareKeys(actual []int, expected map[int]bool) (missing, unexpected []int) {
	seen := map[int]bool{}
	for _, key := range actual {
		seen[key] = true
		if !expected[key] {
			unexpected = append(unexpected, key)
		}
	}
	for _, key := range sortedKeys(expected) {
		if !seen[key] {
			missing = append(missing, key)
		}
	}
	return missing, unexpected
}

// unreachable returns the keys of the tree which the search does not find.
// This happens only if the ordering is broken.
func unreachable(tree *rbtree.Tree) []int {
	var lost []int
	tree.Walk(rbtree.InOrder, func(entry rbtree.Entry) bool {
		if !tree.Contains(entry.Key) {
			lost = append(lost, entry.Key)
		}
		return true
	})
	return lost
}
