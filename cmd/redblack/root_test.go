package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"

	"github.com/cyraxred/redblack/internal/core"
	"github.com/cyraxred/redblack/internal/pb"
	"github.com/cyraxred/redblack/internal/rbtree"
	"github.com/cyraxred/redblack/internal/report"
	"github.com/cyraxred/redblack/internal/script"
	"github.com/cyraxred/redblack/internal/verify"
)

func quietLogger() *core.DefaultLogger {
	logger := core.NewLogger(false)
	logger.SetOutput(ioutil.Discard)
	return logger
}

// drained is the single batch of keys rebalanced after each insertion.
func drained(keys ...int) []keyBatch {
	return []keyBatch{{Keys: keys, Drain: true}}
}

func TestParseKeys(t *testing.T) {
	keys, err := parseKeys([]string{"10", "-3", "0"})
	assert.Nil(t, err)
	assert.Equal(t, []int{10, -3, 0}, keys)
	_, err = parseKeys([]string{"10", "x"})
	assert.EqualError(t, err, "'x' is not an integer key")
}

func TestCollectKeys(t *testing.T) {
	fs := memfs.New()
	require.Nil(t, util.WriteFile(fs, "keys.txt", []byte("5 abc 7"), 0666))
	var buffer bytes.Buffer
	logger := core.NewLogger(false)
	logger.SetOutput(&buffer)
	batches, source, err := collectKeys(treeOptions{
		Load: "keys.txt", Random: 3, Seed: 1, Keys: []int{1000},
	}, fs, logger)
	require.Nil(t, err)
	require.Len(t, batches, 3)
	assert.Equal(t, keyBatch{Keys: []int{5, 7}}, batches[0])
	assert.Len(t, batches[1].Keys, 3)
	assert.False(t, batches[1].Drain)
	assert.False(t, batches[1].Full)
	assert.Equal(t, keyBatch{Keys: []int{1000}, Drain: true}, batches[2])
	assert.Equal(t, "keys.txt,random:3:1,args", source)
	assert.Contains(t, buffer.String(), "Skipping non-integer token 'abc'.")
	assert.Contains(t, buffer.String(), "Loaded 2 nodes from file: keys.txt")
	assert.Contains(t, buffer.String(), "Generated 3 keys with seed 1.")

	again, _, err := collectKeys(treeOptions{Load: "keys.txt", Random: 3, Seed: 1, Keys: []int{1000}},
		fs, logger)
	require.Nil(t, err)
	assert.Equal(t, batches, again)

	batches, source, err = collectKeys(treeOptions{MedianFirst: true, Keys: []int{1, 2, 3, 4}}, nil, logger)
	require.Nil(t, err)
	assert.Equal(t, []keyBatch{{Keys: []int{3, 1, 2, 4}, Drain: true}}, batches)
	assert.Equal(t, "args", source)

	batches, _, err = collectKeys(treeOptions{MedianFirst: true, Random: 5, Seed: 1}, nil, logger)
	require.Nil(t, err)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0].Keys, 5)
	assert.True(t, batches[0].Drain)
	assert.True(t, batches[0].Full)

	_, _, err = collectKeys(treeOptions{Load: "missing.txt"}, fs, logger)
	assert.NotNil(t, err)
}

func TestBuildTree(t *testing.T) {
	var progress []int
	tree := buildTree(drained(10, 20, 30, 20), false, quietLogger(), func(done, total int) {
		assert.Equal(t, 4, total)
		progress = append(progress, done)
	})
	assert.Equal(t, []int{1, 2, 3, 4}, progress)
	assert.Equal(t, 3, tree.Len())
	assert.Equal(t, 0, tree.PendingLen())
	assert.Empty(t, tree.Validate())
	assert.Equal(t, "Value 20 already exists, skipping.", tree.Steps()[len(tree.Steps())-1])

	tree = buildTree(drained(10, 20, 30), true, quietLogger(), nil)
	assert.Equal(t, rbtree.ColorOnlyMode, tree.Mode())
	assert.Len(t, tree.Validate(), 1)
}

func TestBuildTreePending(t *testing.T) {
	progress := 0
	tree := buildTree([]keyBatch{{Keys: []int{50, 40, 30}}, {Keys: []int{10, 20}}}, false, quietLogger(),
		func(done, total int) {
			assert.Equal(t, 5, total)
			progress = done
		})
	assert.Equal(t, 5, progress)
	assert.Equal(t, []int{40, 30, 10, 20}, tree.Pending())
	assert.NotContains(t, tree.Steps(), "Right rotation at node 50.")

	// draining a later batch fixes the earlier pending nodes
	tree = buildTree([]keyBatch{{Keys: []int{50, 40, 30}}, {Keys: []int{10}, Drain: true}}, false,
		quietLogger(), nil)
	assert.Equal(t, 0, tree.PendingLen())
	assert.Empty(t, tree.Validate())
}

func TestBuildTreeBalanced(t *testing.T) {
	batches, _, err := collectKeys(treeOptions{MedianFirst: true, Random: 30, Seed: 2}, nil, quietLogger())
	require.Nil(t, err)
	tree := buildTree(batches, true, quietLogger(), nil)
	assert.Equal(t, rbtree.ColorOnlyMode, tree.Mode())
	assert.Equal(t, 0, tree.PendingLen())
	assert.Empty(t, tree.Validate())
	steps := tree.Steps()
	assert.Equal(t, "Switched to FULL rebalancing mode.", steps[0])
	assert.Equal(t, "Switched to COLOR-ONLY rebalancing mode.", steps[len(steps)-1])
	assert.NotContains(t, steps, "Parent red, uncle black -> skipping rotation (color-only).")

	// full mode does not switch anything
	tree = buildTree(batches, false, quietLogger(), nil)
	assert.NotContains(t, tree.Steps(), "Switched to FULL rebalancing mode.")
}

func TestSaveKeys(t *testing.T) {
	fs := memfs.New()
	tree := buildTree(drained(30, 10, 20), false, quietLogger(), nil)
	assert.Nil(t, saveKeys(tree, fs, "", quietLogger()))
	assert.Nil(t, saveKeys(tree, fs, "out/keys.txt", quietLogger()))
	data, err := util.ReadFile(fs, "out/keys.txt")
	require.Nil(t, err)
	assert.Equal(t, "10 20 30", string(data))
}

func TestOpenFS(t *testing.T) {
	fs, name, err := openFS("some/dir/keys.txt")
	require.Nil(t, err)
	assert.Equal(t, "keys.txt", name)
	cwd, _ := os.Getwd()
	assert.Equal(t, filepath.Join(cwd, "some", "dir"), fs.Root())
	fs, name, err = fsFor("")
	assert.Nil(t, err)
	assert.Nil(t, fs)
	assert.Equal(t, "", name)
}

func TestPrintResults(t *testing.T) {
	tree := buildTree(drained(10, 20, 30), false, quietLogger(), nil)
	tree.ClearSteps()
	runner := script.NewRunner(tree, quietLogger())
	results, err := runner.Run(&script.Script{Operations: []script.Command{
		{Op: "delete", Args: []int{10}}, {Op: "preorder"},
	}})
	require.Nil(t, err)
	buffer := &bytes.Buffer{}
	printResults(buffer, "session.yaml,args", results, report.New(tree))
	var parsed struct {
		Redblack struct {
			Version int
			Hash    string
			Source  string
		}
		Operations []struct {
			Op     string
			Steps  []string
			Output []string
		}
		Tree struct {
			Mode     string
			Size     int
			Valid    bool
			Preorder [][]interface{}
		}
	}
	require.Nil(t, yaml.Unmarshal(buffer.Bytes(), &parsed))
	assert.Equal(t, 1, parsed.Redblack.Version)
	assert.Equal(t, "<unknown>", parsed.Redblack.Hash)
	assert.Equal(t, "session.yaml,args", parsed.Redblack.Source)
	require.Len(t, parsed.Operations, 2)
	assert.Equal(t, []string{"Deleted node 10."}, parsed.Operations[0].Steps)
	assert.Equal(t, []string{"Preorder: [(20,black), (30,red)]"}, parsed.Operations[1].Output)
	assert.Equal(t, "FULL", parsed.Tree.Mode)
	assert.Equal(t, 2, parsed.Tree.Size)
	assert.True(t, parsed.Tree.Valid)
	assert.Equal(t, [][]interface{}{{20, "black"}, {30, "red"}}, parsed.Tree.Preorder)

	buffer.Reset()
	printResults(buffer, "", nil, report.New(tree))
	assert.False(t, strings.Contains(buffer.String(), "operations:"))
	assert.True(t, strings.Contains(buffer.String(), "tree:\n  mode: \"FULL\"\n"))
}

func TestProtobufResults(t *testing.T) {
	tree := buildTree(drained(10, 20, 30), false, quietLogger(), nil)
	runner := script.NewRunner(tree, quietLogger())
	results, err := runner.Run(&script.Script{Operations: []script.Command{{Op: "clear"}}})
	require.Nil(t, err)
	buffer := &bytes.Buffer{}
	require.Nil(t, protobufResults(buffer, "args", results, report.New(tree)))
	message := pb.Results{}
	require.Nil(t, proto.Unmarshal(buffer.Bytes(), &message))
	assert.Equal(t, int32(1), message.Header.Version)
	assert.Equal(t, "args", message.Header.Source)
	require.Len(t, message.Operations, 1)
	assert.Equal(t, "clear", message.Operations[0].Name)
	assert.Equal(t, []string{"Cleared the entire tree."}, message.Operations[0].Steps)
	assert.Equal(t, int32(0), message.Final.Size)
}

func TestPrintSummary(t *testing.T) {
	opts := verify.Options{Trials: 2, Operations: 100, Seed: 3, ColorOnly: true}
	summary, err := verify.Run(opts, quietLogger(), nil)
	require.Nil(t, err)
	buffer := &bytes.Buffer{}
	printSummary(buffer, opts, summary)
	var parsed struct {
		Verify struct {
			Mode     string
			Seed     int64
			Trials   int
			Failed   int
			Failures []struct {
				Trial      int
				Violations []string
				Operations []string
			}
		}
	}
	require.Nil(t, yaml.Unmarshal(buffer.Bytes(), &parsed))
	assert.Equal(t, "COLOR-ONLY", parsed.Verify.Mode)
	assert.Equal(t, int64(3), parsed.Verify.Seed)
	assert.Equal(t, 2, parsed.Verify.Trials)
	assert.Equal(t, len(summary.Failures), parsed.Verify.Failed)
	require.Len(t, parsed.Verify.Failures, len(summary.Failures))
	if len(summary.Failures) > 0 {
		failure := parsed.Verify.Failures[0]
		assert.NotEmpty(t, failure.Violations)
		// the operations form a valid script
		session := &script.Script{}
		for _, line := range failure.Operations {
			cmd, err := script.ParseCommand(line)
			require.Nil(t, err)
			session.Operations = append(session.Operations, cmd)
		}
		replay := rbtree.New(true)
		_, err = script.NewRunner(replay, quietLogger()).Run(session)
		require.Nil(t, err)
		assert.NotEmpty(t, replay.Validate())
	}

	buffer.Reset()
	printSummary(buffer, verify.Options{Seed: 1}, verify.Summary{Trials: 1, Operations: 10})
	assert.Contains(t, buffer.String(), "  failures: []\n")
	assert.Contains(t, buffer.String(), "  mode: \"FULL\"\n")
}

func TestListOperations(t *testing.T) {
	ops := listOperations()
	assert.Len(t, ops, len(script.Registry.Names()))
	byName := map[string]operationUsage{}
	for _, op := range ops {
		byName[op.Name] = op
	}
	assert.Equal(t, "<key>...", byName["insert"].Arity)
	assert.Equal(t, "", byName["rebalance-step"].Arity)
}

func TestFormatUsage(t *testing.T) {
	buffer := &bytes.Buffer{}
	runCmd.SetOutput(buffer)
	defer runCmd.SetOutput(nil)
	assert.Nil(t, formatUsage(runCmd))
	text := buffer.String()
	assert.Contains(t, text, "Script Operations:")
	assert.Contains(t, text, "rebalance-step")
	assert.Contains(t, text, "insert <key>...")
	assert.Contains(t, text, "Fix the oldest pending node.")

	buffer.Reset()
	buildCmd.SetOutput(buffer)
	defer buildCmd.SetOutput(nil)
	assert.Nil(t, formatUsage(buildCmd))
	assert.NotContains(t, buffer.String(), "Script Operations:")
	assert.Contains(t, buffer.String(), "--median-first")
}

func TestBuildCommand(t *testing.T) {
	tempdir, err := ioutil.TempDir("", "redblack-")
	require.Nil(t, err)
	defer os.RemoveAll(tempdir)
	output := filepath.Join(tempdir, "keys.txt")
	rootCmd.SetArgs([]string{"build", "--quiet", "--save", output, "30", "10", "20"})
	defer rootCmd.SetArgs(nil)
	require.Nil(t, rootCmd.Execute())
	data, err := ioutil.ReadFile(output)
	require.Nil(t, err)
	assert.Equal(t, "10 20 30", string(data))
}

func TestBuildRandomPending(t *testing.T) {
	batches, source, err := collectKeys(treeOptions{Random: 20, Seed: 5}, nil, quietLogger())
	require.Nil(t, err)
	tree := buildTree(batches, false, quietLogger(), nil)
	assert.Equal(t, 20, tree.Len())
	assert.Equal(t, 19, tree.PendingLen())
	buffer := &bytes.Buffer{}
	printResults(buffer, source, nil, report.New(tree))
	var parsed struct {
		Tree struct {
			Size    int
			Pending []int
		}
	}
	require.Nil(t, yaml.Unmarshal(buffer.Bytes(), &parsed))
	assert.Equal(t, 20, parsed.Tree.Size)
	assert.Len(t, parsed.Tree.Pending, 19)

	tempdir, err := ioutil.TempDir("", "redblack-")
	require.Nil(t, err)
	defer os.RemoveAll(tempdir)
	output := filepath.Join(tempdir, "keys.txt")
	rootCmd.SetArgs([]string{"build", "--quiet", "--random", "20", "--seed", "5", "--save", output})
	defer func() {
		rootCmd.SetArgs(nil)
		buildCmd.Flags().Set("random", "0")
		buildCmd.Flags().Set("seed", "-1")
		buildCmd.Flags().Set("save", "")
	}()
	require.Nil(t, rootCmd.Execute())
	data, err := ioutil.ReadFile(output)
	require.Nil(t, err)
	assert.Equal(t, 20, len(strings.Fields(string(data))))
}
