package redblack

import (
	"github.com/cyraxred/redblack/internal/core"
	"github.com/cyraxred/redblack/internal/rbtree"
	"github.com/cyraxred/redblack/internal/report"
	"github.com/cyraxred/redblack/internal/script"
)

// Tree is the red-black tree with the caller-driven insertion fixup.
// See the extended example of how a Tree works in doc.go
type Tree = rbtree.Tree

// Node is the read-only handle of a tree node.
type Node = rbtree.Node

// Edge is a (parent, child) link returned by Tree.SearchPath().
type Edge = rbtree.Edge

// Entry is a (key, color) pair produced by the traversals.
type Entry = rbtree.Entry

// Color is the color tag of a tree node.
type Color = rbtree.Color

const (
	// Red is the color of the freshly inserted nodes.
	Red = rbtree.Red
	// Black is the color of the root and the sentinel.
	Black = rbtree.Black
)

// Mode selects the insertion rebalancing algorithm.
type Mode = rbtree.Mode

const (
	// FullMode restores all the Red-Black properties with rotations and recoloring.
	FullMode = rbtree.FullMode
	// ColorOnlyMode only recolors, it does not guarantee the Red-Black properties.
	ColorOnlyMode = rbtree.ColorOnlyMode
)

// Order is the depth-first traversal order.
type Order = rbtree.Order

const (
	// InOrder yields the sorted keys.
	InOrder = rbtree.InOrder
	// PreOrder visits the node before its subtrees.
	PreOrder = rbtree.PreOrder
	// PostOrder visits the node after its subtrees.
	PostOrder = rbtree.PostOrder
)

// Violation describes a broken Red-Black property found by Tree.Validate().
type Violation = rbtree.Violation

// ViolationKind enumerates the checked Red-Black properties.
type ViolationKind = rbtree.ViolationKind

const (
	// RootNotBlack means that the root is red.
	RootNotBlack = rbtree.RootNotBlack
	// SentinelNotBlack means that the shared leaf is not black.
	SentinelNotBlack = rbtree.SentinelNotBlack
	// RedRed means that a red node has a red child.
	RedRed = rbtree.RedRed
	// BlackHeightMismatch means that the black-height is not uniform.
	BlackHeightMismatch = rbtree.BlackHeightMismatch
)

// Logger is the logging interface used by the tree and the command line tool.
type Logger = core.Logger

// Report is the snapshot of a tree.
type Report = report.Report

// Script is a parsed session of tree operations.
type Script = script.Script

// ScriptResult is the outcome of a single scripted operation.
type ScriptResult = script.Result

// New creates an empty tree. colorOnly selects ColorOnlyMode instead of FullMode.
func New(colorOnly bool) *Tree {
	return rbtree.New(colorOnly)
}

// NewLogger returns the default logger which writes to stderr. The debug
// messages, including the mirrored step log, are printed only if verbose is true.
func NewLogger(verbose bool) Logger {
	return core.NewLogger(verbose)
}

// NewReport takes the snapshot of the tree.
func NewReport(tree *Tree) Report {
	return report.New(tree)
}

// ParseScript reads the session from YAML.
func ParseScript(data []byte) (*Script, error) {
	return script.Parse(data)
}

// RunScript applies the session to the tree.
func RunScript(tree *Tree, session *Script, logger Logger) ([]ScriptResult, error) {
	return script.NewRunner(tree, logger).Run(session)
}
