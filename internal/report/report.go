// Package report takes snapshots of Red-Black trees and writes them as YAML or Protocol Buffers.
package report

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/minio/highwayhash"

	"github.com/cyraxred/redblack/internal/pb"
	"github.com/cyraxred/redblack/internal/rbtree"
	"github.com/cyraxred/redblack/internal/yaml"
)

var hashKey = []byte{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31,
}

const (
	// CheckPassed is the single line of Report.CheckLines() for a valid tree.
	CheckPassed = "RB Check Passed: All Red-Black properties satisfied."
	// CheckFailedPrefix starts every line of Report.CheckLines() for an invalid tree.
	CheckFailedPrefix = "RB Check Failed: "
)

// Report is the snapshot of a tree at some point in time.
type Report struct {
	Mode        rbtree.Mode
	Size        int
	BlackHeight int
	Inorder     []rbtree.Entry
	Preorder    []rbtree.Entry
	Postorder   []rbtree.Entry
	Pending     []int
	Violations  []rbtree.Violation
	Steps       []string
	Rendering   string
	Digest      uint64
}

// New takes the snapshot of the tree. The step log is copied, not drained.
func New(tree *rbtree.Tree) Report {
	preorder := tree.Preorder()
	return Report{
		Mode:        tree.Mode(),
		Size:        tree.Len(),
		BlackHeight: tree.BlackHeight(),
		Inorder:     tree.Inorder(),
		Preorder:    preorder,
		Postorder:   tree.Postorder(),
		Pending:     tree.Pending(),
		Violations:  tree.Validate(),
		Steps:       tree.Steps(),
		Rendering:   Render(tree),
		Digest:      digest(preorder),
	}
}

// Valid indicates whether the snapshot has no violations.
func (r Report) Valid() bool {
	return len(r.Violations) == 0
}

// DigestString formats Digest as 16 hex digits.
func (r Report) DigestString() string {
	return FormatDigest(r.Digest)
}

// CheckLines returns the human readable outcome of the property check.
func (r Report) CheckLines() []string {
	if r.Valid() {
		return []string{CheckPassed}
	}
	lines := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		lines[i] = CheckFailedPrefix + v.Message
	}
	return lines
}

// Digest hashes the structure of the tree: the preorder keys together with
// the colors identify the shape uniquely.
func Digest(tree *rbtree.Tree) uint64 {
	return digest(tree.Preorder())
}

// FormatDigest converts the digest to the string stored in the reports.
func FormatDigest(value uint64) string {
	return fmt.Sprintf("%016x", value)
}

func digest(preorder []rbtree.Entry) uint64 {
	buffer := &bytes.Buffer{}
	record := make([]byte, 9)
	for _, e := range preorder {
		binary.LittleEndian.PutUint64(record, uint64(int64(e.Key)))
		record[8] = 0
		if e.Color == rbtree.Black {
			record[8] = 1
		}
		buffer.Write(record)
	}
	return highwayhash.Sum64(buffer.Bytes(), hashKey)
}

// Render draws the tree as text, one node per line. The left child always
// goes first; a missing child of a node with another child is drawn as NIL.
//
//	20B
//	├── 10R
//	└── 30R
func Render(tree *rbtree.Tree) string {
	root := tree.Root()
	if root.Nil() {
		return "(empty)"
	}
	builder := &strings.Builder{}
	builder.WriteString(label(root))
	builder.WriteByte('\n')
	renderChildren(builder, root, "")
	return strings.TrimRight(builder.String(), "\n")
}

func label(n rbtree.Node) string {
	if n.Nil() {
		return "NIL"
	}
	suffix := "R"
	if n.Color() == rbtree.Black {
		suffix = "B"
	}
	return strconv.Itoa(n.Key()) + suffix
}

func renderChildren(builder *strings.Builder, n rbtree.Node, prefix string) {
	left, right := n.Left(), n.Right()
	if left.Nil() && right.Nil() {
		return
	}
	builder.WriteString(prefix + "├── " + label(left) + "\n")
	if !left.Nil() {
		renderChildren(builder, left, prefix+"│   ")
	}
	builder.WriteString(prefix + "└── " + label(right) + "\n")
	if !right.Nil() {
		renderChildren(builder, right, prefix+"    ")
	}
}

// Serialize writes the report as YAML (binary=false) or Protocol Buffers (binary=true).
func (r Report) Serialize(binary bool, writer io.Writer) error {
	if binary {
		return r.serializeBinary(writer)
	}
	r.SerializeText(writer, 0)
	return nil
}

// SerializeText writes the report as a YAML mapping.
//
// `indent` is the current YAML indentation level - the number of spaces.
func (r Report) SerializeText(writer io.Writer, indent int) {
	prefix := strings.Repeat(" ", indent)
	fmt.Fprintf(writer, "%smode: %s\n", prefix, yaml.SafeString(r.Mode.String()))
	fmt.Fprintf(writer, "%ssize: %d\n", prefix, r.Size)
	fmt.Fprintf(writer, "%sblack_height: %d\n", prefix, r.BlackHeight)
	fmt.Fprintf(writer, "%svalid: %t\n", prefix, r.Valid())
	fmt.Fprintf(writer, "%sdigest: %s\n", prefix, yaml.SafeString(r.DigestString()))
	yaml.PrintEntries(writer, r.Inorder, indent, "inorder")
	yaml.PrintEntries(writer, r.Preorder, indent, "preorder")
	yaml.PrintEntries(writer, r.Postorder, indent, "postorder")
	yaml.PrintInts(writer, r.Pending, indent, "pending")
	yaml.PrintStrings(writer, r.CheckLines(), indent, "check")
	yaml.PrintStrings(writer, r.Steps, indent, "steps")
	yaml.PrintBlock(writer, r.Rendering, indent, "rendering")
}

// ToPB converts the report to the Protocol Buffers message.
func (r Report) ToPB() *pb.TreeReport {
	return &pb.TreeReport{
		Mode:        r.Mode.String(),
		Size:        int32(r.Size),
		BlackHeight: int32(r.BlackHeight),
		Inorder:     pb.ToEntries(r.Inorder),
		Preorder:    pb.ToEntries(r.Preorder),
		Postorder:   pb.ToEntries(r.Postorder),
		Pending:     pb.ToInt64s(r.Pending),
		Violations:  pb.ToViolations(r.Violations),
		Steps:       r.Steps,
		Digest:      r.DigestString(),
	}
}

func (r Report) serializeBinary(writer io.Writer) error {
	serialized, err := proto.Marshal(r.ToPB())
	if err != nil {
		return err
	}
	_, err = writer.Write(serialized)
	return err
}
