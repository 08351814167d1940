package script

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/cyraxred/redblack/internal/rbtree"
	"github.com/cyraxred/redblack/internal/report"
)

// Operation is a single scripted action on a tree.
type Operation interface {
	// Arity returns the allowed number of arguments. max < 0 means unlimited.
	Arity() (min, max int)
	// Description returns the help line.
	Description() string
	// Apply runs the operation. The returned lines are the output, the step log
	// is written by the tree itself.
	Apply(tree *rbtree.Tree, args []int) []string
}

// OperationRegistry contains all the known Operation-s.
type OperationRegistry struct {
	registered map[string]reflect.Type
}

// Registry contains all the known operations.
var Registry = &OperationRegistry{registered: map[string]reflect.Type{}}

// OperationName derives the script name of the operation from its type name:
// RebalanceStep becomes "rebalance-step".
func OperationName(op Operation) string {
	t := reflect.TypeOf(op)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return strings.ToLower(strings.Join(camelcase.Split(t.Name()), "-"))
}

// Register adds another Operation to the registry.
func (registry *OperationRegistry) Register(example Operation) {
	registry.registered[OperationName(example)] = reflect.TypeOf(example)
}

// Summon materializes the operation with the specified name.
func (registry *OperationRegistry) Summon(name string) (Operation, bool) {
	t, exists := registry.registered[name]
	if !exists {
		return nil, false
	}
	return reflect.New(t.Elem()).Interface().(Operation), true
}

// Names returns the sorted names of all the registered operations.
func (registry *OperationRegistry) Names() []string {
	names := make([]string, 0, len(registry.registered))
	for name := range registry.registered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Insert adds the keys without rebalancing.
type Insert struct{}

func (*Insert) Arity() (int, int)   { return 1, -1 }
func (*Insert) Description() string { return "Insert the keys, the fixup is queued." }

func (*Insert) Apply(tree *rbtree.Tree, args []int) []string {
	for _, key := range args {
		tree.Insert(key)
	}
	return nil
}

// Fill inserts the keys and drains the pending queue after each of them.
type Fill struct{}

func (*Fill) Arity() (int, int)   { return 1, -1 }
func (*Fill) Description() string { return "Insert the keys, rebalancing after each." }

func (*Fill) Apply(tree *rbtree.Tree, args []int) []string {
	for _, key := range args {
		tree.Insert(key)
		tree.RebalanceAll()
	}
	return nil
}

// Delete removes the keys.
type Delete struct{}

func (*Delete) Arity() (int, int)   { return 1, -1 }
func (*Delete) Description() string { return "Delete the keys." }

func (*Delete) Apply(tree *rbtree.Tree, args []int) []string {
	for _, key := range args {
		tree.Delete(key)
	}
	return nil
}

// Search looks up the keys and prints the visited path.
type Search struct{}

func (*Search) Arity() (int, int)   { return 1, -1 }
func (*Search) Description() string { return "Find the keys and show the paths from the root." }

func (*Search) Apply(tree *rbtree.Tree, args []int) []string {
	var output []string
	for _, key := range args {
		node, path, found := tree.SearchPath(key)
		if !found {
			output = append(output, fmt.Sprintf("Value %d not found in the tree.", key))
			continue
		}
		output = append(output, fmt.Sprintf(
			"Found node with value %d, color=%s.", key, node.Color()))
		keys := []string{strconv.Itoa(tree.Root().Key())}
		for _, edge := range path {
			keys = append(keys, strconv.Itoa(edge.Child.Key()))
		}
		output = append(output, "Path: "+strings.Join(keys, " -> ")+".")
	}
	return output
}

// Recolor toggles the colors of the nodes.
type Recolor struct{}

func (*Recolor) Arity() (int, int) { return 1, -1 }
func (*Recolor) Description() string {
	return "Toggle the colors of the nodes, ignoring the Red-Black properties."
}

func (*Recolor) Apply(tree *rbtree.Tree, args []int) []string {
	for _, key := range args {
		tree.Recolor(key)
	}
	return nil
}

// RebalanceStep fixes the oldest pending node.
type RebalanceStep struct{}

func (*RebalanceStep) Arity() (int, int)   { return 0, 0 }
func (*RebalanceStep) Description() string { return "Fix the oldest pending node." }

func (*RebalanceStep) Apply(tree *rbtree.Tree, _ []int) []string {
	tree.RebalanceStep()
	return nil
}

// RebalanceAll drains the pending queue.
type RebalanceAll struct{}

func (*RebalanceAll) Arity() (int, int)   { return 0, 0 }
func (*RebalanceAll) Description() string { return "Fix all the pending nodes." }

func (*RebalanceAll) Apply(tree *rbtree.Tree, _ []int) []string {
	tree.RebalanceAll()
	return nil
}

// Clear removes all the nodes.
type Clear struct{}

func (*Clear) Arity() (int, int)   { return 0, 0 }
func (*Clear) Description() string { return "Remove all the nodes." }

func (*Clear) Apply(tree *rbtree.Tree, _ []int) []string {
	tree.Clear()
	return nil
}

// Full switches to rotations and recoloring.
type Full struct{}

func (*Full) Arity() (int, int)   { return 0, 0 }
func (*Full) Description() string { return "Switch to the full rebalancing mode." }

func (*Full) Apply(tree *rbtree.Tree, _ []int) []string {
	tree.SetMode(rbtree.FullMode)
	return nil
}

// ColorOnly switches to recoloring without rotations.
type ColorOnly struct{}

func (*ColorOnly) Arity() (int, int)   { return 0, 0 }
func (*ColorOnly) Description() string { return "Switch to the color-only rebalancing mode." }

func (*ColorOnly) Apply(tree *rbtree.Tree, _ []int) []string {
	tree.SetMode(rbtree.ColorOnlyMode)
	return nil
}

// Inorder prints the inorder traversal.
type Inorder struct{}

func (*Inorder) Arity() (int, int)   { return 0, 0 }
func (*Inorder) Description() string { return "Print the inorder traversal." }

func (*Inorder) Apply(tree *rbtree.Tree, _ []int) []string {
	return []string{"Inorder: " + FormatEntries(tree.Inorder())}
}

// Preorder prints the preorder traversal.
type Preorder struct{}

func (*Preorder) Arity() (int, int)   { return 0, 0 }
func (*Preorder) Description() string { return "Print the preorder traversal." }

func (*Preorder) Apply(tree *rbtree.Tree, _ []int) []string {
	return []string{"Preorder: " + FormatEntries(tree.Preorder())}
}

// Postorder prints the postorder traversal.
type Postorder struct{}

func (*Postorder) Arity() (int, int)   { return 0, 0 }
func (*Postorder) Description() string { return "Print the postorder traversal." }

func (*Postorder) Apply(tree *rbtree.Tree, _ []int) []string {
	return []string{"Postorder: " + FormatEntries(tree.Postorder())}
}

// Check validates the Red-Black properties.
type Check struct{}

func (*Check) Arity() (int, int)   { return 0, 0 }
func (*Check) Description() string { return "Validate the Red-Black properties." }

func (*Check) Apply(tree *rbtree.Tree, _ []int) []string {
	return report.New(tree).CheckLines()
}

// Render draws the tree.
type Render struct{}

func (*Render) Arity() (int, int)   { return 0, 0 }
func (*Render) Description() string { return "Draw the tree." }

func (*Render) Apply(tree *rbtree.Tree, _ []int) []string {
	return strings.Split(report.Render(tree), "\n")
}

// FormatEntries joins the traversal entries: [(10,red), (20,black)].
func FormatEntries(entries []rbtree.Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func init() {
	for _, op := range []Operation{
		&Insert{}, &Fill{}, &Delete{}, &Search{}, &Recolor{},
		&RebalanceStep{}, &RebalanceAll{}, &Clear{}, &Full{}, &ColorOnly{},
		&Inorder{}, &Preorder{}, &Postorder{}, &Check{}, &Render{},
	} {
		Registry.Register(op)
	}
}
