package yaml

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	yaml "gopkg.in/yaml.v2"

	"github.com/cyraxred/redblack/internal/rbtree"
)

func TestSafeString(t *testing.T) {
	assert.Equal(t, SafeString(""), "\"\"")
	assert.Equal(t, SafeString("test"), "\"test\"")
	assert.Equal(t, SafeString("test\""), "\"test\\\"\"")
	assert.Equal(t, SafeString("test\\"), "\"test\\\\\"")
}

func TestPrintEntries(t *testing.T) {
	buffer := &bytes.Buffer{}
	PrintEntries(buffer, []rbtree.Entry{{Key: 20, Color: rbtree.Black}, {Key: -1, Color: rbtree.Red}}, 2, "preorder")
	assert.Equal(t, "  preorder: [[20, black], [-1, red]]\n", buffer.String())
	buffer.Reset()
	PrintEntries(buffer, nil, 0, "inorder")
	assert.Equal(t, "inorder: []\n", buffer.String())
}

func TestPrintInts(t *testing.T) {
	buffer := &bytes.Buffer{}
	PrintInts(buffer, []int{1, 2, 3}, 4, "pending")
	assert.Equal(t, "    pending: [1, 2, 3]\n", buffer.String())
}

func TestPrintStringsRoundTrip(t *testing.T) {
	buffer := &bytes.Buffer{}
	buffer.WriteString("root:\n")
	steps := []string{"Parent red, uncle black -> skipping rotation (color-only).", "a \"quoted\" \\ step"}
	PrintStrings(buffer, steps, 2, "steps")
	PrintStrings(buffer, nil, 2, "violations")
	PrintBlock(buffer, "20B\n├── 10R\n└── 30R\n", 2, "render")
	PrintBlock(buffer, "", 2, "empty")
	PrintBlock(buffer, " 20B\n-10R\n+10B", 2, "diff")
	var parsed struct {
		Root struct {
			Steps      []string
			Violations []string
			Render     string
			Empty      string
			Diff       string
		}
	}
	assert.Nil(t, yaml.Unmarshal(buffer.Bytes(), &parsed))
	assert.Equal(t, steps, parsed.Root.Steps)
	assert.Empty(t, parsed.Root.Violations)
	assert.Equal(t, "20B\n├── 10R\n└── 30R", parsed.Root.Render)
	assert.Equal(t, "", parsed.Root.Empty)
	assert.Equal(t, " 20B\n-10R\n+10B", parsed.Root.Diff)
}
