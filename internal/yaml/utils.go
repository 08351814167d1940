package yaml

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cyraxred/redblack/internal/rbtree"
)

// SafeString returns a string which is sufficiently quoted and escaped for YAML.
func SafeString(str string) string {
	str = strings.Replace(str, "\\", "\\\\", -1)
	str = strings.Replace(str, "\"", "\\\"", -1)
	return "\"" + str + "\""
}

// PrintEntries outputs the traversal as a YAML flow sequence of [key, color] pairs.
//
// `indent` is the current YAML indentation level - the number of spaces.
// `name` is the name of the corresponding YAML key.
func PrintEntries(writer io.Writer, entries []rbtree.Entry, indent int, name string) {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = "[" + strconv.Itoa(e.Key) + ", " + e.Color.String() + "]"
	}
	fmt.Fprintf(writer, "%s%s: [%s]\n", strings.Repeat(" ", indent), name, strings.Join(parts, ", "))
}

// PrintInts outputs the integers as a YAML flow sequence.
func PrintInts(writer io.Writer, values []int, indent int, name string) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	fmt.Fprintf(writer, "%s%s: [%s]\n", strings.Repeat(" ", indent), name, strings.Join(parts, ", "))
}

// PrintStrings outputs the strings as a YAML block sequence. Empty lists are
// written in the flow style.
func PrintStrings(writer io.Writer, values []string, indent int, name string) {
	prefix := strings.Repeat(" ", indent)
	if len(values) == 0 {
		fmt.Fprintf(writer, "%s%s: []\n", prefix, name)
		return
	}
	fmt.Fprintf(writer, "%s%s:\n", prefix, name)
	for _, v := range values {
		fmt.Fprintf(writer, "%s  - %s\n", prefix, SafeString(v))
	}
}

// PrintBlock outputs a multi-line text as a YAML literal block. The lines may
// start with spaces, so the indentation is explicit.
func PrintBlock(writer io.Writer, text string, indent int, name string) {
	prefix := strings.Repeat(" ", indent)
	text = strings.TrimRight(text, "\n")
	if text == "" {
		fmt.Fprintf(writer, "%s%s: \"\"\n", prefix, name)
		return
	}
	fmt.Fprintf(writer, "%s%s: |2-\n", prefix, name)
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(writer, "%s  %s\n", prefix, line)
	}
}
