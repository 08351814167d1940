package keyfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyraxred/redblack/internal/core"
)

func TestParse(t *testing.T) {
	var buf bytes.Buffer
	logger := core.NewLogger(false)
	logger.SetOutput(&buf)
	keys, err := Parse(strings.NewReader("10 20\n\t-5  abc 30x 40\n"), logger)
	require.Nil(t, err)
	assert.Equal(t, []int{10, 20, -5, 40}, keys)
	assert.Contains(t, buf.String(), "[WARN] ")
	assert.Contains(t, buf.String(), "Skipping non-integer token 'abc'.")
	assert.Contains(t, buf.String(), "Skipping non-integer token '30x'.")

	keys, err = Parse(strings.NewReader(""), nil)
	assert.Nil(t, err)
	assert.Empty(t, keys)
}

func TestSaveLoad(t *testing.T) {
	fs := memfs.New()
	require.Nil(t, Save(fs, "dir/keys.txt", []int{3, 1, -2}))
	data, err := util.ReadFile(fs, "dir/keys.txt")
	require.Nil(t, err)
	assert.Equal(t, "3 1 -2", string(data))
	keys, err := Load(fs, "dir/keys.txt", nil)
	assert.Nil(t, err)
	assert.Equal(t, []int{3, 1, -2}, keys)
}

func TestLoadErrors(t *testing.T) {
	fs := memfs.New()
	_, err := Load(fs, "missing.txt", nil)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "cannot open missing.txt")

	require.Nil(t, util.WriteFile(fs, "empty.txt", []byte("  \n"), 0666))
	_, err = Load(fs, "empty.txt", nil)
	assert.EqualError(t, err, "empty.txt does not contain any keys")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "7", Format([]int{7}))
}
