// Package keyfile reads and writes the plain lists of tree keys: integers
// separated by whitespace.
package keyfile

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"

	"github.com/cyraxred/redblack/internal/core"
)

// Parse reads the keys from r. Tokens which are not integers are skipped and
// reported to the logger, which may be nil.
func Parse(r io.Reader, logger core.Logger) ([]int, error) {
	var keys []int
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		token := scanner.Text()
		key, err := strconv.Atoi(token)
		if err != nil {
			if logger != nil {
				logger.Warnf("Skipping non-integer token '%s'.", token)
			}
			continue
		}
		keys = append(keys, key)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read the keys")
	}
	return keys, nil
}

// Load reads the keys from the file in fs.
func Load(fs billy.Filesystem, path string, logger core.Logger) ([]int, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s", path)
	}
	defer file.Close()
	keys, err := Parse(file, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load %s", path)
	}
	if len(keys) == 0 {
		return nil, errors.Errorf("%s does not contain any keys", path)
	}
	return keys, nil
}

// Format writes the keys separated by single spaces.
func Format(keys []int) string {
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = strconv.Itoa(key)
	}
	return strings.Join(parts, " ")
}

// Save writes the keys to the file in fs, creating the parent directories.
func Save(fs billy.Filesystem, path string, keys []int) error {
	err := util.WriteFile(fs, path, []byte(Format(keys)), 0666)
	return errors.Wrapf(err, "cannot save %s", path)
}
