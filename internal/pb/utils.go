package pb

import (
	"github.com/cyraxred/redblack/internal/rbtree"
)

// ToEntries converts a traversal to the corresponding Protobuf objects.
func ToEntries(entries []rbtree.Entry) []*Entry {
	result := make([]*Entry, len(entries))
	for i, e := range entries {
		result[i] = &Entry{Key: int64(e.Key), Black: e.Color == rbtree.Black}
	}
	return result
}

// FromEntries performs the inverse of ToEntries.
func FromEntries(entries []*Entry) []rbtree.Entry {
	result := make([]rbtree.Entry, len(entries))
	for i, e := range entries {
		result[i] = rbtree.Entry{Key: int(e.Key), Color: rbtree.Color(e.Black)}
	}
	return result
}

// ToViolations converts the Red-Black check results.
func ToViolations(violations []rbtree.Violation) []*Violation {
	result := make([]*Violation, len(violations))
	for i, v := range violations {
		result[i] = &Violation{Kind: v.Kind.String(), Key: int64(v.Key), Message: v.Message}
	}
	return result
}

// ToInt64s widens the keys.
func ToInt64s(keys []int) []int64 {
	result := make([]int64, len(keys))
	for i, k := range keys {
		result[i] = int64(k)
	}
	return result
}
