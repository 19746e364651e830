// Package testutil holds helpers for the in-memory managers used in tests.
package testutil

import (
	"sort"

	"github.com/ehr/prescribeit/pkg/pagination"
)

// Page applies keyset paging to an in-memory table: rows passing keep are
// sorted by key, rows at or before p.StartingID are skipped and at most
// p.PageSize are returned along with the filtered total.
func Page[T any](all map[int64]*T, key func(*T) int64, keep func(*T) bool, p pagination.Params) ([]*T, int) {
	matched := make([]*T, 0, len(all))
	for _, v := range all {
		if keep == nil || keep(v) {
			matched = append(matched, v)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return key(matched[i]) < key(matched[j]) })

	out := make([]*T, 0, p.PageSize)
	for _, v := range matched {
		if p.StartingID != nil && key(v) <= *p.StartingID {
			continue
		}
		if len(out) == p.PageSize {
			break
		}
		out = append(out, v)
	}
	return out, len(matched)
}
