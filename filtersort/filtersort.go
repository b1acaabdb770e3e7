/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filtersort

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/suparena/tablestore/storagemodels"
)

// SortSpec names one attribute to order by.
type SortSpec struct {
	Attr       string
	Descending bool
}

// SelectAttrs projects each item down to the named attributes. Attributes an
// item does not carry are simply absent from its projection. The input slice
// and its items are never modified.
func SelectAttrs(items []storagemodels.Item, attrs []string) []storagemodels.Item {
	out := make([]storagemodels.Item, 0, len(items))
	for _, item := range items {
		projected := make(storagemodels.Item, len(attrs))
		for _, attr := range attrs {
			if v, ok := item[attr]; ok {
				projected[attr] = v
			}
		}
		out = append(out, projected)
	}
	return out
}

// SortByAttrs returns a new slice ordered by the given specs, applied in
// order: ties on the first spec are broken by the second, and so on. Values
// that parse as numbers compare numerically, everything else compares as
// strings; items missing the attribute sort first. The sort is stable.
func SortByAttrs(items []storagemodels.Item, specs []SortSpec) []storagemodels.Item {
	out := make([]storagemodels.Item, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		for _, spec := range specs {
			c := compareValues(out[i][spec.Attr], out[j][spec.Attr])
			if c == 0 {
				continue
			}
			if spec.Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return out
}

// compareValues orders two attribute values: absent < number < string.
func compareValues(a, b any) int {
	aNum, aOK := toFloat(a)
	bNum, bOK := toFloat(b)

	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case aOK && bOK:
		switch {
		case aNum < bNum:
			return -1
		case aNum > bNum:
			return 1
		}
		return 0
	case aOK:
		return -1
	case bOK:
		return 1
	}

	as, bs := toString(a), toString(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
