package jsondoc

import (
	"sort"
	"strings"
)

// ChangeKind classifies one modification made by a merge.
type ChangeKind string

const (
	Added    ChangeKind = "added"
	Updated  ChangeKind = "updated"
	Extended ChangeKind = "extended" // array gained elements
)

// Change records one modification made by a merge.
type Change struct {
	Path string // keys joined with "/"
	Kind ChangeKind
	From any
	To   any
}

// Fill adds every key of src that dst lacks, recursing into objects present
// on both sides. Existing values are never replaced.
func Fill(dst, src *Object) []Change {
	var changes []Change
	mergeObject(dst, src, "", false, &changes)
	return changes
}

// Merge overlays src onto dst. Absent keys are added, objects recurse, arrays
// gain the elements of src they lack, and any other value that differs is
// replaced. Keys of dst that src does not mention are left untouched.
func Merge(dst, src *Object) []Change {
	var changes []Change
	mergeObject(dst, src, "", true, &changes)
	return changes
}

func mergeObject(dst, src *Object, prefix string, overwrite bool, changes *[]Change) {
	for _, k := range src.keys {
		path := joinPath(prefix, k)
		sv := src.values[k]
		dv, ok := dst.values[k]

		if !ok {
			dst.Set(k, cloneValue(sv))
			*changes = append(*changes, Change{Path: path, Kind: Added, To: cloneValue(sv)})
			continue
		}

		dObj, dIsObj := dv.(*Object)
		sObj, sIsObj := sv.(*Object)
		if dIsObj && sIsObj {
			mergeObject(dObj, sObj, path, overwrite, changes)
			continue
		}

		if !overwrite {
			continue
		}

		dArr, dIsArr := dv.([]any)
		sArr, sIsArr := sv.([]any)
		if dIsArr && sIsArr {
			if merged, grew := union(dArr, sArr); grew {
				dst.values[k] = merged
				*changes = append(*changes, Change{Path: path, Kind: Extended, From: dv, To: cloneValue(merged)})
			}
			continue
		}

		if !Equal(dv, sv) {
			dst.values[k] = cloneValue(sv)
			*changes = append(*changes, Change{Path: path, Kind: Updated, From: dv, To: cloneValue(sv)})
		}
	}
}

// union appends the elements of extra that base lacks.
func union(base, extra []any) ([]any, bool) {
	out := make([]any, len(base), len(base)+len(extra))
	copy(out, base)
	grew := false
	for _, e := range extra {
		found := false
		for _, b := range out {
			if Equal(b, e) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, cloneValue(e))
			grew = true
		}
	}
	return out, grew
}

func joinPath(prefix, key string) string {
	key = strings.ReplaceAll(key, "/", "~1")
	if prefix == "" {
		return "/" + key
	}
	return prefix + "/" + key
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
