package docstore

import (
	"cmp"
	"encoding/json"
	"slices"
)

// sortDocuments orders docs by q. Documents without the field come last in
// both directions; ties fall back to ID so results are deterministic.
func sortDocuments(docs []*Document, q Query) {
	if q.OrderBy == "" {
		slices.SortFunc(docs, func(a, b *Document) int {
			return cmp.Compare(a.ID, b.ID)
		})
		return
	}

	keys := make(map[*Document]any, len(docs))
	for _, d := range docs {
		if raw, ok := d.Data[q.OrderBy]; ok {
			var v any
			if err := json.Unmarshal(raw, &v); err == nil && v != nil {
				keys[d] = v
			}
		}
	}

	slices.SortStableFunc(docs, func(a, b *Document) int {
		ka, okA := keys[a]
		kb, okB := keys[b]
		switch {
		case !okA && !okB:
			return cmp.Compare(a.ID, b.ID)
		case !okA:
			return 1
		case !okB:
			return -1
		}
		c := compareValues(ka, kb)
		if q.Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// compareValues orders decoded JSON scalars. Values of different kinds are
// ordered by kind: bool < number < string < anything else.
func compareValues(a, b any) int {
	ra, rb := kindRank(a), kindRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch va := a.(type) {
	case bool:
		vb := b.(bool)
		switch {
		case va == vb:
			return 0
		case !va:
			return -1
		default:
			return 1
		}
	case float64:
		return cmp.Compare(va, b.(float64))
	case string:
		return cmp.Compare(va, b.(string))
	}
	return 0
}

func kindRank(v any) int {
	switch v.(type) {
	case bool:
		return 0
	case float64:
		return 1
	case string:
		return 2
	default:
		return 3
	}
}
