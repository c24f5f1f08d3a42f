package diff

import "strings"

// keySep separates key-column values inside a composite key. The unit
// separator cannot appear in parsed cell text, so joined tuples never
// collide.
const keySep = "\x1f"

// rowPair is one matched pair of rows. Either side may be nil when the
// row exists in only one table.
type rowPair struct {
	old RowRecord
	new RowRecord
}

// matchByKeys pairs rows by composite key equality. Duplicate keys
// within one table resolve last-seen-wins: a later row silently replaces
// an earlier one under the same key. Pairs are emitted in first-seen key
// order, a's rows first and then b's rows whose key a never produced, so
// output indices are reproducible.
func matchByKeys(a, b Table, keys []string) []rowPair {
	aByKey, aOrder := indexByKey(a, keys)
	bByKey, bOrder := indexByKey(b, keys)

	pairs := make([]rowPair, 0, len(aOrder)+len(bOrder))
	for _, k := range aOrder {
		pairs = append(pairs, rowPair{old: aByKey[k], new: bByKey[k]})
	}
	for _, k := range bOrder {
		if _, inA := aByKey[k]; inA {
			continue
		}
		pairs = append(pairs, rowPair{new: bByKey[k]})
	}
	return pairs
}

// indexByKey maps composite key to row (last row wins) and records the
// order in which keys were first seen.
func indexByKey(t Table, keys []string) (map[string]RowRecord, []string) {
	byKey := make(map[string]RowRecord, len(t.Rows))
	var order []string
	for i := range t.Rows {
		rec := t.Record(i)
		k := compositeKey(rec, keys)
		if _, seen := byKey[k]; !seen {
			order = append(order, k)
		}
		byKey[k] = rec
	}
	return byKey, order
}

func compositeKey(rec RowRecord, keys []string) string {
	parts := make([]string, len(keys))
	for i, col := range keys {
		parts[i] = rec[col]
	}
	return strings.Join(parts, keySep)
}

// matchByPosition pairs rows purely by index. Indices beyond one table's
// length yield an absent side.
func matchByPosition(a, b Table) []rowPair {
	n := len(a.Rows)
	if len(b.Rows) > n {
		n = len(b.Rows)
	}
	pairs := make([]rowPair, 0, n)
	for i := 0; i < n; i++ {
		var p rowPair
		if i < len(a.Rows) {
			p.old = a.Record(i)
		}
		if i < len(b.Rows) {
			p.new = b.Record(i)
		}
		pairs = append(pairs, p)
	}
	return pairs
}
