package normalize

import (
	"strconv"
	"strings"
	"time"
)

// Customers cleanses the CRM customer extract. Rows without a parsable
// business key are discarded; for each key only the record with the latest
// creation date survives, ties going to the first-seen record so reruns over
// identical input stay deterministic. Output order follows the first
// appearance of each key in the input.
func Customers(in []RawCustomer) []Customer {
	type candidate struct {
		rec   Customer
		order int
	}

	best := make(map[int64]*candidate)
	var keys []int64

	for i, raw := range in {
		id, err := strconv.ParseInt(strings.TrimSpace(raw.ID), 10, 64)
		if err != nil {
			// Null business key: the one case where a row is dropped
			continue
		}

		rec := Customer{
			ID:            id,
			Key:           strings.TrimSpace(raw.Key),
			FirstName:     strings.TrimSpace(raw.FirstName),
			LastName:      strings.TrimSpace(raw.LastName),
			MaritalStatus: MaritalStatusMap.Normalize(raw.MaritalStatus),
			Gender:        GenderMap.Normalize(raw.Gender),
			CreateDate:    parseDay(raw.CreateDate),
		}

		cur, seen := best[id]
		if !seen {
			best[id] = &candidate{rec: rec, order: i}
			keys = append(keys, id)
			continue
		}
		if laterThan(rec.CreateDate, cur.rec.CreateDate) {
			cur.rec = rec
		}
	}

	out := make([]Customer, 0, len(keys))
	for _, id := range keys {
		out = append(out, best[id].rec)
	}
	return out
}

// laterThan reports whether a is strictly later than b, with nil treated as
// earlier than any real date
func laterThan(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}
