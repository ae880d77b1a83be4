package identity

import "fmt"

// Store holds the provisioned identity records.
//
// Lookup is exact-match over the fingerprint bytes. The store is built once
// via NewStore and read-only afterwards, so it needs no locking. A map is
// used rather than the linear scan a handful of records would justify; the
// behaviour is identical and the read path stays O(1) if the table grows.
type Store struct {
	records map[Fingerprint]Record
}

// NewStore builds a Store from the provisioned records.
//
// Returns ErrDuplicateFingerprint if two records share a fingerprint; the
// uniqueness invariant must hold or lookups would be ambiguous.
func NewStore(records []Record) (*Store, error) {
	byFingerprint := make(map[Fingerprint]Record, len(records))

	for _, rec := range records {
		if _, exists := byFingerprint[rec.Fingerprint]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFingerprint, rec.Fingerprint)
		}
		byFingerprint[rec.Fingerprint] = rec
	}

	return &Store{records: byFingerprint}, nil
}

// Lookup returns the record whose fingerprint exactly equals fp.
//
// The comparison is byte-wise and order-sensitive; there is no partial or
// fuzzy matching. Lookup has no side effects and always terminates.
//
// Returns:
//   - Record: the matching record (zero value when not found)
//   - bool: true if a record matched
func (s *Store) Lookup(fp Fingerprint) (Record, bool) {
	rec, ok := s.records[fp]
	return rec, ok
}

// Len returns the number of provisioned records.
func (s *Store) Len() int {
	return len(s.records)
}
