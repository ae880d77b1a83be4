// Package identity provides the Identity Store for Ward Gate Core.
//
// The Identity Store is the static catalogue of credentials the access
// controller authenticates against: each record associates a card
// fingerprint with a PIN and a display name. The store is built once at
// startup from the configured identity table and is immutable afterwards.
//
// # Key Types
//
//   - Fingerprint: the fixed-length byte sequence read from a presented card
//   - PIN: the fixed-length digit sequence a cardholder must enter
//   - Record: stored association of fingerprint, PIN, and display name
//   - Store: read-only exact-match lookup over the provisioned records
//
// # Usage
//
//	records := []identity.Record{ ... }
//	store, err := identity.NewStore(records)
//	if err != nil {
//	    return err
//	}
//
//	rec, ok := store.Lookup(fp)
//	if !ok {
//	    // unrecognised card
//	}
//
// # Thread Safety
//
// The Store is immutable after construction and safe for concurrent reads
// without locking.
package identity
