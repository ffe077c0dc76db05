package domain

import "context"

// MemberStore defines the record store surface the flows depend on.
// The production implementation talks to the Google Sheets worksheet;
// tests substitute an in-memory fake.
type MemberStore interface {
	// List fetches the full current snapshot of the store.
	List(ctx context.Context) ([]Member, error)
	// Append adds one new row in fixed column order.
	Append(ctx context.Context, m Member) error
}
