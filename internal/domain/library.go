package domain

import "time"

// Library couples the catalog with the borrow ledger.
// Borrow and Return are check-then-act sequences over both; callers sharing a
// Library across goroutines must serialise them.
type Library struct {
	catalog *Catalog
	ledger  *Ledger
}

// NewLibrary returns a library with an empty catalog and history.
func NewLibrary() *Library {
	return &Library{
		catalog: NewCatalog(),
		ledger:  NewLedger(),
	}
}

// Catalog returns the library's catalog.
func (l *Library) Catalog() *Catalog {
	return l.catalog
}

// Ledger returns the library's borrow history.
func (l *Library) Ledger() *Ledger {
	return l.ledger
}

// Borrow lends the first available copy of title to borrower.
// It reports false, changing nothing, when no copy is available.
func (l *Library) Borrow(title, borrower string, now time.Time) (BorrowRecord, bool) {
	if !l.catalog.CheckOut(title) {
		return BorrowRecord{}, false
	}

	return l.ledger.Append(title, borrower, now), true
}

// Return closes borrower's earliest open loan of title and clears the borrowed
// flag of the first catalogued copy of title. With several copies on loan that
// may not be the copy that came back.
//
// It reports false, changing nothing, when borrower has no open loan of title.
// A clock that runs backwards is clamped so the return never precedes the
// borrow.
func (l *Library) Return(title, borrower string, now time.Time) (BorrowRecord, bool) {
	rec, ok := l.ledger.FindOpen(title, borrower)
	if !ok {
		return BorrowRecord{}, false
	}

	returnedAt := now
	if returnedAt.Before(rec.BorrowDate) {
		returnedAt = rec.BorrowDate
	}

	if err := l.ledger.Close(rec.ID, returnedAt); err != nil {
		return BorrowRecord{}, false
	}

	l.catalog.CheckIn(title)

	closed, _ := l.ledger.Get(rec.ID)

	return closed, true
}

// Statistics summarises the full borrow history.
func (l *Library) Statistics() Statistics {
	return ComputeStatistics(l.ledger.records)
}
