package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// BorrowRecord is one loan of one book. Once appended it is only ever updated
// to set ReturnDate, and it is never deleted.
type BorrowRecord struct {
	ID         string
	Title      string
	Borrower   string
	BorrowDate time.Time
	ReturnDate *time.Time
}

// IsOpen reports whether the book has not been returned yet.
func (r BorrowRecord) IsOpen() bool {
	return r.ReturnDate == nil
}

// LoanDuration returns how long a closed record's book was out.
// The second result is false for open records.
func (r BorrowRecord) LoanDuration() (time.Duration, bool) {
	if r.ReturnDate == nil {
		return 0, false
	}

	return r.ReturnDate.Sub(r.BorrowDate), true
}

// Ledger is the append-only borrow history.
//
// Records keep append order. open maps a title to the positions of its open
// records (in append order) and byID maps a record ID to its position.
//
// Ledger is not safe for concurrent use.
type Ledger struct {
	records []BorrowRecord
	open    map[string][]int
	byID    map[string]int
	newID   func() string
}

// NewLedger returns an empty ledger that keys records with random UUIDs.
func NewLedger() *Ledger {
	return &Ledger{
		open:  make(map[string][]int),
		byID:  make(map[string]int),
		newID: uuid.NewString,
	}
}

// Append records a new open loan and returns it with its assigned ID.
func (l *Ledger) Append(title, borrower string, borrowedAt time.Time) BorrowRecord {
	rec := BorrowRecord{
		ID:         l.newID(),
		Title:      title,
		Borrower:   borrower,
		BorrowDate: borrowedAt,
	}

	pos := len(l.records)
	l.records = append(l.records, rec)
	l.byID[rec.ID] = pos
	l.open[title] = append(l.open[title], pos)

	return rec
}

// FindOpen returns the earliest open record for title held by borrower.
func (l *Ledger) FindOpen(title, borrower string) (BorrowRecord, bool) {
	for _, pos := range l.open[title] {
		if l.records[pos].Borrower == borrower {
			return l.records[pos], true
		}
	}

	return BorrowRecord{}, false
}

// Close sets the return date of the record with the given ID.
func (l *Ledger) Close(id string, returnedAt time.Time) error {
	pos, ok := l.byID[id]
	if !ok {
		return NewNotFoundError("borrow record", id)
	}

	rec := &l.records[pos]
	if rec.ReturnDate != nil {
		return NewConflictError("borrow record", id, "already returned")
	}

	if returnedAt.Before(rec.BorrowDate) {
		return NewValidationErrorWithValue("return_date", "precedes borrow date", returnedAt)
	}

	at := returnedAt
	rec.ReturnDate = &at

	remaining := slices.DeleteFunc(l.open[rec.Title], func(p int) bool { return p == pos })
	if len(remaining) == 0 {
		delete(l.open, rec.Title)
	} else {
		l.open[rec.Title] = remaining
	}

	return nil
}

// Get returns the record with the given ID.
func (l *Ledger) Get(id string) (BorrowRecord, bool) {
	pos, ok := l.byID[id]
	if !ok {
		return BorrowRecord{}, false
	}

	return l.records[pos], true
}

// Records returns a copy of the history in append order.
func (l *Ledger) Records() []BorrowRecord {
	out := make([]BorrowRecord, len(l.records))
	copy(out, l.records)

	return out
}

// Len returns the number of records, open and closed.
func (l *Ledger) Len() int {
	return len(l.records)
}

// OpenCount returns the number of open records.
func (l *Ledger) OpenCount() int {
	n := 0
	for _, positions := range l.open {
		n += len(positions)
	}

	return n
}

// HasOpen reports whether any open record exists for title.
func (l *Ledger) HasOpen(title string) bool {
	return len(l.open[title]) > 0
}
