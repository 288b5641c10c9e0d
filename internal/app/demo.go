package app

import (
	"context"
	"fmt"
)

type demoLoan struct {
	title    string
	author   string
	borrower string
}

var demoLoans = []demoLoan{
	{title: "Захар Беркут", author: "Іван Франко", borrower: "Оксана"},
	{title: "Лісова пісня", author: "Леся Українка", borrower: "Ігор"},
}

// RunDemo catalogues two books and lends each one out and back to a
// different reader.
func RunDemo(ctx context.Context, s *LibraryService) error {
	for _, l := range demoLoans {
		s.AddBook(ctx, l.title, l.author)
	}

	for _, l := range demoLoans {
		if !s.Borrow(ctx, l.title, l.borrower) {
			return fmt.Errorf("demo: borrowing %q for %s was refused", l.title, l.borrower)
		}
		if !s.Return(ctx, l.title, l.borrower) {
			return fmt.Errorf("demo: returning %q from %s was refused", l.title, l.borrower)
		}
	}

	return nil
}
