package domain

// Author wrote one or more books. It has no identity beyond its name.
type Author struct {
	Name string
}

// Book is a single catalog entry.
// Titles are not unique: two copies of the same work are two Books.
type Book struct {
	Title      string
	Author     Author
	IsBorrowed bool
}

// NewBook returns an available book by the given author.
func NewBook(title string, author Author) Book {
	return Book{Title: title, Author: author}
}
