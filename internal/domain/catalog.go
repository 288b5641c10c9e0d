package domain

import "strings"

// Catalog is the ordered set of books the library currently holds.
// Books keep insertion order; byTitle maps an exact title to the positions of
// its copies, also in insertion order, so first-match lookups avoid a scan.
//
// Catalog is not safe for concurrent use.
type Catalog struct {
	books   []Book
	byTitle map[string][]int
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byTitle: make(map[string][]int)}
}

// Add appends a book. Duplicate titles are allowed.
func (c *Catalog) Add(book Book) {
	c.books = append(c.books, book)
	c.byTitle[book.Title] = append(c.byTitle[book.Title], len(c.books)-1)
}

// Remove drops every book whose title equals title exactly.
// Borrow history is not affected.
func (c *Catalog) Remove(title string) {
	if _, ok := c.byTitle[title]; !ok {
		return
	}

	kept := c.books[:0]
	for _, b := range c.books {
		if b.Title != title {
			kept = append(kept, b)
		}
	}
	clear(c.books[len(kept):])
	c.books = kept

	c.reindex()
}

// Find returns the books whose title contains query, ignoring case,
// in catalog order. The result is never nil.
func (c *Catalog) Find(query string) []Book {
	q := strings.ToLower(query)

	found := make([]Book, 0)
	for _, b := range c.books {
		if strings.Contains(strings.ToLower(b.Title), q) {
			found = append(found, b)
		}
	}

	return found
}

// CheckOut flags the first available copy of title as borrowed.
// It reports false when every copy is out or the title is unknown.
func (c *Catalog) CheckOut(title string) bool {
	for _, i := range c.byTitle[title] {
		if !c.books[i].IsBorrowed {
			c.books[i].IsBorrowed = true
			return true
		}
	}

	return false
}

// CheckIn clears the borrowed flag of the first copy of title, whichever copy
// was actually lent out. It reports false when the title is not catalogued.
func (c *Catalog) CheckIn(title string) bool {
	positions := c.byTitle[title]
	if len(positions) == 0 {
		return false
	}

	c.books[positions[0]].IsBorrowed = false

	return true
}

// Books returns a copy of the catalog in insertion order.
func (c *Catalog) Books() []Book {
	out := make([]Book, len(c.books))
	copy(out, c.books)

	return out
}

// Len returns the number of books, counting every copy.
func (c *Catalog) Len() int {
	return len(c.books)
}

// BorrowedCount returns how many copies are currently flagged as borrowed.
func (c *Catalog) BorrowedCount() int {
	n := 0
	for _, b := range c.books {
		if b.IsBorrowed {
			n++
		}
	}

	return n
}

func (c *Catalog) reindex() {
	c.byTitle = make(map[string][]int, len(c.byTitle))
	for i, b := range c.books {
		c.byTitle[b.Title] = append(c.byTitle[b.Title], i)
	}
}
