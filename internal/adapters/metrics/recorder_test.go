package metrics

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/library-ledger/internal/ports"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder(filepath.Join(t.TempDir(), "library.prom"))

	r.ObserveBorrow(true)
	r.ObserveBorrow(true)
	r.ObserveBorrow(false)
	r.ObserveReturn(true)

	assert.InDelta(t, 2.0, testutil.ToFloat64(r.borrows.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(r.borrows.WithLabelValues("refused")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(r.returns.WithLabelValues("ok")), 0)
	assert.InDelta(t, 0.0, testutil.ToFloat64(r.returns.WithLabelValues("refused")), 0)
}

func TestRecorder_SetInventory(t *testing.T) {
	r := NewRecorder(filepath.Join(t.TempDir(), "library.prom"))

	r.SetInventory(ports.Inventory{Books: 3, Borrowed: 1, Records: 5, OpenLoans: 1})

	expected := `
# HELP library_books Books in the catalog, counting every copy.
# TYPE library_books gauge
library_books 3
# HELP library_books_borrowed Catalog copies flagged as borrowed.
# TYPE library_books_borrowed gauge
library_books_borrowed 1
# HELP library_borrow_records Records in the borrow history.
# TYPE library_borrow_records gauge
library_borrow_records 5
# HELP library_open_loans Borrow records without a return date.
# TYPE library_open_loans gauge
library_open_loans 1
`
	err := testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected),
		"library_books", "library_books_borrowed", "library_borrow_records", "library_open_loans")
	assert.NoError(t, err)
}

func TestRecorder_WriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.prom")
	r := NewRecorder(path)
	r.ObserveBorrow(true)

	require.NoError(t, r.WriteTextfile())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `library_borrows_total{result="ok"} 1`)
	assert.Contains(t, string(data), "go_goroutines")
}

func TestRecorder_WriteTextfileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "library.prom")
	r := NewRecorder(path)

	err := r.WriteTextfile()

	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestRecorder_Check(t *testing.T) {
	ok := NewRecorder(filepath.Join(t.TempDir(), "library.prom"))
	assert.Equal(t, "metrics-textfile", ok.Name())
	assert.NoError(t, ok.Check(context.Background()))

	missing := NewRecorder(filepath.Join(t.TempDir(), "missing", "library.prom"))
	assert.Error(t, missing.Check(context.Background()))
}
