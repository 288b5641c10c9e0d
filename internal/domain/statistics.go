package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// MostPopularLimit is the number of titles kept in the popularity ranking.
const MostPopularLimit = 3

// PopularTitle is a title and how many times it was borrowed.
type PopularTitle struct {
	Title string
	Count int
}

// Statistics summarises a borrow history.
type Statistics struct {
	// MostPopular holds up to MostPopularLimit titles by descending borrow
	// count. Equal counts keep the order in which titles were first borrowed.
	MostPopular []PopularTitle

	// ReturnRate is the percentage of records that are closed, in [0, 100].
	ReturnRate float64

	// AverageReadTimeHours is the mean loan length of closed records in
	// hours, rounded to two decimal places.
	AverageReadTimeHours float64
}

// ComputeStatistics derives Statistics from records without modifying them.
func ComputeStatistics(records []BorrowRecord) Statistics {
	return Statistics{
		MostPopular:          mostPopular(records, MostPopularLimit),
		ReturnRate:           returnRate(records),
		AverageReadTimeHours: averageReadTimeHours(records),
	}
}

func mostPopular(records []BorrowRecord, limit int) []PopularTitle {
	ranking := make([]PopularTitle, 0)
	seen := make(map[string]int)

	for _, r := range records {
		if i, ok := seen[r.Title]; ok {
			ranking[i].Count++
			continue
		}
		seen[r.Title] = len(ranking)
		ranking = append(ranking, PopularTitle{Title: r.Title, Count: 1})
	}

	// Stable sort keeps first-seen order among equal counts.
	slices.SortStableFunc(ranking, func(a, b PopularTitle) int {
		return b.Count - a.Count
	})

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}

	return ranking
}

func returnRate(records []BorrowRecord) float64 {
	if len(records) == 0 {
		return 0
	}

	closed := 0
	for _, r := range records {
		if !r.IsOpen() {
			closed++
		}
	}

	return float64(closed) / float64(len(records)) * 100
}

func averageReadTimeHours(records []BorrowRecord) float64 {
	var (
		totalHours float64
		closed     int
	)

	for _, r := range records {
		d, ok := r.LoanDuration()
		if !ok {
			continue
		}
		totalHours += d.Seconds() / 3600
		closed++
	}

	if closed == 0 {
		return 0
	}

	return decimal.NewFromFloat(totalHours / float64(closed)).RoundBank(2).InexactFloat64()
}
