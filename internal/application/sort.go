package application

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/festify/festify-web/internal/domain/entity"
)

// collationTag drives name ordering. A Collator is not safe for concurrent
// use, so each sort builds its own.
var collationTag = language.English

func newCollator() *collate.Collator {
	return collate.New(collationTag, collate.IgnoreCase)
}

// SortEventsByDateAsc returns a copy ordered by start date, earliest first.
func SortEventsByDateAsc(events []entity.Event) []entity.Event {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b entity.Event) int {
		return a.StartDate.Compare(b.StartDate.Time)
	})
	return out
}

// SortEventsByDateDesc returns a copy ordered by start date, latest first.
func SortEventsByDateDesc(events []entity.Event) []entity.Event {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b entity.Event) int {
		return b.StartDate.Compare(a.StartDate.Time)
	})
	return out
}

func SortCollegesByName(colleges []entity.College) []entity.College {
	col := newCollator()
	out := slices.Clone(colleges)
	slices.SortStableFunc(out, func(a, b entity.College) int {
		return col.CompareString(a.Name, b.Name)
	})
	return out
}

func SortCategoriesByName(categories []entity.Category) []entity.Category {
	col := newCollator()
	out := slices.Clone(categories)
	slices.SortStableFunc(out, func(a, b entity.Category) int {
		return col.CompareString(a.Name, b.Name)
	})
	return out
}
