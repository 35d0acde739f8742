package application

import "github.com/festify/festify-web/internal/domain/entity"

// Grouped buckets items by key. Keys are in first-seen order.
type Grouped[T any] struct {
	Keys   []string
	Groups map[string][]T
}

func (g Grouped[T]) Get(key string) []T { return g.Groups[key] }

// Len is the number of distinct keys.
func (g Grouped[T]) Len() int { return len(g.Keys) }

func groupBy[T any](items []T, key func(*T) string) Grouped[T] {
	g := Grouped[T]{Keys: []string{}, Groups: map[string][]T{}}
	for i := range items {
		k := key(&items[i])
		if _, ok := g.Groups[k]; !ok {
			g.Keys = append(g.Keys, k)
		}
		g.Groups[k] = append(g.Groups[k], items[i])
	}
	return g
}

// Counts tallies items by key. Keys are in first-seen order.
type Counts struct {
	Keys   []string
	Values map[string]int
}

func (c Counts) Get(key string) int { return c.Values[key] }

func countBy[T any](items []T, key func(*T) string) Counts {
	c := Counts{Keys: []string{}, Values: map[string]int{}}
	for i := range items {
		k := key(&items[i])
		if _, ok := c.Values[k]; !ok {
			c.Keys = append(c.Keys, k)
		}
		c.Values[k]++
	}
	return c
}

// UnknownLocation buckets colleges without a location.
const UnknownLocation = "Unknown"

// GroupEventsByCollege keys by college id; events without one share the ""
// bucket.
func GroupEventsByCollege(events []entity.Event) Grouped[entity.Event] {
	return groupBy(events, (*entity.Event).CollegeKey)
}

func GroupEventsByCategory(events []entity.Event) Grouped[entity.Event] {
	return groupBy(events, (*entity.Event).CategoryKey)
}

func GroupRegistrationsByEvent(registrations []entity.Registration) Grouped[entity.Registration] {
	return groupBy(registrations, (*entity.Registration).EventKey)
}

func GroupTeamsByEvent(teams []entity.Team) Grouped[entity.Team] {
	return groupBy(teams, func(t *entity.Team) string { return t.EventID })
}

func GroupCollegesByLocation(colleges []entity.College) Grouped[entity.College] {
	return groupBy(colleges, func(c *entity.College) string {
		if c.Location == "" {
			return UnknownLocation
		}
		return c.Location
	})
}

func CountEventsByStatus(events []entity.Event) Counts {
	return countBy(events, func(e *entity.Event) string { return string(e.EventStatus) })
}

func CountRegistrationsByStatus(registrations []entity.Registration) Counts {
	return countBy(registrations, func(r *entity.Registration) string { return string(r.RegistrationStatus) })
}

func CountRegistrationsByEvent(registrations []entity.Registration) Counts {
	return countBy(registrations, (*entity.Registration).EventKey)
}
