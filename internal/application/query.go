package application

import (
	"strings"
	"time"

	"github.com/festify/festify-web/internal/domain/entity"
)

// The helpers below work on already-fetched slices. They never fail and never
// modify their input.

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// search keeps items where any field contains term, case-insensitively. A
// blank term returns items as is.
func search[T any](items []T, term string, fields func(*T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(term))
	if q == "" || len(items) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for i := range items {
		if matchesAny(fields(&items[i]), q) {
			out = append(out, items[i])
		}
	}
	return out
}

func matchesAny(fields []string, lowered string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), lowered) {
			return true
		}
	}
	return false
}

func eventText(e *entity.Event) []string {
	college := ""
	if e.College != nil {
		college = e.College.Name
	}
	return []string{e.Title, deref(e.Description), college, e.Location}
}

// SearchEvents matches title, description, college name and location.
func SearchEvents(events []entity.Event, term string) []entity.Event {
	return search(events, term, eventText)
}

// SearchColleges matches name, location and description.
func SearchColleges(colleges []entity.College, term string) []entity.College {
	return search(colleges, term, func(c *entity.College) []string {
		return []string{c.Name, c.Location, deref(c.Description)}
	})
}

// SearchCategories matches name and description.
func SearchCategories(categories []entity.Category, term string) []entity.Category {
	return search(categories, term, func(c *entity.Category) []string {
		return []string{c.Name, deref(c.Description)}
	})
}

// SearchTeams matches team name, leader name and leader email.
func SearchTeams(teams []entity.Team, term string) []entity.Team {
	return search(teams, term, func(t *entity.Team) []string {
		return []string{t.TeamName, t.TeamLeaderName, t.TeamLeaderEmail}
	})
}

// SearchProfiles matches full name, email and organization name.
func SearchProfiles(profiles []entity.Profile, term string) []entity.Profile {
	return search(profiles, term, func(p *entity.Profile) []string {
		return []string{p.FullName, p.Email, deref(p.OrganizationName)}
	})
}

// Eligible reports whether profile may see e: global events and events
// without a college are visible to everyone, others only to members of the
// hosting college. profile may be nil.
func Eligible(e *entity.Event, profile *entity.Profile) bool {
	if e.Global {
		return true
	}
	college := e.CollegeKey()
	if college == "" {
		return true
	}
	return profile.HasCollege() && *profile.CollegeID == college
}

// FilterByEligibility keeps the events profile may see.
func FilterByEligibility(events []entity.Event, profile *entity.Profile) []entity.Event {
	out := make([]entity.Event, 0, len(events))
	for i := range events {
		if Eligible(&events[i], profile) {
			out = append(out, events[i])
		}
	}
	return out
}

// EventFilter narrows a listing. Zero fields are ignored.
type EventFilter struct {
	SearchTerm string
	CategoryID string
	CollegeID  string
	Status     entity.EventStatus
}

// SearchAndFilter applies the equality filters and the text search in a
// single pass. An event must pass every set criterion.
func SearchAndFilter(events []entity.Event, f EventFilter) []entity.Event {
	q := strings.ToLower(strings.TrimSpace(f.SearchTerm))
	out := make([]entity.Event, 0, len(events))
	for i := range events {
		e := &events[i]
		if f.CategoryID != "" && e.CategoryKey() != f.CategoryID {
			continue
		}
		if f.CollegeID != "" && e.CollegeKey() != f.CollegeID {
			continue
		}
		if f.Status != "" && e.EventStatus != f.Status {
			continue
		}
		if q != "" && !matchesAny(eventText(e), q) {
			continue
		}
		out = append(out, *e)
	}
	return out
}

// CalculateTotalRevenue sums payment amounts. Missing amounts count as zero.
func CalculateTotalRevenue(registrations []entity.Registration) float64 {
	var total float64
	for _, r := range registrations {
		if r.PaymentAmount != nil {
			total += *r.PaymentAmount
		}
	}
	return total
}

// UpcomingEvents returns events starting after now that are neither draft nor
// cancelled, earliest first.
func UpcomingEvents(events []entity.Event, now time.Time) []entity.Event {
	out := make([]entity.Event, 0, len(events))
	for _, e := range events {
		if e.EventStatus == entity.EventDraft || e.EventStatus == entity.EventCancelled {
			continue
		}
		if e.StartDate.After(now) {
			out = append(out, e)
		}
	}
	return SortEventsByDateAsc(out)
}

// FeaturedEvents keeps events flagged as featured, in input order.
func FeaturedEvents(events []entity.Event) []entity.Event {
	out := make([]entity.Event, 0, len(events))
	for _, e := range events {
		if e.Featured {
			out = append(out, e)
		}
	}
	return out
}
