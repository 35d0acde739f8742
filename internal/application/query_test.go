package application

import (
	"reflect"
	"testing"
	"time"

	"github.com/festify/festify-web/internal/domain/entity"
)

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }
func at(day int) entity.Timestamp {
	return entity.NewTimestamp(time.Date(2026, time.March, day, 10, 0, 0, 0, time.UTC))
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func eventIDs(events []entity.Event) []string {
	return ids(events, func(e entity.Event) string { return e.ID })
}

var (
	iit   = entity.College{ID: "c1", Name: "IIT Delhi", Location: "Delhi"}
	bits  = entity.College{ID: "c2", Name: "BITS Pilani", Location: "Pilani"}
	fixed = []entity.Event{
		{ID: "e1", Title: "Hackathon", CategoryID: "tech", College: &iit, CollegeID: strp("c1"), Location: "Main hall", EventStatus: entity.EventPublished, StartDate: at(3)},
		{ID: "e2", Title: "Dance Night", Description: strp("Annual cultural fest"), CategoryID: "culture", College: &bits, CollegeID: strp("c2"), Location: "Auditorium", EventStatus: entity.EventPublished, StartDate: at(1), Global: true},
		{ID: "e3", Title: "Robotics Expo", CategoryID: "tech", Location: "Online", EventStatus: entity.EventDraft, StartDate: at(2)},
		{ID: "e4", Title: "Chess Open", CategoryID: "sports", College: &bits, CollegeID: strp("c2"), Location: "Library", EventStatus: entity.EventCompleted, StartDate: at(5)},
	}
)

func TestSearchEvents(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty term keeps everything", "", []string{"e1", "e2", "e3", "e4"}},
		{"whitespace term keeps everything", "   ", []string{"e1", "e2", "e3", "e4"}},
		{"title is case-insensitive", "HACK", []string{"e1"}},
		{"description", "cultural", []string{"e2"}},
		{"college name", "pilani", []string{"e2", "e4"}},
		{"location", "online", []string{"e3"}},
		{"no match", "quidditch", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eventIDs(SearchEvents(fixed, tt.term))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SearchEvents(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
	if got := SearchEvents(nil, "x"); len(got) != 0 {
		t.Errorf("empty input should give empty output, got %v", got)
	}
}

func TestSearchOtherResources(t *testing.T) {
	colleges := []entity.College{iit, bits, {ID: "c3", Name: "NIT", Location: "Trichy", Description: strp("Delhi-style campus")}}
	if got := ids(SearchColleges(colleges, "delhi"), func(c entity.College) string { return c.ID }); !reflect.DeepEqual(got, []string{"c1", "c3"}) {
		t.Errorf("SearchColleges = %v", got)
	}

	cats := []entity.Category{{ID: "tech", Name: "Technology"}, {ID: "sports", Name: "Sports", Description: strp("Outdoor games")}}
	if got := ids(SearchCategories(cats, "GAMES"), func(c entity.Category) string { return c.ID }); !reflect.DeepEqual(got, []string{"sports"}) {
		t.Errorf("SearchCategories = %v", got)
	}

	teams := []entity.Team{
		{ID: "t1", TeamName: "Byte Force", TeamLeaderName: "Asha", TeamLeaderEmail: "asha@iit.edu"},
		{ID: "t2", TeamName: "Null Pointers", TeamLeaderName: "Ravi", TeamLeaderEmail: "ravi@bits.edu"},
	}
	if got := ids(SearchTeams(teams, "bits.edu"), func(t entity.Team) string { return t.ID }); !reflect.DeepEqual(got, []string{"t2"}) {
		t.Errorf("SearchTeams = %v", got)
	}

	profiles := []entity.Profile{
		{ID: "p1", FullName: "Asha Rao", Email: "asha@iit.edu"},
		{ID: "p2", FullName: "Ravi K", Email: "ravi@bits.edu", OrganizationName: strp("Robotics Club")},
	}
	if got := ids(SearchProfiles(profiles, "robotics"), func(p entity.Profile) string { return p.ID }); !reflect.DeepEqual(got, []string{"p2"}) {
		t.Errorf("SearchProfiles = %v", got)
	}
	if got := SearchProfiles(profiles, ""); !reflect.DeepEqual(got, profiles) {
		t.Errorf("empty term should return input unchanged")
	}
}

func TestFilterByEligibility(t *testing.T) {
	member := &entity.Profile{ID: "p1", CollegeID: strp("c1")}
	outsider := &entity.Profile{ID: "p2", CollegeID: strp("c9")}
	noCollege := &entity.Profile{ID: "p3"}

	tests := []struct {
		name    string
		profile *entity.Profile
		want    []string
	}{
		{"member sees own college plus global and collegeless", member, []string{"e1", "e2", "e3"}},
		{"outsider sees only global and collegeless", outsider, []string{"e2", "e3"}},
		{"profile without college", noCollege, []string{"e2", "e3"}},
		{"no profile", nil, []string{"e2", "e3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eventIDs(FilterByEligibility(fixed, tt.profile))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEligible_GlobalAlwaysVisible(t *testing.T) {
	e := entity.Event{Global: true, College: &iit, EventStatus: entity.EventCancelled}
	for _, p := range []*entity.Profile{nil, {}, {CollegeID: strp("c2")}, {CollegeID: strp("c1"), Role: entity.RoleAdmin}} {
		if !Eligible(&e, p) {
			t.Errorf("global event hidden from %+v", p)
		}
	}
}

func TestSearchAndFilter(t *testing.T) {
	tests := []struct {
		name string
		f    EventFilter
		want []string
	}{
		{"no filter", EventFilter{}, []string{"e1", "e2", "e3", "e4"}},
		{"category", EventFilter{CategoryID: "tech"}, []string{"e1", "e3"}},
		{"college", EventFilter{CollegeID: "c2"}, []string{"e2", "e4"}},
		{"status", EventFilter{Status: entity.EventPublished}, []string{"e1", "e2"}},
		{"category and status", EventFilter{CategoryID: "tech", Status: entity.EventPublished}, []string{"e1"}},
		{"search alone", EventFilter{SearchTerm: "pilani"}, []string{"e2", "e4"}},
		{"search still honors equality filters", EventFilter{SearchTerm: "pilani", CategoryID: "sports"}, []string{"e4"}},
		{"search and non-matching status", EventFilter{SearchTerm: "hackathon", Status: entity.EventDraft}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eventIDs(SearchAndFilter(fixed, tt.f))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateTotalRevenue(t *testing.T) {
	regs := []entity.Registration{
		{ID: "r1", PaymentAmount: f64p(100)},
		{ID: "r2"},
		{ID: "r3", PaymentAmount: f64p(50)},
	}
	if got := CalculateTotalRevenue(regs); got != 150 {
		t.Errorf("revenue = %v, want 150", got)
	}
	if got := CalculateTotalRevenue(nil); got != 0 {
		t.Errorf("revenue of nothing = %v", got)
	}
}

func TestUpcomingAndFeatured(t *testing.T) {
	now := at(2).Add(time.Hour)
	if got := eventIDs(UpcomingEvents(fixed, now)); !reflect.DeepEqual(got, []string{"e1", "e4"}) {
		t.Errorf("UpcomingEvents = %v", got)
	}
	events := []entity.Event{{ID: "a"}, {ID: "b", Featured: true}, {ID: "c", Featured: true}}
	if got := eventIDs(FeaturedEvents(events)); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("FeaturedEvents = %v", got)
	}
}

func TestHelpersDoNotMutateInput(t *testing.T) {
	before := eventIDs(fixed)
	_ = SortEventsByDateAsc(fixed)
	_ = SortEventsByDateDesc(fixed)
	_ = SearchAndFilter(fixed, EventFilter{CategoryID: "tech"})
	_ = FilterByEligibility(fixed, nil)
	if after := eventIDs(fixed); !reflect.DeepEqual(before, after) {
		t.Errorf("input reordered: %v -> %v", before, after)
	}
}
