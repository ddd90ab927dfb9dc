package utils

import (
	"math/rand"
	"ratemyschedule/backend/models"
	"sort"
	"sync"
)

const parsedTerm = "Fall 2024"

var mockCourses = []models.Event{
	{Title: "Introduction to Programming", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30", Location: "CS Building 101"},
	{Title: "Data Structures & Algorithms", DayOfWeek: 3, StartTime: "11:00", EndTime: "12:30", Location: "Engineering Hall 205"},
	{Title: "Computer Systems", DayOfWeek: 5, StartTime: "14:00", EndTime: "15:30", Location: "Tech Center 301"},
	{Title: "Calculus II", DayOfWeek: 2, StartTime: "08:00", EndTime: "09:30", Location: "Math Building 112"},
	{Title: "Linear Algebra", DayOfWeek: 4, StartTime: "13:00", EndTime: "14:30", Location: "Science Hall 204"},
	{Title: "English Composition", DayOfWeek: 1, StartTime: "15:00", EndTime: "16:30", Location: "Humanities 150"},
	{Title: "Psychology 101", DayOfWeek: 3, StartTime: "16:00", EndTime: "17:30", Location: "Social Sciences 220"},
}

// ParsedSchedule is what an uploaded image is turned into.
type ParsedSchedule struct {
	Term   string         `json:"term"`
	Events []models.Event `json:"events"`
}

// ScheduleParser stands in for OCR: it picks 3 to 5 distinct catalog courses.
type ScheduleParser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewScheduleParser(rng *rand.Rand) *ScheduleParser {
	return &ScheduleParser{rng: rng}
}

func (p *ScheduleParser) Parse() ParsedSchedule {
	p.mu.Lock()
	n := p.rng.Intn(3) + 3
	perm := p.rng.Perm(len(mockCourses))[:n]
	p.mu.Unlock()

	picked := make([]models.Event, 0, n)
	for _, i := range perm {
		picked = append(picked, mockCourses[i])
	}

	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].DayOfWeek < picked[j].DayOfWeek
	})

	return ParsedSchedule{Term: parsedTerm, Events: picked}
}
