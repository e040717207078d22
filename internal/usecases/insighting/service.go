package insighting

import (
	"time"

	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"github.com/therrabiz/therrabiz-api/pkg/utils"
)

// Heatmap window filters.
const (
	WindowMonth = "month" // last 30 days including today
	WindowYear  = "year"  // last 365 days
)

// Insighter serves the derived figures the dashboard views render.
type Insighter interface {
	Summary() Summary
	TopProducts() []ProductCount
	AOVSeries() []AOVPoint
	Heatmap(window string) []HeatmapDay
	ExpenseBreakdown() []CategorySum
	GoalProgress(month string) GoalProgress
}

type Service struct {
	store *storage.Store
}

func NewService(store *storage.Store) Insighter {
	return &Service{store: store}
}

func (s *Service) Summary() Summary {
	return Summarize(s.store.Sales())
}

func (s *Service) TopProducts() []ProductCount {
	return TopProducts(s.store.Sales())
}

func (s *Service) AOVSeries() []AOVPoint {
	return AOVSeries(s.store.Sales())
}

func (s *Service) Heatmap(window string) []HeatmapDay {
	to := time.Now()
	from := to.AddDate(0, 0, -29)
	if window == WindowYear {
		from = to.AddDate(-1, 0, 1)
	}

	return Heatmap(s.store.Sales(), from.Format(utils.DayFormat), to.Format(utils.DayFormat))
}

func (s *Service) ExpenseBreakdown() []CategorySum {
	return ExpenseBreakdown(s.store.Expenses())
}

// GoalProgress reports progress for the month's goal; a month without a goal
// yields a zero-target progress of 0.
func (s *Service) GoalProgress(month string) GoalProgress {
	goal := domain.SalesGoal{Month: month}
	for _, g := range s.store.SalesGoals() {
		if g.Month == month {
			goal = g
			break
		}
	}

	return ProgressTowards(s.store.Sales(), goal)
}
