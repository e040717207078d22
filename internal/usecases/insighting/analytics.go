package insighting

import (
	"math"
	"sort"

	"github.com/therrabiz/therrabiz-api/internal/domain"
	"github.com/therrabiz/therrabiz-api/pkg/utils"
)

// Everything in this file is a pure fold over full record arrays, recomputed
// fresh on every read. No caching, no incremental maintenance: calling twice
// with the same input yields identical output.

// Summary aggregates the headline dashboard figures.
type Summary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalTransactions int     `json:"totalTransactions"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	RevenueGrowthPct  float64 `json:"revenueGrowthPct"`
}

// ProductCount is a top-product frequency entry.
type ProductCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AOVPoint is the average order value of a single record.
type AOVPoint struct {
	Date string `json:"date"`
	AOV  int    `json:"aov"`
}

// HeatmapDay is one cell of the activity heatmap. Intensity runs 1..4 for
// days with a sales record; HasData false marks the distinct no-data state,
// which is not the same as the lowest intensity bucket.
type HeatmapDay struct {
	Date      string `json:"date"`
	Intensity int    `json:"intensity"`
	HasData   bool   `json:"hasData"`
}

// CategorySum is the amount spent per expense category.
type CategorySum struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// GoalProgress reports revenue against the monthly target.
type GoalProgress struct {
	Month        string  `json:"month"`
	TargetAmount float64 `json:"targetAmount"`
	Current      float64 `json:"current"`
	ProgressPct  float64 `json:"progressPct"`
}

// SortByDate returns a copy sorted chronologically. ISO day strings order
// lexicographically, and the sort is stable so same-day records keep their
// store order.
func SortByDate(sales []domain.SaleRecord) []domain.SaleRecord {
	sorted := make([]domain.SaleRecord, len(sales))
	copy(sorted, sales)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}

// Summarize computes totals, average order value and growth in one pass.
// The average order value of zero transactions is defined as 0, never NaN.
func Summarize(sales []domain.SaleRecord) Summary {
	var revenue float64
	var transactions int
	for _, s := range sales {
		revenue += s.Revenue
		transactions += s.Transactions
	}

	aov := 0.0
	if transactions > 0 {
		aov = utils.RoundWithTwoDecimalPlace(revenue / float64(transactions))
	}

	return Summary{
		TotalRevenue:      revenue,
		TotalTransactions: transactions,
		AverageOrderValue: aov,
		RevenueGrowthPct:  RevenueGrowth(sales),
	}
}

// RevenueGrowth splits the chronologically-sorted list at its floor midpoint
// and compares the revenue of the two halves. Defined as 0 for fewer than
// two records or when the first half earned nothing.
func RevenueGrowth(sales []domain.SaleRecord) float64 {
	if len(sales) < 2 {
		return 0
	}

	sorted := SortByDate(sales)
	mid := len(sorted) / 2

	var previous, recent float64
	for _, s := range sorted[:mid] {
		previous += s.Revenue
	}
	for _, s := range sorted[mid:] {
		recent += s.Revenue
	}

	if previous <= 0 {
		return 0
	}
	return (recent - previous) / previous * 100
}

// TopProducts counts how often each product recurs as a record's top product,
// ranked descending. Ties keep first-encountered order. Records without a
// product fall into the "Lainnya" bucket.
func TopProducts(sales []domain.SaleRecord) []ProductCount {
	counts := ProductFrequency(sales)

	order := make([]string, 0, len(counts))
	seen := make(map[string]bool, len(counts))
	for _, s := range sales {
		name := productName(s)
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}

	result := make([]ProductCount, 0, len(order))
	for _, name := range order {
		result = append(result, ProductCount{Name: name, Count: counts[name]})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// ProductFrequency maps each top product to its recurrence count. The
// assistant's slow-moving analysis sends exactly this map.
func ProductFrequency(sales []domain.SaleRecord) map[string]int {
	counts := make(map[string]int, len(sales))
	for _, s := range sales {
		counts[productName(s)]++
	}
	return counts
}

func productName(s domain.SaleRecord) string {
	if s.TopProduct == "" {
		return domain.CategoryOther
	}
	return s.TopProduct
}

// AOVSeries computes the per-day average order value, chronologically.
func AOVSeries(sales []domain.SaleRecord) []AOVPoint {
	sorted := SortByDate(sales)
	points := make([]AOVPoint, 0, len(sorted))
	for _, s := range sorted {
		aov := 0
		if s.Transactions > 0 {
			aov = int(math.Round(s.Revenue / float64(s.Transactions)))
		}
		points = append(points, AOVPoint{Date: s.Date, AOV: aov})
	}
	return points
}

// Heatmap buckets each day of [from, to] into four intensity levels by
// ceiling division against the window's maximum revenue. Days without a
// record get the explicit no-data state.
func Heatmap(sales []domain.SaleRecord, from, to string) []HeatmapDay {
	revenueByDate := make(map[string]float64)
	maxRevenue := 0.0
	for _, s := range sales {
		if s.Date < from || s.Date > to {
			continue
		}
		revenueByDate[s.Date] = s.Revenue
		if s.Revenue > maxRevenue {
			maxRevenue = s.Revenue
		}
	}
	if maxRevenue < 1 {
		maxRevenue = 1
	}

	fromDay, err := utils.ParseDate(from)
	if err != nil {
		return nil
	}
	toDay, err := utils.ParseDate(to)
	if err != nil {
		return nil
	}

	var days []HeatmapDay
	for d := *fromDay; !d.After(*toDay); d = d.AddDate(0, 0, 1) {
		date := d.Format(utils.DayFormat)
		revenue, ok := revenueByDate[date]
		if !ok {
			days = append(days, HeatmapDay{Date: date})
			continue
		}

		days = append(days, HeatmapDay{
			Date:      date,
			Intensity: int(math.Ceil(revenue / maxRevenue * 4)),
			HasData:   true,
		})
	}
	return days
}

// ExpenseBreakdown sums expense amounts per category, in first-encountered
// category order. Feeds the proportion chart directly.
func ExpenseBreakdown(expenses []domain.ExpenseRecord) []CategorySum {
	sums := make(map[string]float64)
	var order []string
	for _, e := range expenses {
		if _, ok := sums[e.Category]; !ok {
			order = append(order, e.Category)
		}
		sums[e.Category] += e.Amount
	}

	result := make([]CategorySum, 0, len(order))
	for _, category := range order {
		result = append(result, CategorySum{Category: category, Amount: sums[category]})
	}
	return result
}

// MonthRevenue sums the revenue of sales within the given YYYY-MM month,
// joined by date-string prefix.
func MonthRevenue(sales []domain.SaleRecord, month string) float64 {
	var revenue float64
	for _, s := range sales {
		if len(s.Date) >= len(month) && s.Date[:len(month)] == month {
			revenue += s.Revenue
		}
	}
	return revenue
}

// ProgressTowards reports month revenue against a goal, progress capped at
// 100 percent.
func ProgressTowards(sales []domain.SaleRecord, goal domain.SalesGoal) GoalProgress {
	current := MonthRevenue(sales, goal.Month)

	progress := 0.0
	if goal.TargetAmount > 0 {
		progress = math.Min(current/goal.TargetAmount*100, 100)
	}

	return GoalProgress{
		Month:        goal.Month,
		TargetAmount: goal.TargetAmount,
		Current:      current,
		ProgressPct:  progress,
	}
}
