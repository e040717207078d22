package handler

import (
	"net/http"

	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/api/handler/router"
	"github.com/therrabiz/therrabiz-api/internal/usecases/advising"
	"github.com/therrabiz/therrabiz-api/internal/usecases/authenticating"
	"github.com/therrabiz/therrabiz-api/internal/usecases/calculating"
	"github.com/therrabiz/therrabiz-api/internal/usecases/insighting"
	"github.com/therrabiz/therrabiz-api/internal/usecases/reporting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(),
		},
	}
}

func Sales(store *storage.Store, reporter reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales",
			Method:  http.MethodGet,
			Handler: ListSales(store),
		},
		{
			Path:    "/v1/sales",
			Method:  http.MethodPost,
			Handler: CreateSale(store),
		},
		{
			Path:    "/v1/sales/export",
			Method:  http.MethodGet,
			Handler: ExportSales(store, reporter),
		},
		{
			Path:    "/v1/sales/:id",
			Method:  http.MethodPut,
			Handler: UpdateSale(store),
		},
		{
			Path:    "/v1/sales/:id",
			Method:  http.MethodDelete,
			Handler: DeleteSale(store),
		},
	}
}

func Expenses(store *storage.Store) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/expenses",
			Method:  http.MethodGet,
			Handler: ListExpenses(store),
		},
		{
			Path:    "/v1/expenses",
			Method:  http.MethodPost,
			Handler: CreateExpense(store),
		},
	}
}

func Goals(store *storage.Store) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/goals",
			Method:  http.MethodGet,
			Handler: ListGoals(store),
		},
		{
			Path:    "/v1/goals",
			Method:  http.MethodPost,
			Handler: SaveGoal(store),
		},
	}
}

func Tasks(store *storage.Store) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/tasks",
			Method:  http.MethodGet,
			Handler: ListTasks(store),
		},
		{
			Path:    "/v1/tasks",
			Method:  http.MethodPost,
			Handler: CreateTask(store),
		},
		{
			Path:    "/v1/tasks/:id/toggle",
			Method:  http.MethodPatch,
			Handler: ToggleTask(store),
		},
	}
}

func Inventory(store *storage.Store) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/inventory",
			Method:  http.MethodGet,
			Handler: ListInventory(store),
		},
		{
			Path:    "/v1/inventory",
			Method:  http.MethodPost,
			Handler: CreateInventoryRecord(store),
		},
	}
}

func Profile(store *storage.Store) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/profile",
			Method:  http.MethodGet,
			Handler: GetProfile(store),
		},
		{
			Path:    "/v1/profile",
			Method:  http.MethodPut,
			Handler: SaveProfile(store),
		},
		{
			Path:    "/v1/settings",
			Method:  http.MethodGet,
			Handler: GetSettings(store),
		},
		{
			Path:    "/v1/settings",
			Method:  http.MethodPut,
			Handler: SaveSettings(store),
		},
	}
}

func Analytics(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analytics/summary",
			Method:  http.MethodGet,
			Handler: GetSummary(service),
		},
		{
			Path:    "/v1/analytics/top-products",
			Method:  http.MethodGet,
			Handler: GetTopProducts(service),
		},
		{
			Path:    "/v1/analytics/aov",
			Method:  http.MethodGet,
			Handler: GetAOVSeries(service),
		},
		{
			Path:    "/v1/analytics/heatmap",
			Method:  http.MethodGet,
			Handler: GetHeatmap(service),
		},
		{
			Path:    "/v1/analytics/expenses",
			Method:  http.MethodGet,
			Handler: GetExpenseBreakdown(service),
		},
		{
			Path:    "/v1/analytics/goal-progress",
			Method:  http.MethodGet,
			Handler: GetGoalProgress(service),
		},
	}
}

func Calculator(service calculating.Calculator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/calculator/selling-price",
			Method:  http.MethodPost,
			Handler: CalculateSellingPrice(service),
		},
		{
			Path:    "/v1/calculator/turnover",
			Method:  http.MethodPost,
			Handler: CalculateTurnover(service),
		},
	}
}

func Assistant(service advising.Advisor) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/assistant/chat",
			Method:  http.MethodPost,
			Handler: AssistantChat(service),
		},
		{
			Path:    "/v1/assistant/insights",
			Method:  http.MethodGet,
			Handler: AssistantInsights(service),
		},
		{
			Path:    "/v1/assistant/what-if",
			Method:  http.MethodPost,
			Handler: AssistantWhatIf(service),
		},
		{
			Path:    "/v1/assistant/tasks",
			Method:  http.MethodPost,
			Handler: AssistantSuggestTasks(service),
		},
		{
			Path:    "/v1/assistant/goal-advice",
			Method:  http.MethodPost,
			Handler: AssistantGoalAdvice(service),
		},
		{
			Path:    "/v1/assistant/slow-moving",
			Method:  http.MethodGet,
			Handler: AssistantSlowMoving(service),
		},
		{
			Path:    "/v1/assistant/categorize-expense",
			Method:  http.MethodPost,
			Handler: AssistantCategorizeExpense(service),
		},
		{
			Path:    "/v1/assistant/turnover-advice",
			Method:  http.MethodPost,
			Handler: AssistantTurnoverAdvice(service),
		},
		{
			Path:    "/v1/assistant/promo-estimate",
			Method:  http.MethodPost,
			Handler: AssistantPromoEstimate(service),
		},
		{
			Path:    "/v1/assistant/quota",
			Method:  http.MethodGet,
			Handler: AssistantQuota(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
	}
}
