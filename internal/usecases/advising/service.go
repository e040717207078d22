package advising

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/therrabiz/therrabiz-api/infrastructure/integrator/openrouter"
	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/config"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"github.com/therrabiz/therrabiz-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrCooldownActive is returned by Chat when the previous send is still
// within the cooldown window. The in-flight call itself is never aborted.
var ErrCooldownActive = errors.New("chat cooldown active")

// QuotaStatus reports today's assistant usage against the daily limit.
type QuotaStatus struct {
	Limit     int  `json:"limit"`
	Used      int  `json:"used"`
	Remaining int  `json:"remaining"`
	Blocked   bool `json:"blocked"`
}

// Advisor is the assistant facade the handlers call. Apart from the chat
// cooldown, no method returns an error: transport failures, bad payloads and
// quota exhaustion all degrade to a feature-specific canned response, and a
// failed call needs an explicit user retrigger.
type Advisor interface {
	Chat(ctx context.Context, history []domain.ChatMessage, message string) (string, error)
	BusinessInsights(ctx context.Context) string
	WhatIf(ctx context.Context, scenario string) string
	SuggestTasks(ctx context.Context) []domain.DailyTask
	GoalAdvice(ctx context.Context, current, target float64, daysLeft int) string
	SlowMoving(ctx context.Context) []domain.SlowMovingItem
	CategorizeExpense(ctx context.Context, description string, amount float64) string
	TurnoverAdvice(ctx context.Context, rate float64, period string) string
	PromoEstimate(ctx context.Context, promoType, productName, depth string) string
	Quota() QuotaStatus
}

type Service struct {
	client openrouter.Client
	store  *storage.Store
	cfg    *config.Config

	mu         sync.Mutex
	lastChatAt time.Time
}

func NewService(client openrouter.Client, store *storage.Store, cfg *config.Config) Advisor {
	return &Service{
		client: client,
		store:  store,
		cfg:    cfg,
	}
}

// call sends the messages and returns fallback on any failure.
func (s *Service) call(ctx context.Context, messages []openrouter.Message, fallback string) string {
	response, err := s.client.ChatCompletion(ctx, messages, s.cfg.OpenRouter.Temperature)
	if err != nil {
		logrus.WithError(err).Error("assistant call failed")
		return fallback
	}
	if strings.TrimSpace(response) == "" {
		return fallback
	}
	return response
}

// Chat answers one conversational turn. The history's "model" role maps to
// the wire's "assistant"; a system prompt addressing the owner by name leads
// the conversation. Chat alone is subject to the daily quota and cooldown.
func (s *Service) Chat(ctx context.Context, history []domain.ChatMessage, message string) (string, error) {
	if err := s.checkCooldown(); err != nil {
		return "", err
	}

	if s.store.CheckMessageLimit(s.cfg.Assistant.DailyMessageLimit) {
		return quotaExceededMessage, nil
	}
	s.store.IncrementMessageCount()

	profile := s.store.StoreProfile()

	messages := make([]openrouter.Message, 0, len(history)+2)
	messages = append(messages, openrouter.Message{
		Role:    openrouter.RoleSystem,
		Content: systemPrompt(profile.OwnerName, profile.StoreName),
	})
	for _, msg := range history {
		role := openrouter.RoleUser
		if msg.Role == domain.RoleModel {
			role = openrouter.RoleAssistant
		}
		messages = append(messages, openrouter.Message{Role: role, Content: msg.Text})
	}
	messages = append(messages, openrouter.Message{Role: openrouter.RoleUser, Content: message})

	return s.call(ctx, messages, chatFallback), nil
}

func (s *Service) checkCooldown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cooldown := time.Duration(s.cfg.Assistant.ChatCooldownSeconds) * time.Second
	if time.Since(s.lastChatAt) < cooldown {
		return ErrCooldownActive
	}
	s.lastChatAt = time.Now()
	return nil
}

// BusinessInsights analyzes a bounded tail of the sales list. The window is
// a data-minimization policy: older records never leave the device.
func (s *Service) BusinessInsights(ctx context.Context) string {
	window := tail(s.store.Sales(), s.cfg.Assistant.InsightWindow)
	data, err := json.Marshal(window)
	if err != nil {
		logrus.WithError(err).Error("failed to serialize sales window")
		return insightsFallback
	}

	prompt := fmt.Sprintf(insightsPromptFormat, string(data))
	return s.call(ctx, userMessage(prompt), insightsFallback)
}

// WhatIf simulates a scenario against the recent sales tail.
func (s *Service) WhatIf(ctx context.Context, scenario string) string {
	n := s.cfg.Assistant.WhatIfWindow
	window := tail(s.store.Sales(), n)
	data, err := json.Marshal(window)
	if err != nil {
		logrus.WithError(err).Error("failed to serialize sales window")
		return whatIfFallback
	}

	prompt := fmt.Sprintf(whatIfPromptFormat, n, string(data), scenario)
	return s.call(ctx, userMessage(prompt), whatIfFallback)
}

// SuggestTasks asks for five to-dos based on the last week of sales, parses
// the JSON array (stripping any code fences) and persists the batch together
// with the still-relevant existing tasks. On any failure the static fallback
// list is stored instead.
func (s *Service) SuggestTasks(ctx context.Context) []domain.DailyTask {
	n := s.cfg.Assistant.TaskWindow
	window := tail(s.store.Sales(), n)
	data, err := json.Marshal(window)
	if err != nil {
		logrus.WithError(err).Error("failed to serialize sales window")
		return s.persistTaskBatch(taskFallbacks)
	}

	prompt := fmt.Sprintf(tasksPromptFormat, n, string(data))
	response := s.call(ctx, userMessage(prompt), "")

	var suggestions []string
	if err := json.Unmarshal([]byte(stripCodeFences(response)), &suggestions); err != nil || len(suggestions) == 0 {
		logrus.WithError(err).Warn("could not parse suggested tasks, using fallback list")
		suggestions = taskFallbacks
	}

	return s.persistTaskBatch(suggestions)
}

func (s *Service) persistTaskBatch(suggestions []string) []domain.DailyTask {
	now := time.Now()
	base := now.UnixMilli()
	today := now.Format(utils.DayFormat)

	batch := make([]domain.DailyTask, 0, len(suggestions))
	for i, text := range suggestions {
		batch = append(batch, domain.DailyTask{
			// Per-item suffix: timestamp ids alone collide within a batch.
			ID:          storage.NewBatchID(base, i),
			Text:        text,
			Date:        today,
			GeneratedAt: base,
		})
	}

	updated := append(s.store.RelevantTasks(today), batch...)
	s.store.SaveDailyTasks(updated)
	return batch
}

// GoalAdvice asks for a short motivational push towards the month target.
func (s *Service) GoalAdvice(ctx context.Context, current, target float64, daysLeft int) string {
	prompt := fmt.Sprintf(goalAdvicePromptFormat, target, current, daysLeft)
	return s.call(ctx, userMessage(prompt), goalAdviceFallback)
}

// SlowMoving sends only the product frequency map, never the raw records,
// and parses the returned JSON array defensively. Failure yields an empty
// list, not an error.
func (s *Service) SlowMoving(ctx context.Context) []domain.SlowMovingItem {
	frequency := productFrequency(s.store.Sales())
	data, err := json.Marshal(frequency)
	if err != nil {
		logrus.WithError(err).Error("failed to serialize product frequency")
		return []domain.SlowMovingItem{}
	}

	prompt := fmt.Sprintf(slowMovingPromptFormat, string(data))
	response := s.call(ctx, userMessage(prompt), "[]")

	var items []domain.SlowMovingItem
	if err := json.Unmarshal([]byte(stripCodeFences(response)), &items); err != nil {
		logrus.WithError(err).Warn("could not parse slow-moving analysis")
		return []domain.SlowMovingItem{}
	}
	return items
}

// CategorizeExpense asks for a single category word and validates it against
// the fixed set; anything else becomes "Lainnya".
func (s *Service) CategorizeExpense(ctx context.Context, description string, amount float64) string {
	prompt := fmt.Sprintf(categorizePromptFormat, amount, description)
	response := strings.TrimSpace(s.call(ctx, userMessage(prompt), domain.CategoryOther))

	if !domain.ValidCategory(response) {
		return domain.CategoryOther
	}
	return response
}

// TurnoverAdvice comments on an inventory turnover rate.
func (s *Service) TurnoverAdvice(ctx context.Context, rate float64, period string) string {
	prompt := fmt.Sprintf(turnoverPromptFormat, period, rate)
	return s.call(ctx, userMessage(prompt), turnoverFallback)
}

// PromoEstimate estimates the impact of a planned promotion.
func (s *Service) PromoEstimate(ctx context.Context, promoType, productName, depth string) string {
	prompt := fmt.Sprintf(promoPromptFormat, promoType, productName, depth)
	return s.call(ctx, userMessage(prompt), promoFallback)
}

// Quota reports today's chat usage.
func (s *Service) Quota() QuotaStatus {
	limit := s.cfg.Assistant.DailyMessageLimit
	tracker := s.store.MessageTracker()

	used := 0
	if tracker.LastReset >= todayMidnightMillis() {
		used = tracker.Count
	}

	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	return QuotaStatus{
		Limit:     limit,
		Used:      used,
		Remaining: remaining,
		Blocked:   used >= limit,
	}
}

func todayMidnightMillis() int64 {
	now := time.Now()
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()).UnixMilli()
}

func userMessage(prompt string) []openrouter.Message {
	return []openrouter.Message{{Role: openrouter.RoleUser, Content: prompt}}
}

// tail returns the last n records, the whole list when shorter.
func tail(sales []domain.SaleRecord, n int) []domain.SaleRecord {
	if n <= 0 || len(sales) <= n {
		return sales
	}
	return sales[len(sales)-n:]
}

// stripCodeFences removes surrounding markdown code-fence markers the model
// sometimes wraps JSON payloads in.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func productFrequency(sales []domain.SaleRecord) map[string]int {
	counts := make(map[string]int, len(sales))
	for _, s := range sales {
		counts[s.TopProduct]++
	}
	return counts
}
