package advising

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therrabiz/therrabiz-api/infrastructure/integrator/openrouter"
	"github.com/therrabiz/therrabiz-api/infrastructure/integrator/openrouter/mocks"
	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/config"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		OpenRouter: config.OpenRouter{Temperature: 0.7},
		Assistant: config.Assistant{
			DailyMessageLimit:   50,
			ChatCooldownSeconds: 0,
			InsightWindow:       20,
			WhatIfWindow:        10,
			TaskWindow:          7,
		},
	}
}

func newTestService(t *testing.T) (*Service, *mocks.MockClient, *storage.Store) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	store, err := storage.New(t.TempDir(), storage.NewBus())
	require.NoError(t, err)

	service := NewService(client, store, testConfig()).(*Service)
	return service, client, store
}

func TestChat_MapsHistoryRoles(t *testing.T) {
	service, client, store := newTestService(t)

	store.SaveStoreProfile(domain.StoreProfile{OwnerName: "Budi", StoreName: "Warung Budi"})

	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Text: "halo"},
		{Role: domain.RoleModel, Text: "halo juga"},
	}

	client.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any(), 0.7).
		DoAndReturn(func(_ context.Context, messages []openrouter.Message, _ float64) (string, error) {
			require.Len(t, messages, 4)
			assert.Equal(t, openrouter.RoleSystem, messages[0].Role)
			assert.Contains(t, messages[0].Content, "Budi")
			assert.Contains(t, messages[0].Content, "Warung Budi")
			assert.Equal(t, openrouter.RoleUser, messages[1].Role)
			// The stored "model" role maps to the wire's "assistant"
			assert.Equal(t, openrouter.RoleAssistant, messages[2].Role)
			assert.Equal(t, openrouter.Message{Role: openrouter.RoleUser, Content: "apa kabar?"}, messages[3])
			return "baik!", nil
		})

	reply, err := service.Chat(context.Background(), history, "apa kabar?")
	require.NoError(t, err)
	assert.Equal(t, "baik!", reply)
}

func TestChat_QuotaExceededSkipsClient(t *testing.T) {
	service, _, store := newTestService(t)
	service.cfg.Assistant.DailyMessageLimit = 1

	store.IncrementMessageCount()

	// No EXPECT on the client: reaching it would fail the test
	reply, err := service.Chat(context.Background(), nil, "halo")
	require.NoError(t, err)
	assert.Equal(t, quotaExceededMessage, reply)
}

func TestChat_CooldownBlocksRapidSends(t *testing.T) {
	service, client, _ := newTestService(t)
	service.cfg.Assistant.ChatCooldownSeconds = 60

	client.EXPECT().ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any()).Return("ok", nil)

	_, err := service.Chat(context.Background(), nil, "first")
	require.NoError(t, err)

	_, err = service.Chat(context.Background(), nil, "second")
	assert.ErrorIs(t, err, ErrCooldownActive)
}

func TestChat_ClientFailureDegradesToFallback(t *testing.T) {
	service, client, _ := newTestService(t)

	client.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", assert.AnError)

	reply, err := service.Chat(context.Background(), nil, "halo")
	require.NoError(t, err)
	assert.Equal(t, chatFallback, reply)
}

func TestBusinessInsights_SendsBoundedWindow(t *testing.T) {
	service, client, store := newTestService(t)
	service.cfg.Assistant.InsightWindow = 2

	for _, date := range []string{"2025-01-01", "2025-01-02", "2025-01-03"} {
		store.AddSale(domain.SaleRecord{ID: date, Date: date, Revenue: 1000})
	}

	client.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []openrouter.Message, _ float64) (string, error) {
			require.Len(t, messages, 1)
			// Only the last two records leave the device
			assert.NotContains(t, messages[0].Content, "2025-01-01")
			assert.Contains(t, messages[0].Content, "2025-01-02")
			assert.Contains(t, messages[0].Content, "2025-01-03")
			return "analisis", nil
		})

	assert.Equal(t, "analisis", service.BusinessInsights(context.Background()))
}

func TestBusinessInsights_FallbackOnFailure(t *testing.T) {
	service, client, _ := newTestService(t)

	client.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", assert.AnError)

	assert.Equal(t, insightsFallback, service.BusinessInsights(context.Background()))
}

func TestSuggestTasks_ParsesFencedJSON(t *testing.T) {
	service, client, store := newTestService(t)

	client.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("```json\n[\"Cek stok\", \"Promo WA\"]\n```", nil)

	batch := service.SuggestTasks(context.Background())

	require.Len(t, batch, 2)
	assert.Equal(t, "Cek stok", batch[0].Text)
	assert.Equal(t, "Promo WA", batch[1].Text)
	assert.False(t, batch[0].IsCompleted)

	// Ids are unique within the batch
	assert.NotEqual(t, batch[0].ID, batch[1].ID)
	assert.True(t, strings.HasPrefix(batch[1].ID, batch[0].ID[:len(batch[0].ID)-1]))

	// The batch is persisted
	assert.Len(t, store.DailyTasks(), 2)
}

func TestSuggestTasks_FallbackListOnUnparsableResponse(t *testing.T) {
	service, client, store := newTestService(t)

	client.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("maaf, saya tidak bisa", nil)

	batch := service.SuggestTasks(context.Background())

	require.Len(t, batch, len(taskFallbacks))
	for i, task := range batch {
		assert.Equal(t, taskFallbacks[i], task.Text)
	}
	assert.Len(t, store.DailyTasks(), len(taskFallbacks))
}

func TestSuggestTasks_KeepsRelevantExistingTasks(t *testing.T) {
	service, client, store := newTestService(t)

	store.SaveDailyTasks([]domain.DailyTask{
		{ID: "old-open", Text: "restock", Date: "2020-01-01", IsCompleted: false},
		{ID: "old-done", Text: "done", Date: "2020-01-01", IsCompleted: true},
	})

	client.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`["Tugas baru"]`, nil)

	service.SuggestTasks(context.Background())

	stored := store.DailyTasks()
	require.Len(t, stored, 2)
	assert.Equal(t, "old-open", stored[0].ID)
	assert.Equal(t, "Tugas baru", stored[1].Text)
}

func TestSlowMoving_ParsesAnalysis(t *testing.T) {
	service, client, store := newTestService(t)

	store.AddSale(domain.SaleRecord{ID: "1", Date: "2025-01-01", TopProduct: "Es Teh"})

	client.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`[{"product":"Es Teh","risk":"Tinggi","reason":"jarang laku","suggestion":"bundling"}]`, nil)

	items := service.SlowMoving(context.Background())

	require.Len(t, items, 1)
	assert.Equal(t, "Es Teh", items[0].Product)
	assert.Equal(t, "Tinggi", items[0].Risk)
}

func TestSlowMoving_EmptyOnBadPayload(t *testing.T) {
	service, client, _ := newTestService(t)

	client.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("not json", nil)

	assert.Empty(t, service.SlowMoving(context.Background()))
}

func TestCategorizeExpense(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{name: "valid category passes through", response: "Bahan Baku", expected: domain.CategoryRawMaterial},
		{name: "surrounding whitespace is trimmed", response: "  Marketing\n", expected: domain.CategoryMarketing},
		{name: "unknown category collapses to the catch-all", response: "Investasi", expected: domain.CategoryOther},
		{name: "chatty response collapses to the catch-all", response: "Ini termasuk Operasional.", expected: domain.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, client, _ := newTestService(t)

			client.EXPECT().
				ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(tt.response, nil)

			category := service.CategorizeExpense(context.Background(), "beli tepung", 50_000)
			assert.Equal(t, tt.expected, category)
		})
	}
}

func TestQuota(t *testing.T) {
	service, _, store := newTestService(t)
	service.cfg.Assistant.DailyMessageLimit = 3

	status := service.Quota()
	assert.Equal(t, QuotaStatus{Limit: 3, Used: 0, Remaining: 3, Blocked: false}, status)

	store.IncrementMessageCount()
	store.IncrementMessageCount()
	store.IncrementMessageCount()

	status = service.Quota()
	assert.Equal(t, QuotaStatus{Limit: 3, Used: 3, Remaining: 0, Blocked: true}, status)
}
