package scheduler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/config"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"github.com/therrabiz/therrabiz-api/internal/usecases/reporting"
)

func TestDailyExportService_Run(t *testing.T) {
	store, err := storage.New(t.TempDir(), storage.NewBus())
	require.NoError(t, err)

	store.AddSale(domain.SaleRecord{ID: "1", Date: "2025-01-10", Revenue: 500_000, Transactions: 12, TopProduct: "Kopi Susu"})

	exportDir := filepath.Join(t.TempDir(), "exports")
	cfg := &config.Config{
		Storage: config.Storage{ExportDir: exportDir},
	}

	service := NewDailyExportService(store, reporting.NewService(), cfg)

	require.NoError(t, service.Run())

	entries, err := os.ReadDir(exportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "therrabiz-laporan-penjualan-"))

	data, err := os.ReadFile(filepath.Join(exportDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Kopi Susu")

	status := service.Status()
	assert.False(t, status.Running)
	assert.Empty(t, status.LastError)
	assert.WithinDuration(t, time.Now(), status.LastRunAt, time.Minute)
}

func TestQuotaResetService_Run(t *testing.T) {
	store, err := storage.New(t.TempDir(), storage.NewBus())
	require.NoError(t, err)

	store.IncrementMessageCount()
	store.IncrementMessageCount()
	require.Equal(t, 2, store.MessageTracker().Count)

	service := NewQuotaResetService(store, &config.Config{})
	service.Run()

	assert.Equal(t, 0, store.MessageTracker().Count)
}
