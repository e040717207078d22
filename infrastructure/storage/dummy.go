package storage

import (
	"math"
	"math/rand"
	"time"

	"github.com/therrabiz/therrabiz-api/internal/domain"
)

// Days of generated data returned while dummy mode is on.
const dummyDataDays = 7

var dummyProducts = []string{"Kopi Susu", "Roti Bakar", "Mie Ayam", "Es Teh", "Nasi Goreng"}

// DummySales generates one record per day for the last n days, oldest first.
// Revenue lands between 1M and 5M rupiah and transactions between 20 and 100,
// which keeps the charts looking plausible during demos.
func DummySales(days int) []domain.SaleRecord {
	records := make([]domain.SaleRecord, 0, days)
	today := time.Now()

	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		revenue := math.Round((rand.Float64()*4_000_000+1_000_000)*100) / 100
		transactions := rand.Intn(80) + 20

		records = append(records, domain.SaleRecord{
			ID:           "dummy-" + date,
			Date:         date,
			Revenue:      revenue,
			Transactions: transactions,
			TopProduct:   dummyProducts[rand.Intn(len(dummyProducts))],
			Notes:        "Dummy sales data",
		})
	}

	return records
}
