package reporting

import (
	"strconv"
	"strings"
	"time"

	"github.com/therrabiz/therrabiz-api/internal/domain"
	"github.com/therrabiz/therrabiz-api/pkg/utils"
)

// Semicolon separator: Indonesian/European Excel locales expect it.
const separator = ";"

// UTF-8 byte-order mark so Excel detects the encoding.
const bom = "\uFEFF"

var headers = []string{"ID", "Tanggal", "Omzet (Rp)", "Jumlah Transaksi", "Produk Unggulan", "Catatan"}

// Reporter produces the downloadable sales report.
type Reporter interface {
	SalesCSV(sales []domain.SaleRecord) []byte
	Filename(now time.Time) string
}

type Service struct{}

func NewService() Reporter {
	return &Service{}
}

// SalesCSV renders the sales list as a semicolon-separated report, one row
// per record in store order (not necessarily chronological), prefixed with a
// UTF-8 BOM. Values containing the separator, quotes or newlines are quoted
// with internal quotes doubled, so a standard CSV parser with Comma=';'
// round-trips every field.
func (s *Service) SalesCSV(sales []domain.SaleRecord) []byte {
	var b strings.Builder
	b.WriteString(bom)
	b.WriteString(strings.Join(headers, separator))

	for _, record := range sales {
		fields := []string{
			escapeCSV(record.ID),
			escapeCSV(record.Date),
			escapeCSV(strconv.FormatFloat(record.Revenue, 'f', -1, 64)),
			escapeCSV(strconv.Itoa(record.Transactions)),
			escapeCSV(record.TopProduct),
			escapeCSV(record.Notes),
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(fields, separator))
	}

	return []byte(b.String())
}

// Filename suggests the download name for a report generated at now.
func (s *Service) Filename(now time.Time) string {
	return "therrabiz-laporan-penjualan-" + now.Format(utils.DayFormat) + ".csv"
}

func escapeCSV(value string) string {
	if strings.ContainsAny(value, separator+"\"\n\r") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
