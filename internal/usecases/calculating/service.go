package calculating

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrZeroInventory is returned when the average inventory of a turnover
// calculation is zero.
var ErrZeroInventory = errors.New("average inventory is zero")

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// PriceQuote is the selling-price breakdown for a product.
type PriceQuote struct {
	HPP          decimal.Decimal `json:"hpp"`
	Profit       decimal.Decimal `json:"profit"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
}

// Calculator does the dashboard's money arithmetic with exact decimals
// instead of floats, so displayed rupiah amounts never drift.
type Calculator interface {
	SellingPrice(cost, overhead, marginPct decimal.Decimal) PriceQuote
	TurnoverRate(cogs, beginningStock, endingStock decimal.Decimal) (decimal.Decimal, error)
}

type Service struct{}

func NewService() Calculator {
	return &Service{}
}

// SellingPrice derives the ideal selling price from raw cost, overhead and a
// target margin percentage: HPP = cost + overhead, profit = HPP × margin%,
// selling price = HPP + profit.
func (s *Service) SellingPrice(cost, overhead, marginPct decimal.Decimal) PriceQuote {
	hpp := cost.Add(overhead)
	profit := hpp.Mul(marginPct).Div(hundred)

	return PriceQuote{
		HPP:          hpp,
		Profit:       profit,
		SellingPrice: hpp.Add(profit),
	}
}

// TurnoverRate computes the inventory turnover: COGS divided by the average
// of beginning and ending stock value.
func (s *Service) TurnoverRate(cogs, beginningStock, endingStock decimal.Decimal) (decimal.Decimal, error) {
	avgInventory := beginningStock.Add(endingStock).Div(two)
	if avgInventory.IsZero() {
		return decimal.Zero, ErrZeroInventory
	}

	return cogs.DivRound(avgInventory, 4), nil
}
