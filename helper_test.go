package positions

import (
	"time"

	"github.com/etnz/positions/date"
)

// USD is a helper for test to create money from const.
func USD(v float64) Money { return M(v) }

// sampleLots returns two AAPL lots and one GOOG lot.
func sampleLots() []Lot {
	return []Lot{
		{
			Symbol:           "AAPL",
			LastPrice:        USD(190.5),
			Change:           USD(1.5),
			ChangePercent:    P(0.79),
			Quantity:         Q(10),
			PricePaid:        USD(185),
			DaysGain:         USD(15),
			TotalGain:        USD(55),
			TotalGainPercent: P(2.97),
			Value:            USD(1905),
			Date:             date.New(2024, time.January, 15),
		},
		{
			Symbol:           "AAPL",
			LastPrice:        USD(191),
			Change:           USD(2),
			ChangePercent:    P(1.06),
			Quantity:         Q(20),
			PricePaid:        USD(180),
			DaysGain:         USD(40),
			TotalGain:        USD(75),
			TotalGainPercent: P(4.17),
			Value:            USD(3820),
			Date:             date.New(2024, time.March, 2),
		},
		{
			Symbol:           "GOOG",
			LastPrice:        USD(130),
			Change:           USD(-1),
			ChangePercent:    P(-0.76),
			Quantity:         Q(5),
			PricePaid:        USD(125),
			DaysGain:         USD(-5),
			TotalGain:        USD(25),
			TotalGainPercent: P(4),
			Value:            USD(650),
			Date:             date.New(2024, time.February, 20),
		},
	}
}
