package positions

// Stats are the headline figures of the portfolio.
type Stats struct {
	TotalAssets     Money   `json:"totalAssets"`
	Investments     Money   `json:"investments"`
	DaysGain        Money   `json:"daysGain"`
	DaysGainPercent Percent `json:"daysGainPercentage"`
	Cash            Money   `json:"cash"`
}

// ComputeStats summarizes lots and the cash balance.
//
// The day's gain percentage is relative to yesterday's value of the investments,
// that is Investments − DaysGain.
func ComputeStats(lots []Lot, cash Money) Stats {
	var investments, daysGain Money
	for _, l := range lots {
		investments = investments.Add(l.Value)
		daysGain = daysGain.Add(l.DaysGain)
	}
	return Stats{
		TotalAssets:     investments.Add(cash).Round2(),
		Investments:     investments.Round2(),
		DaysGain:        daysGain.Round2(),
		DaysGainPercent: daysGain.Ratio(investments.Sub(daysGain)),
		Cash:            cash.Round2(),
	}
}
