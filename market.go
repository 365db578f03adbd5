package positions

import (
	"time"

	"github.com/etnz/positions/date"
)

// MarketStatus is whether the stock market is in its regular session.
type MarketStatus int

const (
	Closed MarketStatus = iota
	Open
)

func (s MarketStatus) String() string {
	if s == Open {
		return "Market Open"
	}
	return "Market Closed"
}

func (s MarketStatus) MarshalText() ([]byte, error) {
	if s == Open {
		return []byte("open"), nil
	}
	return []byte("closed"), nil
}

// MarketStatusAt returns the status of the NYSE regular session at t.
// Exchange holidays are not taken into account.
func MarketStatusAt(t time.Time) MarketStatus {
	if date.RegularSession.Contains(t) {
		return Open
	}
	return Closed
}
