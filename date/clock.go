package date

import (
	"time"
	_ "time/tzdata" // the NY zone must resolve on hosts without a zoneinfo database
)

// NewYork is the location of the US equity market clock.
var NewYork = mustLoad("America/New_York")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Session is a daily trading session expressed as wall-clock times in a location.
type Session struct {
	Location *time.Location
	// Open and Close are offsets from local midnight. Close is exclusive.
	Open, Close time.Duration
}

// RegularSession is the NYSE/Nasdaq regular session: 9:30 to 16:00 New York time.
var RegularSession = Session{
	Location: NewYork,
	Open:     9*time.Hour + 30*time.Minute,
	Close:    16 * time.Hour,
}

// Contains reports whether t falls within the session on a weekday.
// Market holidays are not modelled.
func (s Session) Contains(t time.Time) bool {
	local := t.In(s.Location)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	// wall clock offset, which is what the session is defined in, even on DST days.
	offset := time.Duration(local.Hour())*time.Hour + time.Duration(local.Minute())*time.Minute +
		time.Duration(local.Second())*time.Second + time.Duration(local.Nanosecond())
	return offset >= s.Open && offset < s.Close
}
