package timeutil

import "time"

// IST is the Indian Standard Time location (UTC+5:30). Allocation dates
// are recorded and displayed in IST.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Now returns the current time in IST.
func Now() time.Time {
	return time.Now().In(IST)
}

// ToIST converts any time to IST.
func ToIST(t time.Time) time.Time {
	return t.In(IST)
}

// ParseDate parses a "2006-01-02" date string in IST.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, IST)
}

// StartOfDay returns the start of day (00:00:00) in IST for the given time.
func StartOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}

// Layouts for IST formatting.
const (
	DateLayout    = "2006-01-02"
	DisplayLayout = "02 Jan 2006, 03:04 PM"
)
