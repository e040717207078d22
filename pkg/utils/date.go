package utils

import "time"

// DayFormat is the ISO day layout used for every stored date string.
const DayFormat = "2006-01-02"

// ParseDate parses an ISO day string; an empty input yields the zero time.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(DayFormat, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// Today returns the current local day as an ISO day string.
func Today() string {
	return time.Now().Format(DayFormat)
}
