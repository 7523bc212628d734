package weather

// City describes the place a forecast batch belongs to.
// TimezoneOffset is in seconds east of UTC.
type City struct {
	Name           string `json:"name"`
	Country        string `json:"country"`
	TimezoneOffset int    `json:"timezone"`
}

// Entry is a single forecast point as delivered by the remote API.
// TimestampText is the UTC wall-clock text (e.g. "2024-01-01 21:00:00").
type Entry struct {
	Dt            int64   `json:"dt"` // unix seconds, stable per-entry key
	TimestampText string  `json:"dtTxt"`
	TemperatureC  float64 `json:"temperatureC"`
	Description   string  `json:"description"`
}

// Batch is the full response for one successful query.
// Entries are expected to be ordered chronologically.
type Batch struct {
	City    City    `json:"city"`
	Entries []Entry `json:"entries"`
}

// DateGroup is the set of entries sharing one local calendar date.
// It is derived from a Batch and never stored.
type DateGroup struct {
	Key     string  `json:"date"`
	Entries []Entry `json:"entries"`
}
