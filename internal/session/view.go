package session

import (
	"fmt"

	"github.com/i474232898/weather-forecast-view/internal/weather"
)

// View is the derived, render-ready model of a session.
type View struct {
	Status   Status      `json:"status"`
	Query    string      `json:"query"`
	Heading  string      `json:"heading,omitempty"`
	Message  string      `json:"message,omitempty"`
	Expanded string      `json:"expanded,omitempty"`
	Groups   []GroupView `json:"groups"`
}

// GroupView is one date card.
type GroupView struct {
	Date     string      `json:"date"`
	Expanded bool        `json:"expanded"`
	Entries  []EntryView `json:"entries"`
}

// EntryView is one forecast line inside a date card.
type EntryView struct {
	Dt           int64   `json:"dt"`
	Time         string  `json:"time"`
	TemperatureC float64 `json:"temperatureC"`
	Description  string  `json:"description"`
}

// buildView renders the session. A failed search shows its banner over
// whatever batch was displayed before it.
func buildView(status Status, searched, query string, batch weather.Batch, showBatch bool, expanded string) View {
	v := View{
		Status:   status,
		Query:    query,
		Expanded: expanded,
		Groups:   []GroupView{},
	}

	switch status {
	case StatusNotFound:
		v.Message = fmt.Sprintf("No forecasts found for '%s'", searched)
		return v
	case StatusFailed:
		v.Message = fmt.Sprintf("Could not load forecast for '%s'", searched)
	}
	if !showBatch {
		return v
	}

	v.Heading = fmt.Sprintf("Forecast for %s, %s", batch.City.Name, batch.City.Country)

	offset := batch.City.TimezoneOffset
	for _, g := range weather.GroupByLocalDate(batch.Entries, offset) {
		gv := GroupView{
			Date:     g.Key,
			Expanded: g.Key == expanded,
			Entries:  make([]EntryView, 0, len(g.Entries)),
		}
		for _, e := range g.Entries {
			label := ""
			if local, err := weather.EntryLocalTime(e, offset); err == nil {
				label = weather.TimeLabel(local)
			}
			gv.Entries = append(gv.Entries, EntryView{
				Dt:           e.Dt,
				Time:         label,
				TemperatureC: e.TemperatureC,
				Description:  e.Description,
			})
		}
		v.Groups = append(v.Groups, gv)
	}
	return v
}
