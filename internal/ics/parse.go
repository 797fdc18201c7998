package ics

import (
	"bytes"
	"errors"
	"strings"

	ical "github.com/arran4/golang-ical"

	appLog "termcal/internal/log"
	"termcal/internal/model"
)

// ParseResult is the outcome of reading an ICS payload.
type ParseResult struct {
	Events []model.Event
	// Skipped counts VEVENTs without a usable summary or start date.
	Skipped int
	// RecurringIgnored counts VEVENTs whose RRULE was dropped; only their
	// first occurrence is imported.
	RecurringIgnored int
}

// ParseICS reads every VEVENT of body into a dated event.
//
//   - All-day events are detected by VALUE=DATE or a DTSTART without a time.
//   - Timed events keep the calendar date of their DTSTART as written.
//   - RRULE is not expanded.
func ParseICS(body []byte) (ParseResult, error) {
	var res ParseResult
	if len(body) == 0 {
		return res, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return res, err
	}

	for _, ve := range cal.Events() {
		ev, recurring, perr := parseVEvent(ve)
		if perr != nil {
			// Log and skip this event, but keep parsing others.
			appLog.Warn("ics vevent skipped", "reason", perr.Error())
			res.Skipped++
			continue
		}
		if recurring {
			res.RecurringIgnored++
		}
		res.Events = append(res.Events, ev)
	}

	appLog.Info("ics parse completed", "event_count", len(res.Events), "skipped", res.Skipped)
	return res, nil
}

func parseVEvent(ve *ical.VEvent) (model.Event, bool, error) {
	var out model.Event

	p := ve.GetProperty(ical.ComponentPropertySummary)
	if p == nil || strings.TrimSpace(p.Value) == "" {
		return out, false, errors.New("missing SUMMARY")
	}
	out.Name = strings.TrimSpace(p.Value)

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, false, errors.New("missing DTSTART")
	}

	// VALUE=DATE or no 'T' in the value -> all-day
	allDay := !strings.Contains(dtStart.Value, "T")
	if vs, ok := dtStart.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		allDay = true
	}

	if allDay {
		start, err := ve.GetAllDayStartAt()
		if err != nil {
			return out, false, err
		}
		out.Date = model.FromTime(start)
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return out, false, err
		}
		out.Date = model.FromTime(start)
	}

	recurring := ve.GetProperty(ical.ComponentPropertyRrule) != nil
	return out, recurring, nil
}
