package ics

import (
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"termcal/internal/model"
)

// ProductID is the PRODID written to exported calendars.
const ProductID = "-//termcal//termcal//EN"

// uidNamespace seeds the name-based UIDs of exported events so that
// re-exporting the same event yields the same UID.
var uidNamespace = uuid.MustParse("6f1d2c1e-4b7a-4d4e-9a38-0f3a2b8e5c11")

// EventUID returns the stable UID of ev.
func EventUID(ev model.Event) string {
	return uuid.NewSHA1(uidNamespace, []byte(ev.Date.String()+"\x00"+ev.Name)).String() + "@termcal"
}

// Export writes evs as all-day VEVENTs.
func Export(w io.Writer, evs []model.Event, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)

	for _, ev := range evs {
		start := ev.Date.Time()
		ve := cal.AddEvent(EventUID(ev))
		ve.SetDtStampTime(stamp.UTC())
		ve.SetSummary(ev.Name)
		ve.SetAllDayStartAt(start)
		ve.SetAllDayEndAt(start.AddDate(0, 0, 1))
	}

	return cal.SerializeTo(w)
}
