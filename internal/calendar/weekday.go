package calendar

import "time"

// Weekday is an ISO weekday index: Monday=0 ... Sunday=6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdayOrder is the left-to-right column order of a rendered month.
type WeekdayOrder [7]Weekday

var canonicalOrder = WeekdayOrder{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = [7]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

var monthNames = [12]string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

// Name returns the full English weekday name.
func (w Weekday) Name() string {
	return weekdayNames[w]
}

// Short returns the three-letter abbreviation of the weekday name.
func (w Weekday) Short() string {
	return weekdayNames[w][:3]
}

// Label returns Short if short is set, otherwise Name.
func (w Weekday) Label(short bool) string {
	if short {
		return w.Short()
	}
	return w.Name()
}

func (w Weekday) String() string {
	return w.Name()
}

// CanonicalOrder returns Monday..Sunday.
func CanonicalOrder() WeekdayOrder {
	return canonicalOrder
}

// RotateSundayFirst right-rotates order by one so its last element
// moves to the front.
func RotateSundayFirst(order WeekdayOrder) WeekdayOrder {
	var out WeekdayOrder
	for i := range order {
		out[(i+1)%len(order)] = order[i]
	}
	return out
}

// OrderFor returns the canonical order, or its Sunday-first rotation.
func OrderFor(sundayFirst bool) WeekdayOrder {
	if sundayFirst {
		return RotateSundayFirst(canonicalOrder)
	}
	return canonicalOrder
}

// OffsetIndex returns the position of w in order, or -1 if absent.
func OffsetIndex(w Weekday, order WeekdayOrder) int {
	for i, o := range order {
		if o == w {
			return i
		}
	}
	return -1
}

// MonthName returns the English name of m.
func MonthName(m time.Month) string {
	return monthNames[m-1]
}
