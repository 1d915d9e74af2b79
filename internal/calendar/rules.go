package calendar

import (
	"slices"
	"strings"
	"time"

	"github.com/guttosm/sessioncal/internal/apperror"
	"github.com/guttosm/sessioncal/internal/sessions"
)

const (
	NYSE = "NYSE"
	B3   = "B3"
)

// HolidayFunc returns the weekday closures of a market for one year.
// Weekends never need to be listed.
type HolidayFunc func(year int) []time.Time

// Rules describes which days a market trades on.
type Rules struct {
	Market   string
	Holidays HolidayFunc
}

var builtin = map[string]Rules{
	NYSE: {Market: NYSE, Holidays: nyseHolidays},
	B3:   {Market: B3, Holidays: b3Holidays},
}

// Markets returns the names of the markets with built-in rules, sorted.
func Markets() []string {
	out := make([]string, 0, len(builtin))
	for m := range builtin {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

// RulesFor returns the built-in rules of market (case insensitive).
func RulesFor(market string) (Rules, error) {
	r, ok := builtin[strings.ToUpper(strings.TrimSpace(market))]
	if !ok {
		return Rules{}, apperror.Newf(apperror.UnknownMarket, "Market %s is not supported.", market)
	}
	return r, nil
}

// IsSession reports whether d is a trading day under these rules.
func (r Rules) IsSession(d time.Time) bool {
	d = sessions.Day(d)
	if isWeekend(d) {
		return false
	}
	for _, h := range r.Holidays(d.Year()) {
		if h.Equal(d) {
			return false
		}
	}
	return true
}

// Generate builds the calendar of market covering January 1st of firstYear
// through December 31st of lastYear.
func Generate(market string, firstYear, lastYear int) (*Calendar, error) {
	r, err := RulesFor(market)
	if err != nil {
		return nil, err
	}
	if firstYear > lastYear {
		return nil, apperror.Newf(apperror.InvalidArgument,
			"calendar %s: first year %d is after last year %d", r.Market, firstYear, lastYear)
	}

	dates := make([]time.Time, 0, (lastYear-firstYear+1)*253)
	for y := firstYear; y <= lastYear; y++ {
		closed := make(map[time.Time]struct{})
		for _, h := range r.Holidays(y) {
			closed[h] = struct{}{}
		}
		end := date(y+1, time.January, 1)
		for d := date(y, time.January, 1); d.Before(end); d = d.AddDate(0, 0, 1) {
			if isWeekend(d) {
				continue
			}
			if _, ok := closed[d]; ok {
				continue
			}
			dates = append(dates, d)
		}
	}
	return New(r.Market, dates)
}

// ─── NYSE ─────────────────────────────────────────────

// nyseClosures are unscheduled full-day closures.
var nyseClosures = []time.Time{
	date(1994, time.April, 27),     // Nixon funeral
	date(2001, time.September, 11), // September 11
	date(2001, time.September, 12),
	date(2001, time.September, 13),
	date(2001, time.September, 14),
	date(2004, time.June, 11),    // Reagan funeral
	date(2007, time.January, 2),  // Ford funeral
	date(2012, time.October, 29), // Hurricane Sandy
	date(2012, time.October, 30),
	date(2018, time.December, 5), // G.H.W. Bush funeral
	date(2025, time.January, 9),  // Carter funeral
}

func nyseHolidays(year int) []time.Time {
	var out []time.Time

	// New Year's Day moves to Monday when on Sunday, but is not observed on
	// the preceding Friday when it falls on Saturday.
	if ny := date(year, time.January, 1); ny.Weekday() == time.Sunday {
		out = append(out, ny.AddDate(0, 0, 1))
	} else if ny.Weekday() != time.Saturday {
		out = append(out, ny)
	}

	if year >= 1998 {
		out = append(out, nthWeekday(year, time.January, time.Monday, 3)) // MLK Day
	}
	out = append(out,
		nthWeekday(year, time.February, time.Monday, 3), // Washington's Birthday
		easterSunday(year).AddDate(0, 0, -2),            // Good Friday
		lastWeekday(year, time.May, time.Monday),        // Memorial Day
	)
	if year >= 2022 {
		out = append(out, observed(date(year, time.June, 19))) // Juneteenth
	}
	out = append(out,
		observed(date(year, time.July, 4)),                // Independence Day
		nthWeekday(year, time.September, time.Monday, 1),  // Labor Day
		nthWeekday(year, time.November, time.Thursday, 4), // Thanksgiving
		observed(date(year, time.December, 25)),           // Christmas
	)

	for _, c := range nyseClosures {
		if c.Year() == year {
			out = append(out, c)
		}
	}
	return out
}

// ─── B3 ───────────────────────────────────────────────

func b3Holidays(year int) []time.Time {
	out := []time.Time{
		date(year, time.January, 1),   // New Year
		date(year, time.April, 21),    // Tiradentes
		date(year, time.May, 1),       // Labor Day
		date(year, time.September, 7), // Independence Day
		date(year, time.October, 12),  // Our Lady Aparecida
		date(year, time.November, 2),  // All Souls' Day
		date(year, time.November, 15), // Republic Proclamation
		date(year, time.December, 24), // Christmas Eve
		date(year, time.December, 25), // Christmas
		date(year, time.December, 31), // New Year's Eve
	}
	if year >= 2024 {
		out = append(out, date(year, time.November, 20)) // Black Consciousness Day
	}

	// Movable holidays (computed from Easter)
	easter := easterSunday(year)
	out = append(out,
		easter.AddDate(0, 0, -48), // Carnival Monday
		easter.AddDate(0, 0, -47), // Carnival Tuesday
		easter.AddDate(0, 0, -2),  // Good Friday
		easter.AddDate(0, 0, 60),  // Corpus Christi
	)
	return out
}

// ─── date helpers ─────────────────────────────────────

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// observed shifts a Saturday holiday to Friday and a Sunday one to Monday.
func observed(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

// nthWeekday returns the n-th (1-based) given weekday of a month.
func nthWeekday(year int, month time.Month, wd time.Weekday, n int) time.Time {
	first := date(year, month, 1)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+7*(n-1))
}

// lastWeekday returns the last given weekday of a month.
func lastWeekday(year int, month time.Month, wd time.Weekday) time.Time {
	last := date(year, month+1, 0)
	offset := (int(last.Weekday()) - int(wd) + 7) % 7
	return last.AddDate(0, 0, -offset)
}

// easterSunday returns the date of Easter Sunday for a given year
// (Meeus/Jones/Butcher algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return date(year, time.Month(month), day)
}
