package oracle

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Sign is a tropical sun sign name. The zero value means "no sign".
type Sign string

// SignNone is returned when no birth date is available.
const SignNone Sign = ""

// The twelve signs, named as they are stored and rendered.
const (
	Capricornio Sign = "Capricornio"
	Aquario     Sign = "Aquario"
	Peixes      Sign = "Peixes"
	Aries       Sign = "Aries"
	Touro       Sign = "Touro"
	Gemeos      Sign = "Gemeos"
	Cancer      Sign = "Cancer"
	Leao        Sign = "Leao"
	Virgem      Sign = "Virgem"
	Libra       Sign = "Libra"
	Escorpiao   Sign = "Escorpiao"
	Sagitario   Sign = "Sagitario"
)

// signRange owns the days from (startMonth, startDay) through
// (endMonth, endDay), both inclusive. Every range spans exactly one
// month boundary.
type signRange struct {
	sign       Sign
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
}

func (r signRange) contains(m time.Month, d int) bool {
	return (m == r.startMonth && d >= r.startDay) || (m == r.endMonth && d <= r.endDay)
}

// signTable is tested in order; the ranges tile the year exactly once.
var signTable = []signRange{
	{Capricornio, time.December, 22, time.January, 19},
	{Aquario, time.January, 20, time.February, 18},
	{Peixes, time.February, 19, time.March, 20},
	{Aries, time.March, 21, time.April, 19},
	{Touro, time.April, 20, time.May, 20},
	{Gemeos, time.May, 21, time.June, 20},
	{Cancer, time.June, 21, time.July, 22},
	{Leao, time.July, 23, time.August, 22},
	{Virgem, time.August, 23, time.September, 22},
	{Libra, time.September, 23, time.October, 22},
	{Escorpiao, time.October, 23, time.November, 21},
	{Sagitario, time.November, 22, time.December, 21},
}

// Signs returns the twelve signs in table order.
func Signs() []Sign {
	out := make([]Sign, len(signTable))
	for i, r := range signTable {
		out[i] = r.sign
	}
	return out
}

// SignFor maps a date to its sun sign using the date's own month and day;
// no time zone conversion is applied.
func SignFor(date time.Time) (Sign, error) {
	m, d := date.Month(), date.Day()
	for _, r := range signTable {
		if r.contains(m, d) {
			return r.sign, nil
		}
	}
	return SignNone, fmt.Errorf("%w: %02d-%02d", ErrNoSign, int(m), d)
}

// ParseBirthDate parses a birth date as entered by a user. ISO dates
// (YYYY-MM-DD) are tried first, then any layout dateparse recognises, reading
// ambiguous numeric dates day first (05/03/1995 is 5 March). Results without
// a year, such as bare times or fragments like "3.14", are rejected.
// The boolean is false for empty or unparseable input.
func ParseBirthDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, true
	}
	t, err := dateparse.ParseAny(raw, dateparse.PreferMonthFirst(false))
	if err != nil || t.Year() < 1 {
		return time.Time{}, false
	}
	return t, true
}

// ResolveSign combines ParseBirthDate and SignFor. Missing or unparseable
// input yields SignNone with a nil error; a non-nil error is only returned
// for an invariant violation in the sign table.
func ResolveSign(rawBirthDate string) (Sign, error) {
	date, ok := ParseBirthDate(rawBirthDate)
	if !ok {
		return SignNone, nil
	}
	return SignFor(date)
}
