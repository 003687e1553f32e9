// Package jdate implements the Persian (Jalali) calendar arithmetic the
// business runs on: parsing/formatting YYYY/MM/DD date strings,
// conversion to and from Gregorian time.Time, and calendar-month
// arithmetic for installment schedules.
//
// The conversion uses the arithmetic Jalali calendar (the 33-year cycle
// break-point method), which matches the official Iranian calendar for
// the years this system deals with.
package jdate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned for malformed or out-of-range date strings.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar date in the Jalali calendar.
type Date struct {
	Year  int
	Month int // 1..12
	Day   int // 1..31
}

// breaks are the start years of the irregular 33-year cycles.
var breaks = []int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

// jalCal determines leap status and the Gregorian date of 1 Farvardin
// for a Jalali year.
func jalCal(jy int) (leap, gy, march int) {
	gy = jy + 621
	leapJ := -14
	jp := breaks[0]
	var jump int
	for i := 1; i < len(breaks); i++ {
		jm := breaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + jump%33/4
		jp = jm
	}
	n := jy - jp
	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}
	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march = 20 + leapJ - leapG
	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap = ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}
	return leap, gy, march
}

// g2d converts a Gregorian date to a Julian day number.
func g2d(gy, gm, gd int) int {
	d := (gy+(gm-8)/6+100100)*1461/4 + (153*((gm+9)%12)+2)/5 + gd - 34840408
	return d - (gy+100100+(gm-8)/6)/100/4*3 + 752
}

// d2g converts a Julian day number to a Gregorian date.
func d2g(jdn int) (gy, gm, gd int) {
	j := 4*jdn + 139361631
	j += (4*jdn+183187720)/146097*3/4*4 - 3908
	i := j%1461/4*5 + 308
	gd = i%153/5 + 1
	gm = i/153%12 + 1
	gy = j/1461 - 100100 + (8-gm)/6
	return gy, gm, gd
}

// j2d converts a Jalali date to a Julian day number.
func j2d(jy, jm, jd int) int {
	_, gy, march := jalCal(jy)
	return g2d(gy, 3, march) + (jm-1)*31 - jm/7*(jm-7) + jd - 1
}

// d2j converts a Julian day number to a Jalali date.
func d2j(jdn int) Date {
	gy, _, _ := d2g(jdn)
	jy := gy - 621
	leap, _, march := jalCal(jy)
	jdn1f := g2d(gy, 3, march)
	k := jdn - jdn1f
	if k >= 0 {
		if k <= 185 {
			return Date{Year: jy, Month: 1 + k/31, Day: k%31 + 1}
		}
		k -= 186
	} else {
		jy--
		k += 179
		if leap == 1 {
			k++
		}
	}
	return Date{Year: jy, Month: 7 + k/30, Day: k%30 + 1}
}

// IsLeapYear reports whether the Jalali year has 366 days.
func IsLeapYear(year int) bool {
	leap, _, _ := jalCal(year)
	return leap == 0
}

// MonthLength returns the number of days in a Jalali month.
func MonthLength(year, month int) int {
	switch {
	case month <= 6:
		return 31
	case month <= 11:
		return 30
	case IsLeapYear(year):
		return 30
	default:
		return 29
	}
}

// Valid reports whether d denotes a real calendar date.
func (d Date) Valid() bool {
	return d.Month >= 1 && d.Month <= 12 &&
		d.Day >= 1 && d.Day <= MonthLength(d.Year, d.Month)
}

// String formats d as YYYY/MM/DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Time converts d to the corresponding Gregorian date at UTC midnight.
func (d Date) Time() time.Time {
	gy, gm, gd := d2g(j2d(d.Year, d.Month, d.Day))
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, time.UTC)
}

// FromTime converts a Gregorian time to its Jalali calendar date.
func FromTime(t time.Time) Date {
	return d2j(g2d(t.Year(), int(t.Month()), t.Day()))
}

// AddMonths advances d by n calendar months, clamping the day to the
// target month's length (e.g. 1403/06/31 + 1 month = 1403/07/30).
func (d Date) AddMonths(n int) Date {
	total := d.Year*12 + d.Month - 1 + n
	year := total / 12
	month := total%12 + 1
	day := d.Day
	if ml := MonthLength(year, month); day > ml {
		day = ml
	}
	return Date{Year: year, Month: month, Day: day}
}

// Parse reads a YYYY/MM/DD Jalali date string.
func Parse(s string) (Date, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}
	d := Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// NormalizeDateString accepts a date in either the local Jalali form
// (1403/01/01) or an international form (2024-03-20, optionally RFC3339)
// and returns the Gregorian date at UTC midnight.
func NormalizeDateString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		d, err := Parse(s)
		if err != nil {
			return time.Time{}, err
		}
		return d.Time(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FormatTime renders a Gregorian time as the local Jalali date string.
func FormatTime(t time.Time) string {
	return FromTime(t).String()
}
