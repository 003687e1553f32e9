package jdate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Known equivalences between the two calendars, checked in both directions.
var conversionPairs = []struct {
	jalali    Date
	gregorian time.Time
}{
	{Date{1400, 1, 1}, time.Date(2021, 3, 21, 0, 0, 0, 0, time.UTC)},
	{Date{1402, 1, 1}, time.Date(2023, 3, 21, 0, 0, 0, 0, time.UTC)},
	{Date{1403, 1, 1}, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
	{Date{1403, 6, 31}, time.Date(2024, 9, 21, 0, 0, 0, 0, time.UTC)},
	{Date{1403, 12, 30}, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)},
	{Date{1404, 1, 1}, time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)},
}

func TestTimeConversion(t *testing.T) {
	for _, pair := range conversionPairs {
		assert.Equal(t, pair.gregorian, pair.jalali.Time(), "Jalali %s should convert to %s", pair.jalali, pair.gregorian.Format("2006-01-02"))
		assert.Equal(t, pair.jalali, FromTime(pair.gregorian), "%s should convert to Jalali %s", pair.gregorian.Format("2006-01-02"), pair.jalali)
	}
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, IsLeapYear(1399))
	assert.True(t, IsLeapYear(1403))
	assert.False(t, IsLeapYear(1400))
	assert.False(t, IsLeapYear(1402))
	assert.False(t, IsLeapYear(1404))
}

func TestMonthLength(t *testing.T) {
	assert.Equal(t, 31, MonthLength(1403, 1))
	assert.Equal(t, 31, MonthLength(1403, 6))
	assert.Equal(t, 30, MonthLength(1403, 7))
	assert.Equal(t, 30, MonthLength(1403, 11))
	assert.Equal(t, 30, MonthLength(1403, 12), "leap Esfand has 30 days")
	assert.Equal(t, 29, MonthLength(1402, 12), "common Esfand has 29 days")
}

func TestAddMonths(t *testing.T) {
	// Plain advance within the first half of the year
	assert.Equal(t, Date{1403, 2, 1}, Date{1403, 1, 1}.AddMonths(1))
	assert.Equal(t, Date{1403, 4, 15}, Date{1403, 1, 15}.AddMonths(3))

	// Day clamps to the shorter target month
	assert.Equal(t, Date{1403, 7, 30}, Date{1403, 6, 31}.AddMonths(1))
	assert.Equal(t, Date{1402, 12, 29}, Date{1402, 11, 30}.AddMonths(1))

	// Year carry
	assert.Equal(t, Date{1404, 1, 15}, Date{1403, 12, 15}.AddMonths(1))
	assert.Equal(t, Date{1404, 3, 1}, Date{1403, 3, 1}.AddMonths(12))

	// Zero is identity
	assert.Equal(t, Date{1403, 5, 10}, Date{1403, 5, 10}.AddMonths(0))
}

func TestParse(t *testing.T) {
	d, err := Parse("1403/01/01")
	require.NoError(t, err)
	assert.Equal(t, Date{1403, 1, 1}, d)

	d, err = Parse("1402/12/29")
	require.NoError(t, err)
	assert.Equal(t, Date{1402, 12, 29}, d)

	for _, bad := range []string{
		"1403/13/01", // month out of range
		"1403/01/32", // day out of range
		"1402/12/30", // Esfand 30 only exists in leap years
		"1403/01",    // missing component
		"1403-01-01", // wrong separator
		"not a date",
	} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, "Parse(%q) should fail", bad)
	}
}

func TestNormalizeDateString(t *testing.T) {
	want := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	got, err := NormalizeDateString("1403/01/01")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = NormalizeDateString("2024-03-20")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// RFC3339 input truncates to UTC midnight
	got, err = NormalizeDateString("2024-03-20T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = NormalizeDateString("20/03/2024/extra")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = NormalizeDateString("garbage")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "1403/01/01", FormatTime(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1403/12/30", FormatTime(time.Date(2025, 3, 20, 12, 30, 0, 0, time.UTC)))
}

func TestStringAndValid(t *testing.T) {
	assert.Equal(t, "1403/01/01", Date{1403, 1, 1}.String())
	assert.True(t, Date{1403, 12, 30}.Valid())
	assert.False(t, Date{1402, 12, 30}.Valid())
	assert.False(t, Date{1403, 0, 1}.Valid())
}
