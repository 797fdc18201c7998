package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2023, time.January, 31},
		{2023, time.February, 28},
		{2024, time.February, 29},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2023, time.April, 30},
		{2023, time.December, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysIn(tt.year, tt.month), "%d-%02d", tt.year, tt.month)
	}
}

func TestNewDateInvalid(t *testing.T) {
	cases := []struct {
		name  string
		year  int
		month time.Month
		day   int
	}{
		{"feb 30", 2023, time.February, 30},
		{"feb 29 non-leap", 2023, time.February, 29},
		{"day zero", 2023, time.May, 0},
		{"month zero", 2023, 0, 1},
		{"month thirteen", 2023, 13, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDate(tc.year, tc.month, tc.day)
			var ide *InvalidDateError
			require.True(t, errors.As(err, &ide))
			assert.Equal(t, tc.day, ide.Day)
		})
	}
}

func TestDateWeekdayAndString(t *testing.T) {
	d, err := NewDate(2023, time.May, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Weekday(), "2023-05-01 is a Monday")
	assert.Equal(t, "2023-05-01", d.String())

	sun, err := NewDate(2023, time.May, 7)
	require.NoError(t, err)
	assert.Equal(t, 6, sun.Weekday())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 29}, d)

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
	_, err = ParseDate("24/12/2000")
	assert.Error(t, err)
}

func TestStorable(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{-1, false},
		{0, true},
		{2023, true},
		{9999, true},
		{10000, false},
	}
	for _, tt := range tests {
		d, err := NewDate(tt.year, time.January, 1)
		require.NoError(t, err)
		assert.Equal(t, tt.want, d.Storable(), "year %d", tt.year)
		if tt.want {
			back, err := ParseDate(d.String())
			require.NoError(t, err)
			assert.Equal(t, d, back)
		} else {
			_, err := ParseDate(d.String())
			assert.Error(t, err, "year %d", tt.year)
		}
	}
}
