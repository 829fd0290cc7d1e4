package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid date", input: "2024-06-03", want: "2024-06-03"},
		{name: "leap day", input: "2024-02-29", want: "2024-02-29"},
		{name: "not a leap year", input: "2023-02-29", wantErr: true},
		{name: "wrong format", input: "03/06/2024", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDate_Weekday(t *testing.T) {
	// 2024-06-03 понедельник
	assert.Equal(t, 1, MustParseDate("2024-06-03").Weekday())
	assert.Equal(t, 0, MustParseDate("2024-06-09").Weekday())
}

func TestDate_Arithmetic(t *testing.T) {
	d := MustParseDate("2024-02-28")

	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, 2, d.DaysUntil(d.AddDays(2)))
	assert.True(t, d.AddDays(1).Between(d, d.AddDays(1)))
	assert.False(t, d.AddDays(3).Between(d, d.AddDays(1)))
}

func TestDateOf_DropsTimeAndZone(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	d := DateOf(time.Date(2024, 6, 3, 23, 30, 0, 0, loc))

	assert.True(t, d.Equal(NewDate(2024, time.June, 3)))
}

func TestDate_JSON(t *testing.T) {
	payload := struct {
		Date  Date  `json:"date"`
		Final *Date `json:"final,omitempty"`
	}{Date: MustParseDate("2024-06-03")}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-06-03"}`, string(data))

	var decoded struct {
		Date Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-12-31"}`), &decoded))
	assert.Equal(t, "2024-12-31", decoded.Date.String())

	err = json.Unmarshal([]byte(`{"date":"31-12-2024"}`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-06-03", d.String())

	require.NoError(t, d.Scan([]byte("2024-06-04")))
	assert.Equal(t, "2024-06-04", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}
