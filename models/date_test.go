package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("parses calendar date", func(t *testing.T) {
		d, err := ParseDate("2024-03-09")
		require.NoError(t, err)
		assert.Equal(t, "2024-03-09", d.String())
	})

	t.Run("truncates timestamps to the date", func(t *testing.T) {
		d, err := ParseDate("2024-03-09 17:45:00")
		require.NoError(t, err)
		assert.Equal(t, "2024-03-09", d.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseDate("09/03/2024")
		assert.Error(t, err)
	})
}

func TestDate_AddDays(t *testing.T) {
	d := NewDate(time.Date(2024, 2, 27, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-01", d.AddDays(3).String())
}

func TestDate_JSON(t *testing.T) {
	t.Run("zero date is null", func(t *testing.T) {
		b, err := json.Marshal(struct {
			Due Date `json:"due"`
		}{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"due":null}`, string(b))
	})

	t.Run("round trips YYYY-MM-DD", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2023-12-31"`), &d))
		b, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"2023-12-31"`, string(b))
	})
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan([]byte("2024-01-05")))
	assert.Equal(t, "2024-01-05", d.String())

	require.NoError(t, d.Scan(time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-06", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestCheck_UnmarshalJSON(t *testing.T) {
	cases := map[string]bool{
		`1`:     true,
		`"1"`:   true,
		`true`:  true,
		`0`:     false,
		`false`: false,
		`null`:  false,
	}
	for input, want := range cases {
		var c Check
		require.NoError(t, json.Unmarshal([]byte(input), &c), input)
		assert.Equal(t, want, bool(c), input)
	}

	var c Check
	assert.Error(t, json.Unmarshal([]byte(`"yes"`), &c))
}

func TestFloat_UnmarshalJSON(t *testing.T) {
	t.Run("accepts numbers and numeric strings", func(t *testing.T) {
		var f Float
		require.NoError(t, json.Unmarshal([]byte(`250.5`), &f))
		assert.True(t, f.Equal(decimal.RequireFromString("250.5")))

		require.NoError(t, json.Unmarshal([]byte(`"1200"`), &f))
		assert.True(t, f.Equal(decimal.NewFromInt(1200)))
	})

	t.Run("empty and null are zero", func(t *testing.T) {
		var f Float
		require.NoError(t, json.Unmarshal([]byte(`""`), &f))
		assert.True(t, f.IsZero())
		require.NoError(t, json.Unmarshal([]byte(`null`), &f))
		assert.True(t, f.IsZero())
	})

	t.Run("rejects non numeric text", func(t *testing.T) {
		var f Float
		assert.Error(t, json.Unmarshal([]byte(`"ten"`), &f))
	})
}
