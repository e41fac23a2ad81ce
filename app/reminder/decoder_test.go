package reminder

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTimestamp_Unspecified(t *testing.T) {
	got, err := DecodeTimestamp(LabelDue, "unspecified")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecodeTimestamp_TruncatesToSeconds(t *testing.T) {
	got, err := DecodeTimestamp(LabelDue, "1000000000999")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, int64(1000000000), got.Unix())
	assert.Equal(t, 0, got.Nanosecond())
	assert.Equal(t, time.Local, got.Location())
}

func TestDecodeTimestamp_RoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Unix(0, 0),
		time.Unix(1000000000, 0),
		time.Date(2019, 3, 31, 2, 30, 15, 0, time.UTC),
		time.Date(2038, 1, 19, 3, 14, 8, 0, time.UTC),
	}

	for _, want := range instants {
		got, err := DecodeTimestamp(LabelStart, EncodeTimestamp(want))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, want.Equal(*got), "want %v, got %v", want, *got)
	}
}

func TestDecodeTimestamp_Invalid(t *testing.T) {
	for _, raw := range []string{"", "yesterday", "12.5.2019", "[]"} {
		_, err := DecodeTimestamp(LabelDue, raw)
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, ErrFormat), raw)

		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, LabelDue, fe.Field)
		assert.Equal(t, raw, fe.Value)
	}
}

func TestDecodeOrdinal(t *testing.T) {
	got, err := DecodeOrdinal(LabelDayOfMonth, "[]")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = DecodeOrdinal(LabelDayOfMonth, "[5]")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5, *got)

	got, err = DecodeOrdinal(LabelDayOfMonth, "[31]")
	require.NoError(t, err)
	assert.Equal(t, 31, *got)
}

func TestDecodeOrdinal_Invalid(t *testing.T) {
	for _, raw := range []string{"[abc]", "5", "[5", "5]", "[-1]", "[ 5]", ""} {
		_, err := DecodeOrdinal(LabelDayOfMonth, raw)
		assert.ErrorIs(t, err, ErrFormat, raw)
	}
}

func TestDecodeInt(t *testing.T) {
	n, err := DecodeInt(LabelWeekdayNum, "-1")
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	_, err = DecodeInt(LabelEvery, "two")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestParseEnums(t *testing.T) {
	freq, err := ParseFrequency(LabelFrequency, "monthly")
	require.NoError(t, err)
	assert.Equal(t, FrequencyMonthly, freq)

	state, err := ParseState(LabelState, "upcoming")
	require.NoError(t, err)
	assert.Equal(t, StateUpcoming, state)

	day, err := ParseWeekday(LabelDayOfWeek, "Saturday")
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, day)

	month, err := ParseMonth(LabelMonthOfYear, "July")
	require.NoError(t, err)
	assert.Equal(t, time.July, month)
}

func TestParseEnums_Unknown(t *testing.T) {
	_, err := ParseFrequency(LabelFrequency, "hourly")
	assert.ErrorIs(t, err, ErrFormat)

	_, err = ParseState(LabelState, "deleted")
	assert.ErrorIs(t, err, ErrFormat)

	_, err = ParseWeekday(LabelDayOfWeek, "saturday")
	assert.ErrorIs(t, err, ErrFormat)

	_, err = ParseMonth(LabelMonthOfYear, "Jul")
	assert.ErrorIs(t, err, ErrFormat)
}
