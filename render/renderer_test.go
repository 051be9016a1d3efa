package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Kind
		wantErr bool
	}{
		{name: "analogue", in: "analogue", want: Analogue},
		{name: "American spelling", in: "analog", want: Analogue},
		{name: "binary", in: "binary", want: Binary},
		{name: "digital with whitespace and case", in: " Digital ", want: Digital},
		{name: "unknown", in: "sundial", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_SelectsVariant(t *testing.T) {
	r, err := New(Analogue, DefaultOptions())
	require.NoError(t, err)
	assert.IsType(t, &AnalogueRenderer{}, r)

	r, err = New(Binary, DefaultOptions())
	require.NoError(t, err)
	assert.IsType(t, &BinaryRenderer{}, r)

	r, err = New(Digital, DefaultOptions())
	require.NoError(t, err)
	assert.IsType(t, &SevenSegmentRenderer{}, r)

	_, err = New(Kind(7), DefaultOptions())
	assert.Error(t, err)
}

func TestDefaultBounds(t *testing.T) {
	assert.Equal(t, Bounds{Width: 230, Height: 230}, DefaultBounds(Analogue))
	assert.Equal(t, Bounds{Width: 440, Height: 240}, DefaultBounds(Binary))
	assert.Equal(t, Bounds{Width: 716, Height: 176}, DefaultBounds(Digital))
	assert.Equal(t, "Digital PyClock", Digital.Title())
	assert.Equal(t, "binary", Binary.String())
}

func TestTimestampOf(t *testing.T) {
	ts := TimestampOf(time.Date(2020, time.February, 29, 13, 14, 15, 999, time.UTC))
	assert.Equal(t, Timestamp{Year: 2020, Month: 2, Day: 29, Hour: 13, Minute: 14, Second: 15}, ts)
}

func TestStringers_OutOfRange(t *testing.T) {
	assert.Equal(t, "Kind(3)", Kind(3).String())
	assert.Equal(t, "Kind(-1) PyClock", Kind(-1).Title())
	assert.Equal(t, "Row(6)", RowCount.String())
	assert.Equal(t, "second", SecondRow.String())
}
