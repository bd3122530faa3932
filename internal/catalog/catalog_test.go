package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hperssn/roomalloc/internal/domain"
)

func TestDecode(t *testing.T) {
	body := `{
		"rooms": ["C205", "C209"],
		"sessions": [
			{"course": "420-1D6-VI", "weekday": 1, "start": 8.25, "end": 10.08},
			{"course": "201-1A3-VI", "weekday": 1, "start": 9.25, "end": 11.08}
		]
	}`

	c, err := Decode(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, []domain.Room{{Code: "C205"}, {Code: "C209"}}, c.Rooms)
	require.Len(t, c.Sessions, 2)
	assert.Equal(t, "201-1A3-VI", c.Sessions[1].ID)
	assert.Equal(t, domain.Period{Weekday: 1, Start: 9.25, End: 11.08}, c.Sessions[1].Period)
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{
			name: "duplicate room",
			body: `{"rooms": ["C205", "C205"], "sessions": []}`,
			err:  domain.ErrDuplicateRoomCode,
		},
		{
			name: "no rooms",
			body: `{"rooms": [], "sessions": []}`,
			err:  domain.ErrNoRooms,
		},
		{
			name: "blank room",
			body: `{"rooms": [""], "sessions": []}`,
			err:  domain.ErrEmptyRoomCode,
		},
		{
			name: "reversed period",
			body: `{"rooms": ["C205"], "sessions": [{"course": "x", "weekday": 1, "start": 10, "end": 8}]}`,
			err:  domain.ErrInvalidPeriod,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.body))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"rooms": ["C205"], "teachers": []}`))
	assert.Error(t, err)
}

func TestEncodeDecodeSample(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Sample()))

	c, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Sample(), c)
}
