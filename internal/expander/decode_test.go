package expander

import (
	"strings"
	"testing"

	"github.com/belphemur/dayscheduler/internal/meeting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []meeting.Record
	}{
		{
			name:     "complex key rendered in flow style",
			input:    "day: Mon\n? [a, b]\n: x\n",
			expected: []meeting.Record{{"day": "Mon", "[a, b]": "x"}},
		},
		{
			name:     "explicit key beats merged key",
			input:    "- &base {day: Mon, room_id: 1}\n- <<: *base\n  room_id: 2\n",
			expected: []meeting.Record{{"day": "Mon", "room_id": 1}, {"day": "Mon", "room_id": 2}},
		},
		{
			name:     "timestamps and times stay text",
			input:    "day: Wed\nwhen: 2024-01-01T09:00:00Z\nstart_time: 9:00\n",
			expected: []meeting.Record{{"day": "Wed", "when": "2024-01-01T09:00:00Z", "start_time": "9:00"}},
		},
		{
			name:     "infinity stays text",
			input:    "day: Sat\nlimit: .inf\n",
			expected: []meeting.Record{{"day": "Sat", "limit": ".inf"}},
		},
		{
			name:     "empty documents are skipped",
			input:    "---\n---\nday: Sun\n---\n",
			expected: []meeting.Record{{"day": "Sun"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := decodeRecords(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, records)
		})
	}
}

func TestDecodeRecords_MergeMustBeMapping(t *testing.T) {
	_, err := decodeRecords(strings.NewReader("day: Mon\n<<: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merge value must be a mapping")
}
