package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalDays(t *testing.T) {
	days := CanonicalDays()

	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, days)

	// Callers get their own copy
	days[0] = "changed"
	assert.Equal(t, Mon, CanonicalDays()[0])
}
