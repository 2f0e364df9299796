package signals

import (
	"context"

	"github.com/maniartech/signals"
)

// MeetingsExpandedData describes one completed expansion batch
type MeetingsExpandedData struct {
	// Source names where the records came from, e.g. a file path or "stdin"
	Source  string
	Inputs  int
	Outputs int
}

// MeetingsExpanded fires after a batch of records has been expanded and written.
// Listeners run synchronously, in registration order.
var MeetingsExpanded = signals.NewSync[MeetingsExpandedData]()

// EmitMeetingsExpanded emits a signal when a batch of records has been expanded
func EmitMeetingsExpanded(ctx context.Context, data MeetingsExpandedData) {
	MeetingsExpanded.Emit(ctx, data)
}

// OnMeetingsExpanded registers a handler for expansion events
func OnMeetingsExpanded(handler func(ctx context.Context, data MeetingsExpandedData), key ...string) {
	if len(key) > 0 {
		MeetingsExpanded.AddListener(handler, key[0])
	} else {
		MeetingsExpanded.AddListener(handler)
	}
}

// RemoveMeetingsExpandedListener unregisters a handler added with a key
func RemoveMeetingsExpandedListener(key string) {
	MeetingsExpanded.RemoveListener(key)
}
