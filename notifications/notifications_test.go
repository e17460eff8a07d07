package notifications

import (
	"context"
	"testing"

	"hawurwanda/models"
	"hawurwanda/rdx"
)

// The event publish is best-effort; without a connected redis client it must
// be a no-op, not a panic.
func TestPublishEventWithoutRedis(t *testing.T) {
	saved := rdx.Conn
	rdx.Conn = nil
	defer func() { rdx.Conn = saved }()

	publishEvent(context.Background(), models.Notification{
		NotificationID: "n-1",
		ToUserID:       "u-1",
		Type:           models.NotifBookingCreated,
		Payload:        models.NotificationPayload{Title: "New booking"},
	})
}
