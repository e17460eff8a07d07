package notifications

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"hawurwanda/db"
	"hawurwanda/metrics"
	"hawurwanda/models"
	"hawurwanda/rdx"
	"hawurwanda/utils"
)

// Notify writes a notification document for one user. There is no delivery
// guarantee beyond the insert; consumers poll GET /api/notifications. An event
// is additionally published to Redis so dashboards can watch the stream, but
// publish failures never fail the insert.
func Notify(ctx context.Context, toUserID, ntype string, payload models.NotificationPayload) error {
	n := models.Notification{
		NotificationID: utils.GetUUID(),
		ToUserID:       toUserID,
		Type:           ntype,
		Payload:        payload,
		Read:           false,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if _, err := db.NotificationCollection.InsertOne(ctx, n); err != nil {
		return err
	}

	publishEvent(ctx, n)
	return nil
}

// publishEvent pushes a notification onto the redis stream, best-effort. A
// nil client (redis not connected) is a silent no-op, never a panic.
func publishEvent(ctx context.Context, n models.Notification) {
	if rdx.Conn == nil {
		return
	}
	data, err := json.Marshal(n)
	if err != nil {
		return
	}
	if err := rdx.Publish(ctx, "notification-events", data); err != nil {
		log.Printf("notification publish failed: %v", err)
		metrics.SideEffectFailures.WithLabelValues("notify_publish").Inc()
	}
}

// NotifyMany inserts one notification per recipient. Used where a single
// event fans out to several users (e.g. booking created -> client + staff).
func NotifyMany(ctx context.Context, ntype string, payload models.NotificationPayload, toUserIDs ...string) error {
	for _, id := range toUserIDs {
		if err := Notify(ctx, id, ntype, payload); err != nil {
			return err
		}
	}
	return nil
}
