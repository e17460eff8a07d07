package notifications

import (
	"context"
	"net/http"
	"time"

	"hawurwanda/db"
	"hawurwanda/policy"
	"hawurwanda/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/notifications
func GetNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	actor := policy.FromRequest(r)
	skip, limit := utils.ParsePagination(r, 20, 100)

	filter := bson.M{"toUserId": actor.UserID}
	if r.URL.Query().Get("unread") == "true" {
		filter["read"] = false
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := db.NotificationCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	defer cur.Close(ctx)

	notifs := []bson.M{}
	if err := cur.All(ctx, &notifs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read notifications")
		return
	}

	total, _ := db.NotificationCollection.CountDocuments(ctx, filter)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"notifications": notifs, "total": total})
}

// GET /api/notifications/unread-count
func GetUnreadCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := policy.FromRequest(r)

	count, err := db.NotificationCollection.CountDocuments(r.Context(),
		bson.M{"toUserId": actor.UserID, "read": false})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count notifications")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"unreadCount": count})
}

// PATCH /api/notifications/:id/read
func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)

	res, err := db.NotificationCollection.UpdateOne(r.Context(),
		bson.M{"notificationid": ps.ByName("notificationId"), "toUserId": actor.UserID},
		bson.M{"$set": bson.M{"read": true, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Notification marked as read"})
}

// PATCH /api/notifications/read-all
func MarkAllRead(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := policy.FromRequest(r)

	_, err := db.NotificationCollection.UpdateMany(r.Context(),
		bson.M{"toUserId": actor.UserID, "read": false},
		bson.M{"$set": bson.M{"read": true, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notifications")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "All notifications marked as read"})
}

// DELETE /api/notifications/:id
func DeleteNotification(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)

	res, err := db.NotificationCollection.DeleteOne(r.Context(),
		bson.M{"notificationid": ps.ByName("notificationId"), "toUserId": actor.UserID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete notification")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Notification deleted"})
}
