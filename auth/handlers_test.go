package auth

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"hawurwanda/globals"
	"hawurwanda/rdx"
)

// Without a connected redis client there is no cached session to compare, so
// the check must report active rather than logging everyone out.
func TestSessionActiveWithoutRedis(t *testing.T) {
	saved := rdx.Conn
	rdx.Conn = nil
	defer func() { rdx.Conn = saved }()

	r := httptest.NewRequest("GET", "/api/auth/session", nil)
	ctx := context.WithValue(r.Context(), globals.UserIDKey, "u-1")
	ctx = context.WithValue(ctx, globals.RoleKey, "client")
	r = r.WithContext(ctx)

	w := httptest.NewRecorder()
	SessionActive(w, r, nil)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Active {
		t.Error("session should be presumed active without redis")
	}
}
