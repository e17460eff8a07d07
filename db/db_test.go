package db

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hawurwanda/models"
)

// Phone-only and email-only accounts store "" for the missing field (the
// struct tags carry no omitempty), so the unique email/phone indexes must be
// partial over non-empty values or the second such account collides on "".
func TestUserUniqueIndexesSkipEmptyValues(t *testing.T) {
	raw, err := bson.Marshal(models.User{UserID: "u-1", Name: "Phone Only", Phone: "0788123456"})
	if err != nil {
		t.Fatal(err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	if v, present := doc["email"]; !present || v != "" {
		t.Fatalf("expected email to persist as \"\", got %v (present=%v)", v, present)
	}

	for _, name := range []string{"uniq_email", "uniq_phone"} {
		opts := findIndexOptions(t, name)
		if opts.Unique == nil || !*opts.Unique {
			t.Errorf("%s is not unique", name)
		}
		filter, ok := opts.PartialFilterExpression.(bson.M)
		if !ok {
			t.Fatalf("%s has no partial filter, empty values would collide", name)
		}
		field := "email"
		if name == "uniq_phone" {
			field = "phone"
		}
		cond, ok := filter[field].(bson.M)
		if !ok || cond["$gt"] != "" {
			t.Errorf("%s partial filter = %v, want {%s: {$gt: \"\"}}", name, filter, field)
		}
	}
}

func findIndexOptions(t *testing.T, name string) *options.IndexOptions {
	t.Helper()
	for _, m := range UserIndexes() {
		if m.Options != nil && m.Options.Name != nil && *m.Options.Name == name {
			return m.Options
		}
	}
	t.Fatalf("index %s not defined", name)
	return nil
}
