package globals

import (
	"context"
	"os"
)

var (
	JwtSecret = []byte(os.Getenv("JWT_SECRET"))
)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"
const SalonIDKey ContextKey = "salonId"

var Ctx = context.Background()
