package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"hawurwanda/db"
	"hawurwanda/globals"
	"hawurwanda/emailer"
	"hawurwanda/models"
	"hawurwanda/policy"
	"hawurwanda/rdx"
	"hawurwanda/utils"
)

const sessionHash = "sessions"

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register creates a client account. Staff and owner accounts are created
// through the salon and admin endpoints, never by self-registration.
func Register(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input registerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)

	if input.Name == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and password are required")
		return
	}
	if input.Email == "" && input.Phone == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email or phone number is required")
		return
	}
	if input.Email != "" && !utils.ValidEmail(input.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if input.Phone != "" && !utils.ValidRwandanPhone(input.Phone) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid Rwandan phone number")
		return
	}
	if len(input.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process password")
		return
	}

	now := time.Now()
	user := models.User{
		UserID:       "u-" + utils.GetUUID(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Role:         models.RoleClient,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := db.UserCollection.InsertOne(r.Context(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "An account with this email or phone already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	if user.Email != "" {
		emailer.SendWelcome(user.Email, user.Name)
	}

	token, err := GenerateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	cacheSession(user.UserID, token)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"token": token,
		"user":  user.Public(),
	})
}

type loginInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login authenticates by phone or email. The identifier field takes either;
// phone numbers are matched as given, emails case-insensitively.
func Login(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Identifier = strings.TrimSpace(input.Identifier)
	if input.Identifier == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Identifier and password are required")
		return
	}

	filter := bson.M{"phone": input.Identifier}
	if strings.Contains(input.Identifier, "@") {
		filter = bson.M{"email": strings.ToLower(input.Identifier)}
	}

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), filter).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.IsActive {
		utils.RespondWithError(w, http.StatusForbidden, "Account is deactivated")
		return
	}

	token, err := GenerateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	cacheSession(user.UserID, token)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token": token,
		"user":  user.Public(),
	})
}

// cacheSession stores the latest token per user in redis, best-effort. Used
// only for observability and forced logout, never for validation.
func cacheSession(userID, token string) {
	if rdx.Conn == nil {
		return
	}
	if err := rdx.RdxHset(globals.Ctx, sessionHash, userID, token); err != nil {
		log.Printf("redis session cache failed for %s: %v", userID, err)
	}
}

// GetMe returns the authenticated user's profile.
func GetMe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": actor.UserID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user.Public())
}

// UpdateMe lets a user edit their own profile fields. Role, salon and active
// status are managed elsewhere and silently ignored here.
func UpdateMe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)

	var input struct {
		Name        *string   `json:"name"`
		Phone       *string   `json:"phone"`
		Bio         *string   `json:"bio"`
		Specialties *[]string `json:"specialties"`
		Experience  *string   `json:"experience"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		set["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		if !utils.ValidRwandanPhone(*input.Phone) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid Rwandan phone number")
			return
		}
		set["phone"] = *input.Phone
	}
	if input.Bio != nil {
		set["bio"] = *input.Bio
	}
	if input.Specialties != nil {
		set["specialties"] = *input.Specialties
	}
	if input.Experience != nil {
		set["experience"] = *input.Experience
	}

	res := db.UserCollection.FindOneAndUpdate(r.Context(),
		bson.M{"userid": actor.UserID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var user models.User
	if err := res.Decode(&user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Phone number already in use")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user.Public())
}

// UploadProfilePhoto stores a profile image and its thumbnail, replacing the
// stored path on the user document.
func UploadProfilePhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing photo file")
		return
	}
	defer file.Close()

	path, err := utils.SaveImageWithThumb(file, header, "uploads/profiles")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Could not save image: "+err.Error())
		return
	}

	_, err = db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": actor.UserID},
		bson.M{"$set": bson.M{"profilePhoto": path, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile photo")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"profilePhoto": path})
}

// SessionActive reports whether the presented token is still the cached
// session for this user, so clients can detect a forced logout or a login
// from another device. Without redis there is nothing to compare against and
// the session is presumed active.
func SessionActive(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)
	if rdx.Conn == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"active": true})
		return
	}

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	cached, err := rdx.RdxHget(r.Context(), sessionHash, actor.UserID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"active": err == nil && cached == token})
}

// Logout drops the cached session token. The JWT itself stays valid until
// expiry; clients discard it.
func Logout(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)
	if rdx.Conn != nil {
		if err := rdx.RdxHdel(r.Context(), sessionHash, actor.UserID); err != nil {
			log.Printf("redis session delete failed for %s: %v", actor.UserID, err)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Logged out"})
}
