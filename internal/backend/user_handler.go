package backend

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"

	minPasswordLen = 6
)

type UserHandler struct {
	DB *gorm.DB
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUser validates and stores a new user with a bcrypt password hash.
func RegisterUser(db *gorm.DB, name, email, password, role string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	switch {
	case name == "":
		return User{}, &apiError{http.StatusBadRequest, "Username cannot be empty"}
	case email == "":
		return User{}, &apiError{http.StatusBadRequest, "Email cannot be empty"}
	case len(password) < minPasswordLen:
		return User{}, &apiError{http.StatusBadRequest, fmt.Sprintf("Password must be at least %d characters", minPasswordLen)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	user := User{Username: name, Email: email, PasswordHash: string(hash), Role: role}
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Where("username = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &apiError{http.StatusBadRequest, "Username already exists"}
		}
		if err := tx.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &apiError{http.StatusBadRequest, "Email already exists"}
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return User{}, err
	}

	return user, nil
}

func (h *UserHandler) RegisterCustomer(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := RegisterUser(h.DB, req.Name, req.Email, req.Password, RoleCustomer)
	if err != nil {
		failWith(c, "Registration failed", err)
		return
	}

	respond(c, http.StatusCreated, "Registration successful!", gin.H{
		"userId": user.ID,
		"role":   user.Role,
	})
}

// Login accepts either the email or the username in the email field.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	login := strings.TrimSpace(req.Email)
	if login == "" || req.Password == "" {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	var user User
	err := h.DB.Where("email = ? OR username = ?", strings.ToLower(login), login).First(&user).Error
	if err != nil {
		if !isNotFound(err) {
			_ = c.Error(err)
		}
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	respond(c, http.StatusOK, "Login successful!", gin.H{
		"userId":   user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"isAdmin":  user.Role == RoleAdmin,
	})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "userId", "User ID")
	if !ok {
		return
	}

	var user User
	if err := h.DB.First(&user, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, http.StatusNotFound, fmt.Sprintf("User not found with ID: %d", id))
			return
		}
		internalError(c, "Failed to get user", err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"user": user})
}

func (h *UserHandler) List(c *gin.Context) {
	users := make([]User, 0)
	if err := h.DB.Order("id").Find(&users).Error; err != nil {
		internalError(c, "Failed to get users", err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"users": users})
}
