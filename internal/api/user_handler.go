package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves the user endpoints.
type UserHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

// --- DTOs for API ---

// CreateUserRequest accepts JSON or form input.
type CreateUserRequest struct {
	Username looseString `json:"username" form:"username"`
}

// UserResponse is the DTO for returning a user.
type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		Username: user.Username,
		ID:       user.ID.Hex(),
	}
}


// --- Handler Methods ---

// CreateUser handles POST /api/users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := bindBody(c, &req); err != nil {
		respondError(c, h.logger, bindError(err), "User Not Found")
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), string(req.Username))
	if err != nil {
		respondError(c, h.logger, err, "User Not Found")
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// ListUsers handles GET /api/users. Records are written as stored, every field included.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "User Not Found")
		return
	}

	c.JSON(http.StatusOK, users)
}
