package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	logger          *zap.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, logger *zap.Logger) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, logger: logger}
}

// --- DTOs for API ---

// LogExerciseRequest accepts JSON or form input. Duration and date may
// arrive as JSON numbers or strings; the service coerces them.
type LogExerciseRequest struct {
	Description string      `json:"description" form:"description"`
	Duration    looseString `json:"duration" form:"duration"`
	Date        looseString `json:"date" form:"date"`
}

// ExerciseResponse describes a newly logged exercise.
// ID is the exercise's own id; UserID is its owner.
type ExerciseResponse struct {
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
	ID          string  `json:"_id"`
	UserID      string  `json:"userId"`
}

// LogEntry is one exercise inside a LogResponse.
type LogEntry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// LogResponse is a user's exercise log. ID is the user's id.
type LogResponse struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"_id"`
	Log      []LogEntry `json:"log"`
}

func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		Username:    ex.Username,
		Description: ex.Description,
		Duration:    ex.Duration,
		Date:        domain.DisplayDate(ex.Date),
		ID:          ex.ID.Hex(),
		UserID:      ex.UserID.Hex(),
	}
}

func MapLogToResponse(log *service.ExerciseLog) LogResponse {
	entries := make([]LogEntry, len(log.Exercises))
	for i, ex := range log.Exercises {
		entries[i] = LogEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        domain.DisplayDate(ex.Date),
		}
	}
	return LogResponse{
		Username: log.User.Username,
		Count:    len(entries),
		ID:       log.User.ID.Hex(),
		Log:      entries,
	}
}

// --- Handler Methods ---

// LogExercise handles POST /api/users/:id/exercises.
func (h *ExerciseHandler) LogExercise(c *gin.Context) {
	var req LogExerciseRequest
	if err := bindBody(c, &req); err != nil {
		respondError(c, h.logger, bindError(err), "User Not Found")
		return
	}

	exercise, err := h.exerciseService.LogExercise(c.Request.Context(), c.Param("id"), service.LogExerciseInput{
		Description: req.Description,
		Duration:    string(req.Duration),
		Date:        string(req.Date),
	})
	if err != nil {
		respondError(c, h.logger, err, "User Not Found")
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// GetLog handles GET /api/users/:id/logs?from=&to=&limit=.
func (h *ExerciseHandler) GetLog(c *gin.Context) {
	log, err := h.exerciseService.GetLog(c.Request.Context(), c.Param("id"), service.LogQuery{
		From:  c.Query("from"),
		To:    c.Query("to"),
		Limit: c.Query("limit"),
	})
	if err != nil {
		respondError(c, h.logger, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, MapLogToResponse(log))
}
