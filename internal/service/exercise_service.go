package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/metrics"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// LogExerciseInput carries loosely typed client input; LogExercise coerces it.
type LogExerciseInput struct {
	Description string
	Duration    string
	Date        string // Optional
}

// LogQuery carries the raw from/to/limit query values.
type LogQuery struct {
	From  string
	To    string
	Limit string
}

// ExerciseLog is a user together with the exercises matching a LogQuery.
type ExerciseLog struct {
	User      *domain.User
	Exercises []domain.Exercise
}

type ExerciseService interface {
	LogExercise(ctx context.Context, rawUserID string, input LogExerciseInput) (*domain.Exercise, error)
	GetLog(ctx context.Context, rawUserID string, query LogQuery) (*ExerciseLog, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	users        UserService
	exerciseRepo repository.ExerciseRepository
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(users UserService, exerciseRepo repository.ExerciseRepository, m *metrics.Metrics) ExerciseService {
	return &exerciseService{
		users:        users,
		exerciseRepo: exerciseRepo,
		metrics:      m,
		now:          time.Now,
	}
}

// LogExercise validates input, checks the owner exists and stores the exercise
// with the owner's current username copied onto it.
func (s *exerciseService) LogExercise(ctx context.Context, rawUserID string, input LogExerciseInput) (*domain.Exercise, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidationFailed)
	}

	duration, err := parseDuration(input.Duration)
	if err != nil {
		return nil, err
	}

	date := domain.TruncateDay(s.now())
	if strings.TrimSpace(input.Date) != "" {
		date, err = domain.ParseDate(input.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q is not a valid date", ErrValidationFailed, input.Date)
		}
	}

	user, err := s.users.GetUser(ctx, rawUserID)
	if err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		UserID:      user.ID,
		Username:    user.Username,
		Description: input.Description,
		Duration:    duration,
		Date:        domain.FormatStorageDate(date),
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID
	s.metrics.ExercisesLoggedTotal.Inc()

	return exercise, nil
}

// GetLog returns the user's exercises narrowed by query. Unparseable from/to
// values are ignored, as are limits that are not positive numbers.
func (s *exerciseService) GetLog(ctx context.Context, rawUserID string, query LogQuery) (*ExerciseLog, error) {
	user, err := s.users.GetUser(ctx, rawUserID)
	if err != nil {
		return nil, err
	}

	exercises, err := s.exerciseRepo.FindByUser(ctx, user.ID, buildFilter(query))
	if err != nil {
		return nil, err
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}

	return &ExerciseLog{User: user, Exercises: exercises}, nil
}

func buildFilter(query LogQuery) repository.ExerciseFilter {
	var filter repository.ExerciseFilter

	if from, err := domain.ParseDate(query.From); err == nil {
		filter.From = domain.FormatStorageDate(from)
	}
	if to, err := domain.ParseDate(query.To); err == nil {
		filter.To = domain.FormatStorageDate(to)
	}
	// Mongo would read a negative limit as its absolute value; anything below 1
	// is treated as "no limit" here instead.
	if limit, err := strconv.ParseFloat(strings.TrimSpace(query.Limit), 64); err == nil && limit >= 1 && limit < math.MaxInt64 {
		filter.Limit = int64(limit)
	}

	return filter
}

func parseDuration(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: duration is required", ErrValidationFailed)
	}
	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return 0, fmt.Errorf("%w: duration %q is not a number", ErrValidationFailed, raw)
	}
	return duration, nil
}
