package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yanqian/dietdash/internal/domain/nutrition"
	apperrors "github.com/yanqian/dietdash/pkg/errors"
	"github.com/yanqian/dietdash/pkg/metrics"
	"github.com/yanqian/dietdash/pkg/util"
)

const reportPrefix = "reports/"

// Service builds nutrition dashboards for a user and date.
type Service interface {
	Build(ctx context.Context, req Request) (Response, error)
	Compute(ctx context.Context, req ComputeRequest) (Response, error)
	Export(ctx context.Context, req Request) (ExportResponse, error)
	OpenReport(ctx context.Context, key string) (io.ReadCloser, error)
	LogMeal(ctx context.Context, req LogMealRequest) (MealEntry, error)
}

type service struct {
	cfg      Config
	client   DietClient
	store    Store
	storage  ObjectStorage
	logger   *slog.Logger
	timezone *time.Location
	now      func() time.Time
	newID    func() string
}

type dataset struct {
	user      User
	date      string
	meals     []nutrition.MealRecord
	exercises []nutrition.ExerciseRecord
}

// NewService wires up the dashboard domain.
func NewService(cfg Config, client DietClient, store Store, storage ObjectStorage, logger *slog.Logger) Service {
	if len(cfg.Limits) == 0 {
		cfg.Limits = nutrition.DefaultLimits()
	}
	return &service{
		cfg:      cfg,
		client:   client,
		store:    store,
		storage:  storage,
		logger:   logger.With("component", "dashboard.service"),
		timezone: util.LoadLocation(cfg.Timezone),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

func (s *service) Build(ctx context.Context, req Request) (Response, error) {
	data, err := s.load(ctx, req)
	if err != nil {
		metrics.RecordBuild("error")
		return Response{}, err
	}
	resp := s.analyze(ctx, data.meals, data.exercises)
	resp.UserID = data.user.UID
	resp.Username = data.user.Username
	resp.Fullname = data.user.Fullname
	resp.Date = data.date
	metrics.RecordBuild("ok")
	s.logger.Info("dashboard built",
		"user_id", data.user.UID,
		"date", data.date,
		"meals", len(data.meals),
		"exercises", len(data.exercises),
		"cached", resp.Cached,
	)
	return resp, nil
}

func (s *service) Compute(ctx context.Context, req ComputeRequest) (Response, error) {
	resp := s.analyze(ctx, req.Meals, req.Exercises)
	metrics.RecordBuild("ok")
	return resp, nil
}

func (s *service) Export(ctx context.Context, req Request) (ExportResponse, error) {
	resp, err := s.Build(ctx, req)
	if err != nil {
		return ExportResponse{}, err
	}
	generatedAt := s.now().UTC()
	payload, err := renderReport(resp, generatedAt)
	if err != nil {
		return ExportResponse{}, apperrors.Wrap(apperrors.CodeInternal, "failed to render report", err)
	}
	key := fmt.Sprintf("%s%d/%s/%s.csv", reportPrefix, resp.UserID, resp.Date, s.newID())
	obj, err := s.storage.Put(ctx, key, payload, reportMimeType)
	if err != nil {
		return ExportResponse{}, apperrors.Wrap(apperrors.CodeStorage, "failed to store report", err)
	}
	metrics.RecordReportExported()
	s.logger.Info("dashboard report exported", "key", obj.Key, "size", obj.Size)
	return ExportResponse{Report: obj, GeneratedAt: generatedAt, Dashboard: resp}, nil
}

func (s *service) OpenReport(ctx context.Context, key string) (io.ReadCloser, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if !strings.HasPrefix(key, reportPrefix) || strings.Contains(key, "..") || !strings.HasSuffix(key, ".csv") {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid report key", nil)
	}
	rc, err := s.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			return nil, apperrors.Wrap(apperrors.CodeReportNotFound, "report not found", err)
		}
		s.logger.Error("report read failed", "key", key, "error", err)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to read report", err)
	}
	return rc, nil
}

func (s *service) LogMeal(ctx context.Context, req LogMealRequest) (MealEntry, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return MealEntry{}, apperrors.Wrap(apperrors.CodeInvalidInput, "name cannot be empty", nil)
	}
	if nutrition.Amount(req.Quantity).Value() <= 0 {
		return MealEntry{}, apperrors.Wrap(apperrors.CodeInvalidInput, "quantity must be a positive number of grams", nil)
	}
	if !isMealSlot(req.MealType) {
		return MealEntry{}, apperrors.Wrap(apperrors.CodeInvalidInput, "mealType must be one of Breakfast, Lunch, Dinner, snacks", nil)
	}
	clock := strings.TrimSpace(req.Time)
	if _, err := time.Parse("15:04", clock); err != nil {
		return MealEntry{}, apperrors.Wrap(apperrors.CodeInvalidInput, "time must be formatted as HH:MM", err)
	}
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return MealEntry{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
	}
	user, err := s.resolveUser(ctx, Request{Username: req.Username, UserID: req.UserID})
	if err != nil {
		return MealEntry{}, err
	}

	macros := nutrition.ScaleFood(req.Per100g, req.Quantity)
	entry := MealEntry{
		UID:           user.UID,
		FoodID:        req.FoodID,
		Name:          name,
		MealType:      req.MealType,
		Calories:      macros.Calories,
		Fat:           macros.Fat,
		Protein:       macros.Protein,
		Carbohydrates: macros.Carbohydrates,
		Quantity:      req.Quantity,
		Time:          clock,
		Date:          date,
	}
	if err := s.client.LogMeal(ctx, entry); err != nil {
		s.logger.Error("meal log failed", "user_id", user.UID, "date", date, "error", err)
		return MealEntry{}, apperrors.Wrap(apperrors.CodeUpstream, "failed to log meal", err)
	}
	metrics.RecordMealLogged(req.MealType)
	s.logger.Info("meal logged", "user_id", user.UID, "date", date, "meal_type", req.MealType, "calories", entry.Calories)
	return entry, nil
}

func isMealSlot(label string) bool {
	for _, slot := range nutrition.MealSlots() {
		if string(slot) == label {
			return true
		}
	}
	return false
}

// load resolves the user and fetches both record sets for the same (user, date).
// Either fetch failing aborts the build so the engine never sees partial data.
func (s *service) load(ctx context.Context, req Request) (dataset, error) {
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return dataset{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
	}
	user, err := s.resolveUser(ctx, req)
	if err != nil {
		return dataset{}, err
	}

	var (
		meals     []nutrition.MealRecord
		exercises []nutrition.ExerciseRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := s.client.FetchMeals(gctx, user.UID, date)
		if err != nil {
			return fmt.Errorf("fetch meals: %w", err)
		}
		meals = records
		return nil
	})
	g.Go(func() error {
		records, err := s.client.FetchExercises(gctx, user.UID)
		if err != nil {
			return fmt.Errorf("fetch exercises: %w", err)
		}
		exercises = records
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("dashboard fetch failed", "user_id", user.UID, "date", date, "error", err)
		return dataset{}, apperrors.Wrap(apperrors.CodeUpstream, "failed to fetch diet data", err)
	}
	return dataset{user: user, date: date, meals: meals, exercises: exercises}, nil
}

func (s *service) resolveUser(ctx context.Context, req Request) (User, error) {
	username := strings.TrimSpace(req.Username)
	if req.UserID > 0 {
		return User{UID: req.UserID, Username: username}, nil
	}
	if req.UserID < 0 {
		return User{}, apperrors.Wrap(apperrors.CodeInvalidInput, "userId must be positive", nil)
	}
	if username == "" {
		return User{}, apperrors.Wrap(apperrors.CodeInvalidInput, "username cannot be empty", nil)
	}
	user, err := s.client.LookupUser(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, apperrors.Wrap(apperrors.CodeUserNotFound, "user not found", err)
		}
		return User{}, apperrors.Wrap(apperrors.CodeUpstream, "failed to look up user", err)
	}
	if user.Username == "" {
		user.Username = username
	}
	return user, nil
}

func (s *service) resolveDate(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return s.now().In(s.timezone).Format(util.DateLayout), nil
	}
	return util.ParseDate(trimmed)
}

// analyze runs the engine, reusing a memoized analysis when the inputs are unchanged.
func (s *service) analyze(ctx context.Context, meals []nutrition.MealRecord, exercises []nutrition.ExerciseRecord) Response {
	fingerprint := Fingerprint(meals, exercises, s.cfg.Limits)

	analysis, cached := s.lookup(ctx, fingerprint)
	if !cached {
		analysis = nutrition.Analyze(meals, exercises, s.cfg.Limits)
		s.report(analysis)
		s.remember(ctx, fingerprint, analysis)
	}

	return Response{
		Slots:          analysis.Meals.Slots,
		Day:            analysis.Meals.Day,
		Exercise:       analysis.Exercise,
		Suggestions:    analysis.Suggestions,
		Limits:         s.cfg.Limits,
		UnmatchedMeals: analysis.Meals.Unmatched,
		Cached:         cached,
		Fingerprint:    fingerprint,
	}
}

func (s *service) lookup(ctx context.Context, fingerprint string) (nutrition.Analysis, bool) {
	if s.store == nil || fingerprint == "" {
		return nutrition.Analysis{}, false
	}
	analysis, ok, err := s.store.Get(ctx, fingerprint)
	if err != nil {
		s.logger.Warn("analysis cache read failed", "error", err)
		return nutrition.Analysis{}, false
	}
	metrics.RecordCacheLookup(ok)
	return analysis, ok
}

func (s *service) remember(ctx context.Context, fingerprint string, analysis nutrition.Analysis) {
	if s.store == nil || fingerprint == "" {
		return
	}
	if err := s.store.Save(ctx, fingerprint, analysis, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("analysis cache write failed", "error", err)
	}
}

func (s *service) report(analysis nutrition.Analysis) {
	if n := analysis.Exercise.Skipped; n > 0 {
		metrics.RecordSkipped("exercise", n)
		s.logger.Warn("exercise records without type skipped", "count", n)
	}
	if n := analysis.Meals.Unmatched; n > 0 {
		metrics.RecordSkipped("meal", n)
		s.logger.Warn("meal records with unknown slot excluded", "count", n)
	}
}
