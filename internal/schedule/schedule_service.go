package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	scheduleerrors "github.com/viniciusmecosta/spe-api/internal/schedule/errors"
)

//go:generate mockgen -source=schedule_service.go -destination=mock/schedule_service_mock.go -package=mock
type Service interface {
	GetByUser(ctx context.Context, userID string) ([]ScheduleEntryResponse, error)
	ReplaceSchedules(ctx context.Context, userID string, req ReplaceSchedulesRequest) ([]ScheduleEntryResponse, error)
	ListHolidays(ctx context.Context, start, end time.Time) ([]HolidayResponse, error)
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{repo: repo, logger: zap.L().Named("schedule.service")}
}

func (s *service) GetByUser(ctx context.Context, userID string) ([]ScheduleEntryResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, scheduleerrors.ErrInvalidUserID
	}
	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]ScheduleEntryResponse, len(rows))
	for i, row := range rows {
		resp[i] = ScheduleEntryResponse{DayOfWeek: row.DayOfWeek, DailyHours: row.DailyHours}
	}
	return resp, nil
}

func (s *service) ReplaceSchedules(ctx context.Context, userID string, req ReplaceSchedulesRequest) ([]ScheduleEntryResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, scheduleerrors.ErrInvalidUserID
	}

	seen := make(map[int]bool, len(req.Entries))
	entries := make([]WorkSchedule, 0, len(req.Entries))
	for _, e := range req.Entries {
		if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
			return nil, scheduleerrors.ErrInvalidDayOfWeek
		}
		if e.DailyHours < 0 || e.DailyHours > 24 {
			return nil, scheduleerrors.ErrInvalidDailyHours
		}
		if seen[e.DayOfWeek] {
			return nil, scheduleerrors.ErrDuplicateDayOfWeek
		}
		seen[e.DayOfWeek] = true

		entries = append(entries, WorkSchedule{
			ID:         uuid.New(),
			UserID:     userUUID,
			DayOfWeek:  e.DayOfWeek,
			DailyHours: e.DailyHours,
		})
	}

	if err := s.repo.ReplaceByUser(ctx, userID, entries); err != nil {
		return nil, err
	}

	s.logger.Info("schedules replaced",
		zap.String("user_id", userID),
		zap.Int("entries", len(entries)),
	)

	resp := make([]ScheduleEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = ScheduleEntryResponse{DayOfWeek: e.DayOfWeek, DailyHours: e.DailyHours}
	}
	return resp, nil
}

func (s *service) ListHolidays(ctx context.Context, start, end time.Time) ([]HolidayResponse, error) {
	rows, err := s.repo.FindHolidaysInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	resp := make([]HolidayResponse, len(rows))
	for i, h := range rows {
		resp[i] = mapHoliday(h)
	}
	return resp, nil
}

func (s *service) CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return HolidayResponse{}, scheduleerrors.ErrInvalidHolidayDate
	}

	h := &Holiday{
		ID:   uuid.New(),
		Date: date,
		Name: req.Name,
	}
	if err := s.repo.CreateHoliday(ctx, h); err != nil {
		if isUniqueViolation(err) {
			return HolidayResponse{}, scheduleerrors.ErrHolidayExists
		}
		return HolidayResponse{}, err
	}
	return mapHoliday(*h), nil
}

func (s *service) DeleteHoliday(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return scheduleerrors.ErrHolidayNotFound
	}
	return s.repo.DeleteHoliday(ctx, id)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapHoliday(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID.String(),
		Date: h.Date.Format("2006-01-02"),
		Name: h.Name,
	}
}
