package workhour

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/viniciusmecosta/spe-api/internal/adjustment"
	"github.com/viniciusmecosta/spe-api/internal/schedule"
	"github.com/viniciusmecosta/spe-api/internal/timerecord"
	timerecorderrors "github.com/viniciusmecosta/spe-api/internal/timerecord/errors"
	"github.com/viniciusmecosta/spe-api/internal/user"
)

//go:generate mockgen -source=workhour_service.go -destination=mock/workhour_service_mock.go -package=mock
type Service interface {
	GetDailyBalances(ctx context.Context, userID string, start, end time.Time) ([]DayResult, error)
	GetPeriodSummary(ctx context.Context, userID string, start, end time.Time) (PeriodSummaryResponse, error)
	GetAllSummaries(ctx context.Context, start, end time.Time) ([]PeriodSummaryResponse, error)
	ExportPeriodReport(ctx context.Context, start, end time.Time) ([]byte, error)
}

type AdjustmentSource interface {
	ApprovedForRange(ctx context.Context, userID string, start, end time.Time) ([]adjustment.AdjustmentRequest, error)
}

type service struct {
	records     timerecord.Repository
	schedules   schedule.Repository
	users       user.Repository
	adjustments AdjustmentSource
	loc         *time.Location
	now         func() time.Time
	// holiday lookups are identical across every user in an all-employees
	// report; collapse concurrent loads to one query.
	holidayGroup singleflight.Group
	logger       *zap.Logger
}

func NewService(records timerecord.Repository, schedules schedule.Repository, users user.Repository, adjustments AdjustmentSource, loc *time.Location, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		records:     records,
		schedules:   schedules,
		users:       users,
		adjustments: adjustments,
		loc:         loc,
		now:         now,
		logger:      zap.L().Named("workhour.service"),
	}
}

func (s *service) holidaySet(ctx context.Context, start, end time.Time) (map[string]bool, error) {
	key := start.Format("2006-01-02") + ":" + end.Format("2006-01-02")
	v, err, _ := s.holidayGroup.Do(key, func() (interface{}, error) {
		holidays, err := s.schedules.FindHolidaysInRange(ctx, start, end)
		if err != nil {
			return nil, err
		}
		set := make(map[string]bool, len(holidays))
		for _, h := range holidays {
			set[h.Date.Format("2006-01-02")] = true
		}
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]bool), nil
}

func (s *service) userDays(ctx context.Context, u *user.User, start, end time.Time, holidays map[string]bool) ([]DayResult, error) {
	userID := u.ID.String()

	schedules, err := s.schedules.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	hoursByDow := make(map[int]float64, len(schedules))
	for _, entry := range schedules {
		hoursByDow[entry.DayOfWeek] = entry.DailyHours
	}

	punches, err := s.records.FindByUserAndRange(ctx, userID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	punchesByDay := make(map[string][]timerecord.TimeRecord)
	for _, p := range punches {
		day := p.RecordDatetime.In(s.loc).Format("2006-01-02")
		punchesByDay[day] = append(punchesByDay[day], p)
	}

	approved, err := s.adjustments.ApprovedForRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	adjustmentsByDay := make(map[string][]adjustment.AdjustmentRequest)
	for _, a := range approved {
		day := a.TargetDate.Format("2006-01-02")
		adjustmentsByDay[day] = append(adjustmentsByDay[day], a)
	}

	today := s.now().In(s.loc)
	var days []DayResult
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		key := date.Format("2006-01-02")
		days = append(days, DailyBalance(DayInput{
			Date:             date,
			Punches:          punchesByDay[key],
			ScheduledSeconds: int64(hoursByDow[int(date.Weekday())] * 3600),
			HasSchedule:      len(schedules) > 0,
			IsHoliday:        holidays[key],
			Adjustments:      adjustmentsByDay[key],
		}, today))
	}
	return days, nil
}

func (s *service) GetDailyBalances(ctx context.Context, userID string, start, end time.Time) ([]DayResult, error) {
	if start.After(end) {
		return nil, timerecorderrors.ErrInvalidDateRange
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timerecorderrors.ErrInvalidUserID
		}
		return nil, err
	}
	holidays, err := s.holidaySet(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return s.userDays(ctx, u, start, end, holidays)
}

func summarize(u user.User, start, end time.Time, days []DayResult) PeriodSummaryResponse {
	summary := PeriodSummaryResponse{
		UserID:    u.ID.String(),
		UserName:  u.Name,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Days:      days,
	}
	for _, day := range days {
		summary.WorkedSeconds += day.WorkedSeconds
		summary.ExpectedSeconds += day.ExpectedSeconds
		summary.ExtraSeconds += day.ExtraSeconds
		summary.MissingSeconds += day.MissingSeconds
		if day.WorkedSeconds > 0 {
			summary.DaysWorked++
		}
		if day.Absence {
			summary.Absences++
		}
	}
	return summary
}

func (s *service) GetPeriodSummary(ctx context.Context, userID string, start, end time.Time) (PeriodSummaryResponse, error) {
	days, err := s.GetDailyBalances(ctx, userID, start, end)
	if err != nil {
		return PeriodSummaryResponse{}, err
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return PeriodSummaryResponse{}, err
	}
	return summarize(*u, start, end, days), nil
}

func (s *service) GetAllSummaries(ctx context.Context, start, end time.Time) ([]PeriodSummaryResponse, error) {
	if start.After(end) {
		return nil, timerecorderrors.ErrInvalidDateRange
	}
	employees, err := s.users.FindActiveEmployees(ctx)
	if err != nil {
		return nil, err
	}
	holidays, err := s.holidaySet(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summaries := make([]PeriodSummaryResponse, 0, len(employees))
	for i := range employees {
		days, err := s.userDays(ctx, &employees[i], start, end, holidays)
		if err != nil {
			return nil, err
		}
		summary := summarize(employees[i], start, end, days)
		summary.Days = nil
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *service) ExportPeriodReport(ctx context.Context, start, end time.Time) ([]byte, error) {
	summaries, err := s.GetAllSummaries(ctx, start, end)
	if err != nil {
		return nil, err
	}
	report, err := buildPeriodWorkbook(start, end, summaries)
	if err != nil {
		return nil, err
	}
	s.logger.Info("period report exported",
		zap.String("start", start.Format("2006-01-02")),
		zap.String("end", end.Format("2006-01-02")),
		zap.Int("employees", len(summaries)),
	)
	return report, nil
}

func formatSigned(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%dh%02d", sign, seconds/3600, (seconds%3600)/60)
}
