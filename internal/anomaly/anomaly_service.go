package anomaly

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/viniciusmecosta/spe-api/internal/timerecord"
	timerecorderrors "github.com/viniciusmecosta/spe-api/internal/timerecord/errors"
	"github.com/viniciusmecosta/spe-api/internal/user"
)

//go:generate mockgen -source=anomaly_service.go -destination=mock/anomaly_service_mock.go -package=mock
type Service interface {
	// GetMine is the employee self-view: long-interval and excessive-hours
	// kinds are filtered out.
	GetMine(ctx context.Context, userID string, month, year int) ([]DayAnomaliesResponse, error)
	GetForUser(ctx context.Context, userID string, month, year int) ([]DayAnomaliesResponse, error)
	GetForAllEmployees(ctx context.Context, month, year int) ([]DayAnomaliesResponse, error)
}

type service struct {
	records timerecord.Repository
	users   user.Repository
	loc     *time.Location
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(records timerecord.Repository, users user.Repository, loc *time.Location, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		records: records,
		users:   users,
		loc:     loc,
		now:     now,
		logger:  zap.L().Named("anomaly.service"),
	}
}

// monthWindow resolves the requested month into a concrete range, capped
// at yesterday so the current, still-open day is never inspected. A month
// that has not started yet yields an empty window.
func (s *service) monthWindow(month, year int) (time.Time, time.Time, bool) {
	now := s.now().In(s.loc)
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, -1)
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, -1)
	if yesterday.Before(end) {
		end = yesterday
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, false
	}
	// The end is exclusive: midnight after the last included day.
	return start, end.AddDate(0, 0, 1), true
}

func (s *service) GetMine(ctx context.Context, userID string, month, year int) ([]DayAnomaliesResponse, error) {
	days, err := s.GetForUser(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}
	var filtered []DayAnomaliesResponse
	for _, day := range days {
		visible := EmployeeVisible(day.Anomalies)
		if len(visible) == 0 {
			continue
		}
		day.Anomalies = visible
		filtered = append(filtered, day)
	}
	return filtered, nil
}

func (s *service) GetForUser(ctx context.Context, userID string, month, year int) ([]DayAnomaliesResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timerecorderrors.ErrInvalidUserID
		}
		return nil, err
	}

	start, end, ok := s.monthWindow(month, year)
	if !ok {
		return []DayAnomaliesResponse{}, nil
	}

	punches, err := s.records.FindByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return s.detectByDay(map[string]user.User{userID: *u}, punches), nil
}

func (s *service) GetForAllEmployees(ctx context.Context, month, year int) ([]DayAnomaliesResponse, error) {
	employees, err := s.users.FindActiveEmployees(ctx)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return []DayAnomaliesResponse{}, nil
	}

	start, end, ok := s.monthWindow(month, year)
	if !ok {
		return []DayAnomaliesResponse{}, nil
	}

	ids := make([]string, len(employees))
	byID := make(map[string]user.User, len(employees))
	for i, e := range employees {
		ids[i] = e.ID.String()
		byID[e.ID.String()] = e
	}

	punches, err := s.records.FindByUsersAndRange(ctx, ids, start, end)
	if err != nil {
		return nil, err
	}
	return s.detectByDay(byID, punches), nil
}

func (s *service) detectByDay(users map[string]user.User, punches []timerecord.TimeRecord) []DayAnomaliesResponse {
	type dayKey struct {
		userID string
		date   string
	}
	grouped := make(map[dayKey][]timerecord.TimeRecord)
	for _, p := range punches {
		key := dayKey{
			userID: p.UserID.String(),
			date:   p.RecordDatetime.In(s.loc).Format("2006-01-02"),
		}
		grouped[key] = append(grouped[key], p)
	}

	var results []DayAnomaliesResponse
	for key, dayPunches := range grouped {
		anomalies := CheckDay(dayPunches)
		if len(anomalies) == 0 {
			continue
		}
		results = append(results, DayAnomaliesResponse{
			UserID:    key.userID,
			UserName:  users[key.userID].Name,
			Date:      key.date,
			Anomalies: anomalies,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].UserName != results[j].UserName {
			return results[i].UserName < results[j].UserName
		}
		return results[i].Date < results[j].Date
	})
	return results
}
