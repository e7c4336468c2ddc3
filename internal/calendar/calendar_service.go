package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	calendarerrors "github.com/fmcmkdict/LMA-App/internal/calendar/errors"
)

// MaxSpanDays bounds every day-walking loop. Leave requests are granted in
// working days within a single year, so anything past a full year is a
// malformed request, not a long holiday.
const MaxSpanDays = 366

// holidayWindowDays is the prefetch window for end-date projection: one query
// per window instead of one per day.
const holidayWindowDays = 92

const dateLayout = "2006-01-02"

//go:generate mockgen -source=calendar_service.go -destination=mock/calendar_service_mock.go -package=mock
type Service interface {
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetHolidays(ctx context.Context, year int) ([]HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error

	IsWorkingDay(ctx context.Context, date time.Time) (bool, error)
	CountWorkingDays(ctx context.Context, start, end time.Time) (int, error)
	ProjectEndDate(ctx context.Context, start time.Time, workingDays int) (time.Time, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := ParseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	exists, err := s.repo.ExistsOnDate(ctx, date)
	if err != nil {
		s.logger.Error("holiday date check failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	if exists {
		return HolidayResponse{}, calendarerrors.ErrDuplicateHoliday
	}

	h := &Holiday{
		ID:          uuid.New(),
		Name:        req.Name,
		Date:        date,
		Year:        date.Year(),
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	s.logger.Info("holiday created",
		zap.String("holiday_id", h.ID.String()),
		zap.String("date", req.Date),
	)

	return mapToResponse(*h), nil
}

func (s *service) GetHolidays(ctx context.Context, year int) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindAll(ctx, year)
	if err != nil {
		return nil, err
	}

	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = mapToResponse(h)
	}
	return resp, nil
}

func (s *service) DeleteHoliday(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return calendarerrors.ErrHolidayNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) IsWorkingDay(ctx context.Context, date time.Time) (bool, error) {
	d := Normalize(date)
	if isWeekend(d) {
		return false, nil
	}

	holiday, err := s.repo.ExistsOnDate(ctx, d)
	if err != nil {
		return false, err
	}
	return !holiday, nil
}

// CountWorkingDays counts the working days between start and end, both
// inclusive.
func (s *service) CountWorkingDays(ctx context.Context, start, end time.Time) (int, error) {
	from, to := Normalize(start), Normalize(end)
	if to.Before(from) {
		return 0, calendarerrors.ErrInvalidRange
	}
	if spanDays(from, to) > MaxSpanDays {
		return 0, calendarerrors.ErrSpanTooLarge
	}

	holidays, err := s.holidaySet(ctx, from, to)
	if err != nil {
		return 0, err
	}

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if isWeekend(d) {
			continue
		}
		if _, ok := holidays[d.Format(dateLayout)]; ok {
			continue
		}
		count++
	}
	return count, nil
}

// ProjectEndDate returns the calendar date on which the workingDays-th
// working day falls, counting start itself when it is a working day. A
// ten-day grant starting on a Monday therefore ends on the Friday of
// the following week. workingDays == 0 returns start unchanged.
func (s *service) ProjectEndDate(ctx context.Context, start time.Time, workingDays int) (time.Time, error) {
	if workingDays < 0 {
		return time.Time{}, calendarerrors.ErrNegativeDays
	}
	if workingDays > MaxSpanDays {
		return time.Time{}, calendarerrors.ErrSpanTooLarge
	}

	end := Normalize(start)
	if workingDays == 0 {
		return end, nil
	}

	counted := 0
	winStart := end
	for counted < workingDays {
		winEnd := winStart.AddDate(0, 0, holidayWindowDays-1)
		holidays, err := s.holidaySet(ctx, winStart, winEnd)
		if err != nil {
			return time.Time{}, err
		}

		for d := winStart; !d.After(winEnd) && counted < workingDays; d = d.AddDate(0, 0, 1) {
			if isWeekend(d) {
				continue
			}
			if _, ok := holidays[d.Format(dateLayout)]; ok {
				continue
			}
			counted++
			end = d
		}
		winStart = winEnd.AddDate(0, 0, 1)
	}

	return end, nil
}

func (s *service) holidaySet(ctx context.Context, from, to time.Time) (map[string]struct{}, error) {
	dates, err := s.repo.DatesBetween(ctx, from, to)
	if err != nil {
		s.logger.Error("holiday lookup failed", zap.Error(err))
		return nil, err
	}

	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[Normalize(d).Format(dateLayout)] = struct{}{}
	}
	return set, nil
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func spanDays(from, to time.Time) int {
	return int(to.Sub(from).Hours()/24) + 1
}

// Normalize truncates a timestamp to its calendar date in UTC so date
// comparisons never depend on the wall clock.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD request field.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, calendarerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Date:        h.Date.Format(dateLayout),
		Year:        h.Year,
		Description: h.Description,
	}
}
