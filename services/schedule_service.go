package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/DucQuyen199/quanlybongda/models"
	"github.com/DucQuyen199/quanlybongda/repositories"
	"github.com/DucQuyen199/quanlybongda/storage"
	"github.com/jmoiron/sqlx"
)

const (
	defaultScheduleListLimit = 10
	maxScheduleListLimit     = 100
)

type UpsertMode string

const (
	UpsertCreate UpsertMode = "create"
	UpsertUpdate UpsertMode = "update"
)

// UpsertScheduleInput is the payload of the admin schedule form. On update
// every field except ScheduleID is optional and falls back to the stored row.
type UpsertScheduleInput struct {
	ScheduleID   string  `json:"maLich"`
	TournamentID *string `json:"maGiaiDau"`
	MatchID      *string `json:"maTran"`
	Date         *string `json:"ngayThiDau"`
	HomeTeamID   *string `json:"maDoiNha"`
	AwayTeamID   *string `json:"maDoiKhach"`
	HomeScore    *int    `json:"banThangDoiNha"`
	AwayScore    *int    `json:"banThangDoiKhach"`
	Status       *string `json:"trangThai"`
	Venue        *string `json:"diaDiem"`
}

type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type ScheduleList struct {
	Data []models.ScheduleView `json:"data"`
	Meta PageMeta              `json:"meta"`
}

// UpsertObserver receives the outcome of every upsert; outcome is "ok" or an ErrorKind.
type UpsertObserver interface {
	ObserveUpsert(mode string, outcome string, elapsed time.Duration)
}

type ScheduleService interface {
	CreateSchedule(ctx context.Context, input UpsertScheduleInput) (*models.ScheduleView, error)
	UpdateSchedule(ctx context.Context, scheduleID string, input UpsertScheduleInput) (*models.ScheduleView, error)
	UpsertSchedule(ctx context.Context, mode UpsertMode, input UpsertScheduleInput) (*models.ScheduleView, error)
	GetSchedule(ctx context.Context, scheduleID string) (*models.ScheduleView, error)
	ListSchedules(ctx context.Context, page, limit int) (*ScheduleList, error)
	DeleteSchedule(ctx context.Context, scheduleID string) error
}

type scheduleService struct {
	db           *sqlx.DB
	scheduleRepo repositories.ScheduleRepository
	validator    *ReferenceValidator
	matchEngine  *MatchUpsertEngine
	logos        storage.LogoResolver
	observer     UpsertObserver
	logger       *slog.Logger
}

func NewScheduleService(
	db *sqlx.DB,
	scheduleRepo repositories.ScheduleRepository,
	validator *ReferenceValidator,
	matchEngine *MatchUpsertEngine,
	logos storage.LogoResolver,
	observer UpsertObserver,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		db:           db,
		scheduleRepo: scheduleRepo,
		validator:    validator,
		matchEngine:  matchEngine,
		logos:        logos,
		observer:     observer,
		logger:       logger,
	}
}

// upsertRequest is UpsertScheduleInput after trimming and parsing.
type upsertRequest struct {
	scheduleID   string
	tournamentID *string
	matchID      *string
	date         *time.Time
	playedAt     *time.Time
	homeTeamID   *string
	awayTeamID   *string
	homeScore    *int
	awayScore    *int
	status       *models.MatchStatus
	venue        *string
}

func (s *scheduleService) CreateSchedule(ctx context.Context, input UpsertScheduleInput) (*models.ScheduleView, error) {
	return s.UpsertSchedule(ctx, UpsertCreate, input)
}

func (s *scheduleService) UpdateSchedule(ctx context.Context, scheduleID string, input UpsertScheduleInput) (*models.ScheduleView, error) {
	input.ScheduleID = scheduleID
	return s.UpsertSchedule(ctx, UpsertUpdate, input)
}

// UpsertSchedule validates references, creates or updates the linked match and
// writes the schedule in a single transaction. On failure nothing is written.
func (s *scheduleService) UpsertSchedule(ctx context.Context, mode UpsertMode, input UpsertScheduleInput) (view *models.ScheduleView, err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = string(KindOf(err))
		}
		if s.observer != nil {
			s.observer.ObserveUpsert(string(mode), outcome, time.Since(start))
		}
	}()

	req, err := parseUpsertInput(mode, input)
	if err != nil {
		return nil, err
	}

	err = runInTx(ctx, s.db, s.logger, func(tx *sqlx.Tx) error {
		return s.upsertInTx(ctx, tx, mode, req)
	})
	if err != nil {
		s.logUpsertFailure(ctx, mode, req.scheduleID, err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "schedule saved",
		slog.String("mode", string(mode)),
		slog.String("schedule_id", req.scheduleID))

	return s.GetSchedule(ctx, req.scheduleID)
}

func (s *scheduleService) upsertInTx(ctx context.Context, tx *sqlx.Tx, mode UpsertMode, req upsertRequest) error {
	var existing *models.Schedule
	switch mode {
	case UpsertCreate:
		taken, err := s.scheduleRepo.Exists(ctx, tx, req.scheduleID)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateScheduleID
		}
	case UpsertUpdate:
		current, err := s.scheduleRepo.GetByID(ctx, tx, req.scheduleID, true)
		if err != nil {
			return translateRepositoryError(err)
		}
		existing = current
	}

	schedule := &models.Schedule{ID: req.scheduleID}
	matchID := req.matchID
	if existing != nil {
		schedule.TournamentID = existing.TournamentID
		schedule.Date = existing.Date
		if matchID == nil {
			matchID = existing.MatchID
		}
	}
	if req.tournamentID != nil {
		schedule.TournamentID = *req.tournamentID
	}
	if req.date != nil {
		schedule.Date = *req.date
	}

	playedAt := schedule.Date
	if req.playedAt != nil {
		playedAt = *req.playedAt
	}

	err := s.validator.Validate(ctx, tx, ReferenceCheck{
		TournamentID: schedule.TournamentID,
		HomeTeamID:   req.homeTeamID,
		AwayTeamID:   req.awayTeamID,
	})
	if err != nil {
		return err
	}

	resolvedMatchID, err := s.matchEngine.Upsert(ctx, tx, MatchUpsertInput{
		MatchID:            matchID,
		HomeTeamID:         req.homeTeamID,
		AwayTeamID:         req.awayTeamID,
		HomeScore:          req.homeScore,
		AwayScore:          req.awayScore,
		Status:             req.status,
		Venue:              req.venue,
		TournamentID:       schedule.TournamentID,
		PlayedAt:           playedAt,
		TournamentSupplied: req.tournamentID != nil,
		DateSupplied:       req.date != nil,
	})
	if err != nil {
		return err
	}
	schedule.MatchID = resolvedMatchID

	if mode == UpsertCreate {
		err = s.scheduleRepo.Create(ctx, tx, schedule)
	} else {
		err = s.scheduleRepo.Update(ctx, tx, schedule)
	}
	return translateRepositoryError(err)
}

func (s *scheduleService) logUpsertFailure(ctx context.Context, mode UpsertMode, scheduleID string, err error) {
	kind, reason := Classify(err)
	attrs := []any{
		slog.String("mode", string(mode)),
		slog.String("schedule_id", scheduleID),
		slog.String("error_kind", string(kind)),
		slog.String("reason", reason),
		slog.Any("error", err),
	}
	if kind == KindInternal {
		s.logger.ErrorContext(ctx, "schedule upsert rolled back", attrs...)
		return
	}
	s.logger.InfoContext(ctx, "schedule upsert rejected", attrs...)
}

func (s *scheduleService) GetSchedule(ctx context.Context, scheduleID string) (*models.ScheduleView, error) {
	view, err := s.scheduleRepo.GetView(ctx, nil, scheduleID)
	if err != nil {
		return nil, translateRepositoryError(err)
	}
	populateScheduleViewFunc(ctx, view, s.logos, s.logger)
	return view, nil
}

func (s *scheduleService) ListSchedules(ctx context.Context, page, limit int) (*ScheduleList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultScheduleListLimit
	}
	if limit > maxScheduleListLimit {
		limit = maxScheduleListLimit
	}

	total, err := s.scheduleRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	views, err := s.scheduleRepo.ListViews(ctx, nil, repositories.ListSchedulesFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	data := make([]models.ScheduleView, len(views))
	for i, v := range views {
		populateScheduleViewFunc(ctx, v, s.logos, s.logger)
		data[i] = *v
	}

	return &ScheduleList{
		Data: data,
		Meta: PageMeta{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

// DeleteSchedule removes the schedule row. The linked match is kept.
func (s *scheduleService) DeleteSchedule(ctx context.Context, scheduleID string) error {
	if err := s.scheduleRepo.Delete(ctx, nil, scheduleID); err != nil {
		return translateRepositoryError(err)
	}
	s.logger.InfoContext(ctx, "schedule deleted", slog.String("schedule_id", scheduleID))
	return nil
}

func parseUpsertInput(mode UpsertMode, input UpsertScheduleInput) (upsertRequest, error) {
	req := upsertRequest{
		scheduleID:   derefString(optionalString(&input.ScheduleID)),
		tournamentID: optionalString(input.TournamentID),
		matchID:      optionalString(input.MatchID),
		homeTeamID:   optionalString(input.HomeTeamID),
		awayTeamID:   optionalString(input.AwayTeamID),
		homeScore:    input.HomeScore,
		awayScore:    input.AwayScore,
		venue:        optionalString(input.Venue),
	}

	if req.scheduleID == "" {
		return req, ErrScheduleIDRequired
	}
	if err := checkLengths(req); err != nil {
		return req, err
	}

	if raw := optionalString(input.Date); raw != nil {
		day, instant, err := parseScheduleDate(*raw)
		if err != nil {
			return req, err
		}
		req.date = &day
		req.playedAt = &instant
	}

	status, err := parseStatus(optionalString(input.Status))
	if err != nil {
		return req, err
	}
	req.status = status

	if mode == UpsertCreate {
		if req.tournamentID == nil {
			return req, ErrTournamentIDRequired
		}
		if req.date == nil {
			return req, ErrDateRequired
		}
	}
	return req, nil
}

// Длины колонок в db/schema.sql
const (
	maxIDLength    = 20
	maxVenueLength = 100
)

func checkLengths(req upsertRequest) error {
	ids := []struct {
		field string
		value *string
	}{
		{"maLich", &req.scheduleID},
		{"maGiaiDau", req.tournamentID},
		{"maTran", req.matchID},
		{"maDoiNha", req.homeTeamID},
		{"maDoiKhach", req.awayTeamID},
	}
	for _, id := range ids {
		if id.value != nil && utf8.RuneCountInString(*id.value) > maxIDLength {
			return fmt.Errorf("%w: %s exceeds %d characters", ErrIDTooLong, id.field, maxIDLength)
		}
	}
	if req.venue != nil && utf8.RuneCountInString(*req.venue) > maxVenueLength {
		return fmt.Errorf("%w: diaDiem exceeds %d characters", ErrVenueTooLong, maxVenueLength)
	}
	return nil
}
