package employee

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"employee-api/internal/events"
	"employee-api/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// DefaultPublishTimeout bounds how long a write waits on the event
	// publisher after its transaction committed.
	DefaultPublishTimeout = 2 * time.Second
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, id int64) (EmployeeResponse, error)
	Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	Search(ctx context.Context, search, sortBy, sortOrder string, page, size int) ([]EmployeeResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time

	publishTimeout time.Duration
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithPublisher(db, repo, nil, logger...)
}

func NewServiceWithPublisher(
	db *sql.DB,
	repo Repository,
	publisher EventPublisher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	return &service{
		db:        db,
		repo:      repo,
		publisher: publisher,
		logger:    l,
		now:       time.Now,

		publishTimeout: DefaultPublishTimeout,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := s.log(ctx)
	log.Debug("create employee requested", zap.String("name", req.Name))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl := toEntity(req)
	if err := qtx.Create(ctx, &empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	detail, err := qtx.FindByIDWithJoin(ctx, empl.ID)
	if err != nil {
		log.Error("create employee reload failed", zap.Int64("employee_id", empl.ID), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.publish(ctx, events.EmployeeCreated, empl.ID)
	log.Info("create employee success", zap.Int64("employee_id", empl.ID))

	return mapDetailToResponse(detail)
}

func (s *service) GetByID(ctx context.Context, id int64) (EmployeeResponse, error) {
	log := s.log(ctx)
	log.Debug("get employee by id requested", zap.Int64("employee_id", id))

	detail, err := s.repo.FindByIDWithJoin(ctx, id)
	if err != nil {
		log.Warn("get employee by id failed", zap.Int64("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapDetailToResponse(detail)
}

func (s *service) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	log := s.log(ctx)
	log.Debug("update employee requested", zap.Int64("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl := toEntity(CreateEmployeeRequest(req))
	empl.ID = id

	affected, err := qtx.Update(ctx, &empl)
	if err != nil {
		log.Error("update employee persist failed", zap.Int64("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if affected == 0 {
		// Some drivers report only changed rows, so make sure the row is
		// really gone before answering NotFound.
		if _, err := qtx.FindByID(ctx, id); err != nil {
			log.Warn("update employee target missing", zap.Int64("employee_id", id), zap.Error(err))
			return EmployeeResponse{}, mapRepositoryError(err)
		}
	}

	detail, err := qtx.FindByIDWithJoin(ctx, id)
	if err != nil {
		log.Error("update employee reload failed", zap.Int64("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.publish(ctx, events.EmployeeUpdated, id)
	log.Info("update employee success", zap.Int64("employee_id", id))

	return mapDetailToResponse(detail)
}

// Delete is idempotent: removing an id that does not exist succeeds.
func (s *service) Delete(ctx context.Context, id int64) error {
	log := s.log(ctx)
	log.Debug("delete employee requested", zap.Int64("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete employee begin tx failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	defer tx.Rollback()

	affected, err := s.repo.WithTx(tx).Delete(ctx, id)
	if err != nil {
		log.Error("delete employee failed", zap.Int64("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete employee commit failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if affected == 0 {
		log.Info("delete employee no-op, id absent", zap.Int64("employee_id", id))
		return nil
	}

	s.publish(ctx, events.EmployeeDeleted, id)
	log.Info("delete employee success", zap.Int64("employee_id", id))
	return nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	log := s.log(ctx)
	log.Debug("get all employees requested")

	rows, err := s.repo.FindAllWithJoin(ctx)
	if err != nil {
		log.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(rows), nil
}

func (s *service) Search(
	ctx context.Context,
	search, sortBy, sortOrder string,
	page, size int,
) ([]EmployeeResponse, error) {
	log := s.log(ctx)

	criteria := BuildSearchCriteria(search, sortBy, sortOrder, page, size)
	log.Debug("search employees requested",
		zap.String("search", criteria.Search),
		zap.String("sort_by", criteria.SortBy),
		zap.String("sort_order", criteria.SortOrder),
		zap.Int("offset", criteria.Offset),
		zap.Int("limit", criteria.Limit),
	)

	rows, err := s.repo.Search(ctx, criteria)
	if err != nil {
		log.Error("search employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(rows), nil
}

// BuildSearchCriteria normalizes paging and sorting input. page is
// 1-indexed and clamped to 1; size falls back to DefaultPageSize when not
// positive and is capped at MaxPageSize.
func BuildSearchCriteria(search, sortBy, sortOrder string, page, size int) SearchCriteria {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if !IsSortKey(sortBy) {
		sortBy = defaultSortKey
	}
	order := "asc"
	if strings.EqualFold(strings.TrimSpace(sortOrder), "desc") {
		order = "desc"
	}

	return SearchCriteria{
		Search:    search,
		SortBy:    sortBy,
		SortOrder: order,
		Offset:    (page - 1) * size,
		Limit:     size,
	}
}

func (s *service) publish(ctx context.Context, eventType string, id int64) {
	event := events.EmployeeEvent{
		EventType:  eventType,
		RequestID:  contextutil.GetRequestID(ctx),
		EmployeeID: id,
		OccurredAt: s.now().UTC(),
	}

	// Detached from request cancellation, bounded by publishTimeout.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, event); err != nil {
		s.log(ctx).Warn("publish employee event failed",
			zap.String("event_type", eventType),
			zap.Int64("employee_id", id),
			zap.Error(err),
		)
	}
}
