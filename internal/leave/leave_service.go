package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/alok-mishra143/leave-management-backend/internal/domain"
	"github.com/alok-mishra143/leave-management-backend/internal/events"
	leaveerrors "github.com/alok-mishra143/leave-management-backend/internal/leave/errors"
	"github.com/alok-mishra143/leave-management-backend/internal/messaging/kafka"
	"github.com/alok-mishra143/leave-management-backend/internal/shared/contextutil"
	"github.com/alok-mishra143/leave-management-backend/internal/shared/counter"
)

const (
	BalanceKeyPrefix   = "leave:balance:"
	balanceCacheTTL    = 10 * time.Minute
	requestNumberScope = "leave_request"
)

func GetBalanceKey(userID string) string {
	return BalanceKeyPrefix + userID
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, actorID, actorRole string, req ApplyLeaveRequest) (LeaveResponse, error)
	Edit(ctx context.Context, actorID, actorRole, id string, req ApplyLeaveRequest) (LeaveResponse, error)
	Decide(ctx context.Context, actorID, id string, req DecideLeaveRequest) (DecisionResponse, error)
	GetAll(ctx context.Context, status string, page, limit int) ([]LeaveResponse, int64, error)
	GetPersonal(ctx context.Context, userID string, page, limit int) ([]LeaveResponse, int64, error)
	GetApproved(ctx context.Context) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	GetBalance(ctx context.Context, userID string) (BalanceResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	routing RoutingPolicy
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		routing: DefaultRouting,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Apply(
	ctx context.Context,
	actorID, actorRole string,
	req ApplyLeaveRequest,
) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply leave requested",
		zap.String("request_id", rid),
		zap.String("user_id", actorID),
		zap.String("leave_type", req.LeaveType),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	fields, err := validateLeaveFields(req)
	if err != nil {
		s.logger.Warn("apply leave validation failed",
			zap.String("user_id", actorID),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := s.checkRouting(ctx, actorRole, fields.RequestedTo); err != nil {
		s.logger.Warn("apply leave routing rejected",
			zap.String("user_id", actorID),
			zap.String("requested_to", fields.RequestedTo.String()),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	academicYear := CurrentAcademicYear(time.Now())
	nextVal, err := s.counter.GetNextValue(ctx, academicYear, requestNumberScope)
	if err != nil {
		s.logger.Error("apply leave generate request number failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:            uuid.New(),
		RequestNumber: fmt.Sprintf("LV-%s-%06d", academicYear, nextVal),
		UserID:        actorUUID,
		RequestedTo:   fields.RequestedTo,
		LeaveType:     fields.LeaveType,
		StartDate:     fields.StartDate,
		EndDate:       fields.EndDate,
		Reason:        fields.Reason,
		Status:        StatusPending,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("apply leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("request_number", l.RequestNumber),
	)
	return mapToResponse(*l), nil
}

func (s *service) Edit(
	ctx context.Context,
	actorID, actorRole, id string,
	req ApplyLeaveRequest,
) (LeaveResponse, error) {
	s.logger.Debug("edit leave requested",
		zap.String("leave_id", id),
		zap.String("user_id", actorID),
	)

	fields, err := validateLeaveFields(req)
	if err != nil {
		return LeaveResponse{}, err
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRecordErr(err, leaveerrors.ErrLeaveNotFound)
	}

	if l.UserID.String() != actorID && actorRole != domain.RoleAdmin {
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotEditable
	}

	// Routing is keyed to the request owner, not the editor: an admin fixing
	// up a student's request must still route it like the student would.
	ownerRole := actorRole
	if l.UserID.String() != actorID {
		ownerRole, err = s.repo.FindUserRole(ctx, l.UserID.String())
		if err != nil {
			return LeaveResponse{}, mapRecordErr(err, leaveerrors.ErrLeaveNotFound)
		}
	}
	if err := s.checkRouting(ctx, ownerRole, fields.RequestedTo); err != nil {
		return LeaveResponse{}, err
	}

	// Status and ApprovedBy stay untouched; only the request content moves.
	l.RequestedTo = fields.RequestedTo
	l.LeaveType = fields.LeaveType
	l.StartDate = fields.StartDate
	l.EndDate = fields.EndDate
	l.Reason = fields.Reason

	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.Error("edit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("edit leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) Decide(
	ctx context.Context,
	actorID, id string,
	req DecideLeaveRequest,
) (DecisionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("decided_by", actorID),
		zap.String("proposed_status", req.Status),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return DecisionResponse{}, leaveerrors.ErrInvalidActorID
	}
	proposed := Status(req.Status)
	if !proposed.Valid() {
		return DecisionResponse{}, leaveerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return DecisionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DecisionResponse{}, mapRecordErr(err, leaveerrors.ErrLeaveNotFound)
	}

	// Balances are provisioned per calendar year at registration, so the
	// lookup keys on the decision date. A December request starting in
	// January still settles against the row that exists today.
	balance, err := s.repo.GetBalanceByUser(ctx, l.UserID.String(), CurrentAcademicYear(time.Now()))
	if err != nil {
		return DecisionResponse{}, mapRecordErr(err, leaveerrors.ErrBalanceNotFound)
	}

	decision, err := Reconcile(l.Status, proposed, l.LeaveType, l.StartDate, l.EndDate, actorUUID)
	if err != nil {
		s.logger.Warn("decide leave transition rejected",
			zap.String("leave_id", id),
			zap.String("current_status", string(l.Status)),
			zap.String("proposed_status", req.Status),
			zap.Error(err),
		)
		return DecisionResponse{}, err
	}

	applied, err := qtx.ApplyDecision(ctx, id, l.Status, decision)
	if err != nil {
		s.logger.Error("decide leave apply failed", zap.Error(err))
		return DecisionResponse{}, err
	}
	if !applied {
		// The row moved out from under us; the computed delta belongs to a
		// status that no longer exists, so nothing may be written.
		s.logger.Warn("decide leave lost compare-and-swap",
			zap.String("leave_id", id),
			zap.String("expected_status", string(l.Status)),
		)
		return DecisionResponse{}, leaveerrors.ErrStaleState
	}

	if err := qtx.AdjustBalance(ctx, balance.ID.String(), decision.BalanceDelta); err != nil {
		s.logger.Error("decide leave balance adjust failed", zap.Error(err))
		return DecisionResponse{}, err
	}

	event := events.LeaveDecisionEvent{
		EventType:    "leave_decided",
		RequestID:    rid,
		LeaveID:      l.ID.String(),
		UserID:       l.UserID.String(),
		DecidedBy:    actorID,
		Status:       string(decision.NewStatus),
		BalanceDelta: decision.BalanceDelta.String(),
		OccurredAt:   time.Now().UTC(),
	}
	if s.outbox != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return DecisionResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "leave_request",
			AggregateID:   l.ID.String(),
			EventType:     event.EventType,
			Topic:         events.LeaveDecisionTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("decide leave outbox persist failed",
				zap.String("leave_id", l.ID.String()),
				zap.Error(err),
			)
			return DecisionResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return DecisionResponse{}, err
	}

	if s.rdb != nil {
		cacheKey := GetBalanceKey(l.UserID.String())
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate leave balance cache",
				zap.Error(err),
				zap.String("key", cacheKey),
			)
		}
	}

	now := time.Now().UTC()
	l.Status = decision.NewStatus
	l.ApprovedBy = &decision.ApprovedBy
	l.DecidedAt = &now

	balance.AvailableLeave = balance.AvailableLeave.Add(decision.BalanceDelta)
	balance.UsedLeaves = balance.UsedLeaves.Sub(decision.BalanceDelta)

	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("status", string(decision.NewStatus)),
		zap.String("balance_delta", decision.BalanceDelta.String()),
	)
	return DecisionResponse{
		Leave:   mapToResponse(*l),
		Balance: mapBalanceResponse(*balance),
	}, nil
}

func (s *service) GetAll(
	ctx context.Context,
	status string,
	page, limit int,
) ([]LeaveResponse, int64, error) {
	var filter *Status
	if status != "" {
		st := Status(status)
		if !st.Valid() {
			return nil, 0, leaveerrors.ErrInvalidStatus
		}
		filter = &st
	}

	leaves, total, err := s.repo.FindAllPaged(ctx, filter, page, limit)
	if err != nil {
		s.logger.Error("get all leaves failed", zap.Error(err))
		return nil, 0, err
	}

	return mapToListResponse(leaves), total, nil
}

func (s *service) GetPersonal(
	ctx context.Context,
	userID string,
	page, limit int,
) ([]LeaveResponse, int64, error) {
	leaves, total, err := s.repo.FindByUserPaged(ctx, userID, page, limit)
	if err != nil {
		s.logger.Error("get personal leaves failed", zap.Error(err))
		return nil, 0, err
	}

	return mapToListResponse(leaves), total, nil
}

func (s *service) GetApproved(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindApproved(ctx)
	if err != nil {
		s.logger.Error("get approved leaves failed", zap.Error(err))
		return nil, err
	}

	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRecordErr(err, leaveerrors.ErrLeaveNotFound)
	}

	return mapToResponse(*l), nil
}

func (s *service) GetBalance(ctx context.Context, userID string) (BalanceResponse, error) {
	cacheKey := GetBalanceKey(userID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp BalanceResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		balance, err := s.repo.GetBalanceByUser(ctx, userID, CurrentAcademicYear(time.Now()))
		if err != nil {
			return nil, mapRecordErr(err, leaveerrors.ErrBalanceNotFound)
		}

		resp := mapBalanceResponse(*balance)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, balanceCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return BalanceResponse{}, err
	}

	return v.(BalanceResponse), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete leave requested", zap.String("leave_id", id))

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRecordErr(err, leaveerrors.ErrLeaveNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete leave failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

// checkRouting resolves the approver and enforces the routing table: the
// requester's role decides which approver roles may receive the request.
func (s *service) checkRouting(ctx context.Context, actorRole string, requestedTo uuid.UUID) error {
	approverRole, err := s.repo.FindUserRole(ctx, requestedTo.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
			return leaveerrors.ErrApproverNotFound
		}
		return err
	}

	if !s.routing.Allowed(actorRole, approverRole) {
		return leaveerrors.ErrRoutingNotAllowed
	}
	return nil
}

func mapRecordErr(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return err
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		RequestNumber: l.RequestNumber,
		UserID:        l.UserID.String(),
		RequestedTo:   l.RequestedTo.String(),
		LeaveType:     string(l.LeaveType),
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		TotalDays:     DaysSpanned(l.StartDate, l.EndDate),
		Reason:        l.Reason,
		Status:        string(l.Status),
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
	}
	if l.User != nil {
		resp.UserName = l.User.Name
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.UTC().Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		resp = append(resp, mapToResponse(l))
	}
	return resp
}

func mapBalanceResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		UserID:         b.UserID.String(),
		AcademicYear:   b.AcademicYear,
		TotalLeaves:    b.TotalLeaves.String(),
		UsedLeaves:     b.UsedLeaves.String(),
		AvailableLeave: b.AvailableLeave.String(),
	}
}
