package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/bazaartech/backend/internal/domain/audit"
	"github.com/bazaartech/backend/internal/domain/identity"
	"github.com/bazaartech/backend/internal/domain/inventory"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/bazaartech/backend/internal/infrastructure/cache"
	"github.com/bazaartech/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// maxLockRetries bounds how often the reconciliation transaction is
// re-run after losing an optimistic-lock race on the balance row.
const maxLockRetries = 3

// AuditRecorder records movement audit entries best-effort
type AuditRecorder interface {
	RecordMovement(ctx context.Context, action, actor string, storeID, productID uuid.UUID, userID *uuid.UUID, details audit.MovementDetails)
}

// Reconciler applies one stock movement to its balance. The same
// implementation serves the queue worker and the synchronous inline
// fallback, so both paths share identical semantics: idempotent via the
// processed-flag CAS, clamp-to-zero on outbound movements, best-effort
// cache invalidation and audit.
type Reconciler struct {
	movements inventory.StockMovementRepository
	users     identity.UserRepository
	txScope   TransactionScope
	cache     cache.StockCache
	auditor   AuditRecorder
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewReconciler creates a Reconciler
func NewReconciler(
	movements inventory.StockMovementRepository,
	users identity.UserRepository,
	txScope TransactionScope,
	stockCache cache.StockCache,
	auditor AuditRecorder,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{
		movements: movements,
		users:     users,
		txScope:   txScope,
		cache:     stockCache,
		auditor:   auditor,
		logger:    logger,
	}
}

// SetEventPublisher sets the publisher for post-commit domain events
func (r *Reconciler) SetEventPublisher(publisher shared.EventPublisher) {
	r.publisher = publisher
}

// Reconcile applies the movement identified by movementID to its stock
// balance. A movement that was already processed, or that loses the
// processed-flag CAS to a concurrent duplicate, yields a no-op success.
// Transient storage failures are wrapped so the queue can redeliver.
func (r *Reconciler) Reconcile(ctx context.Context, movementID uuid.UUID, userID *uuid.UUID) (*ReconcileResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciler", "reconcile",
		attribute.String(telemetry.SpanAttrMovementID, movementID.String()),
	)
	defer span.End()

	movement, err := r.movements.FindByID(ctx, movementID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			telemetry.RecordError(span, err)
			return nil, err
		}
		return nil, shared.NewTransientError("load movement", err)
	}

	if movement.Processed {
		r.logger.Info("movement already processed, skipping",
			zap.String("movement_id", movementID.String()),
		)
		return r.noOpResult(movement), nil
	}

	actor := r.resolveActor(ctx, userID)

	// Best-effort: a stale cache entry self-heals on TTL expiry
	if err := r.cache.Invalidate(ctx, movement.StoreID, movement.ProductID); err != nil {
		r.logger.Warn("cache invalidation failed",
			zap.String("store_id", movement.StoreID.String()),
			zap.String("product_id", movement.ProductID.String()),
			zap.Error(err),
		)
	}

	var (
		balance *inventory.StockBalance
		applied int64
	)

	txErr := r.runWithLockRetry(ctx, func(repos TransactionalRepositories) error {
		var err error
		balance, err = repos.Balances().GetOrCreate(ctx, movement.StoreID, movement.ProductID)
		if err != nil {
			return err
		}

		applied, err = balance.Apply(movement.Kind, movement.Quantity)
		if err != nil {
			return err
		}

		if err := repos.Balances().SaveWithLock(ctx, balance); err != nil {
			return err
		}

		// The CAS is the idempotency authority: losing it means a
		// concurrent duplicate already applied this movement, and the
		// whole transaction rolls back.
		return repos.Movements().MarkProcessed(ctx, movement.ID)
	})

	if txErr != nil {
		if errors.Is(txErr, shared.ErrAlreadyProcessed) {
			r.logger.Info("movement processed concurrently, skipping",
				zap.String("movement_id", movementID.String()),
			)
			return r.noOpResult(movement), nil
		}
		telemetry.RecordError(span, txErr)
		return nil, shared.NewTransientError("reconcile transaction", txErr)
	}

	result := &ReconcileResult{
		MovementID:  movement.ID,
		StoreID:     movement.StoreID,
		ProductID:   movement.ProductID,
		Kind:        movement.Kind,
		Requested:   movement.Quantity,
		Applied:     applied,
		NewQuantity: balance.Quantity,
		Actor:       actor,
		Summary:     buildSummary(movement.Kind, movement.Quantity, applied, balance.Quantity, actor),
	}

	// Post-commit side effects are best-effort; the balance update is
	// already durable.
	r.auditor.RecordMovement(ctx, movement.Kind.AuditAction(), actor,
		movement.StoreID, movement.ProductID, userID,
		audit.MovementDetails{
			MovementID: movement.ID,
			Quantity:   movement.Quantity,
			Timestamp:  time.Now(),
		})

	r.publishDomainEvents(ctx, balance)

	r.logger.Info("movement reconciled",
		zap.String("movement_id", movement.ID.String()),
		zap.String("kind", string(movement.Kind)),
		zap.Int64("requested", movement.Quantity),
		zap.Int64("applied", applied),
		zap.Int64("new_quantity", balance.Quantity),
		zap.String("actor", actor),
	)

	return result, nil
}

// runWithLockRetry re-runs the transaction when the balance row was
// modified between read and write. Each attempt re-reads the row, so the
// retry converges.
func (r *Reconciler) runWithLockRetry(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	var err error
	for attempt := 0; attempt <= maxLockRetries; attempt++ {
		err = r.txScope.Execute(ctx, fn)
		if !isLockConflict(err) {
			return err
		}
		r.logger.Debug("optimistic lock conflict, retrying",
			zap.Int("attempt", attempt+1),
		)
	}
	return err
}

func (r *Reconciler) resolveActor(ctx context.Context, userID *uuid.UUID) string {
	if userID == nil {
		return "system"
	}
	user, err := r.users.FindByID(ctx, *userID)
	if err != nil {
		r.logger.Warn("failed to resolve movement user, falling back to system",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return "system"
	}
	return user.DisplayName()
}

func (r *Reconciler) publishDomainEvents(ctx context.Context, balance *inventory.StockBalance) {
	if r.publisher == nil {
		return
	}
	events := balance.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := r.publisher.Publish(ctx, events...); err != nil {
		r.logger.Warn("failed to publish domain events", zap.Error(err))
	}
	balance.ClearDomainEvents()
}

func (r *Reconciler) noOpResult(movement *inventory.StockMovement) *ReconcileResult {
	return &ReconcileResult{
		MovementID:       movement.ID,
		StoreID:          movement.StoreID,
		ProductID:        movement.ProductID,
		Kind:             movement.Kind,
		Requested:        movement.Quantity,
		AlreadyProcessed: true,
		Summary:          "movement already processed",
	}
}

func isLockConflict(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == "OPTIMISTIC_LOCK_FAILED"
}
