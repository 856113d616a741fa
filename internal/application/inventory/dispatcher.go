package inventory

import (
	"context"

	"github.com/bazaartech/backend/internal/infrastructure/queue"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskReconcileMovement is the queue task name for movement reconciliation
const TaskReconcileMovement = "inventory.reconcile_movement"

type reconcileTaskArgs struct {
	MovementID uuid.UUID  `json:"movement_id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
}

// Dispatcher routes movement reconciliation to the work queue, falling
// back to synchronous inline execution when the queue is unavailable.
// Both paths run the same Reconciler.
type Dispatcher struct {
	queue      queue.TaskQueue
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewDispatcher creates a Dispatcher
func NewDispatcher(taskQueue queue.TaskQueue, reconciler *Reconciler, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		queue:      taskQueue,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Submit dispatches the reconciliation of one movement, exactly once per
// movement creation. It is fire-and-forget: the movement row is already
// durable, so reconciliation failures are logged rather than returned.
func (d *Dispatcher) Submit(ctx context.Context, movementID uuid.UUID, userID *uuid.UUID) {
	task, err := queue.NewTask(TaskReconcileMovement, reconcileTaskArgs{
		MovementID: movementID,
		UserID:     userID,
	})
	if err != nil {
		d.logger.Error("failed to build reconcile task, running inline",
			zap.String("movement_id", movementID.String()),
			zap.Error(err),
		)
		d.runInline(ctx, movementID, userID)
		return
	}

	if err := d.queue.Enqueue(ctx, task); err != nil {
		d.logger.Warn("enqueue failed, reconciling inline",
			zap.String("movement_id", movementID.String()),
			zap.Error(err),
		)
		d.runInline(ctx, movementID, userID)
		return
	}

	d.logger.Debug("reconcile task enqueued",
		zap.String("movement_id", movementID.String()),
		zap.String("task_id", task.ID.String()),
	)
}

func (d *Dispatcher) runInline(ctx context.Context, movementID uuid.UUID, userID *uuid.UUID) {
	if _, err := d.reconciler.Reconcile(ctx, movementID, userID); err != nil {
		d.logger.Error("inline reconciliation failed",
			zap.String("movement_id", movementID.String()),
			zap.Error(err),
		)
	}
}

// RegisterHandlers binds the reconcile task to the worker registry
func (d *Dispatcher) RegisterHandlers(registry *queue.Registry) {
	registry.Register(TaskReconcileMovement, d.handleReconcileTask)
}

// handleReconcileTask is the queue worker entry point. Errors propagate
// to the worker pool, which surfaces transient ones for redelivery.
func (d *Dispatcher) handleReconcileTask(ctx context.Context, task queue.Task) error {
	var args reconcileTaskArgs
	if err := task.DecodeArgs(&args); err != nil {
		d.logger.Error("malformed reconcile task payload",
			zap.String("task_id", task.ID.String()),
			zap.Error(err),
		)
		return err
	}

	_, err := d.reconciler.Reconcile(ctx, args.MovementID, args.UserID)
	return err
}
