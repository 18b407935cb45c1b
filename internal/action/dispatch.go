package action

import (
	"context"
	"fmt"

	"hoteldesk/internal/result"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher resolves action ids against one registry and runs them.
type Dispatcher struct {
	registry *Registry
	logger   *zap.Logger
}

func NewDispatcher(registry *Registry, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		registry: registry,
		logger:   logger.With(zap.String("role", string(registry.Role()))),
	}
}

func (d *Dispatcher) Registry() *Registry { return d.registry }

// Dispatch returns the handler's result, or its failure unchanged. An id the
// registry does not know yields ErrUnknownAction and is logged as a bug.
func (d *Dispatcher) Dispatch(ctx context.Context, actionID string, values Values, actx Context) (result.Result, error) {
	desc, ok := d.registry.Lookup(actionID)
	if !ok {
		d.logger.Error("dispatch against unknown action", zap.String("action", actionID))
		return result.Result{}, fmt.Errorf("%w: %s", ErrUnknownAction, actionID)
	}

	dispatchID := uuid.NewString()
	d.logger.Debug("dispatching action",
		zap.String("action", actionID),
		zap.String("dispatch_id", dispatchID),
		zap.String("user_id", actx.UserID),
	)

	res, err := desc.Run(ctx, values, actx)
	if err != nil {
		d.logger.Debug("action failed",
			zap.String("action", actionID),
			zap.String("dispatch_id", dispatchID),
			zap.Error(err),
		)
		return result.Result{}, err
	}
	return res, nil
}
