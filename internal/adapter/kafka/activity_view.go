package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ActivityCounter = (*ActivityView)(nil)

// An ActivityView serves per-customer mutation counts from the
// processor's group table.
type ActivityView struct {
	gv *goka.View
}

func NewActivityView(
	seedBrokers []string, group string,
) (*ActivityView, error) {
	const op = "NewActivityView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		activityCountCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &ActivityView{gv}, nil
}

func (v *ActivityView) Run(ctx context.Context) {
	const op = "ActivityView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

func (v *ActivityView) ActivityCount(customerID string) (int64, error) {
	const op = "ActivityView.ActivityCount"

	val, err := v.gv.Get(customerID)
	if err != nil {
		return 0, opErr(err, op)
	}

	if val == nil {
		return 0, nil
	}

	count, ok := val.(activityCount)
	if !ok {
		return 0, opErr(
			fmt.Errorf("%w: %T", ErrInvalidValueType, val), op,
		)
	}
	return int64(count), nil
}
