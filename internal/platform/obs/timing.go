package obs

import (
	"context"
	"time"

	"elevator-sim-service/internal/platform/logger"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time logs how long an operation took once the returned func runs.
// Pass the address of the named error result to log failures too.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			logger.Get().Warn().Msgf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		logger.Get().Debug().Msgf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
