package health

import (
	"context"
	"fmt"

	"github.com/msto63/elm/foundation/core/alloc"
	elmlog "github.com/msto63/elm/foundation/core/log"
	"github.com/msto63/elm/pkg/core/logging"
)

// degradedRatio is the share of the live error limit above which the
// allocation check reports degraded.
const degradedRatio = 0.8

// AllocCheck reports the live error values held by tracker. With a limit,
// the check degrades past 80% of it and fails at the limit.
func AllocCheck(tracker *alloc.Tracker, limit int) Checker {
	return NewChecker("alloc", func(ctx context.Context) CheckResult {
		st := tracker.Stats()
		result := CheckResult{
			Name:   "alloc",
			Status: StatusHealthy,
			Details: map[string]interface{}{
				"live":     st.Live,
				"acquired": st.Acquired,
				"released": st.Released,
				"limit":    limit,
			},
			Message: fmt.Sprintf("%d live error values", st.Live),
		}

		switch {
		case limit > 0 && st.Live >= limit:
			result.Status = StatusUnhealthy
		case limit > 0 && float64(st.Live) >= degradedRatio*float64(limit):
			result.Status = StatusDegraded
		}
		return result
	})
}

// LoggerCheck fails once the last reference to l has been released
func LoggerCheck(l *elmlog.Shared) Checker {
	name := "logger:" + l.Name()
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{
			Name:    name,
			Status:  StatusHealthy,
			Details: map[string]interface{}{"refs": l.Refs(), "discards": l.Discards()},
			Message: "open",
		}
		if l.Refs() <= 0 {
			result.Status = StatusUnhealthy
			result.Message = "released"
		}
		return result
	})
}

// ArchiveCheck verifies that the archive database answers
func ArchiveCheck(name string, w *logging.ArchiveWriter) Checker {
	name = "archive:" + name
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{
			Name:    name,
			Status:  StatusHealthy,
			Details: map[string]interface{}{"session": w.Session()},
			Message: "reachable",
		}
		if err := w.Ping(ctx); err != nil {
			result.Status = StatusUnhealthy
			result.Message = err.Error()
		}
		return result
	})
}
