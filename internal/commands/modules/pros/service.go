package pros

import (
	"context"

	"voidbot/internal/commands/types"
)

// rosterWarmSpec keeps the shared roster cache fresh so list commands rarely
// pay a cold fetch.
const rosterWarmSpec = "@every 10m"

// Service owns the recurring roster cache warm task.
type Service struct {
	types.BaseService
	deps *types.Dependencies
}

// Jobs returns the roster warm task for the scheduler.
func (s *Service) Jobs() []types.ScheduledJob {
	return []types.ScheduledJob{{
		Spec: rosterWarmSpec,
		Name: "roster-cache-warm",
		Fn:   s.warm,
	}}
}

func (s *Service) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	if _, err := s.deps.Site.Roster(ctx); err != nil {
		s.deps.Config.Logger.Warn("Roster cache warm failed", "error", err)
	}
}
