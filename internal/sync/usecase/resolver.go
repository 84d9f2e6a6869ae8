package usecase

import (
	"time"

	syncdomain "melodica-backend/internal/sync/domain"
)

// DefaultSimultaneousThreshold is the window within which two edits are
// treated as concurrent and escalated instead of auto-resolved.
const DefaultSimultaneousThreshold = time.Minute

// ResolverConfig controls the conflict resolution policy.
type ResolverConfig struct {
	ManualReviewEnabled   bool
	SimultaneousThreshold time.Duration
}

// ResolveConflict applies the resolution policy to a detected conflict.
// Edits within the simultaneous threshold escalate to manual review (when
// enabled); otherwise last-write-wins, with the local side winning only
// when strictly newer. Pure decision function, never touches storage.
func ResolveConflict(info *syncdomain.ConflictInfo, cfg ResolverConfig) syncdomain.Verdict {
	threshold := cfg.SimultaneousThreshold
	if threshold <= 0 {
		threshold = DefaultSimultaneousThreshold
	}

	if cfg.ManualReviewEnabled && time.Duration(info.TimeDifferenceMs)*time.Millisecond < threshold {
		return syncdomain.VerdictManualReview
	}
	if info.LessonUpdated.After(info.RemoteUpdated) {
		return syncdomain.VerdictUseLocal
	}
	return syncdomain.VerdictUseRemote
}
