package landstate

import "github.com/blz111/qq-farm-bot/internal/domain"

// CurrentPhase returns the latest phase, scanning from the end, whose begin
// time is set and not after now. When no phase has begun the first phase is
// returned. ok is false only for an empty list.
//
// The first-phase fallback covers clock skew and plants whose timeline the
// server has not started yet; it has not been confirmed against server traces.
func CurrentPhase(phases []domain.Phase, now int64) (phase domain.Phase, ok bool) {
	if len(phases) == 0 {
		return domain.Phase{}, false
	}
	for i := len(phases) - 1; i >= 0; i-- {
		if b := phases[i].BeginTime; b > 0 && b <= now {
			return phases[i], true
		}
	}
	return phases[0], true
}

// earliestBegin returns the smallest positive begin time
func earliestBegin(phases []domain.Phase) (int64, bool) {
	var earliest int64
	for _, p := range phases {
		if p.BeginTime > 0 && (earliest == 0 || p.BeginTime < earliest) {
			earliest = p.BeginTime
		}
	}
	return earliest, earliest > 0
}

// matureBegin returns the begin time of the first phase tagged mature
func matureBegin(phases []domain.Phase) (int64, bool) {
	for _, p := range phases {
		if p.Tag.IsMature() && p.BeginTime > 0 {
			return p.BeginTime, true
		}
	}
	return 0, false
}

// RemainingTime estimates seconds until maturity. The earliest future mature
// begin wins; otherwise configured grow time minus elapsed time since the
// earliest begin, floored at zero. known is false when neither applies.
func RemainingTime(phases []domain.Phase, now, configuredGrow int64) (remaining int64, known bool) {
	var next int64
	for _, p := range phases {
		if p.Tag.IsMature() && p.BeginTime > now && (next == 0 || p.BeginTime < next) {
			next = p.BeginTime
		}
	}
	if next > 0 {
		return next - now, true
	}

	start, ok := earliestBegin(phases)
	if !ok || configuredGrow <= 0 {
		return 0, false
	}
	remaining = configuredGrow - (now - start)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// TotalGrowTime is mature begin minus earliest begin when both are known,
// otherwise the configured grow time
func TotalGrowTime(phases []domain.Phase, configuredGrow int64) int64 {
	mature, okMature := matureBegin(phases)
	start, okStart := earliestBegin(phases)
	if okMature && okStart && mature > start {
		return mature - start
	}
	return configuredGrow
}
