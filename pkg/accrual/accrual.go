// Package accrual holds the arithmetic of a stream: how much has become
// releasable, when a stream is done, and how a cancellation or reclaim is
// settled. Everything here is pure and saturates instead of wrapping.
package accrual

import (
	"math"
	"math/bits"
	"time"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/shopspring/decimal"
)

// DefaultFeeRate is the share of unreleased funds kept as a cancellation fee.
var DefaultFeeRate = decimal.NewFromFloat(0.01)

// DefaultReclaimTimeout is how long a sender waits before recovering an unclaimed buffer.
const DefaultReclaimTimeout = 7 * 24 * time.Hour

// SaturatingAdd returns a+b, or MaxUint64 on overflow.
func SaturatingAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

// SaturatingSub returns a-b, or 0 when b > a.
func SaturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// SaturatingMul returns a*b, or MaxUint64 on overflow.
func SaturatingMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// Release is the outcome of one accrual step.
type Release struct {
	Elapsed uint64
	Amount  uint64
}

// Accrue computes what stream s releases at now. It does not look at status.
func Accrue(s *models.Stream, now uint64) Release {
	elapsed := SaturatingSub(now, s.LastReleaseTime)
	if elapsed == 0 {
		return Release{}
	}
	releasable := SaturatingMul(elapsed, s.SatsPerSec)
	return Release{Elapsed: elapsed, Amount: min(releasable, s.Remaining())}
}

// Apply books r into s and advances the release high-water mark to now.
func Apply(s *models.Stream, r Release, now uint64) {
	s.TotalReleased = SaturatingAdd(s.TotalReleased, r.Amount)
	s.Buffer = SaturatingAdd(s.Buffer, r.Amount)
	if now > s.LastReleaseTime {
		s.LastReleaseTime = now
	}
}

// ShouldComplete reports whether s has hit its cap or its end time.
func ShouldComplete(s *models.Stream, now uint64) bool {
	return s.TotalReleased >= s.TotalLocked || now >= s.EndTime
}

// CancellationSplit divides the unreleased part of a stream into refund and fee.
// The fee is rounded half away from zero.
func CancellationSplit(locked, released uint64, feeRate decimal.Decimal) models.CancelResult {
	unused := SaturatingSub(locked, released)
	fee := decimal.NewFromUint64(unused).Mul(feeRate).Round(0)
	feeAmount := uint64(0)
	if fee.IsPositive() {
		feeAmount = min(fee.BigInt().Uint64(), unused)
	}
	return models.CancelResult{Refund: unused - feeAmount, Fee: feeAmount}
}

// ReclaimDeadline is the first second at which a sender may reclaim s's buffer.
func ReclaimDeadline(s *models.Stream, timeout time.Duration) uint64 {
	anchor := max(s.EndTime, s.LastClaimTime)
	return SaturatingAdd(anchor, uint64(timeout/time.Second))
}

// PercentOf returns floor(v * percent / 100) without overflowing the product.
func PercentOf(v, percent uint64) uint64 {
	hi, lo := bits.Mul64(v, percent)
	if hi >= 100 {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, 100)
	return q
}

// CrossedLowBalance reports whether remaining headroom dropped below percent
// of locked between the before and after released amounts.
func CrossedLowBalance(locked, releasedBefore, releasedAfter, percent uint64) bool {
	if percent == 0 || locked == 0 {
		return false
	}
	threshold := PercentOf(locked, percent)
	before := SaturatingSub(locked, releasedBefore)
	after := SaturatingSub(locked, releasedAfter)
	return before >= threshold && after < threshold && after > 0
}
