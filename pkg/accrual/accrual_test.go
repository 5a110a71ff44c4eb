package accrual

import (
	"math"
	"testing"
	"time"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSaturatingArithmetic(t *testing.T) {
	assert.Equal(t, uint64(math.MaxUint64), SaturatingAdd(math.MaxUint64, 1))
	assert.Equal(t, uint64(5), SaturatingAdd(2, 3))
	assert.Equal(t, uint64(0), SaturatingSub(2, 3))
	assert.Equal(t, uint64(1), SaturatingSub(3, 2))
	assert.Equal(t, uint64(math.MaxUint64), SaturatingMul(math.MaxUint64/2, 3))
	assert.Equal(t, uint64(6), SaturatingMul(2, 3))
}

func TestAccrue(t *testing.T) {
	s := &models.Stream{SatsPerSec: 10, TotalLocked: 1000, LastReleaseTime: 100, StartTime: 100, EndTime: 200}

	t.Run("No Elapsed Time", func(t *testing.T) {
		assert.Equal(t, Release{}, Accrue(s, 100))
	})

	t.Run("Clock Behind High-Water Mark", func(t *testing.T) {
		assert.Equal(t, Release{}, Accrue(s, 50))
	})

	t.Run("Linear", func(t *testing.T) {
		assert.Equal(t, Release{Elapsed: 50, Amount: 500}, Accrue(s, 150))
	})

	t.Run("Capped At Remaining", func(t *testing.T) {
		capped := *s
		capped.TotalReleased = 900
		assert.Equal(t, Release{Elapsed: 100, Amount: 100}, Accrue(&capped, 200))
	})

	t.Run("Overflowing Rate Saturates", func(t *testing.T) {
		huge := *s
		huge.SatsPerSec = math.MaxUint64
		assert.Equal(t, uint64(1000), Accrue(&huge, 150).Amount)
	})
}

func TestApply(t *testing.T) {
	s := &models.Stream{TotalLocked: 1000, TotalReleased: 100, Buffer: 40, LastReleaseTime: 100}
	Apply(s, Release{Elapsed: 10, Amount: 50}, 110)

	assert.Equal(t, uint64(150), s.TotalReleased)
	assert.Equal(t, uint64(90), s.Buffer)
	assert.Equal(t, uint64(110), s.LastReleaseTime)

	Apply(s, Release{}, 90)
	assert.Equal(t, uint64(110), s.LastReleaseTime)
}

func TestShouldComplete(t *testing.T) {
	s := &models.Stream{TotalLocked: 1000, TotalReleased: 999, EndTime: 200}
	assert.False(t, ShouldComplete(s, 199))
	assert.True(t, ShouldComplete(s, 200))

	s.TotalReleased = 1000
	assert.True(t, ShouldComplete(s, 0))
}

func TestCancellationSplit(t *testing.T) {
	t.Run("One Percent", func(t *testing.T) {
		assert.Equal(t, models.CancelResult{Refund: 792, Fee: 8}, CancellationSplit(1000, 200, DefaultFeeRate))
	})

	t.Run("Rounds Half Away From Zero", func(t *testing.T) {
		assert.Equal(t, models.CancelResult{Refund: 148, Fee: 2}, CancellationSplit(150, 0, DefaultFeeRate))
		assert.Equal(t, models.CancelResult{Refund: 148, Fee: 1}, CancellationSplit(149, 0, DefaultFeeRate))
		assert.Equal(t, models.CancelResult{Refund: 49, Fee: 0}, CancellationSplit(49, 0, DefaultFeeRate))
	})

	t.Run("Nothing Unused", func(t *testing.T) {
		assert.Equal(t, models.CancelResult{}, CancellationSplit(100, 200, DefaultFeeRate))
	})

	t.Run("Fee Never Exceeds Unused", func(t *testing.T) {
		assert.Equal(t, models.CancelResult{Refund: 0, Fee: 10}, CancellationSplit(10, 0, decimal.NewFromInt(3)))
	})
}

func TestReclaimDeadline(t *testing.T) {
	s := &models.Stream{EndTime: 1000, LastClaimTime: 500}
	assert.Equal(t, uint64(1000+7*24*3600), ReclaimDeadline(s, DefaultReclaimTimeout))

	s.LastClaimTime = 2000
	assert.Equal(t, uint64(2000+60), ReclaimDeadline(s, time.Minute))

	s.EndTime = math.MaxUint64
	assert.Equal(t, uint64(math.MaxUint64), ReclaimDeadline(s, time.Hour))
}

func TestCrossedLowBalance(t *testing.T) {
	assert.True(t, CrossedLowBalance(1000, 850, 950, 10))
	assert.False(t, CrossedLowBalance(1000, 950, 960, 10), "already below threshold")
	assert.False(t, CrossedLowBalance(1000, 850, 1000, 10), "fully released streams complete instead")
	assert.False(t, CrossedLowBalance(1000, 0, 500, 10))
	assert.False(t, CrossedLowBalance(1000, 850, 950, 0))

	t.Run("Huge Stream", func(t *testing.T) {
		locked := uint64(math.MaxUint64)
		threshold := locked / 10
		assert.True(t, CrossedLowBalance(locked, locked-threshold, locked-threshold+1, 10))
		assert.False(t, CrossedLowBalance(locked, 0, locked/2, 10))
	})
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, uint64(100), PercentOf(1000, 10))
	assert.Equal(t, uint64(0), PercentOf(9, 10))
	assert.Equal(t, uint64(math.MaxUint64/10), PercentOf(math.MaxUint64, 10))
	assert.Equal(t, uint64(math.MaxUint64), PercentOf(math.MaxUint64, 100))
	assert.Equal(t, uint64(math.MaxUint64), PercentOf(math.MaxUint64, 200))
}
