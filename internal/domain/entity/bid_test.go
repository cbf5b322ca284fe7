package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBidStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BidStatus
		to      BidStatus
		allowed bool
	}{
		{BidStatusPending, BidStatusActive, true},
		{BidStatusPending, BidStatusAccepted, true},
		{BidStatusPending, BidStatusRejected, true},
		{BidStatusPending, BidStatusWon, true},
		{BidStatusPending, BidStatusLost, true},
		{BidStatusPending, BidStatusPaid, false},
		{BidStatusActive, BidStatusAccepted, true},
		{BidStatusActive, BidStatusPaid, false},
		{BidStatusAccepted, BidStatusPaid, true},
		{BidStatusAccepted, BidStatusLost, true},
		{BidStatusAccepted, BidStatusRejected, false},
		{BidStatusWon, BidStatusPaid, true},
		{BidStatusWon, BidStatusLost, true},
		{BidStatusRejected, BidStatusActive, false},
		{BidStatusLost, BidStatusWon, false},
		{BidStatusPaid, BidStatusLost, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestBidStatusPredicates(t *testing.T) {
	assert.True(t, BidStatusPending.Open())
	assert.True(t, BidStatusActive.Open())
	assert.False(t, BidStatusWon.Open())

	assert.True(t, BidStatusAccepted.Winning())
	assert.True(t, BidStatusWon.Winning())
	assert.True(t, BidStatusPaid.Winning())
	assert.False(t, BidStatusPending.Winning())

	assert.True(t, BidStatusRejected.Terminal())
	assert.True(t, BidStatusLost.Terminal())
	assert.True(t, BidStatusPaid.Terminal())
	assert.False(t, BidStatusAccepted.Terminal())

	assert.False(t, BidStatus("cancelled").Valid())
}

func TestDeriveWonFields(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)

	isWon, wonAt := DeriveWonFields(BidStatusWon, nil, now)
	assert.True(t, isWon)
	if assert.NotNil(t, wonAt) {
		assert.Equal(t, now, *wonAt)
	}

	// An already-stamped wonAt survives further winning transitions.
	isWon, wonAt = DeriveWonFields(BidStatusPaid, &earlier, now)
	assert.True(t, isWon)
	if assert.NotNil(t, wonAt) {
		assert.Equal(t, earlier, *wonAt)
	}

	// Leaving the winning set clears both fields.
	isWon, wonAt = DeriveWonFields(BidStatusLost, &earlier, now)
	assert.False(t, isWon)
	assert.Nil(t, wonAt)
}

func TestBidTransition(t *testing.T) {
	now := time.Now()
	bid := &Bid{Status: BidStatusPending}

	assert.NoError(t, bid.Transition(BidStatusWon, now))
	assert.Equal(t, BidStatusWon, bid.Status)
	assert.True(t, bid.IsWon)
	if assert.NotNil(t, bid.WonAt) {
		assert.Equal(t, now, *bid.WonAt)
	}

	later := now.Add(time.Minute)
	assert.NoError(t, bid.Transition(BidStatusPaid, later))
	assert.Equal(t, now, *bid.WonAt)

	err := bid.Transition(BidStatusLost, later)
	assert.Error(t, err)
	assert.Equal(t, BidStatusPaid, bid.Status)
}

func TestBidTransitionRejectsUnknownStatus(t *testing.T) {
	bid := &Bid{Status: BidStatusPending}
	assert.Error(t, bid.Transition(BidStatus("archived"), time.Now()))
}
