package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePrizesWinnerAndLoser(t *testing.T) {
	// AEK wins 3:1, no cards
	prizeAEK, prizeReal := CalculatePrizes(3, 1, 0, 0, 0, 0)
	assert.Equal(t, 950000, prizeAEK)
	assert.Equal(t, -650000, prizeReal)

	// Same score the other way round mirrors the amounts
	prizeAEK, prizeReal = CalculatePrizes(1, 3, 0, 0, 0, 0)
	assert.Equal(t, -650000, prizeAEK)
	assert.Equal(t, 950000, prizeReal)
}

func TestCalculatePrizesCards(t *testing.T) {
	// Real wins 2:0 with 2 yellows and 1 red of their own,
	// AEK picks up 1 yellow
	prizeAEK, prizeReal := CalculatePrizes(0, 2, 1, 0, 2, 1)

	// winner: 1,000,000 - 0 conceded - 2*20,000 - 1*50,000
	assert.Equal(t, 910000, prizeReal)
	// loser: -(500,000 + 2*50,000 + 1*20,000)
	assert.Equal(t, -620000, prizeAEK)
}

func TestCalculatePrizesDraw(t *testing.T) {
	prizeAEK, prizeReal := CalculatePrizes(2, 2, 3, 1, 0, 0)
	assert.Equal(t, 0, prizeAEK)
	assert.Equal(t, 0, prizeReal)
}

func TestCalculateDebtAmount(t *testing.T) {
	// Balance fully covers the penalty: base amount only
	assert.Equal(t, 5, CalculateDebtAmount(-650000, 2000000, false))

	// No balance at all: 5 + round(600,000 / 100,000)
	assert.Equal(t, 11, CalculateDebtAmount(-600000, 0, false))

	// The bonus counts toward covering the penalty
	assert.Equal(t, 10, CalculateDebtAmount(-600000, 0, true))

	// Partial cover with rounding, shortfall 2.5 rounds to 3
	assert.Equal(t, 8, CalculateDebtAmount(-650000, 400000, false))
}

func TestSettleDebts(t *testing.T) {
	// Winner debt larger than the loser amount: full offset, no new debt
	reduction, increase := SettleDebts(8, 5)
	assert.Equal(t, 5, reduction)
	assert.Equal(t, 0, increase)

	// Winner debt smaller: partial offset, remainder lands on the loser
	reduction, increase = SettleDebts(3, 5)
	assert.Equal(t, 3, reduction)
	assert.Equal(t, 2, increase)

	// No winner debt: everything becomes loser debt
	reduction, increase = SettleDebts(0, 7)
	assert.Equal(t, 0, reduction)
	assert.Equal(t, 7, increase)
}
