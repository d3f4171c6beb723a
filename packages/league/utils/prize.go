package utils

import "math"

// Prize money constants, whole currency units.
const (
	WinnerBase     = 1000000 // winner starting prize
	LoserBase      = 500000  // loser starting penalty
	ConcededPer    = 50000   // per goal conceded (winner) / scored against (loser)
	YellowCardCost = 20000   // per yellow card of the own side
	RedCardCost    = 50000   // per red card of the own side
	SdSBonusAmount = 100000  // flat man-of-the-match bonus

	SettlementBase = 5      // real-money settlement minimum
	SettlementUnit = 100000 // balance shortfall per settlement unit
)

// CalculatePrizes computes the signed prize money for both clubs from the
// final score and card counts. A draw pays nothing either way.
//
//	prize(winner) = 1,000,000 - 50,000*goals(loser) - 20,000*yellow(winner) - 50,000*red(winner)
//	prize(loser)  = -(500,000 + 50,000*goals(winner) + 20,000*yellow(loser) + 50,000*red(loser))
//
// Returns (prizeAEK, prizeReal). Either value may be negative.
func CalculatePrizes(goalsAEK, goalsReal, yellowAEK, redAEK, yellowReal, redReal int) (int, int) {
	if goalsAEK == goalsReal {
		return 0, 0
	}

	if goalsAEK > goalsReal {
		winner := WinnerBase - ConcededPer*goalsReal - YellowCardCost*yellowAEK - RedCardCost*redAEK
		loser := -(LoserBase + ConcededPer*goalsAEK + YellowCardCost*yellowReal + RedCardCost*redReal)
		return winner, loser
	}

	winner := WinnerBase - ConcededPer*goalsAEK - YellowCardCost*yellowReal - RedCardCost*redReal
	loser := -(LoserBase + ConcededPer*goalsReal + YellowCardCost*yellowAEK + RedCardCost*redAEK)
	return loser, winner
}

// CalculateDebtAmount computes a club's real-money settlement amount for
// one match. balance is the club's balance before the match's prize and
// bonus were applied; gotBonus marks whether the club received the
// man-of-the-match bonus, which counts toward covering the prize.
//
//	effective  = balance (+100,000 with bonus)
//	shortfall  = max(0, (|prize| - effective) / 100,000)
//	amount     = 5 + round(shortfall)
func CalculateDebtAmount(prize, balance int, gotBonus bool) int {
	effective := balance
	if gotBonus {
		effective += SdSBonusAmount
	}

	magnitude := prize
	if magnitude < 0 {
		magnitude = -magnitude
	}

	shortfall := float64(magnitude-effective) / float64(SettlementUnit)
	if shortfall < 0 {
		shortfall = 0
	}

	return SettlementBase + int(math.Round(shortfall))
}

// SettleDebts offsets the loser's settlement amount against the winner's
// outstanding debt. The winner's debt drops by the offset; whatever the
// offset does not cover becomes new debt for the loser.
// Returns (winnerReduction, loserIncrease).
func SettleDebts(winnerDebt, loserAmount int) (int, int) {
	reduction := loserAmount
	if winnerDebt < reduction {
		reduction = winnerDebt
	}
	return reduction, loserAmount - reduction
}
