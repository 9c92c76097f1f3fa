package game

import "liferpg/internal/quest"

// RolloverResult reports what the day-boundary reconciliation did.
type RolloverResult struct {
	Applied       bool   `json:"applied"`
	Day           string `json:"day"`
	Weekday       string `json:"weekday"`
	PenaltyHP     int    `json:"penaltyHp"`
	QuestsReset   int    `json:"questsReset"`
	MissedConDuty bool   `json:"missedConDuty"`
}

// Reconcile runs the once-per-calendar-day transition. If the state was
// already checked today it returns unchanged. Otherwise it applies the
// fatigue penalty for an incomplete CON quest scheduled for today,
// clears every quest's completed flag, and stamps the new date. This is
// the only path that resets completion flags.
func (e Engine) Reconcile(s GameState) (GameState, RolloverResult) {
	now := e.now()
	today := DateString(now)
	if s.LastCheckDate == today {
		return s, RolloverResult{Applied: false, Day: today}
	}

	s = s.Clone()
	weekday := WeekdayName(now)

	// The penalty rule inspects CON quests only; other attributes cost
	// XP opportunity, not health.
	missed := false
	for _, sg := range s.Sagas {
		for _, q := range sg.Quests {
			if q.Completed || q.Attribute != quest.CON {
				continue
			}
			if q.Day == weekday || q.Day == quest.DayAll {
				missed = true
			}
		}
	}

	penalty := 0
	if missed {
		penalty = e.Balance.RolloverHPPenalty
		s.HP -= penalty
		if s.HP < 0 {
			s.HP = 0
		}
	}

	reset := 0
	for i := range s.Sagas {
		for j := range s.Sagas[i].Quests {
			if s.Sagas[i].Quests[j].Completed {
				reset++
			}
			s.Sagas[i].Quests[j].Completed = false
		}
	}

	s.LastCheckDate = today

	return s, RolloverResult{
		Applied:       true,
		Day:           today,
		Weekday:       weekday,
		PenaltyHP:     penalty,
		QuestsReset:   reset,
		MissedConDuty: missed,
	}
}
