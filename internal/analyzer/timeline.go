package analyzer

import "github.com/Sveder/riftwind/internal/model"

// sameTeamRoster reports whether two participant IDs sit on the same side.
// Match-v5 numbers the blue team 1-5 and the red team 6-10; participantId 0
// marks minion, tower and monster contributions and never matches.
func sameTeamRoster(a, b int) bool {
	if a < 1 || b < 1 {
		return false
	}
	return (a <= 5) == (b <= 5)
}

// KillStealInsight measures how often the player's kills were mostly the
// team's work.
type KillStealInsight struct {
	Kills      int     `json:"kills"`       // kills with team damage recorded
	Steals     int     `json:"steals"`      // kills below the damage-share threshold
	StealRate  float64 `json:"steal_rate"`  // percent of countable kills
	WorstShare float64 `json:"worst_share"` // lowest own-damage share seen, percent
}

// detectKillSteals walks the timeline kill events. For each CHAMPION_KILL
// where the player is the killer, the own-team damage to the victim is
// summed from the death recap; an own share under cfg.KillStealShare makes
// the kill a steal. Kills with zero recorded team damage are excluded from
// the denominator rather than counted.
func detectKillSteals(repo *model.MatchRepository, cfg Config) (KillStealInsight, bool) {
	out := KillStealInsight{WorstShare: 100}
	for _, m := range repo.Matches {
		tl := repo.Timelines[m.MatchID]
		if tl == nil || m.ParticipantID == 0 {
			continue
		}
		pid := m.ParticipantID
		for _, frame := range tl.Frames {
			for _, ev := range frame.Events {
				if ev.Type != "CHAMPION_KILL" || ev.KillerID != pid {
					continue
				}
				teamTotal, own := 0, 0
				for _, dmg := range ev.VictimDamageReceived {
					if !sameTeamRoster(dmg.ParticipantID, pid) {
						continue
					}
					teamTotal += dmg.Total()
					if dmg.ParticipantID == pid {
						own += dmg.Total()
					}
				}
				if teamTotal == 0 {
					continue
				}
				out.Kills++
				share := float64(own) / float64(teamTotal)
				if share*100 < out.WorstShare {
					out.WorstShare = round1(share * 100)
				}
				if share < cfg.KillStealShare {
					out.Steals++
				}
			}
		}
	}
	if out.Kills == 0 {
		return KillStealInsight{}, false
	}
	out.StealRate = round1(float64(out.Steals) / float64(out.Kills) * 100)
	return out, true
}

// ComebackInsight counts games won from a gold deficit.
type ComebackInsight struct {
	DeficitGames int     `json:"deficit_games"`
	Comebacks    int     `json:"comebacks"`
	ComebackRate float64 `json:"comeback_rate"`
	WorstDeficit int     `json:"worst_deficit"` // largest deficit later converted to a win
}

// frameAtMinute returns the first frame at or after the given minute mark.
func frameAtMinute(tl *model.TimelineData, minute int) *model.TimelineFrame {
	cutoff := minute * 60_000
	for i := range tl.Frames {
		if tl.Frames[i].Timestamp >= cutoff {
			return &tl.Frames[i]
		}
	}
	return nil
}

// teamGold sums totalGold for one side of the participant frame map.
// Frames key participants "1".."10".
func teamGold(frame *model.TimelineFrame, blue bool) int {
	keys := []string{"1", "2", "3", "4", "5"}
	if !blue {
		keys = []string{"6", "7", "8", "9", "10"}
	}
	total := 0
	for _, k := range keys {
		total += frame.ParticipantFrames[k].TotalGold
	}
	return total
}

// comebackPotential classifies each timeline-backed match by the team gold
// deficit at the cfg.ComebackFrameMinute mark; a deficit of at least
// cfg.ComebackGoldDeficit followed by a win is a comeback. Needs one
// qualifying deficit game.
func comebackPotential(repo *model.MatchRepository, cfg Config) (ComebackInsight, bool) {
	var out ComebackInsight
	for _, m := range repo.Matches {
		tl := repo.Timelines[m.MatchID]
		if tl == nil || m.ParticipantID == 0 {
			continue
		}
		frame := frameAtMinute(tl, cfg.ComebackFrameMinute)
		if frame == nil || len(frame.ParticipantFrames) == 0 {
			continue
		}
		blue := m.ParticipantID <= 5
		deficit := teamGold(frame, !blue) - teamGold(frame, blue)
		if deficit < cfg.ComebackGoldDeficit {
			continue
		}
		out.DeficitGames++
		if m.Win {
			out.Comebacks++
			if deficit > out.WorstDeficit {
				out.WorstDeficit = deficit
			}
		}
	}
	if out.DeficitGames == 0 {
		return ComebackInsight{}, false
	}
	out.ComebackRate = round1(float64(out.Comebacks) / float64(out.DeficitGames) * 100)
	return out, true
}

// PhaseStats is aggregate KDA inside one game phase.
type PhaseStats struct {
	Kills   int     `json:"kills"`
	Deaths  int     `json:"deaths"`
	Assists int     `json:"assists"`
	KDA     float64 `json:"kda"`
}

// PowerSpikeInsight splits kill participation into early, mid and late game.
type PowerSpikeInsight struct {
	Early     PhaseStats `json:"early"`
	Mid       PhaseStats `json:"mid"`
	Late      PhaseStats `json:"late"`
	BestPhase string     `json:"best_phase"`
}

// powerSpikes aggregates the player's kill-event participation per phase
// across all timeline-backed matches. Best phase is the highest KDA; ties
// resolve in fixed early > mid > late precedence.
func powerSpikes(repo *model.MatchRepository, cfg Config) (PowerSpikeInsight, bool) {
	var out PowerSpikeInsight
	counted := false
	for _, m := range repo.Matches {
		tl := repo.Timelines[m.MatchID]
		if tl == nil || m.ParticipantID == 0 {
			continue
		}
		pid := m.ParticipantID
		for _, frame := range tl.Frames {
			for _, ev := range frame.Events {
				if ev.Type != "CHAMPION_KILL" {
					continue
				}
				var phase *PhaseStats
				switch minute := ev.Timestamp / 60_000; {
				case minute < cfg.EarlyPhaseEndMinute:
					phase = &out.Early
				case minute < cfg.MidPhaseEndMinute:
					phase = &out.Mid
				default:
					phase = &out.Late
				}
				involved := false
				if ev.KillerID == pid {
					phase.Kills++
					involved = true
				}
				if ev.VictimID == pid {
					phase.Deaths++
					involved = true
				}
				for _, a := range ev.AssistingParticipantIDs {
					if a == pid {
						phase.Assists++
						involved = true
						break
					}
				}
				if involved {
					counted = true
				}
			}
		}
	}
	if !counted {
		return PowerSpikeInsight{}, false
	}

	phases := []struct {
		name  string
		stats *PhaseStats
	}{
		{"early", &out.Early},
		{"mid", &out.Mid},
		{"late", &out.Late},
	}
	best := phases[0]
	for _, p := range phases {
		p.stats.KDA = round2(kdaOf(p.stats.Kills, p.stats.Deaths, p.stats.Assists))
	}
	for _, p := range phases[1:] {
		if p.stats.KDA > best.stats.KDA {
			best = p
		}
	}
	out.BestPhase = best.name
	return out, true
}
