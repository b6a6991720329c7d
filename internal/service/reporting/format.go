package reporting

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

const dateLayout = "2006-01-02"

// FormatOverview renders a pond overview as a chat message.
func FormatOverview(ov models.PondOverview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d fish, %s", pondLabel(ov.Pond), ov.Pond.Population, FormatStatus(ov.Status))
	if ov.Biomass.TotalKg > 0 {
		fmt.Fprintf(&b, "\nBiomass %.1f kg, avg %.1f g", ov.Biomass.TotalKg, ov.Biomass.AvgWeightKg*1000)
	}
	if ov.CurrentCycle != nil {
		b.WriteString("\n")
		b.WriteString(FormatCycle(*ov.CurrentCycle))
	}
	b.WriteString("\n")
	b.WriteString(FormatFeedStatus(ov.Feed))
	b.WriteString("\n")
	b.WriteString(FormatHarvest(ov.Harvest))
	if ov.Appetite.HasDrop {
		b.WriteString("\nWarning: ")
		b.WriteString(FormatAppetite(ov.Appetite))
	}
	return b.String()
}

// FormatStatus renders the density classification.
func FormatStatus(st models.UnifiedStatus) string {
	if st.Source == models.SourceBiomass {
		return fmt.Sprintf("density %s (%.2f kg/m3)", st.Status, st.BiomassDensity)
	}
	return fmt.Sprintf("density %s (%.1f fish/m3)", st.Status, st.CountDensity)
}

// FormatCycle renders one production cycle.
func FormatCycle(c models.CycleSummary) string {
	state := "closed"
	if c.Active {
		state = "active"
	}
	return fmt.Sprintf("Cycle #%d (%s, %s, %d days): feed %.1f kg, harvest %.1f kg, FCR %.2f, SR %.1f%%, profit %.0f",
		c.Number, state, c.Start.Format(dateLayout), c.DurationDays,
		c.TotalFeedKg, c.TotalHarvestKg, c.FCR, c.SurvivalRate, c.NetProfit)
}

// FormatCycles renders a cycle history.
func FormatCycles(cycles []models.CycleSummary) string {
	if len(cycles) == 0 {
		return "No production cycle yet. Log a stocking with /stock."
	}
	lines := make([]string, 0, len(cycles))
	for _, c := range cycles {
		lines = append(lines, FormatCycle(c))
	}
	return strings.Join(lines, "\n")
}

// FormatFeedStatus renders today's feeding progress.
func FormatFeedStatus(st models.FeedStatus) string {
	msg := fmt.Sprintf("Feed today %.1f/%.1f kg (%.0f%%, %s)", st.ActualKg, st.TargetKg, st.ProgressPct, st.Status)
	switch st.Schedule.Next {
	case models.NextComplete:
		return msg + ", done for today."
	case models.NextTomorrowMorning:
		return msg + ", next feeding tomorrow 05:00."
	default:
		for _, slot := range st.Schedule.Slots {
			if slot.Label == string(st.Schedule.Next) {
				return msg + fmt.Sprintf(", next %s %.1f kg.", slot.Time, slot.Kg)
			}
		}
		return msg + "."
	}
}

// FormatAppetite renders an appetite comparison.
func FormatAppetite(r models.AppetiteReport) string {
	if r.PriorAvg == 0 {
		return "Not enough feeding history to judge appetite."
	}
	if r.HasDrop {
		return fmt.Sprintf("appetite dropped %.1f%% (%.1f kg/day vs %.1f)", -r.DropPercent, r.RecentAvg, r.PriorAvg)
	}
	return fmt.Sprintf("Appetite steady (%+.1f%%, %.1f kg/day).", r.DropPercent, r.RecentAvg)
}

// FormatHarvest renders the harvest projection.
func FormatHarvest(p models.HarvestPrediction) string {
	if p.TargetReached {
		return fmt.Sprintf("Avg weight %.0f g: ready to harvest.", p.CurrentWeightG)
	}
	return fmt.Sprintf("Avg weight %.0f g: harvest in %d days (%s).", p.CurrentWeightG, p.DaysRemaining, p.ProjectedDate.Format(dateLayout))
}

func pondLabel(p models.Pond) string {
	if p.Name == "" || strings.EqualFold(p.Name, p.ID) {
		return p.ID
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.ID)
}
