package tracking

import (
	"strings"

	"github.com/julianstephens/growthlog/internal/challenges"
	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/streak"
	"github.com/julianstephens/growthlog/internal/tracker"
)

type StatusCmd struct{}

func (cmd *StatusCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()
	today := ctx.Today()
	st := ctx.State()

	ctx.Printf("%s · %s\n\n", ctx.Store.DisplayName(), today)
	ctx.Printf("🔥 Streak: %d day(s) (best %d)\n", streak.ForState(&st, today),
		streak.Longest(st.GrowthDates, st.DailyInfrastructureFocus, st.DailyShipped))
	ctx.Printf("Loops today: %d\n", st.DailyUvs[today])
	ctx.Printf("Shipped today: %s\n", yesNo(st.DailyShipped[today]))
	if note := st.DailyShipNote[today]; note != "" {
		ctx.Printf("  Note: %s\n", note)
	}
	if st.IsOnMaintenance {
		ctx.Println("Break mode: ON")
	}
	if post := st.DailyInputPost[today]; post != "" {
		ctx.Printf("Post: %s\n", post)
	}

	ctx.Printf("\nLast 7 days: %s\n", heatmapLine(tracker.WeekHeatmap(&st, now)))

	ctx.Println("\nChallenges:")
	for _, s := range challenges.Evaluate(ctx.Store.Challenges(now), &st, today) {
		mark := "○"
		if s.Complete() {
			mark = "✓"
		}
		ctx.Printf("  %s %-24s %d/%d (%d%%)\n", mark, s.Challenge.Name, s.Progress, s.Challenge.Target, s.Percent())
	}

	if unlocked := tracker.Unlocked(&st); len(unlocked) > 0 {
		ctx.Println("\nAchievements:")
		for _, a := range unlocked {
			ctx.Printf("  %s %s\n", a.Icon, a.Title)
		}
	}
	return nil
}

func heatmapLine(days []tracker.HeatmapDay) string {
	var b strings.Builder
	for _, d := range days {
		switch {
		case d.IsFocus:
			b.WriteString("◇")
		case d.Intensity() >= 0.5:
			b.WriteString("█")
		case d.HasActivity():
			b.WriteString("▄")
		default:
			b.WriteString("·")
		}
	}
	return b.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
