package profile

import (
	"github.com/julianstephens/growthlog/internal/challenges"
	"github.com/julianstephens/growthlog/internal/cli"
)

type ChallengeCmd struct {
	List  ChallengeListCmd  `cmd:"" default:"1" help:"Show challenge progress."`
	Reset ChallengeResetCmd `cmd:"" help:"Reset to this week's default challenges."`
}

type ChallengeListCmd struct{}

func (cmd *ChallengeListCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()
	st := ctx.State()
	for _, s := range challenges.Evaluate(ctx.Store.Challenges(now), &st, ctx.Today()) {
		mark := "○"
		if s.Complete() {
			mark = "✓"
		}
		ctx.Printf("%s %-24s %3d/%-3d %3d%%  %s → %s\n", mark, s.Challenge.Name, s.Progress, s.Challenge.Target,
			s.Percent(), s.Challenge.StartDate, s.Challenge.EndDate)
	}
	return nil
}

type ChallengeResetCmd struct{}

func (cmd *ChallengeResetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ResetChallenges(); err != nil {
		return err
	}
	ctx.Println("✓ Challenges reset to this week's defaults")
	return nil
}
