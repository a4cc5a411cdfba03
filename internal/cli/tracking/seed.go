package tracking

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/tracker"
)

// SeedCmd fills the history with simulated activity for demos.
type SeedCmd struct {
	Days int   `arg:"" default:"30" help:"Days of history to simulate."`
	Seed int64 `help:"Random seed (defaults to the current time)."`
	Yes  bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (cmd *SeedCmd) Run(ctx *cli.Context) error {
	if cmd.Days <= 0 {
		return fmt.Errorf("days must be positive")
	}
	if !cmd.Yes {
		ok, err := ctx.Prompt.Confirm("Overwrite history with simulated data?", fmt.Sprintf("The last %d days will be replaced.", cmd.Days))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Seed cancelled.")
			return nil
		}
	}

	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	st := ctx.State()
	tracker.Seed(&st, cmd.Days, ctx.Now(), rand.New(rand.NewSource(seed)))
	if err := ctx.SaveState(st); err != nil {
		return err
	}
	ctx.Printf("✓ Seeded %d days · streak %d · %d total loops\n", cmd.Days, st.Streak, st.TotalLoops())
	return nil
}
