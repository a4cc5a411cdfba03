package tracking

import (
	"fmt"
	"time"

	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/tracker"
	"github.com/julianstephens/growthlog/internal/utils"
)

type LogCmd struct {
	Delta int `arg:"" help:"Loops to add (negative to correct)."`
}

func (cmd *LogCmd) Run(ctx *cli.Context) error {
	if cmd.Delta == 0 {
		return fmt.Errorf("delta cannot be zero")
	}
	now := ctx.Now()
	st := ctx.State()
	tracker.LogLoops(&st, cmd.Delta, now)
	if err := ctx.SaveState(st); err != nil {
		return err
	}
	ctx.Printf("✓ %d loop(s) today · streak %d\n", st.DailyUvs[utils.Today(now)], st.Streak)
	return nil
}

type ShipCmd struct {
	Note string `help:"What you shipped."`
	Undo bool   `help:"Clear today's honor code."`
}

func (cmd *ShipCmd) Run(ctx *cli.Context) error {
	st := ctx.State()
	tracker.SetShipped(&st, !cmd.Undo, cmd.Note, ctx.Now())
	if err := ctx.SaveState(st); err != nil {
		return err
	}
	if cmd.Undo {
		ctx.Println("✓ Honor code cleared for today")
	} else {
		ctx.Printf("🚀 Shipped · streak %d\n", st.Streak)
	}
	return nil
}

type BreakCmd struct {
	State string `arg:"" enum:"on,off" help:"Turn break mode on or off."`
}

func (cmd *BreakCmd) Run(ctx *cli.Context) error {
	st := ctx.State()
	tracker.SetBreak(&st, cmd.State == "on", ctx.Now())
	if err := ctx.SaveState(st); err != nil {
		return err
	}
	ctx.Printf("✓ Break mode %s · streak %d\n", cmd.State, st.Streak)
	return nil
}

type PostCmd struct {
	Text string `arg:"" help:"Today's post (160 characters max). Empty clears it."`
}

func (cmd *PostCmd) Run(ctx *cli.Context) error {
	st := ctx.State()
	tracker.SavePost(&st, cmd.Text, ctx.Now())
	if err := ctx.SaveState(st); err != nil {
		return err
	}
	if post := st.DailyInputPost[ctx.Today()]; post != "" {
		ctx.Printf("✓ Posted: %s\n", post)
	} else {
		ctx.Println("✓ Post cleared")
	}
	return nil
}

type RecordCmd struct {
	Minutes float64 `required:"" help:"Session length in minutes."`
	Post    string  `arg:"" help:"What you worked on."`
}

func (cmd *RecordCmd) Run(ctx *cli.Context) error {
	if cmd.Minutes < 0 {
		return fmt.Errorf("minutes cannot be negative")
	}
	st := ctx.State()
	elapsed := time.Duration(cmd.Minutes * float64(time.Minute))
	if !tracker.RecordSession(&st, elapsed, cmd.Post, ctx.Now()) {
		ctx.Println("Nothing recorded: the post is empty.")
		return nil
	}
	if err := ctx.SaveState(st); err != nil {
		return err
	}
	ctx.Printf("✓ Recorded %s (%.2fh) · streak %d\n", tracker.FormatElapsed(elapsed), tracker.RoundHours(elapsed), st.Streak)
	return nil
}
