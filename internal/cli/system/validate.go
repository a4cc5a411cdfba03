package system

import (
	"fmt"

	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Repair conflicts that can be fixed safely."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	today := ctx.Today()
	st := ctx.State()

	result := validation.ValidateState(&st, today)
	if !result.HasConflicts() {
		ctx.Println(result.FormatReport())
		return nil
	}
	ctx.Printf("%s", result.FormatReport())

	if !c.Fix {
		ctx.Println("\nRun with --fix to repair what can be repaired automatically.")
		if blocking := result.Blocking(); len(blocking) > 0 {
			return fmt.Errorf("%d conflict(s) found", len(blocking))
		}
		return nil
	}

	actions := validation.Fix(&st, today, result)
	if len(actions) == 0 {
		ctx.Println("\nNothing could be fixed automatically.")
		return nil
	}
	if err := ctx.SaveState(st); err != nil {
		return fmt.Errorf("failed to save repaired state: %w", err)
	}

	ctx.Println("\nFixes applied:")
	for _, a := range actions {
		ctx.Printf("  ✓ %s\n", a.Action)
	}

	if remaining := validation.ValidateState(&st, today); remaining.HasConflicts() {
		ctx.Printf("\n%d conflict(s) need manual attention.\n", len(remaining.Conflicts))
	}
	return nil
}
