package profile

import (
	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/streak"
	"github.com/julianstephens/growthlog/internal/tracker"
)

type ProfileCmd struct {
	Show  ProfileShowCmd  `cmd:"" default:"1" help:"Show your profile."`
	Name  ProfileNameCmd  `cmd:"" help:"Set your display name."`
	Bio   ProfileBioCmd   `cmd:"" help:"Set your bio."`
	Photo ProfilePhotoCmd `cmd:"" help:"Set your photo path or URL."`
}

type ProfileShowCmd struct{}

func (cmd *ProfileShowCmd) Run(ctx *cli.Context) error {
	st := ctx.State()
	ctx.Printf("Name:      %s\n", ctx.Store.DisplayName())
	ctx.Printf("Objective: %s\n", st.GrowthObjective)
	ctx.Printf("KPI:       %s\n", st.DefaultKpi)
	if st.ProfileBio != "" {
		ctx.Printf("Bio:       %s\n", st.ProfileBio)
	}
	if st.ProfilePhoto != "" {
		ctx.Printf("Photo:     %s\n", st.ProfilePhoto)
	}
	ctx.Printf("Streak:    %d\n", streak.ForState(&st, ctx.Today()))
	ctx.Printf("Loops:     %d total\n", st.TotalLoops())
	ctx.Printf("Timezone:  %s\n", ctx.Timezone())

	ctx.Println("\nAchievements:")
	for _, a := range st.Achievements {
		mark := "○"
		if a.Unlocked {
			mark = "✓"
		}
		ctx.Printf("  %s %s %-20s %d/%d\n", mark, a.Icon, a.Title, min(a.Progress, a.Target), a.Target)
	}
	return nil
}

type ProfileNameCmd struct {
	Name string `arg:"" help:"Display name used in groups and links."`
}

func (cmd *ProfileNameCmd) Run(ctx *cli.Context) error {
	old := ctx.Store.DisplayName()
	if err := ctx.Store.SetDisplayName(cmd.Name); err != nil {
		return err
	}
	ctx.Printf("✓ Display name: %s\n", ctx.Store.DisplayName())
	if old != ctx.Store.DisplayName() {
		ctx.Println("  Group memberships under your old name are not renamed.")
	}
	return nil
}

type ProfileBioCmd struct {
	Bio string `arg:"" help:"Short bio. Empty clears it."`
}

func (cmd *ProfileBioCmd) Run(ctx *cli.Context) error {
	st := ctx.State()
	tracker.UpdateProfile(&st, &cmd.Bio, nil)
	if err := ctx.SaveState(st); err != nil {
		return err
	}
	ctx.Println("✓ Bio updated")
	return nil
}

type ProfilePhotoCmd struct {
	Photo string `arg:"" help:"Photo path or URL. Empty clears it."`
}

func (cmd *ProfilePhotoCmd) Run(ctx *cli.Context) error {
	st := ctx.State()
	tracker.UpdateProfile(&st, nil, &cmd.Photo)
	if err := ctx.SaveState(st); err != nil {
		return err
	}
	ctx.Println("✓ Photo updated")
	return nil
}
