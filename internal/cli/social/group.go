package social

import (
	"errors"
	"fmt"

	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/sharelink"
	"github.com/julianstephens/growthlog/internal/storage"
	"github.com/julianstephens/growthlog/internal/streak"
)

type GroupCmd struct {
	Create GroupCreateCmd `cmd:"" help:"Create a group with you as its first member."`
	List   GroupListCmd   `cmd:"" default:"1" help:"List groups and members."`
	Link   GroupLinkCmd   `cmd:"" help:"Print a join link for a group."`
	Delete GroupDeleteCmd `cmd:"" help:"Delete a group."`
}

type GroupCreateCmd struct {
	Name string `arg:"" help:"Group name."`
}

func (cmd *GroupCreateCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Store.CreateGroup(cmd.Name, ctx.Store.DisplayName(), ctx.State(), ctx.Now())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Created group %s (%s)\n", g.Name, g.ID)
	ctx.Printf("Invite link:\n%s\n", sharelink.JoinLink(ctx.ShareBase(), g))
	return nil
}

type GroupListCmd struct{}

func (cmd *GroupListCmd) Run(ctx *cli.Context) error {
	groups := models.SortedGroups(ctx.Store.Groups())
	if len(groups) == 0 {
		ctx.Println("No groups yet. Create one with 'growthlog group create <name>'.")
		return nil
	}

	today := ctx.Today()
	for _, g := range groups {
		ctx.Printf("%s  (%s)\n", g.Name, g.ID)
		for _, m := range g.Members {
			ctx.Printf("  %s\n", personLine(m.Name, &m.UserState, today))
		}
	}
	return nil
}

// personLine shows a person's fresh streak and today's markers.
func personLine(name string, st *models.UserState, today string) string {
	line := fmt.Sprintf("%-20s 🔥 %d", name, streak.ForState(st, today))
	if st.DailyShipped[today] {
		line += "  🚀"
	}
	if n := st.DailyUvs[today]; n > 0 {
		line += fmt.Sprintf("  📈 %d", n)
	}
	if st.IsOnMaintenance {
		line += "  🛠"
	}
	return line
}

type GroupLinkCmd struct {
	ID string `arg:"" help:"Group id."`
}

func (cmd *GroupLinkCmd) Run(ctx *cli.Context) error {
	g, ok := ctx.Store.Groups()[cmd.ID]
	if !ok {
		return fmt.Errorf("group not found: %s", cmd.ID)
	}
	ctx.Println(sharelink.JoinLink(ctx.ShareBase(), g))
	return nil
}

type GroupDeleteCmd struct {
	ID  string `arg:"" help:"Group id."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (cmd *GroupDeleteCmd) Run(ctx *cli.Context) error {
	g, ok := ctx.Store.Groups()[cmd.ID]
	if !ok {
		return fmt.Errorf("group not found: %s", cmd.ID)
	}
	if !cmd.Yes {
		confirmed, err := ctx.Prompt.Confirm(fmt.Sprintf("Delete group %s?", g.Name), "Members keep their own copies.")
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}
	if err := ctx.Store.DeleteGroup(cmd.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("group not found: %s", cmd.ID)
		}
		return err
	}
	ctx.Printf("✓ Deleted group %s\n", g.Name)
	return nil
}
