package social

import (
	"errors"
	"fmt"

	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/sharelink"
	"github.com/julianstephens/growthlog/internal/storage"
)

type FollowCmd struct {
	Link   FollowLinkCmd   `cmd:"" help:"Print your follow link."`
	Add    FollowAddCmd    `cmd:"" help:"Follow someone from their follow link."`
	List   FollowListCmd   `cmd:"" default:"1" help:"List people you follow."`
	Remove FollowRemoveCmd `cmd:"" help:"Stop following someone."`
}

type FollowLinkCmd struct{}

func (cmd *FollowLinkCmd) Run(ctx *cli.Context) error {
	ctx.Println(sharelink.FollowLink(ctx.ShareBase(), ctx.Store.DisplayName(), ctx.State()))
	return nil
}

type FollowAddCmd struct {
	Link string `arg:"" help:"Follow link or code."`
	Yes  bool   `short:"y" help:"Follow without prompting."`
}

func (cmd *FollowAddCmd) Run(ctx *cli.Context) error {
	code := cmd.Link
	if kind, c, ok := sharelink.ParseLink(cmd.Link); ok {
		if kind != sharelink.KindFollow {
			return fmt.Errorf("not a follow link; use 'growthlog join' for join links")
		}
		code = c
	}
	res, err := ctx.Importer().Follow(code)
	return finishImport(ctx, res, err, cmd.Yes)
}

type FollowListCmd struct{}

func (cmd *FollowListCmd) Run(ctx *cli.Context) error {
	following := models.SortedFollowing(ctx.Store.Following())
	if len(following) == 0 {
		ctx.Println("You are not following anyone yet.")
		return nil
	}
	today := ctx.Today()
	for _, p := range following {
		ctx.Printf("%s  (%s)\n", personLine(p.Name, &p.UserState, today), p.ID)
	}
	return nil
}

type FollowRemoveCmd struct {
	ID string `arg:"" help:"Followed person's id or name."`
}

func (cmd *FollowRemoveCmd) Run(ctx *cli.Context) error {
	following := ctx.Store.Following()
	p, ok := following[cmd.ID]
	if !ok {
		p, ok = models.FindFollowedByName(following, cmd.ID)
	}
	if !ok {
		return fmt.Errorf("not following %s", cmd.ID)
	}
	if err := ctx.Store.RemoveFollowed(p.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("not following %s", cmd.ID)
		}
		return err
	}
	ctx.Printf("✓ Unfollowed %s\n", p.Name)
	return nil
}
