package social

import (
	"fmt"
	"strings"

	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/discovery"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/utils"
)

type DiscoverCmd struct {
	List    DiscoverListCmd    `cmd:"" default:"1" help:"List people you could follow."`
	AddLink DiscoverAddLinkCmd `cmd:"" name:"add-link" help:"Add a community follow link."`
	Follow  DiscoverFollowCmd  `cmd:"" help:"Follow someone from the discovery list."`
}

func discoverable(ctx *cli.Context) []models.DiscoverablePerson {
	return discovery.Build(ctx.Store.Groups(), ctx.Store.Following(), ctx.Store.DiscoveryList(), ctx.Store.DisplayName())
}

type DiscoverListCmd struct {
	Search string `short:"s" help:"Filter by name."`
}

func (cmd *DiscoverListCmd) Run(ctx *cli.Context) error {
	people := discovery.Filter(discoverable(ctx), cmd.Search)
	if len(people) == 0 {
		ctx.Println("Nobody to discover. Add community links with 'growthlog discover add-link'.")
		return nil
	}
	today := ctx.Today()
	for _, p := range people {
		ctx.Printf("%s  [%s]\n", personLine(p.Name, &p.UserState, today), p.Source)
	}
	return nil
}

type DiscoverAddLinkCmd struct {
	Link string `arg:"" help:"A follow link shared by the community."`
}

func (cmd *DiscoverAddLinkCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.AddToDiscoveryList(cmd.Link); err != nil {
		return err
	}
	ctx.Println("✓ Link added to discovery list")
	return nil
}

type DiscoverFollowCmd struct {
	Name string `arg:"" help:"Name as shown by 'growthlog discover list'."`
}

func (cmd *DiscoverFollowCmd) Run(ctx *cli.Context) error {
	for _, p := range discoverable(ctx) {
		if !strings.EqualFold(p.Name, cmd.Name) {
			continue
		}
		person, err := ctx.Store.AddFollowed(utils.NewID(constants.FollowIDPrefix), p.Name, p.UserState, ctx.Now())
		if err != nil {
			return err
		}
		ctx.Printf("✓ Following %s\n", person.Name)
		return nil
	}
	return fmt.Errorf("%s is not in the discovery list", cmd.Name)
}
