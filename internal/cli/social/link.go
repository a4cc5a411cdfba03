package social

import (
	"errors"
	"fmt"

	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/importer"
	"github.com/julianstephens/growthlog/internal/sharelink"
)

// ImportCmd applies a join or follow link. A link carrying both is applied
// join first.
type ImportCmd struct {
	Link string `arg:"" help:"A join or follow link."`
	Yes  bool   `short:"y" help:"Accept without prompting. Joining uses your display name."`
}

func (cmd *ImportCmd) Run(ctx *cli.Context) error {
	results, err := ctx.Importer().ProcessAll(cmd.Link)
	if err != nil {
		return finishImport(ctx, importer.Result{}, err, cmd.Yes)
	}
	for _, res := range results {
		if err := finishImport(ctx, res, nil, cmd.Yes); err != nil {
			return err
		}
	}
	return nil
}

// JoinCmd joins a group from a join link or bare join code.
type JoinCmd struct {
	Link string `arg:"" help:"Join link or code."`
	Yes  bool   `short:"y" help:"Join without prompting, using your display name."`
}

func (cmd *JoinCmd) Run(ctx *cli.Context) error {
	code := cmd.Link
	if kind, c, ok := sharelink.ParseLink(cmd.Link); ok {
		if kind != sharelink.KindJoin {
			return fmt.Errorf("not a join link; use 'growthlog import' for follow links")
		}
		code = c
	}
	res, err := ctx.Importer().Join(code)
	return finishImport(ctx, res, err, cmd.Yes)
}

func finishImport(ctx *cli.Context, res importer.Result, err error, yes bool) error {
	if errors.Is(err, importer.ErrIgnored) {
		ctx.Println("Link ignored: it does not contain a valid join or follow code.")
		return nil
	}
	if err != nil {
		return err
	}

	if res.Outcome == importer.Updated {
		switch res.Kind {
		case sharelink.KindJoin:
			ctx.Printf("✓ Updated group %s\n", res.Name)
		default:
			ctx.Printf("✓ Updated %s\n", res.Name)
		}
		return nil
	}

	switch {
	case res.Join != nil:
		return acceptJoin(ctx, res.Join, yes)
	case res.Follow != nil:
		return acceptFollow(ctx, res.Follow, yes)
	}
	return nil
}

func acceptJoin(ctx *cli.Context, p *importer.PendingJoin, yes bool) error {
	name := ctx.Store.DisplayName()
	if !yes {
		entered, err := ctx.Prompt.Input(fmt.Sprintf("Join %s as…", p.Payload.Name), name)
		if errors.Is(err, cli.ErrCancelled) {
			ctx.Println("Join cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
		name = entered
	}

	g, err := p.Accept(name, ctx.State())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Joined %s as %s (%d members)\n", g.Name, name, len(g.Members))
	return nil
}

func acceptFollow(ctx *cli.Context, p *importer.PendingFollow, yes bool) error {
	if !yes {
		ok, err := ctx.Prompt.Confirm(fmt.Sprintf("Follow %s?", p.Payload.Name), "Their progress will show in your feed.")
		if errors.Is(err, cli.ErrCancelled) || (err == nil && !ok) {
			ctx.Println("Follow cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	person, err := p.Accept()
	if err != nil {
		return err
	}
	ctx.Printf("✓ Following %s\n", person.Name)
	return nil
}
