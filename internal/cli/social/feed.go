package social

import (
	"fmt"
	"strings"

	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/feed"
	"github.com/julianstephens/growthlog/internal/models"
)

// todaysFeed builds the feed of everyone the user tracks, minus the user.
func todaysFeed(ctx *cli.Context) []models.ActivityEvent {
	roster := feed.Roster(ctx.Store.Following(), ctx.Store.Groups())
	return feed.Build(roster, ctx.Store.DisplayName(), ctx.Today())
}

type FeedCmd struct{}

func (cmd *FeedCmd) Run(ctx *cli.Context) error {
	events := todaysFeed(ctx)
	if len(events) == 0 {
		ctx.Println("No activity today yet.")
		return nil
	}

	for _, e := range events {
		line := feed.Describe(e)
		if k, ok := ctx.Store.FindKudos(e.ID); ok {
			line += "  " + k.Emoji
		}
		if n := len(ctx.Store.Comments(e.ID)); n > 0 {
			line += fmt.Sprintf("  💬 %d", n)
		}
		ctx.Printf("%s\n  id: %s\n", line, e.ID)
	}
	return nil
}

type ReactCmd struct {
	ActivityID string `arg:"" help:"Activity id from 'growthlog feed'."`
	Emoji      string `arg:"" optional:"" help:"One of 🔥 🚀 💪 👏 (or fire, rocket, muscle, clap)."`
	Remove     bool   `help:"Remove your reaction."`
}

var emojiNames = map[string]string{
	"fire":   models.EmojiFire,
	"rocket": models.EmojiRocket,
	"muscle": models.EmojiMuscle,
	"clap":   models.EmojiClap,
}

func (cmd *ReactCmd) Run(ctx *cli.Context) error {
	if cmd.Remove {
		if err := ctx.Store.RemoveKudos(cmd.ActivityID); err != nil {
			return err
		}
		ctx.Println("✓ Reaction removed")
		return nil
	}

	emoji := cmd.Emoji
	if named, ok := emojiNames[strings.ToLower(emoji)]; ok {
		emoji = named
	}
	if emoji == "" {
		return fmt.Errorf("an emoji is required unless --remove is set")
	}
	if err := ctx.Store.AddKudos(cmd.ActivityID, emoji); err != nil {
		return err
	}
	ctx.Printf("✓ Reacted %s\n", emoji)
	return nil
}

type CommentCmd struct {
	Add  CommentAddCmd  `cmd:"" default:"withargs" help:"Comment on an activity."`
	List CommentListCmd `cmd:"" help:"List comments on an activity."`
}

type CommentAddCmd struct {
	ActivityID string `arg:"" help:"Activity id from 'growthlog feed'."`
	Text       string `arg:"" help:"Comment text."`
}

func (cmd *CommentAddCmd) Run(ctx *cli.Context) error {
	c, err := ctx.Store.AddComment(cmd.ActivityID, ctx.Store.DisplayName(), cmd.Text, ctx.Now())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Comment added (%s)\n", c.ID)
	return nil
}

type CommentListCmd struct {
	ActivityID string `arg:"" help:"Activity id from 'growthlog feed'."`
}

func (cmd *CommentListCmd) Run(ctx *cli.Context) error {
	comments := ctx.Store.Comments(cmd.ActivityID)
	if len(comments) == 0 {
		ctx.Println("No comments yet.")
		return nil
	}
	for _, c := range comments {
		ctx.Printf("%s  %s: %s\n", c.Timestamp.In(ctx.Now().Location()).Format("2006-01-02 15:04"), c.Author, c.Text)
	}
	return nil
}
