package profile

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/coach"
	"github.com/julianstephens/growthlog/internal/keyring"
)

type CoachCmd struct {
	Pep    CoachPepCmd    `cmd:"" default:"1" help:"Get a morning pep talk."`
	Verify CoachVerifyCmd `cmd:"" help:"Verify a traffic dashboard screenshot."`
}

// NewCoach builds the coach from GEMINI_API_KEY or the OS keyring.
var NewCoach = func(ctx *cli.Context) (*coach.Coach, error) {
	apiKey := ctx.Config.Coach.APIKey
	if apiKey == "" {
		key, err := keyring.GetAPIKey()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, errors.New("no Gemini API key; set GEMINI_API_KEY or run 'growthlog keyring set gemini <key>'")
			}
			return nil, err
		}
		apiKey = key
	}
	return coach.NewFromAPIKey(context.Background(), apiKey, ctx.Config.Coach.Model)
}

type CoachPepCmd struct{}

func (cmd *CoachPepCmd) Run(ctx *cli.Context) error {
	c, err := NewCoach(ctx)
	if err != nil {
		return err
	}
	ctx.Println(c.PepTalk(context.Background()))
	return nil
}

type CoachVerifyCmd struct {
	Image string `arg:"" type:"existingfile" help:"Screenshot of your analytics dashboard."`
}

func (cmd *CoachVerifyCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(cmd.Image)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	c, err := NewCoach(ctx)
	if err != nil {
		return err
	}

	v := c.VerifyScreenshot(context.Background(), data, mime.TypeByExtension(filepath.Ext(cmd.Image)))
	if v.Verified {
		value := "?"
		if v.MetricValue != nil {
			value = *v.MetricValue
		}
		ctx.Printf("✓ Verified: %s\n", value)
	} else {
		ctx.Println("✗ Not verified")
	}
	ctx.Printf("  %s\n", v.Reason)
	return nil
}
