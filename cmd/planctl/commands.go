package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/itinerary-planner-api/internal/catalog"
	"github.com/noah-isme/itinerary-planner-api/internal/models"
	"github.com/noah-isme/itinerary-planner-api/internal/scheduler"
	"github.com/noah-isme/itinerary-planner-api/internal/service"
)

var errNoSchedule = errors.New("no valid schedule")

type runContext struct {
	Out    io.Writer
	Logger *zap.Logger
}

type planCmd struct {
	Catalog       string        `help:"Catalog YAML file." type:"existingfile" required:""`
	Start         string        `help:"First day (YYYY-MM-DD)." required:""`
	End           string        `help:"Last day (YYYY-MM-DD)." required:""`
	MaxPerDay     int           `help:"Activities per day." default:"3"`
	FoodAfterSlot int           `help:"Earliest slot for food activities." default:"1"`
	MaxNodes      int           `help:"Candidate evaluation budget, 0 for unlimited." default:"0"`
	Timeout       time.Duration `help:"Search deadline, 0 for none." default:"0s"`
	JSON          bool          `help:"Print the result as JSON." name:"json"`
}

type planOutput struct {
	Status   scheduler.Outcome   `json:"status"`
	Reason   scheduler.Reason    `json:"reason"`
	Message  string              `json:"message,omitempty"`
	Schedule *scheduler.Schedule `json:"schedule,omitempty"`
	Stats    scheduler.Stats     `json:"stats"`
}

func (c *planCmd) Run(rc *runContext) error {
	cat, err := catalog.LoadFile(c.Catalog)
	if err != nil {
		return err
	}
	dates, err := scheduler.ParseDateRange(c.Start, c.End)
	if err != nil {
		return err
	}
	opts := scheduler.Options{MaxPerDay: c.MaxPerDay, FoodAfterSlot: c.FoodAfterSlot, MaxNodes: c.MaxNodes}

	ctx := context.Background()
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	rc.Logger.Debug("planning", zap.String("catalog", cat.ID), zap.Int("activities", len(cat.Activities)), zap.Int("days", dates.Days()))
	result, err := scheduler.Generate(ctx, cat.Activities, dates, opts)
	if err != nil {
		return err
	}

	if c.JSON {
		out := planOutput{Status: result.Outcome, Reason: result.Reason, Schedule: result.Schedule, Stats: result.Stats}
		if !result.Found() {
			out.Message = noScheduleLine
		}
		enc := json.NewEncoder(rc.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		fmt.Fprint(rc.Out, renderResult(cat.Name, result))
	}

	if !result.Found() {
		return errNoSchedule
	}
	return nil
}

type catalogsCmd struct {
	Dir string `help:"Catalog directory." type:"path" default:"./catalogs"`
}

func (c *catalogsCmd) Run(rc *runContext) error {
	loader := catalog.NewLoader(c.Dir, rc.Logger)
	if _, err := loader.LoadFromDir(); err != nil {
		return err
	}
	fmt.Fprint(rc.Out, renderCatalogs(loader.List()))
	return nil
}

type tokenCmd struct {
	Secret   string        `help:"HMAC secret shared with the API." env:"JWT_SECRET" required:""`
	UserID   string        `help:"Subject user id." name:"user-id" required:""`
	Role     string        `help:"Role claim." default:"TRAVELER" enum:"TRAVELER,ADMIN"`
	Email    string        `help:"Email claim."`
	FullName string        `help:"Display name claim." name:"full-name"`
	Expiry   time.Duration `help:"Token lifetime." default:"24h"`
}

func (c *tokenCmd) Run(rc *runContext) error {
	tokens := service.NewTokenService(service.TokenConfig{Secret: c.Secret, Expiry: c.Expiry})
	token, expires, err := tokens.Issue(models.UserInfo{
		ID:       c.UserID,
		Email:    c.Email,
		FullName: c.FullName,
		Role:     models.UserRole(c.Role),
	})
	if err != nil {
		return err
	}
	rc.Logger.Info("token issued", zap.String("user_id", c.UserID), zap.Time("expires_at", expires))
	fmt.Fprintln(rc.Out, token)
	return nil
}
