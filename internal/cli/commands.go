package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/placebot/internal/access"
	"github.com/dmitrijs2005/placebot/internal/common"
	"github.com/dmitrijs2005/placebot/internal/intake"
	"github.com/dmitrijs2005/placebot/internal/publish"
	"github.com/dmitrijs2005/placebot/internal/roblox"
)

var errDenied = errors.New("access denied")

// errUsage marks a command invoked with the wrong arguments.
var errUsage = errors.New("usage")

func (a *App) authorize(ctx context.Context, op access.Operation) error {
	d := a.policy.Check(a.operator, op)
	if d.Allowed {
		return nil
	}
	a.logger.Warn(ctx, "command denied", "operator", a.operator.ID, "command", string(op))
	fmt.Fprintln(a.out, "Access denied:", d.Reason)
	return errDenied
}

func (a *App) usage(text string) error {
	fmt.Fprintln(a.out, "Usage:", text)
	return errUsage
}

func (a *App) Help(ctx context.Context) error {
	if err := a.authorize(ctx, access.OpHelp); err != nil {
		return err
	}
	renderHelp(a.out, a.intake.MaxFileSize(), a.policy)
	return nil
}

func (a *App) Upload(ctx context.Context, args []string) error {
	if err := a.authorize(ctx, access.OpUpload); err != nil {
		return err
	}
	if len(args) != 1 {
		return a.usage("upload <path>")
	}

	att, err := intake.OpenFile(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Cannot open file:", err)
		return err
	}

	res, err := a.intake.Accept(ctx, a.operator.ID, att)
	if err != nil {
		a.logger.Error(ctx, "upload failed", "error", err)
		fmt.Fprintln(a.out, "Upload failed:", err)
		return err
	}
	renderUpload(a.out, res)
	return nil
}

func (a *App) Publish(ctx context.Context, args []string) error {
	if err := a.authorize(ctx, access.OpPublish); err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 {
		return a.usage("publish <file_id> [place_id]")
	}

	req := publish.Request{FileID: args[0]}
	if len(args) == 2 {
		req.TargetID = args[1]
	}

	cookie, err := GetSecret(a.scanner, "Enter "+common.SecurityCookieName+" cookie", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Cannot read cookie:", err)
		return err
	}
	if cookie == "" {
		return a.usage("a non-empty cookie is required to publish")
	}
	req.Credential = cookie

	fmt.Fprintln(a.out, "Publishing to Roblox...")
	out := a.publisher.Publish(ctx, req)
	renderOutcome(a.out, out)
	if out.Status == publish.Failure {
		return out.Err
	}
	return nil
}

func (a *App) Status(ctx context.Context) error {
	if err := a.authorize(ctx, access.OpStatus); err != nil {
		return err
	}
	st, err := a.intake.Stats(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Failed to retrieve status:", err)
		return err
	}
	renderStats(a.out, st, a.config.StorageBackend, a.intake.MaxFileSize())
	return nil
}

func (a *App) Place(ctx context.Context, args []string) error {
	if err := a.authorize(ctx, access.OpPlace); err != nil {
		return err
	}
	if len(args) != 1 {
		return a.usage("place <place_id>")
	}
	id, err := roblox.ParsePlaceID(args[0])
	if err != nil || id == 0 {
		return a.usage("place <place_id> (digits only)")
	}

	d, err := a.places.PlaceDetails(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintf(a.out, "Place %d not found\n", id)
		} else {
			fmt.Fprintln(a.out, "Place lookup failed:", err)
		}
		return err
	}
	renderPlace(a.out, d)
	return nil
}

func (a *App) Cleanup(ctx context.Context, args []string) error {
	if err := a.authorize(ctx, access.OpCleanup); err != nil {
		return err
	}

	maxAge := a.config.FileMaxAge
	if len(args) > 0 {
		hours, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || hours < 0 {
			return a.usage("cleanup [hours]")
		}
		maxAge = time.Duration(hours) * time.Hour
	}

	n, err := a.intake.Cleanup(ctx, maxAge)
	if err != nil {
		fmt.Fprintf(a.out, "Cleanup failed after removing %d file(s): %v\n", n, err)
		return err
	}
	fmt.Fprintf(a.out, "Removed %d file(s) older than %s\n", n, maxAge)
	return nil
}
