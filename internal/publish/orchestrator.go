package publish

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/placebot/internal/common"
	"github.com/dmitrijs2005/placebot/internal/logging"
	"github.com/dmitrijs2005/placebot/internal/roblox"
)

const (
	defaultNamePrefix  = "Bot Upload - "
	defaultDescription = "Uploaded and published via placebot"
)

// Platform is the subset of the platform API the orchestrator drives.
// *roblox.Client implements it.
type Platform interface {
	AuthenticatedUser(ctx context.Context, cookie string) (roblox.User, error)
	CSRFToken(ctx context.Context, cookie string) (string, error)
	UploadPlace(ctx context.Context, cookie, token string, data []byte, placeID int64) (int64, error)
	UpdatePlace(ctx context.Context, cookie, token string, placeID int64, settings roblox.PlaceSettings) error
}

// Loader reads a stored upload by id. storage.Store implements it.
type Loader interface {
	Load(ctx context.Context, id string) ([]byte, error)
}

// Links builds the public and creator URLs of a place.
type Links interface {
	PlayURL(placeID int64) string
	EditURL(placeID int64) string
}

// Publisher is anything that can run a publish request.
type Publisher interface {
	Publish(ctx context.Context, req Request) Outcome
}

// Request is one publish invocation. Credential is the session cookie; it
// is used for the duration of the call only.
type Request struct {
	Credential  string
	FileID      string
	TargetID    string
	Name        string
	Description string
}

// Outcome reports how far a publish run got.
//
// Step is the stage that failed, or StepDone on success. TargetID is set
// whenever the upload succeeded. StatusCode is the platform's HTTP status
// when the failing step got a response.
type Outcome struct {
	Status     Status
	Step       Step
	TargetID   int64
	Account    roblox.User
	UploadType roblox.UploadType
	Message    string
	StatusCode int
	Err        error
	PlayURL    string
	EditURL    string
}

// Orchestrator runs the publish pipeline against a Platform.
type Orchestrator struct {
	platform Platform
	files    Loader
	links    Links
	logger   logging.Logger
}

func NewOrchestrator(platform Platform, files Loader, links Links, logger logging.Logger) *Orchestrator {
	return &Orchestrator{platform: platform, files: files, links: links, logger: logger}
}

// run carries the values produced by earlier steps.
type run struct {
	req        Request
	data       []byte
	account    roblox.User
	token      string
	targetID   int64
	uploadType roblox.UploadType
	uploaded   bool
}

// Publish walks the transition table until stateDone or the first failing
// step. The run is sequential and performs no retries; cancelling ctx stops
// it between or during steps but never undoes a completed upload.
func (o *Orchestrator) Publish(ctx context.Context, req Request) Outcome {
	r := &run{req: req}
	log := o.logger.With("file_id", req.FileID, "credential", logging.Fingerprint(req.Credential))

	for st := stateStart; st != stateDone; st = transitions[st].next {
		step := transitions[st].step
		if err := o.exec(ctx, st, r); err != nil {
			out := o.failed(step, r, err)
			log.Warn(ctx, "publish stopped", "step", step.String(), "status", out.Status.String(), "place_id", r.targetID, "error", err)
			return out
		}
		log.Debug(ctx, "publish step done", "step", step.String())
	}

	log.Info(ctx, "place published", "place_id", r.targetID, "upload_type", string(r.uploadType), "account_id", r.account.ID)
	return Outcome{
		Status:     Success,
		Step:       StepDone,
		TargetID:   r.targetID,
		Account:    r.account,
		UploadType: r.uploadType,
		Message:    fmt.Sprintf("place %d uploaded and published to %s's account", r.targetID, r.account.Label()),
		PlayURL:    o.links.PlayURL(r.targetID),
		EditURL:    o.links.EditURL(r.targetID),
	}
}

func (o *Orchestrator) exec(ctx context.Context, st state, r *run) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch st {
	case stateStart:
		data, err := o.files.Load(ctx, r.req.FileID)
		if err != nil {
			return err
		}
		r.data = data
		if target := ParseTargetID(r.req.TargetID); target > 0 {
			r.targetID = target
			r.uploadType = roblox.UploadUpdate
		} else {
			r.uploadType = roblox.UploadNew
		}

	case stateAuthenticate:
		u, err := o.platform.AuthenticatedUser(ctx, r.req.Credential)
		if err != nil {
			return err
		}
		r.account = u

	case stateUploadToken, statePublishToken:
		tok, err := o.platform.CSRFToken(ctx, r.req.Credential)
		if err != nil {
			return err
		}
		r.token = tok

	case stateUpload:
		id, err := o.platform.UploadPlace(ctx, r.req.Credential, r.token, r.data, r.targetID)
		if err != nil {
			return err
		}
		r.targetID = id
		r.uploaded = true
		r.data = nil

	case statePatch:
		if err := o.platform.UpdatePlace(ctx, r.req.Credential, r.token, r.targetID, r.settings()); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) settings() roblox.PlaceSettings {
	s := roblox.PlaceSettings{Name: r.req.Name, Description: r.req.Description}
	if s.Name == "" {
		s.Name = defaultNamePrefix + r.req.FileID
	}
	if s.Description == "" {
		s.Description = defaultDescription
	}
	return s
}

// failed classifies an error at step. Everything after a successful upload
// is a partial success.
func (o *Orchestrator) failed(step Step, r *run, err error) Outcome {
	out := Outcome{
		Status:     Failure,
		Step:       step,
		Account:    r.account,
		UploadType: r.uploadType,
		StatusCode: roblox.StatusCode(err),
		Err:        err,
		Message:    failureMessage(step, err),
	}
	if r.uploaded {
		out.Status = PartialSuccess
		out.TargetID = r.targetID
		out.Message = fmt.Sprintf("place %d uploaded but publishing failed: %v", r.targetID, err)
		out.PlayURL = o.links.PlayURL(r.targetID)
		out.EditURL = o.links.EditURL(r.targetID)
	}
	return out
}

func failureMessage(step Step, err error) string {
	switch step {
	case StepStart:
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrInvalidIdentifier) {
			return "no stored file with that id; upload it first"
		}
		return fmt.Sprintf("could not read stored file: %v", err)
	case StepAuthenticate:
		return fmt.Sprintf("could not authenticate: %v", err)
	case StepAcquireToken:
		return fmt.Sprintf("token request failed: %v", err)
	case StepUpload:
		return fmt.Sprintf("upload failed: %v", err)
	default:
		return err.Error()
	}
}
