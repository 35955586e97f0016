package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrijs2005/placebot/internal/access"
	"github.com/dmitrijs2005/placebot/internal/config"
	"github.com/dmitrijs2005/placebot/internal/intake"
	"github.com/dmitrijs2005/placebot/internal/logging"
	"github.com/dmitrijs2005/placebot/internal/publish"
	"github.com/dmitrijs2005/placebot/internal/roblox"
	"github.com/dmitrijs2005/placebot/internal/storage"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	intake    *intake.Service
	publisher publish.Publisher
	places    roblox.PlaceDetailer
	policy    access.Policy
	operator  access.Principal
	scanner   *bufio.Scanner
	out       io.Writer
}

// NewApp wires the storage backend, the platform client and the services
// from c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	store, err := newStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	opts := []roblox.Option{roblox.WithEndpoints(c.Endpoints())}
	if c.UserAgent != "" {
		opts = append(opts, roblox.WithUserAgent(c.UserAgent))
	}
	client := roblox.NewClient(&http.Client{Timeout: c.HTTPTimeout}, opts...)

	in := intake.NewService(store, logger, intake.WithMaxFileSize(c.MaxFileSize))
	orch := publish.NewOrchestrator(client, store, client, logger)

	return &App{
		config:    c,
		logger:    logger,
		intake:    in,
		publisher: publish.NewSerialized(orch),
		places:    roblox.NewPlaceCache(client, 0, 0),
		policy:    access.Policy{RoleID: c.AllowedRoleID, RoleName: c.AllowedRoleName},
		operator:  operatorFromConfig(c),
		scanner:   bufio.NewScanner(os.Stdin),
		out:       os.Stdout,
	}, nil
}

func newStore(ctx context.Context, c *config.Config) (storage.Store, error) {
	s3cfg := storage.S3Config{
		User:         c.S3RootUser,
		Password:     c.S3RootPassword,
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		Prefix:       c.S3Prefix,
	}

	switch c.StorageBackend {
	case config.BackendLocal, "":
		return storage.NewLocalStore(c.UploadDir)
	case config.BackendS3:
		return storage.NewS3Store(ctx, s3cfg)
	case config.BackendMinio:
		return storage.NewMinioStore(ctx, s3cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

// operatorFromConfig builds the CLI operator. Role entries are "id:name",
// a bare numeric id, or a bare name. The CLI always acts inside the guild.
func operatorFromConfig(c *config.Config) access.Principal {
	p := access.Principal{ID: c.OperatorID, InGuild: true, Admin: c.OperatorAdmin}
	for _, entry := range c.OperatorRoles {
		p.Roles = append(p.Roles, parseRole(entry))
	}
	return p
}

func parseRole(entry string) access.Role {
	if id, name, ok := strings.Cut(entry, ":"); ok {
		return access.Role{ID: strings.TrimSpace(id), Name: strings.TrimSpace(name)}
	}
	if _, err := roblox.ParsePlaceID(entry); err == nil {
		return access.Role{ID: entry}
	}
	return access.Role{Name: entry}
}

func (a *App) getStatus() string {
	if a.operator.ID == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.operator.ID)
}

// Run serves the REPL and the periodic cleanup until the REPL exits or ctx
// is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info(ctx, "starting placebot", "backend", a.config.StorageBackend, "operator", a.operator.ID)
	fmt.Fprintln(a.out, "Welcome to placebot (type 'help' for commands)")

	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g.Go(func() error {
		defer cancel()
		done := make(chan struct{})
		go func() {
			defer close(done)
			runREPL(ctx, a, a.getStatus, a.scanner)
		}()
		select {
		case <-done:
		case <-ctx.Done():
		}
		return nil
	})

	g.Go(func() error {
		return a.intake.RunCleanup(ctx, a.config.CleanupInterval, a.config.FileMaxAge)
	})

	err := g.Wait()
	a.logger.Info(context.Background(), "placebot stopped")
	return err
}
