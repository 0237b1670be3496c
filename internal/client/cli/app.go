package cli

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/lapsctl/internal/client/api"
	"github.com/dmitrijs2005/lapsctl/internal/client/auth"
	"github.com/dmitrijs2005/lapsctl/internal/client/batch"
	"github.com/dmitrijs2005/lapsctl/internal/client/config"
	"github.com/dmitrijs2005/lapsctl/internal/client/resolver"
	"github.com/dmitrijs2005/lapsctl/internal/client/services"
	"github.com/dmitrijs2005/lapsctl/internal/client/vault"
	"github.com/dmitrijs2005/lapsctl/internal/logging"
	"github.com/dmitrijs2005/lapsctl/internal/passphrase"
)

const closeTimeout = 10 * time.Second

// App holds the state of one lapsctl invocation.
type App struct {
	out      io.Writer
	errOut   io.Writer
	prompter *TerminalPrompter

	httpClient *http.Client
	now        func() time.Time

	config   *config.Config
	logger   logging.Logger
	pipeline *services.Pipeline
	cancel   context.CancelFunc
	closers  []func() error
}

// NewApp creates an App reading answers from in. Results go to out, prompts
// and logs to errOut.
func NewApp(in io.Reader, out, errOut io.Writer) *App {
	return &App{
		out:        out,
		errOut:     errOut,
		prompter:   NewTerminalPrompter(in, errOut, int(os.Stdin.Fd())),
		httpClient: &http.Client{},
		now:        time.Now,
		logger:     logging.Nop(),
	}
}

// WithHTTPClient replaces the client used to reach the server.
func (a *App) WithHTTPClient(c *http.Client) *App {
	a.httpClient = c
	return a
}

func (a *App) configure(cfg *config.Config) {
	a.config = cfg
	a.logger = logging.New(a.errOut, cfg.Verbose)
}

// Pipeline builds the services pipeline on first use.
func (a *App) Pipeline(ctx context.Context) (*services.Pipeline, error) {
	if a.pipeline != nil {
		return a.pipeline, nil
	}
	cfg := a.config

	srv, err := api.ParseServer(cfg.ServerURL)
	if err != nil {
		return nil, err
	}
	transport := api.NewTransport(srv.BaseURL(), a.httpClient, a.logger)

	var (
		store auth.CredentialStore
		opts  []auth.SessionOption
	)
	if cfg.NoCache {
		opts = append(opts, auth.WithoutCache())
	} else {
		v, err := vault.Open(ctx, cfg.VaultPath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, v.Close)
		store = v
	}

	key := auth.CredentialKey{User: cfg.AuthUser(), Host: srv.Host, Port: srv.Port}
	session := auth.NewSession(auth.NewIssuer(transport, cfg.IsAPIClient()), store, a.prompter, key, a.logger, opts...)
	transport.SetTokenProvider(session)

	client := api.NewRESTClient(transport, cfg.PageSize)
	res := resolver.New(client, a.prompter, a.logger)

	a.pipeline = &services.Pipeline{
		Auth:     session,
		Resolver: res,
		API:      client,
		Batch:    batch.New(res, client, cfg.PageSize, cfg.MaxConcurrency, a.logger),
		Logger:   a.logger,
		Generate: passphrase.Generate,
	}
	return a.pipeline, nil
}

// Close invalidates the session token and releases local resources.
func (a *App) Close() {
	if a.pipeline != nil {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		a.pipeline.Close(ctx)
		cancel()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
	if a.cancel != nil {
		a.cancel()
	}
}
