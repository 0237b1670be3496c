package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lapsctl/internal/client/config"
	"github.com/dmitrijs2005/lapsctl/internal/client/services"
	"github.com/dmitrijs2005/lapsctl/internal/common"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../cli.Version=...".
var Version = "dev"

// offline marks commands that never talk to the server.
const offline = "offline"

type globalFlags struct {
	configFile string
	server     string
	user       string
	clientID   string
	localAdmin string
	vault      string
	pageSize   int
	workers    int
	timeout    time.Duration
	noCache    bool
	verbose    bool
}

// NewRootCommand builds the lapsctl command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	f := &globalFlags{}

	root := &cobra.Command{
		Use:   common.AppName,
		Short: "Read, set and rotate Jamf Pro LAPS passwords",
		Long: `lapsctl manages local administrator passwords escrowed in Jamf Pro.

Devices can be named by computer name, serial number, asset tag, bar code,
Jamf ID or management ID. Server credentials are kept in an encrypted local
vault unless --no-cache is given.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[offline] != "" {
				return nil
			}
			cfg, err := config.Load(f.configFile)
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			app.configure(cfg)

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			app.cancel = cancel
			cmd.SetContext(ctx)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "config file (default $"+common.EnvConfig+" or the user config dir)")
	pf.StringVarP(&f.server, "server", "s", "", "Jamf Pro server URL")
	pf.StringVarP(&f.user, "user", "u", "", "Jamf Pro user name")
	pf.StringVar(&f.clientID, "client-id", "", "API client ID, used instead of --user")
	pf.StringVarP(&f.localAdmin, "local-admin", "l", "", "local admin account on the device")
	pf.StringVar(&f.vault, "vault", "", "credential vault path")
	pf.IntVar(&f.pageSize, "page-size", common.DefaultPageSize, "server page size for bulk lookups")
	pf.IntVar(&f.workers, "workers", common.DefaultMaxConcurrency, "requests in flight during batch operations")
	pf.DurationVar(&f.timeout, "timeout", 2*time.Minute, "overall command timeout")
	pf.BoolVar(&f.noCache, "no-cache", false, "do not read or store credentials in the vault")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log requests and diagnostics to stderr")

	root.AddCommand(
		newGetCommand(app),
		newSetCommand(app),
		newRotateCommand(app),
		newHistoryCommand(app),
		newAuditCommand(app),
		newAccountsCommand(app),
		newPendingCommand(app),
		newSettingsCommand(app),
		newIntegrationsCommand(app),
		newGenerateCommand(app),
		newNatoCommand(app),
	)
	return root
}

// apply overrides cfg with the flags set on the command line.
func (f *globalFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("server") {
		cfg.ServerURL = f.server
	}
	if fs.Changed("user") {
		cfg.User = f.user
	}
	if fs.Changed("client-id") {
		cfg.ClientID = f.clientID
	}
	if fs.Changed("local-admin") {
		cfg.LocalAdmin = f.localAdmin
	}
	if fs.Changed("vault") {
		cfg.VaultPath = f.vault
	}
	if fs.Changed("page-size") {
		cfg.PageSize = f.pageSize
	}
	if fs.Changed("workers") {
		cfg.MaxConcurrency = f.workers
	}
	if fs.Changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if fs.Changed("no-cache") {
		cfg.NoCache = f.noCache
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
}

// Execute runs the command line args and releases everything the run opened.
func Execute(ctx context.Context, app *App, args []string) error {
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(app.out)
	root.SetErr(app.errOut)
	defer app.Close()
	return root.ExecuteContext(ctx)
}

func (a *App) account(guid string) services.Account {
	return services.Account{Username: a.config.LocalAdmin, GUID: guid}
}
