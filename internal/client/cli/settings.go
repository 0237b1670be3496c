package cli

import (
	"io"
	"strconv"

	"github.com/dmitrijs2005/lapsctl/internal/client/api"
	"github.com/spf13/cobra"
)

func newSettingsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or modify the global LAPS settings",
	}
	cmd.AddCommand(newSettingsGetCommand(app), newSettingsModifyCommand(app))
	return cmd
}

func newSettingsGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the global LAPS settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, err := app.Pipeline(ctx)
			if err != nil {
				return err
			}
			s, err := p.Settings(ctx)
			if err != nil {
				return err
			}
			renderSettings(app.out, s)
			return nil
		},
	}
}

func newSettingsModifyCommand(app *App) *cobra.Command {
	var (
		autoDeploy     bool
		autoRotate     bool
		rotationTime   int
		expirationTime int
		yes            bool
	)

	cmd := &cobra.Command{
		Use:   "modify",
		Short: "Change the global LAPS settings",
		Long: `Change one or more global LAPS settings. Only the given flags are sent.
The resulting settings are shown for confirmation unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			fs := cmd.Flags()

			var update api.SettingsUpdate
			if fs.Changed("auto-deploy") {
				update.AutoDeployEnabled = &autoDeploy
			}
			if fs.Changed("auto-rotate") {
				update.AutoRotateEnabled = &autoRotate
			}
			if fs.Changed("rotation-time") {
				update.PasswordRotationTime = &rotationTime
			}
			if fs.Changed("expiration-time") {
				update.AutoRotateExpirationTime = &expirationTime
			}

			p, err := app.Pipeline(ctx)
			if err != nil {
				return err
			}

			var confirm func(current, next api.Settings) (bool, error)
			if !yes {
				confirm = func(_, next api.Settings) (bool, error) {
					renderSettings(app.errOut, next)
					return app.prompter.PromptYesNo("Apply these settings?")
				}
			}

			s, applied, err := p.UpdateSettings(ctx, update, confirm)
			if err != nil {
				return err
			}
			if !applied {
				app.logger.Info(ctx, "settings left unchanged")
				return nil
			}
			renderSettings(app.out, s)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.BoolVar(&autoDeploy, "auto-deploy", false, "enable LAPS on newly enrolled devices")
	fs.BoolVar(&autoRotate, "auto-rotate", false, "rotate passwords automatically after they expire")
	fs.IntVar(&rotationTime, "rotation-time", 0, "seconds after a view before the password rotates")
	fs.IntVar(&expirationTime, "expiration-time", 0, "seconds before an unviewed password expires")
	fs.BoolVarP(&yes, "yes", "y", false, "apply without asking")
	return cmd
}

func renderSettings(w io.Writer, s api.Settings) {
	renderTable(w, []string{"Setting", "Value"}, [][]string{
		{"Auto deploy", strconv.FormatBool(s.AutoDeployEnabled)},
		{"Password rotation time", strconv.Itoa(s.PasswordRotationTime)},
		{"Auto rotate", strconv.FormatBool(s.AutoRotateEnabled)},
		{"Auto rotate expiration time", strconv.Itoa(s.AutoRotateExpirationTime)},
	})
}

func newIntegrationsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "integrations",
		Short: "List the API integrations configured on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, err := app.Pipeline(ctx)
			if err != nil {
				return err
			}
			list, err := p.Integrations(ctx)
			if err != nil {
				return err
			}
			rows := make([][]string, len(list))
			for i, in := range list {
				rows[i] = []string{in.DisplayName, in.ClientID}
			}
			renderTable(app.out, []string{"Display Name", "Client ID"}, rows)
			return nil
		},
	}
}
