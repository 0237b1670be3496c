package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/lapsctl/internal/client/batch"
	"github.com/dmitrijs2005/lapsctl/internal/client/services"
	"github.com/dmitrijs2005/lapsctl/internal/passphrase"
	"github.com/spf13/cobra"
)

func newGetCommand(app *App) *cobra.Command {
	var guid string
	var nato bool

	cmd := &cobra.Command{
		Use:   "get <identifier>...",
		Short: "Show the current LAPS password of one or more devices",
		Long: `Show the current password of the local admin account.

With a single identifier only the password is printed, so the output can be
piped. With several, a table is printed with one row per identifier.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Pipeline(ctx)
			if err != nil {
				return err
			}
			res, err := p.Get(ctx, args, app.account(guid))

			if err == nil && len(args) == 1 {
				pw := res[args[0]].Value.Password
				fmt.Fprintln(app.out, pw)
				if nato {
					fmt.Fprint(app.out, passphrase.Spell(pw))
				}
				return nil
			}
			renderPasswords(app.out, res, nato)
			return err
		},
	}
	cmd.Flags().StringVarP(&guid, "guid", "g", "", "GUID of the account, when several share a name")
	cmd.Flags().BoolVar(&nato, "nato", false, "also spell the password with the NATO alphabet")
	return cmd
}

func newSetCommand(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "set <identifier>...",
		Short: "Set the LAPS password on one or more devices",
		Long:  "Set the password of the local admin account. Without --password it is read from the terminal.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if password == "" {
				pw, err := app.prompter.PromptSecret("New password: ")
				if err != nil {
					return err
				}
				password = pw
			}

			p, err := app.Pipeline(ctx)
			if err != nil {
				return err
			}
			res, err := p.Set(ctx, args, app.account(""), password)
			renderStatus(app.out, res)
			return err
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password")
	return cmd
}

func newRotateCommand(app *App) *cobra.Command {
	var nato bool

	cmd := &cobra.Command{
		Use:   "rotate <identifier>...",
		Short: "Replace the LAPS password with a generated passphrase",
		Long:  "Generate a new passphrase for every device and set it as the local admin password.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Pipeline(ctx)
			if err != nil {
				return err
			}
			res, err := p.Rotate(ctx, args, app.account(""))
			renderPasswords(app.out, res, nato)
			return err
		},
	}
	cmd.Flags().BoolVar(&nato, "nato", false, "also spell the new passwords with the NATO alphabet")
	return cmd
}

func renderPasswords(w io.Writer, res batch.Result[services.Password], nato bool) {
	if len(res) == 0 {
		return
	}
	rows := make([][]string, 0, len(res))
	for _, key := range res.Keys() {
		o := res[key]
		row := []string{key, orDash(o.Value.Device.Name), orDash(o.Value.Device.ManagementID)}
		if o.Err != nil {
			row = append(row, "-", o.Err.Error())
		} else {
			row = append(row, o.Value.Password, "")
		}
		rows = append(rows, row)
	}
	renderTable(w, []string{"Identifier", "Name", "Management ID", "Password", "Error"}, rows)

	if !nato {
		return
	}
	for _, key := range res.Keys() {
		if o := res[key]; o.Err == nil {
			fmt.Fprintf(w, "\n%s:\n%s", key, passphrase.Spell(o.Value.Password))
		}
	}
}

func renderStatus(w io.Writer, res batch.Result[services.Password]) {
	if len(res) == 0 {
		return
	}
	rows := make([][]string, 0, len(res))
	for _, key := range res.Keys() {
		o := res[key]
		status := "ok"
		if o.Err != nil {
			status = o.Err.Error()
		}
		rows = append(rows, []string{key, orDash(o.Value.Device.ManagementID), status})
	}
	renderTable(w, []string{"Identifier", "Management ID", "Status"}, rows)
}
