package cli

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/lapsctl/internal/client/report"
	"github.com/dmitrijs2005/lapsctl/internal/client/resolver"
	"github.com/dmitrijs2005/lapsctl/internal/client/services"
	"github.com/spf13/cobra"
)

func order(newestFirst bool) report.Order {
	if newestFirst {
		return report.Descending
	}
	return report.Ascending
}

func (a *App) heading(ref resolver.DeviceRef) {
	if ref.Name != "" {
		fmt.Fprintf(a.out, "%s (%s)\n", ref.Name, ref.ManagementID)
		return
	}
	fmt.Fprintln(a.out, ref.ManagementID)
}

func newHistoryCommand(app *App) *cobra.Command {
	var newestFirst bool

	cmd := &cobra.Command{
		Use:   "history <identifier>",
		Short: "Show the LAPS password events of a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Pipeline(ctx)
			if err != nil {
				return err
			}
			ref, entries, err := p.History(ctx, args[0], order(newestFirst))
			if err != nil {
				return err
			}

			app.heading(ref)
			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{formatTime(e.EventTime), e.EventType, e.Username, e.UserSource, orDash(e.ViewedBy)}
			}
			renderTable(app.out, []string{"Time", "Event", "Account", "Source", "Viewed By"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&newestFirst, "newest-first", "n", false, "sort newest events first")
	return cmd
}

func newAuditCommand(app *App) *cobra.Command {
	var (
		guid        string
		newestFirst bool
		clientIDs   bool
	)

	cmd := &cobra.Command{
		Use:   "audit <identifier>",
		Short: "Show every password of an account and who viewed it",
		Long: `Show every password generation of the local admin account with one row per
view. Views by API clients are shown with the integration name unless
--client-ids is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Pipeline(ctx)
			if err != nil {
				return err
			}
			ref, rows, err := p.Audit(ctx, args[0], services.AuditQuery{
				Account:     app.account(guid),
				Order:       order(newestFirst),
				NameClients: !clientIDs,
			})
			if err != nil {
				return err
			}

			app.heading(ref)
			out := make([][]string, len(rows))
			for i, r := range rows {
				out[i] = []string{r.Password, formatTime(r.ExpirationTime), formatTime(r.DateLastSeen), formatTime(r.DateSeen), orDash(r.ViewedBy)}
			}
			renderTable(app.out, []string{"Password", "Expires", "Last Seen", "Viewed", "Viewed By"}, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&guid, "guid", "g", "", "GUID of the account, when several share a name")
	cmd.Flags().BoolVarP(&newestFirst, "newest-first", "n", false, "sort newest passwords first")
	cmd.Flags().BoolVar(&clientIDs, "client-ids", false, "show API client IDs instead of integration names")
	return cmd
}

func newAccountsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts <identifier>",
		Short: "List the LAPS capable accounts of a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Pipeline(ctx)
			if err != nil {
				return err
			}
			ref, accounts, err := p.Accounts(ctx, args[0])
			if err != nil {
				return err
			}

			app.heading(ref)
			rows := make([][]string, len(accounts))
			for i, a := range accounts {
				rows[i] = []string{a.Username, a.GUID, a.UserSource}
			}
			renderTable(app.out, []string{"Account", "GUID", "Source"}, rows)
			return nil
		},
	}
}

func newPendingCommand(app *App) *cobra.Command {
	var (
		mapNames    bool
		newestFirst bool
		relativeAge bool
	)

	cmd := &cobra.Command{
		Use:   "pending [identifier]...",
		Short: "List accounts waiting for a password rotation",
		Long:  "List pending rotations, optionally restricted to the given devices.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Pipeline(ctx)
			if err != nil {
				return err
			}
			rows, err := p.Pending(ctx, services.PendingQuery{
				Identifiers: args,
				MapNames:    mapNames,
				Order:       order(newestFirst),
			})
			if err != nil {
				return err
			}

			headers := []string{"Created"}
			if relativeAge {
				headers = append(headers, "Age")
			}
			if mapNames {
				headers = append(headers, "Computer")
			}
			headers = append(headers, "Management ID", "Account", "GUID", "Source")

			now := app.now()
			out := make([][]string, len(rows))
			for i, r := range rows {
				row := []string{formatTime(&r.CreatedDate)}
				if relativeAge {
					row = append(row, relative(r.CreatedDate, now))
				}
				if mapNames {
					row = append(row, orDash(r.ComputerName))
				}
				out[i] = append(row, r.ManagementID, r.Username, r.GUID, r.UserSource)
			}
			renderTable(app.out, headers, out)
			fmt.Fprintln(app.out, strconv.Itoa(len(rows))+" pending")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&mapNames, "map-names", "m", false, "look up computer names for the management IDs")
	cmd.Flags().BoolVarP(&newestFirst, "newest-first", "n", false, "sort newest requests first")
	cmd.Flags().BoolVar(&relativeAge, "relative", false, "add the age of every request")
	return cmd
}
