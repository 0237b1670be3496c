package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lapsctl/internal/passphrase"
	"github.com/spf13/cobra"
)

var generate = passphrase.Generate

func newGenerateCommand(app *App) *cobra.Command {
	var (
		count int
		nato  bool
	)

	cmd := &cobra.Command{
		Use:         "generate",
		Short:       "Print generated passphrases without touching any device",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{offline: "true"},
		RunE: func(_ *cobra.Command, _ []string) error {
			for range count {
				phrase, err := generate()
				if err != nil {
					return err
				}
				fmt.Fprintln(app.out, phrase)
				if nato {
					fmt.Fprint(app.out, passphrase.Spell(phrase))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of passphrases")
	cmd.Flags().BoolVar(&nato, "nato", false, "also spell every passphrase with the NATO alphabet")
	return cmd
}

func newNatoCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "nato <text>...",
		Short:       "Spell text with the NATO phonetic alphabet",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{offline: "true"},
		RunE: func(_ *cobra.Command, args []string) error {
			fmt.Fprint(app.out, passphrase.Spell(strings.Join(args, " ")))
			return nil
		},
	}
}
