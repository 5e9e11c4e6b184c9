package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/truemediaorg/crosspostfields/model"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify <handle>...",
	Short: "Checks the stored credentials of destination sites",
	Long:  `Logs in to each destination's REST API with its stored credentials and reports the user it acts as`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		failed := 0
		for _, handle := range args {
			dest := model.Destination{Handle: handle}
			client, err := app.sites.Client(ctx, dest)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", handle, err)
				failed++
				continue
			}
			user, err := client.CurrentUser(ctx)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", handle, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, acting as %s (%d)\n", handle, user.Name, user.ID)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d destinations failed verification", failed, len(args))
		}
		return nil
	},
}
