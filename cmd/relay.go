package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"homeroom/internal/output"
	"homeroom/internal/relay"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Run the HTTP relay in front of the script endpoint",
	Long: `Runs the relay that clients point at instead of the script endpoint.
It injects the shared secret server-side, so clients never hold it.

The upstream URL and secret come from flags or the GAS_URL and
GAS_SECRET_KEY environment variables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("listen")
		upstream, _ := cmd.Flags().GetString("upstream")
		secret, _ := cmd.Flags().GetString("secret")

		if upstream == "" {
			upstream = os.Getenv("GAS_URL")
		}
		if secret == "" {
			secret = os.Getenv("GAS_SECRET_KEY")
		}
		if upstream == "" || secret == "" {
			return fmt.Errorf("relay needs --upstream/--secret or GAS_URL/GAS_SECRET_KEY")
		}

		srv := relay.NewServer(relay.Config{
			ListenAddr:  addr,
			UpstreamURL: upstream,
			SecretKey:   secret,
		})
		if err := srv.Start(); err != nil {
			return err
		}
		output.Info("relay listening on %s", addr)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	relayCmd.Flags().String("listen", ":8787", "listen address")
	relayCmd.Flags().String("upstream", "", "script endpoint URL")
	relayCmd.Flags().String("secret", "", "shared secret injected into forwarded payloads")
	rootCmd.AddCommand(relayCmd)
}
