// Package cmd implements the command-line interface for streamplay.
package cmd

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streamplay-cli/streamplay/gateway"
	"github.com/streamplay-cli/streamplay/key"
	"github.com/streamplay-cli/streamplay/log"
	"github.com/streamplay-cli/streamplay/open"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "Port for the gateway to listen on")
	lo.Must0(viper.BindPFlag(key.GatewayPort, serveCmd.Flags().Lookup("port")))

	serveCmd.Flags().StringP("upstream", "u", "", "Base URL of the stream-resolution API")
	lo.Must0(viper.BindPFlag(key.UpstreamBaseURL, serveCmd.Flags().Lookup("upstream")))

	serveCmd.Flags().StringP("static", "s", "", "Directory of static assets served at the root")
	lo.Must0(viper.BindPFlag(key.GatewayStaticDir, serveCmd.Flags().Lookup("static")))

	serveCmd.Flags().BoolP("open", "o", false, "Open the landing page in the default browser")
}

// serveCmd runs the HTTP proxy gateway that fronts the stream-resolution API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP proxy gateway for browser clients",
	Long: `Run the HTTP relay that forwards title lookups to the stream-resolution API
and returns its JSON verbatim, sidestepping browser CORS restrictions.`,
	Example: "  streamplay serve --port 3000",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("open")) {
			go func() {
				// Give the listener a moment to bind.
				time.Sleep(time.Second)
				landing := fmt.Sprintf("http://localhost:%d", viper.GetInt(key.GatewayPort))
				if err := open.Start(landing); err != nil {
					log.Warnf("could not open %s: %v", landing, err)
				}
			}()
		}

		handleErr(gateway.Setup().Run())
	},
}
