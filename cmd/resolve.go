// Package cmd implements the command-line interface for streamplay.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/streamplay-cli/streamplay/filesystem"
	"github.com/streamplay-cli/streamplay/query"
	"github.com/streamplay-cli/streamplay/stream"
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringP("title", "t", "", "Title to resolve a stream for")
	lo.Must0(resolveCmd.MarkFlagRequired("title"))

	resolveCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	resolveCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	_ = resolveCmd.RegisterFlagCompletionFunc("title", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// resolveCmd resolves a title in non-interactive, scriptable mode.
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a title to its stream descriptor without opening a player",
	Example: `  streamplay resolve --title "wednesday" --json
  streamplay resolve -t "breaking bad s01e01" -o descriptor.json -j`,
	Run: func(cmd *cobra.Command, args []string) {
		title := lo.Must(cmd.Flags().GetString("title"))

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		}

		descriptor, err := stream.NewClient("").Resolve(title)
		handleErr(err)

		_ = query.Remember(title, 1)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(writer)
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(descriptor))
		} else {
			fmt.Fprintln(writer, descriptor.String())
		}

		if !descriptor.Success {
			handleErr(errors.New(descriptor.Error))
		}
	},
}
