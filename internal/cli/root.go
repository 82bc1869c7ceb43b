package cli

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Kailash-Mistry/Interviewly/internal/ui"
	"github.com/Kailash-Mistry/Interviewly/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "interviewly",
	Short:   "Terminal client for Interviewly rooms",
	Long:    `Interviewly is a terminal client for Interviewly interview rooms. It joins a room on the relay server, mirrors the shared code document, sends and receives chat, and can negotiate a direct WebRTC peer link through the relay.`,
	Version: version.Version,
}

// Execute runs the root command. Called once from main.
func Execute() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		os.Exit(0)
	}()

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
