package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag  string
	userFlag string
	rootCmd  = &cobra.Command{
		Use:   "pranactl",
		Short: "CLI client for the prana engine REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Prana service base URL")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "User ID (required)")
	_ = rootCmd.MarkPersistentFlagRequired("user")

	// reflect subcommand
	var reflectionText string
	reflectCmd := &cobra.Command{
		Use:   "reflect",
		Short: "Submit a reflection and earn energy points",
		RunE: func(cmd *cobra.Command, args []string) error {
			if reflectionText == "" {
				return fmt.Errorf("--text required")
			}
			return runReflect(apiFlag, userFlag, reflectionText, os.Stdout)
		},
	}
	reflectCmd.Flags().StringVarP(&reflectionText, "text", "t", "", "Reflection text (required)")
	_ = reflectCmd.MarkFlagRequired("text")
	rootCmd.AddCommand(reflectCmd)

	// activate subcommand
	activateCmd := &cobra.Command{
		Use:   "activate CHAKRA_INDEX",
		Short: "Activate a chakra for today (0-6)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActivate(apiFlag, userFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(activateCmd)

	// recalibrate subcommand
	var catchupText string
	recalibrateCmd := &cobra.Command{
		Use:   "recalibrate",
		Short: "Catch up on missed days of the current week",
		RunE: func(cmd *cobra.Command, args []string) error {
			if catchupText == "" {
				return fmt.Errorf("--text required")
			}
			return runRecalibrate(apiFlag, userFlag, catchupText, os.Stdout)
		},
	}
	recalibrateCmd.Flags().StringVarP(&catchupText, "text", "t", "", "Catch-up reflection text (required)")
	_ = recalibrateCmd.MarkFlagRequired("text")
	rootCmd.AddCommand(recalibrateCmd)

	// progress subcommand
	progressCmd := &cobra.Command{
		Use:   "progress",
		Short: "Show the user's progress projection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgress(apiFlag, userFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(progressCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
