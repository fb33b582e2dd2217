package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cxp-platform/cxp-cli/internal/iam"
)

var (
	// Version information
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"

	// Configuration
	cfgFile string
	verbose bool
	noColor bool

	// Colors
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)

	// For testing - allows redirecting output
	colorOutput io.Writer = os.Stdout
	errorOutput io.Writer = os.Stderr
)

// rootCmd represents the base command
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cxp",
		Short: "cxp - CXP platform developer CLI",
		Long: `cxp registers applications with the CXP identity and access management
service and grants them the roles they need on the platform services.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor || viper.GetBool("no-color") {
				color.NoColor = true
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "project config file (default is ./cxp.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Bind flags to viper
	_ = viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("no-color", cmd.PersistentFlags().Lookup("no-color"))

	// Add commands
	cmd.AddCommand(
		newRegisterCmd(),
		newAuthCmd(),
		newEnvCmd(),
		newServicesCmd(),
		newCredentialsCmd(),
		newAppCmd(),
	)

	return cmd
}

// Execute runs the root command and prints any error it returns
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(err)
	}
	return err
}

// SetVersion sets the version information
func SetVersion(v, c, b string) {
	version = v
	commit = c
	buildDate = b
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate)
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig loads .env and binds CXP_* environment variables
func initConfig() {
	// .env is optional; tokens are commonly kept there during development
	if err := godotenv.Load(); err == nil {
		Debug("Loaded environment from .env")
	}

	viper.SetEnvPrefix("CXP")
	viper.AutomaticEnv()
}

func reportError(err error) {
	switch iam.KindOf(err) {
	case iam.KindUsage:
		Error("Error: %v", err)
	case iam.KindConfig:
		Error("Configuration error: %v", err)
	case iam.KindRequest:
		Error("Request error: %v", err)
	default:
		Error("%v", err)
	}
}

// Helper functions for consistent output

// Success prints a success message
func Success(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(colorOutput, successColor.Sprintf("✓ "+format, args...))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(errorOutput, errorColor.Sprintf("✗ "+format, args...))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(colorOutput, infoColor.Sprintf("ℹ "+format, args...))
}

// Warn prints a warning message
func Warn(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(errorOutput, warnColor.Sprintf("⚠ "+format, args...))
}

// Debug prints a debug message if verbose mode is enabled
func Debug(format string, args ...interface{}) {
	if IsVerbose() {
		_, _ = fmt.Fprintln(errorOutput, color.New(color.FgMagenta).Sprintf("» "+format, args...))
	}
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return viper.GetBool("verbose")
}
