package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-scope/logging"
)

var (
	configFile string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sonido-scope",
	Short: "Spectral analysis of sampled complex waveforms",
	Long: `sonido-scope analyzes sampled complex-valued waveforms.

It keeps consistent time-domain and frequency-domain representations of a
capture, supports ideal and FIR frequency filtering, windowing, zero-padding
and sub-range zooming, and emits CSV tables and PNG graphs of the waveform,
its spectrum and its one-sided power spectrum.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.GetGlobalLogger().SetLevel(logging.ParseLevel(viper.GetString("log_level")))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/sonido-scope/sonido-scope.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sonido-scope"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("sonido-scope")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SONIDO_SCOPE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logging.WithFields(logging.Fields{
			"config": viper.ConfigFileUsed(),
		}).Debug("config file loaded")
	}
}
