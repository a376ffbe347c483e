package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"neoscan/internal/config"
	"neoscan/internal/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "neoscan",
	Short: "neoscan is a concurrent IPv4 port scanner",
	Long: `neoscan probes a range of TCP/UDP ports on a single target and
reports open/closed/filtered/open-filtered/unfiltered per port, using
either a full TCP handshake or a raw-packet technique (SYN, NULL, FIN,
XMAS, ACK, UDP).

Example:
  neoscan scan -a 10.0.0.5 -s 1 -e 1024 -m syn
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initCLILogger(cmd)
	},
}

// Execute runs the root command, recovering from any panic so a crash
// never leaves the terminal in a raw-socket-half-open state.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n[FATAL] neoscan crashed unexpectedly: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(newScanCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("neoscan")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("neoscan")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func initCLILogger(cmd *cobra.Command) {
	level := "info"
	if flag := cmd.Flags().Lookup("log-level"); flag != nil && flag.Changed {
		level = flag.Value.String()
	} else if bound := viper.GetString("log.level"); bound != "" {
		// falls back to a NEOSCAN_LOG_LEVEL env var or a config file's
		// log.level key, whichever viper.AutomaticEnv/ReadInConfig found.
		level = bound
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Printf("failed to load config, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}
	cfg.Log.Level = level

	if _, err := logger.Init(cfg.Log); err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
	}
}
