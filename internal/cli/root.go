package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "interviewctl"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "interviewctl drives an interview session against a running interview service",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.SetEnvPrefix("INTERVIEWCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server", "http://localhost:8004")
	viper.SetDefault("timeout", "150s")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interviewctl.yaml in current directory)")
	rootCmd.PersistentFlags().String("server", "", "base URL of the interview service")
	rootCmd.PersistentFlags().String("token", "", "bearer token, if the service requires one")
	rootCmd.PersistentFlags().String("candidate", "", "candidate id")
	rootCmd.PersistentFlags().String("job", "", "job id")

	for _, name := range []string{"server", "token", "candidate", "job"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The config file is optional; flags and env cover everything.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			cobra.CheckErr(err)
		}
	}
}

func newClient() *Client {
	return NewClient(viper.GetString("server"), viper.GetString("token"), viper.GetDuration("timeout"))
}

func session() (candidateId, jobId string, err error) {
	candidateId = viper.GetString("candidate")
	jobId = viper.GetString("job")
	if candidateId == "" || jobId == "" {
		return "", "", fmt.Errorf("--candidate and --job are required")
	}
	return candidateId, jobId, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
