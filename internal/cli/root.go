package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/sstrack/internal/model"
)

// Version is the CLI version, overridable at link time
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sstrack",
	Short: "sstrack - occupational safety and health compliance tracker",
	Long: `sstrack tracks the documents that keep a workforce compliant with the
Brazilian regulatory norms (NRs): company programs (PGR, PCMSO, PPR, PCA),
medical fitness certificates (ASOs) and training certificates.

An AI provider reads each uploaded document; deterministic rules then
normalize the norm, compute the expiration date, check the legal minimum
workload and store the record.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sstrack %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.sstrack/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	flags.String("store", "", "store file path (overrides store.path)")
	flags.String("driver", "", "store driver: xlsx or sqlite (overrides store.driver)")
	flags.String("log-format", "", "log format: text or json (overrides log.format)")

	_ = viper.BindPFlag("store.path", flags.Lookup("store"))
	_ = viper.BindPFlag("store.driver", flags.Lookup("driver"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	v := viper.GetViper()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		v.AddConfigPath(filepath.Join(home, ".sstrack"))
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := prepareViper(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering defaults: %v\n", err)
	}

	if err := v.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}
}

// prepareViper registers every default key so SSTRACK_* environment
// variables can override keys absent from the config file.
func prepareViper(v *viper.Viper) error {
	v.SetEnvPrefix("SSTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	data, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return err
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	setDefaults(v, "", tree)

	// omitempty keys never reach the tree
	for _, key := range []string{"ai.api_key", "ai.base_url", "ai.http_proxy", "ai.https_proxy"} {
		_ = v.BindEnv(key)
	}
	return nil
}

func setDefaults(v *viper.Viper, prefix string, tree map[string]interface{}) {
	for k, val := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]interface{}); ok {
			setDefaults(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}

// loadConfig merges defaults, config file, environment and flags
func loadConfig() (model.Config, error) {
	return loadConfigFrom(viper.GetViper())
}

func loadConfigFrom(v *viper.Viper) (model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	applyProviderEnv(&cfg)
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// applyProviderEnv fills provider credentials from the provider's
// conventional environment variables when the config leaves them empty.
func applyProviderEnv(cfg *model.Config) {
	switch strings.ToLower(cfg.AI.Provider) {
	case "openai":
		if cfg.AI.APIKey == "" {
			cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if cfg.AI.APIKey == "" {
			cfg.AI.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "ollama":
		if cfg.AI.BaseURL == "" {
			cfg.AI.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
}
