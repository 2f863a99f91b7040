package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/valory-xyz/bumper/pkg/constants"
)

// Config carries the effective settings for one invocation, merged from
// command-line flags, environment variables, .env files, and an optional
// .bumper.yaml config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Bumper configuration
	Repos        []string
	ManifestPath string
	RemotePath   string
	BaseURL      string
	GitHubToken  string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig assembles the configuration from every source. Cobra flags win
// over environment variables, which win over .env files, which win over
// ~/.bumper.yaml, with compiled-in defaults underneath.
func LoadConfig() (*Config, error) {
	// .env files first so Viper's env binding sees their values
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Bind the GitHub token explicitly so a .env value is picked up
	bindToken()

	readConfigFile()

	config := &Config{
		// Global flags; cobra folds parsed values over these in setupCommand
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Output:  viper.GetString("output"),

		ConfigFile: viper.ConfigFileUsed(),

		// Bumper configuration. Empty values fall back to the
		// compiled-in defaults at construction time.
		Repos:        viper.GetStringSlice("repos"),
		ManifestPath: viper.GetString("manifest_path"),
		RemotePath:   viper.GetString("remote_path"),
		BaseURL:      viper.GetString("base_url"),
		GitHubToken:  viper.GetString(constants.GitHubTokenEnvVar),

		// Logging configuration. LogLevel stays empty unless LOG_LEVEL
		// is set so the -v/-q precedence logic in logger.go applies.
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// UpdateFromFlags folds parsed command flags back into the config so flag
// values take precedence over config file and env vars. Empty strings mean
// the flag was not given and never clobber a loaded value.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, output, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if output != "" {
		c.Output = output
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// readConfigFile points Viper at an explicit config file or the standard
// search locations. A missing file is not an error.
func readConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bumper")
	}

	_ = viper.ReadInConfig()
}

// loadEnvFiles loads .env.local before .env. godotenv never overwrites
// variables that are already set, so the local file takes precedence.
func loadEnvFiles() {
	for _, name := range []string{".env.local", ".env"} {
		_ = godotenv.Load(name)
	}
}

// bindToken explicitly binds the GitHub token environment variable to Viper.
func bindToken() {
	if err := viper.BindEnv(constants.GitHubTokenEnvVar); err != nil {
		// An unauthenticated client still works, so warn and continue
		fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", constants.GitHubTokenEnvVar, err)
	}
}

// getEnvOrDefault reads an environment variable, with a fallback for unset.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
