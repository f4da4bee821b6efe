// main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"volumeforge/pkg/app"
	"volumeforge/utilities"
)

const banner = `
                .__                          _____
 ___  __ ____  |  |  __ __  _____   ____   / ____\___________  ____   ____
 \  \/ //  _ \ |  | |  |  \/     \_/ __ \ \   __\/  _ \_  __ \/ ___\_/ __ \
  \   /(  <_> )|  |_|  |  /  Y Y  \  ___/  |  | (  <_> )  | \/ /_/  >  ___/
   \_/  \____/ |____/____/|__|_|  /\___  > |__|  \____/|__|  \___  / \___  >
                                \/     \/                   /_____/      \/

	Synthetic volume generation for Solana tokens
[]=========================================================================[]
`

// LoadConfig loads the AppConfig from a JSON file using viper, resolves all
// default values and creates the Logger instance.
func LoadConfig(path string) (utilities.AppConfig, *utilities.Logger, error) {
	viper.SetConfigFile(path)
	viper.SetConfigType("json")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return utilities.AppConfig{}, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config utilities.AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return utilities.AppConfig{}, nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.ResolveDefaults()

	logLevel, err := utilities.ParseLogLevel(config.Logging.Level)
	if err != nil {
		return utilities.AppConfig{}, nil, fmt.Errorf("invalid log level in config: %w", err)
	}
	logger := utilities.NewLogger(logLevel)

	return config, logger, nil
}

func main() {
	fmt.Println(banner)

	configPath := "config/config.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, logger, err := LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.LogWarn("Received signal: %v, initiating graceful shutdown.", sig)
		cancel()
	}()

	if err := app.Run(ctx, &cfg, logger); err != nil {
		logger.LogError("Application terminated with error: %v", err)
		os.Exit(1)
	}

	logger.LogInfo("volumeforge shutdown complete at %s", time.Now().Format(time.RFC1123))
}
