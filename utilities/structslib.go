package utilities

import "time"

// --- Types (Alphabetized) ---

// AlertThresholdsConfig holds the optional alert thresholds. A nil threshold
// disables that alert entirely.
type AlertThresholdsConfig struct {
	Volume    *float64 `mapstructure:"volume"`
	Price     *float64 `mapstructure:"price"`
	Liquidity *float64 `mapstructure:"liquidity"`
}

// AnalyticsConfig holds settings for the analytics loop: snapshot cadence,
// history retention and alerting.
type AnalyticsConfig struct {
	UpdateIntervalSec int                   `mapstructure:"update_interval_sec"`
	RetentionHours    int                   `mapstructure:"retention_hours"`
	AlertThresholds   AlertThresholdsConfig `mapstructure:"alert_thresholds"`
	NotifyUpdates     bool                  `mapstructure:"notify_updates"`
}

// AppConfig is the root configuration structure, holding all other config sections.
type AppConfig struct {
	AppName     string          `mapstructure:"app_name"`
	Analytics   AnalyticsConfig `mapstructure:"analytics"`
	Booster     BoosterConfig   `mapstructure:"booster"`
	Discord     DiscordConfig   `mapstructure:"discord"`
	Environment string          `mapstructure:"environment"`
	Gate        GateConfig      `mapstructure:"gate"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Solana      SolanaConfig    `mapstructure:"solana"`
	Strategy    StrategyConfig  `mapstructure:"strategy"`
	Telegram    TelegramConfig  `mapstructure:"telegram"`
	Trading     TradingConfig   `mapstructure:"trading"`
	Version     string          `mapstructure:"version"`
	VolumeAPI   VolumeAPIConfig `mapstructure:"volume_api"`
	Web         WebConfig       `mapstructure:"web"`
}

// BoosterConfig holds settings for the volume booster loop.
type BoosterConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	TargetVolume     float64 `mapstructure:"target_volume"`
	BoostIntervalSec int     `mapstructure:"boost_interval_sec"`
	MaxBoosts        int     `mapstructure:"max_boosts"`
	CooldownSec      int     `mapstructure:"cooldown_sec"`
	Style            string  `mapstructure:"style"` // aggressive | moderate | conservative
}

// BoosterStrategyConfig holds tunables for the aggressive booster strategy.
type BoosterStrategyConfig struct {
	BoostFactor float64 `mapstructure:"boost_factor"`
	MaxBoost    float64 `mapstructure:"max_boost"`
	CooldownSec int     `mapstructure:"cooldown_sec"`
}

// DiscordConfig holds settings for sending notifications via Discord.
type DiscordConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

// GateConfig bounds how often and how many times the trading loop may act.
type GateConfig struct {
	MaxActions  int `mapstructure:"max_actions"`
	CooldownSec int `mapstructure:"cooldown_sec"`
}

// LoggingConfig holds settings related to logging.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// MarketMakerConfig holds tunables for the market-maker strategy.
type MarketMakerConfig struct {
	Spread             float64 `mapstructure:"spread"`
	Depth              float64 `mapstructure:"depth"`
	ImbalanceThreshold float64 `mapstructure:"imbalance_threshold"`
}

// SolanaConfig holds settings for the Solana RPC connection.
type SolanaConfig struct {
	RPCEndpoint       string `mapstructure:"rpc_endpoint"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec"`
}

// StrategyConfig selects the active volume strategy and its tunables.
type StrategyConfig struct {
	Name        string                `mapstructure:"name"` // fixed | adaptive | market_maker | booster
	FixedAmount float64               `mapstructure:"fixed_amount"`
	MarketMaker MarketMakerConfig     `mapstructure:"market_maker"`
	Booster     BoosterStrategyConfig `mapstructure:"booster"`
}

// TelegramConfig holds settings for sending notifications via Telegram.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// TradingConfig holds the volume generation parameters for the trading loop.
type TradingConfig struct {
	MinVolume   float64  `mapstructure:"min_volume"`
	MaxVolume   float64  `mapstructure:"max_volume"`
	IntervalSec int      `mapstructure:"interval_sec"`
	Wallets     []string `mapstructure:"wallets"`
	BuyRatio    float64  `mapstructure:"buy_ratio"`
	SellRatio   float64  `mapstructure:"sell_ratio"`
	PeakHours   []string `mapstructure:"peak_hours"` // e.g. "9-12", "14-17"
}

// VolumeAPIConfig holds settings for the volume stats / trade execution API.
type VolumeAPIConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	APIKey            string `mapstructure:"api_key"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec"`
	MaxRetries        int    `mapstructure:"max_retries"`
	RetryDelaySec     int    `mapstructure:"retry_delay_sec"`
	RateLimitPerSec   int    `mapstructure:"rate_limit_per_sec"`
	RateLimitBurst    int    `mapstructure:"rate_limit_burst"`
	CacheTTLSec       int    `mapstructure:"cache_ttl_sec"`
}

// WebConfig holds settings for the status HTTP server.
type WebConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ListenAddr string `mapstructure:"listen_addr"`
}

// ResolveDefaults fills every optional knob with its default value in one place,
// so component logic never re-derives fallbacks at the point of use.
func (c *AppConfig) ResolveDefaults() {
	if c.AppName == "" {
		c.AppName = "volumeforge"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Trading.IntervalSec <= 0 {
		c.Trading.IntervalSec = 5
	}
	if c.Trading.BuyRatio == 0 && c.Trading.SellRatio == 0 {
		c.Trading.BuyRatio = 0.5
		c.Trading.SellRatio = 0.5
	}
	if c.Gate.MaxActions <= 0 {
		c.Gate.MaxActions = 1000
	}
	if c.Gate.CooldownSec < 0 {
		c.Gate.CooldownSec = 0
	}
	if c.Analytics.UpdateIntervalSec <= 0 {
		c.Analytics.UpdateIntervalSec = 60
	}
	if c.Analytics.RetentionHours <= 0 {
		c.Analytics.RetentionHours = 24
	}
	if c.Booster.BoostIntervalSec <= 0 {
		c.Booster.BoostIntervalSec = 60
	}
	if c.Booster.MaxBoosts <= 0 {
		c.Booster.MaxBoosts = 10
	}
	if c.Booster.CooldownSec <= 0 {
		c.Booster.CooldownSec = 300
	}
	if c.Booster.Style == "" {
		c.Booster.Style = "moderate"
	}
	if c.Strategy.Name == "" {
		c.Strategy.Name = "adaptive"
	}
	if c.Strategy.MarketMaker.Spread == 0 {
		c.Strategy.MarketMaker.Spread = 0.001
	}
	if c.Strategy.MarketMaker.Depth == 0 {
		c.Strategy.MarketMaker.Depth = 1000
	}
	if c.Strategy.MarketMaker.ImbalanceThreshold == 0 {
		c.Strategy.MarketMaker.ImbalanceThreshold = 0.2
	}
	if c.Strategy.Booster.BoostFactor == 0 {
		c.Strategy.Booster.BoostFactor = 2.0
	}
	if c.Strategy.Booster.MaxBoost == 0 {
		c.Strategy.Booster.MaxBoost = 10000
	}
	if c.Strategy.Booster.CooldownSec == 0 {
		c.Strategy.Booster.CooldownSec = 3600
	}
	if c.VolumeAPI.RequestTimeoutSec <= 0 {
		c.VolumeAPI.RequestTimeoutSec = 15
	}
	if c.VolumeAPI.MaxRetries < 0 {
		c.VolumeAPI.MaxRetries = 0
	}
	if c.VolumeAPI.RetryDelaySec <= 0 {
		c.VolumeAPI.RetryDelaySec = 2
	}
	if c.VolumeAPI.RateLimitPerSec <= 0 {
		c.VolumeAPI.RateLimitPerSec = 5
	}
	if c.VolumeAPI.RateLimitBurst <= 0 {
		c.VolumeAPI.RateLimitBurst = 5
	}
	if c.VolumeAPI.CacheTTLSec <= 0 {
		c.VolumeAPI.CacheTTLSec = 30
	}
	if c.Solana.RequestTimeoutSec <= 0 {
		c.Solana.RequestTimeoutSec = 15
	}
	if c.Web.ListenAddr == "" {
		c.Web.ListenAddr = ":8080"
	}
}

// GateCooldown returns the gate cooldown as a duration.
func (c *AppConfig) GateCooldown() time.Duration {
	return time.Duration(c.Gate.CooldownSec) * time.Second
}

// Retention returns the analytics history retention window as a duration.
func (c *AppConfig) Retention() time.Duration {
	return time.Duration(c.Analytics.RetentionHours) * time.Hour
}
