// Package app wires the configured loops together and owns their lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"volumeforge/dataprovider"
	"volumeforge/dataprovider/solana"
	"volumeforge/dataprovider/volumeapi"
	"volumeforge/metrics"
	"volumeforge/notification"
	"volumeforge/notification/discord"
	"volumeforge/notification/telegram"
	"volumeforge/pkg/executor"
	"volumeforge/pkg/trade"
	"volumeforge/strategy"
	"volumeforge/utilities"
	"volumeforge/web"
)

// appController adapts the running application state to the web package.
type appController struct {
	cfg     *utilities.AppConfig
	logger  *utilities.Logger
	store   *metrics.Store
	trader  *VolumeBot
	booster *BoosterBot
}

func (c *appController) GetStatusData() web.StatusData {
	status := c.trader.Status()
	data := web.StatusData{
		AppName: c.cfg.AppName,
		Version: c.cfg.Version,
		Bots: []web.BotStatusData{{
			Name:       status.Name,
			Strategy:   status.Strategy,
			Running:    status.Running,
			Ticks:      status.Ticks,
			Gate:       status.Gate,
			Alerts:     status.Alerts,
			LastReport: status.LastReport,
		}},
	}
	if c.booster != nil {
		boosts := c.booster.Metrics()
		data.Booster = &web.BoosterData{
			Running:               c.booster.Running(),
			TotalBoosts:           boosts.TotalBoosts,
			SuccessfulBoosts:      boosts.SuccessfulBoosts,
			VolumeIncrease:        boosts.VolumeIncrease,
			LastBoostTime:         boosts.LastBoostTime,
			BoostSuccessRate:      boosts.BoostSuccessRate,
			AverageVolumePerBoost: boosts.AverageVolumePerBoost,
		}
	}
	return data
}

func (c *appController) GetMetricsData() web.MetricsData {
	return web.MetricsData{
		Current:     c.store.Current(),
		Trend:       c.store.Trend(),
		HistorySize: c.store.Len(),
	}
}

func (c *appController) GetReportData() web.ReportData {
	return web.ReportData{History: c.store.History()}
}

func (c *appController) GetConfig() utilities.AppConfig { return *c.cfg }
func (c *appController) Logger() *utilities.Logger      { return c.logger }

// Run performs pre-flight validation, builds every client and loop from
// config, starts them and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg *utilities.AppConfig, logger *utilities.Logger) error {
	if len(cfg.Trading.Wallets) == 0 {
		return errors.New("pre-flight check failed: no wallets configured in config.json")
	}
	if cfg.VolumeAPI.BaseURL == "" {
		return errors.New("pre-flight check failed: volume_api.base_url must be set")
	}
	if cfg.Trading.BuyRatio+cfg.Trading.SellRatio <= 0 {
		return errors.New("pre-flight check failed: buy_ratio and sell_ratio must not both be zero")
	}

	marketData, err := volumeapi.NewClient(&cfg.VolumeAPI, logger)
	if err != nil {
		return fmt.Errorf("volume API client: %w", err)
	}
	trader := trade.NewAPIClient(&cfg.VolumeAPI, logger)

	notifier := buildNotifier(cfg, logger)

	if cfg.Solana.RPCEndpoint != "" {
		chain, err := solana.NewClient(&cfg.Solana, logger)
		if err != nil {
			return fmt.Errorf("solana client: %w", err)
		}
		checkWalletBalances(ctx, chain, cfg.Trading.Wallets, logger)
	} else {
		logger.LogWarn("App: no Solana RPC endpoint configured, skipping wallet balance pre-flight")
	}

	strat, err := strategy.NewFromConfig(cfg.Strategy)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	store := metrics.NewStore(cfg.Retention())

	tradingExec := executor.New(trader, logger, cfg.Trading.Wallets, cfg.Trading.BuyRatio, cfg.Trading.SellRatio, strat.Name())
	tradingBot, err := NewVolumeBot("trading", cfg, marketData, strat, tradingExec, store, notifier, logger)
	if err != nil {
		return err
	}

	var booster *BoosterBot
	if cfg.Booster.Enabled {
		buyRatio, sellRatio := executor.RatioForStyle(cfg.Booster.Style)
		boostExec := executor.New(trader, logger, cfg.Trading.Wallets, buyRatio, sellRatio, "booster-"+cfg.Booster.Style)
		booster = NewBoosterBot(cfg, marketData, boostExec, notifier, logger)
	}

	if cfg.Web.Enabled {
		web.StartWebServer(ctx, &appController{
			cfg:     cfg,
			logger:  logger,
			store:   store,
			trader:  tradingBot,
			booster: booster,
		}, cfg.Web.ListenAddr)
	}

	tradingBot.Start(ctx)
	if booster != nil {
		booster.Start(ctx)
	}

	if err := notifier.Send(notification.Event{
		Title:    cfg.AppName + " started",
		Severity: notification.SeverityInfo,
		Fields: []notification.Field{
			{Name: "Strategy", Value: strat.Name(), Inline: true},
			{Name: "Wallets", Value: fmt.Sprintf("%d", len(cfg.Trading.Wallets)), Inline: true},
		},
	}); err != nil {
		logger.LogError("App: startup notification failed: %v", err)
	}

	<-ctx.Done()

	logger.LogInfo("App: shutdown signal received, stopping loops...")
	tradingBot.Stop()
	if booster != nil {
		booster.Stop()
	}
	return nil
}

// buildNotifier assembles the fan-out notifier from whichever channels are
// configured. With no channel configured events are dropped after logging.
func buildNotifier(cfg *utilities.AppConfig, logger *utilities.Logger) notification.Notifier {
	var channels []notification.Notifier

	if cfg.Discord.WebhookURL != "" {
		channels = append(channels, discord.NewClient(cfg.Discord.WebhookURL, logger))
	}
	if cfg.Telegram.BotToken != "" {
		tg, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.LogError("App: Telegram channel disabled: %v", err)
		} else {
			channels = append(channels, tg)
		}
	}
	if len(channels) == 0 {
		logger.LogWarn("App: no notification channel configured, events will only be logged")
	}
	return notification.NewMulti(channels...)
}

// checkWalletBalances fetches every configured wallet's balance on startup.
// Wallets that fail the check are reported but not removed.
func checkWalletBalances(ctx context.Context, chain dataprovider.ChainProvider, wallets []string, logger *utilities.Logger) {
	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, wallet := range wallets {
		balance, err := chain.GetBalance(checkCtx, wallet)
		if err != nil {
			logger.LogWarn("Pre-flight: balance check failed for wallet %s: %v", wallet, err)
			continue
		}
		logger.LogInfo("Pre-flight: wallet %s holds %.6f SOL", wallet, balance)
	}
}
