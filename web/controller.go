package web

import (
	"time"

	"volumeforge/metrics"
	"volumeforge/pkg/executor"
	"volumeforge/pkg/gate"
	"volumeforge/utilities"
)

// BotStatusData is the lifecycle view of one control loop.
type BotStatusData struct {
	Name       string             `json:"name"`
	Strategy   string             `json:"strategy"`
	Running    bool               `json:"running"`
	Ticks      int                `json:"ticks"`
	Gate       gate.State         `json:"gate"`
	Alerts     metrics.AlertState `json:"alerts"`
	LastReport executor.Report    `json:"last_report"`
}

// BoosterData is the booster loop's view, present only when the booster is
// enabled.
type BoosterData struct {
	Running               bool      `json:"running"`
	TotalBoosts           int       `json:"total_boosts"`
	SuccessfulBoosts      int       `json:"successful_boosts"`
	VolumeIncrease        float64   `json:"volume_increase"`
	LastBoostTime         time.Time `json:"last_boost_time"`
	BoostSuccessRate      float64   `json:"boost_success_rate"`
	AverageVolumePerBoost float64   `json:"average_volume_per_boost"`
}

// StatusData is the top-level view served by the status endpoint.
type StatusData struct {
	AppName string          `json:"app_name"`
	Version string          `json:"version"`
	Bots    []BotStatusData `json:"bots"`
	Booster *BoosterData    `json:"booster,omitempty"`
}

// MetricsData carries the current snapshot, derived trend and retained history
// length.
type MetricsData struct {
	Current     metrics.Snapshot `json:"current"`
	Trend       metrics.Trend    `json:"trend"`
	HistorySize int              `json:"history_size"`
}

// ReportData is the full retained snapshot history.
type ReportData struct {
	History []metrics.Snapshot `json:"history"`
}

// AppController defines the interface the web package needs to read the main
// application's state.
type AppController interface {
	GetStatusData() StatusData
	GetMetricsData() MetricsData
	GetReportData() ReportData
	GetConfig() utilities.AppConfig
	Logger() *utilities.Logger
}
