package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeakHours(t *testing.T) {
	ranges, err := ParsePeakHours([]string{"9-12", " 14 - 17 ", "0-23"})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{9, 12}, {14, 17}, {0, 23}}, ranges)
}

func TestParsePeakHoursRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"9", "a-b", "12-9", "-1-5", "20-24"} {
		_, err := ParsePeakHours([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestIsPeakHour(t *testing.T) {
	ranges, err := ParsePeakHours([]string{"9-12", "14-17"})
	require.NoError(t, err)

	assert.True(t, IsPeakHour(9, ranges), "range start is inclusive")
	assert.True(t, IsPeakHour(12, ranges), "range end is inclusive")
	assert.True(t, IsPeakHour(15, ranges))
	assert.False(t, IsPeakHour(13, ranges))
	assert.False(t, IsPeakHour(8, ranges))
	assert.False(t, IsPeakHour(10, nil))
}

func TestClampFloat(t *testing.T) {
	assert.Equal(t, 5.0, ClampFloat(3, 5, 10))
	assert.Equal(t, 10.0, ClampFloat(12, 5, 10))
	assert.Equal(t, 7.0, ClampFloat(7, 5, 10))
}

func TestResolveDefaults(t *testing.T) {
	cfg := AppConfig{}
	cfg.ResolveDefaults()

	assert.Equal(t, "volumeforge", cfg.AppName)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "adaptive", cfg.Strategy.Name)
	assert.Equal(t, 5, cfg.Trading.IntervalSec)
	assert.Equal(t, 0.5, cfg.Trading.BuyRatio)
	assert.Equal(t, 0.5, cfg.Trading.SellRatio)
	assert.Equal(t, 24, cfg.Analytics.RetentionHours)
	assert.Equal(t, "moderate", cfg.Booster.Style)
	assert.Equal(t, 0.001, cfg.Strategy.MarketMaker.Spread)
	assert.Equal(t, 10000.0, cfg.Strategy.Booster.MaxBoost)
	assert.Equal(t, ":8080", cfg.Web.ListenAddr)
}

func TestResolveDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := AppConfig{}
	cfg.Trading.BuyRatio = 0.7
	cfg.Trading.SellRatio = 0.3
	cfg.Analytics.RetentionHours = 48
	cfg.ResolveDefaults()

	assert.Equal(t, 0.7, cfg.Trading.BuyRatio)
	assert.Equal(t, 0.3, cfg.Trading.SellRatio)
	assert.Equal(t, 48, cfg.Analytics.RetentionHours)
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, Debug, level)

	_, err = ParseLogLevel("verbose")
	assert.Error(t, err)
}
