// Package gauge renders the CPU usage gauge widget. It is a stateless
// projection over the realtime stats stream: the only thing it holds is
// the most recently pushed sample.
package gauge

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shelfmon/shelfmon/internal/stats"
)

// Fixed visual parameters for the gauge.
const (
	gaugeWidth = 24 // bar cells
	gaugeMin   = 0.0
	gaugeMax   = 100.0
)

// Thresholds for the bar color, matching the tile palette.
const (
	warnThreshold = 60.0
	critThreshold = 80.0
)

var (
	barOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	barWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	barCritStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	trackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	subStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Config is the display configuration derived from one sample.
type Config struct {
	Label    string  // always empty: the gauge suppresses its label
	Value    float64 // average usage, rounded to one decimal
	Width    int
	Min, Max float64
	Subtitle string
}

// Translator resolves a message key to display text. The default
// catalog is English; appliances with localization inject their own.
type Translator func(key string) string

var defaultCatalog = map[string]string{
	"Avg Usage": "Avg Usage",
}

func defaultTranslator(key string) string {
	if msg, ok := defaultCatalog[key]; ok {
		return msg
	}
	return key
}

// Model holds the latest pushed sample, nothing else.
type Model struct {
	latest    *stats.Sample
	translate Translator
}

// NewModel returns a gauge with no sample yet.
func NewModel(translate Translator) Model {
	if translate == nil {
		translate = defaultTranslator
	}
	return Model{translate: translate}
}

// Push records a newly pushed sample, replacing the previous one.
func (m *Model) Push(s stats.Sample) {
	m.latest = &s
}

// IsLoading is true exactly while no sample has arrived yet.
func (m Model) IsLoading() bool {
	return m.latest == nil
}

// Config derives the gauge display configuration from the latest
// sample. ok is false before the first sample.
func (m Model) Config() (cfg Config, ok bool) {
	if m.latest == nil {
		return Config{}, false
	}
	usage := m.latest.CPU.Average.Usage
	return Config{
		Label:    "",
		Value:    math.Round(usage*10) / 10,
		Width:    gaugeWidth,
		Min:      gaugeMin,
		Max:      gaugeMax,
		Subtitle: m.translate("Avg Usage"),
	}, true
}

// View renders the gauge as a filled bar with the value and subtitle.
func (m Model) View() string {
	cfg, ok := m.Config()
	if !ok {
		return subStyle.Render("cpu: waiting for stats...")
	}

	frac := (cfg.Value - cfg.Min) / (cfg.Max - cfg.Min)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(math.Round(frac * float64(cfg.Width)))

	style := barOKStyle
	switch {
	case cfg.Value >= critThreshold:
		style = barCritStyle
	case cfg.Value >= warnThreshold:
		style = barWarnStyle
	}

	bar := style.Render(strings.Repeat("█", filled)) +
		trackStyle.Render(strings.Repeat("░", cfg.Width-filled))

	return fmt.Sprintf("%s %5.1f%% %s", bar, cfg.Value, subStyle.Render(cfg.Subtitle))
}
