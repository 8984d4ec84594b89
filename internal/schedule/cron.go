// Package schedule holds the cron-style task schedule editor: a value
// type for the five crontab fields, common presets, and an interactive
// form. Field values are carried verbatim; validating them is the
// appliance scheduler's job, not ours.
package schedule

import (
	"fmt"
	"strings"

	"github.com/shelfmon/shelfmon/internal/errors"
)

// Crontab holds the five standard cron fields.
type Crontab struct {
	Minute     string `yaml:"minute"`
	Hour       string `yaml:"hour"`
	DayOfMonth string `yaml:"dom"`
	Month      string `yaml:"month"`
	DayOfWeek  string `yaml:"dow"`
}

// Default returns the daily-at-midnight schedule.
func Default() Crontab {
	return Crontab{Minute: "0", Hour: "0", DayOfMonth: "*", Month: "*", DayOfWeek: "*"}
}

// String renders the crontab in the usual five-field form.
func (c Crontab) String() string {
	return strings.Join([]string{c.Minute, c.Hour, c.DayOfMonth, c.Month, c.DayOfWeek}, " ")
}

// Parse splits a five-field cron expression into a Crontab. The @-form
// shortcuts for the presets are accepted too.
func Parse(expr string) (Crontab, error) {
	expr = strings.TrimSpace(expr)

	if strings.HasPrefix(expr, "@") {
		for _, p := range Presets() {
			if p.Shortcut == expr {
				return p.Crontab, nil
			}
		}
		return Crontab{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown schedule shortcut '%s'", expr),
			"Use @hourly, @daily, @weekly, or @monthly")
	}

	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return Crontab{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Expected 5 cron fields, got %d", len(fields)),
			"The format is: minute hour day-of-month month day-of-week")
	}
	return Crontab{
		Minute:     fields[0],
		Hour:       fields[1],
		DayOfMonth: fields[2],
		Month:      fields[3],
		DayOfWeek:  fields[4],
	}, nil
}

// Preset is a named common schedule.
type Preset struct {
	Name     string
	Shortcut string
	Crontab  Crontab
}

// Presets returns the schedules offered by the editor, most frequent first.
func Presets() []Preset {
	return []Preset{
		{Name: "Hourly", Shortcut: "@hourly", Crontab: Crontab{Minute: "0", Hour: "*", DayOfMonth: "*", Month: "*", DayOfWeek: "*"}},
		{Name: "Daily", Shortcut: "@daily", Crontab: Default()},
		{Name: "Weekly", Shortcut: "@weekly", Crontab: Crontab{Minute: "0", Hour: "0", DayOfMonth: "*", Month: "*", DayOfWeek: "0"}},
		{Name: "Monthly", Shortcut: "@monthly", Crontab: Crontab{Minute: "0", Hour: "0", DayOfMonth: "1", Month: "*", DayOfWeek: "*"}},
	}
}

// Describe returns a short human-readable summary: the preset name when
// the schedule matches one, otherwise the raw expression.
func (c Crontab) Describe() string {
	for _, p := range Presets() {
		if p.Crontab == c {
			return p.Name
		}
	}
	return c.String()
}
