package schedule

import (
	"github.com/charmbracelet/huh"

	"github.com/shelfmon/shelfmon/internal/errors"
)

// Edit runs the interactive schedule form, mutating c in place. The
// user picks a preset or edits the five fields directly.
func Edit(c *Crontab) error {
	const custom = "custom"

	options := []huh.Option[string]{}
	for _, p := range Presets() {
		options = append(options, huh.NewOption(p.Name+"  ("+p.Crontab.String()+")", p.Shortcut))
	}
	options = append(options, huh.NewOption("Custom...", custom))

	choice := custom
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Schedule").
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read schedule choice", "")
	}

	if choice != custom {
		parsed, err := Parse(choice)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	fields := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Minute").Value(&c.Minute),
			huh.NewInput().Title("Hour").Value(&c.Hour),
			huh.NewInput().Title("Day of month").Value(&c.DayOfMonth),
			huh.NewInput().Title("Month").Value(&c.Month),
			huh.NewInput().Title("Day of week").Value(&c.DayOfWeek),
		),
	)
	if err := fields.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read schedule fields", "")
	}
	return nil
}
