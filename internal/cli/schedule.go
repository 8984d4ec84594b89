package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shelfmon/shelfmon/internal/config"
	"github.com/shelfmon/shelfmon/internal/errors"
	"github.com/shelfmon/shelfmon/internal/schedule"
)

var scheduleMethodFlag string

var scheduleCmd = &cobra.Command{
	Use:   "schedule [task]",
	Short: "Edit a task's cron schedule",
	Long: `Edit the cron schedule of a configured task.

Without arguments, lists the configured tasks and their schedules.
With a task name, opens the interactive schedule editor; a new task
name creates the entry (use --method to set its middleware call).

Examples:
  shelfmon schedule
  shelfmon schedule smart-scan
  shelfmon schedule scrub --method pool.scrub`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listSchedules()
		}
		return editSchedule(args[0])
	},
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleMethodFlag, "method", "", "middleware method for a new task")
	rootCmd.AddCommand(scheduleCmd)
}

func listSchedules() error {
	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return err
	}
	if len(cfg.Tasks) == 0 {
		fmt.Println("No tasks configured. Add one with 'shelfmon schedule <name> --method <call>'.")
		return nil
	}

	names := make([]string, 0, len(cfg.Tasks))
	for name := range cfg.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		task := cfg.Tasks[name]
		desc := task.Schedule
		if ct, err := task.Crontab(); err == nil {
			desc = fmt.Sprintf("%s  (%s)", ct.String(), ct.Describe())
		}
		fmt.Printf("%-20s %-24s %s\n", name, task.Method, desc)
	}
	return nil
}

func editSchedule(name string) error {
	path, err := config.Find(configFlag)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file to store the schedule in",
			"Create "+config.ConfigFileName+" first, or pass --config")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	task, exists := cfg.Tasks[name]
	if !exists {
		if scheduleMethodFlag == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Task '%s' does not exist", name),
				"Pass --method to create it")
		}
		task = config.TaskConfig{Method: scheduleMethodFlag, Schedule: schedule.Default().String()}
	}

	ct, err := schedule.Parse(task.Schedule)
	if err != nil {
		ct = schedule.Default()
	}

	if err := schedule.Edit(&ct); err != nil {
		return err
	}
	task.Schedule = ct.String()
	if cfg.Tasks == nil {
		cfg.Tasks = map[string]config.TaskConfig{}
	}
	cfg.Tasks[name] = task

	if err := saveConfig(path, cfg); err != nil {
		return err
	}
	fmt.Printf("%s: %s (%s)\n", name, ct.String(), ct.Describe())
	return nil
}

func saveConfig(path string, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't serialize config", "")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write "+path, "Check file permissions")
	}
	return nil
}
