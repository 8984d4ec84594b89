package cli

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shelfmon/shelfmon/internal/config"
	"github.com/shelfmon/shelfmon/internal/dashboard"
	"github.com/shelfmon/shelfmon/internal/enclosure"
	"github.com/shelfmon/shelfmon/internal/errors"
	"github.com/shelfmon/shelfmon/internal/events"
	"github.com/shelfmon/shelfmon/internal/logger"
	"github.com/shelfmon/shelfmon/internal/report"
	"github.com/shelfmon/shelfmon/internal/stats"
	"github.com/shelfmon/shelfmon/pkg/wsrpc"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the enclosure dashboard",
	Long: `Open the live enclosure dashboard.

Connects to the appliance middleware, loads the enclosure inventory,
and keeps it current via pushed disk-update events. This is also what
running shelfmon with no subcommand does.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand()
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func dashboardCommand() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrConfig,
			"The dashboard needs an interactive terminal",
			"Run shelfmon from a TTY")
	}

	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return err
	}
	if apiURLFlag != "" {
		cfg.APIURL = apiURLFlag
	}
	if cfg.NoColor {
		dashboard.DisableColors()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := wsrpc.Dial(ctx, cfg.APIURL, logger.NewEnvLogger("[wsrpc]"))
	if err != nil {
		return err
	}
	defer client.Close()

	bus := events.NewBus()

	// Reported errors land in the dashboard footer once the program is
	// up; before that they go to the log.
	var program *tea.Program
	log := logger.NewEnvLogger("[store]")
	reporter := report.ReporterFunc(func(rerr error) {
		log.Error("%v", rerr)
		if program != nil {
			program.Send(dashboard.ErrMsg{Err: rerr})
		}
	})

	store := enclosure.New(client, bus, reporter, log)
	defer store.Close()

	model := dashboard.NewModel(store)
	program = tea.NewProgram(model, tea.WithAltScreen())

	store.OnChange(func(st *enclosure.State) {
		program.Send(dashboard.StateMsg{State: st})
	})

	// Bridge middleware pushes: disk events go onto the notifier bus,
	// everything else is forwarded for the stats stream to decode.
	bridge := newEventBridge(client, bus)
	if err := client.Subscribe(enclosure.StreamDisks); err != nil {
		return err
	}
	go bridge.run()

	samples, err := stats.Stream(ctx, bridge, log)
	if err != nil {
		return err
	}
	go func() {
		for s := range samples {
			program.Send(dashboard.StatsMsg{Sample: s})
		}
	}()

	// Periodic silent refresh as a safety net alongside disk events.
	if cfg.RefreshInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.RefreshInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					store.Update()
				}
			}
		}()
	}

	_, err = program.Run()
	return err
}

// eventBridge splits the middleware push channel: disk-update events
// publish to the in-process bus, the rest flow through to subscribers
// of Events (the stats stream). Implements stats.Source.
type eventBridge struct {
	client *wsrpc.Client
	bus    *events.Bus
	out    chan wsrpc.Event
}

func newEventBridge(client *wsrpc.Client, bus *events.Bus) *eventBridge {
	return &eventBridge{client: client, bus: bus, out: make(chan wsrpc.Event, 8)}
}

func (b *eventBridge) Subscribe(name string) error {
	return b.client.Subscribe(name)
}

func (b *eventBridge) Events() <-chan wsrpc.Event {
	return b.out
}

func (b *eventBridge) run() {
	defer close(b.out)
	for ev := range b.client.Events() {
		if ev.Collection == enclosure.StreamDisks {
			b.bus.Publish()
			continue
		}
		b.out <- ev
	}
}
