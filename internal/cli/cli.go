// Package cli implements the clippy command-line interface over the
// history and pin stores.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clippyd/clippy/internal/clipboard"
	"github.com/clippyd/clippy/internal/clipboard/sysboard"
	"github.com/clippyd/clippy/internal/config"
	"github.com/clippyd/clippy/internal/history"
	"github.com/clippyd/clippy/internal/pins"
	"github.com/clippyd/clippy/internal/record"
	"github.com/clippyd/clippy/internal/recfile"
	"github.com/clippyd/clippy/internal/search"
	"github.com/clippyd/clippy/internal/tui"
)

// CLI handles the command-line interface.
type CLI struct {
	history   *history.Store
	pins      *pins.Store
	configMgr *config.Manager
	clipboard clipboard.Clipboard
}

// New creates a CLI instance over the default store locations and
// configuration file.
func New() (*CLI, error) {
	configMgr, err := config.NewManager()
	if err != nil {
		return nil, err
	}

	cfg, err := configMgr.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	paths, err := recfile.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store paths: %w", err)
	}

	images := recfile.NewImageDir(paths.Images)
	return &CLI{
		history:   history.New(paths.History, images, cfg),
		pins:      pins.New(paths.Pins, images, cfg),
		configMgr: configMgr,
		clipboard: sysboard.New(),
	}, nil
}

// NewWithStores creates a CLI over explicit stores, used by tests.
func NewWithStores(h *history.Store, p *pins.Store, cm *config.Manager, clip clipboard.Clipboard) *CLI {
	return &CLI{history: h, pins: p, configMgr: cm, clipboard: clip}
}

// Execute runs the command selected by the parsed arguments.
func (c *CLI) Execute(args *Args) error {
	if err := args.Validate(); err != nil {
		return err
	}

	switch {
	case args.List != nil:
		return c.executeList(args.List)
	case args.Get != nil:
		return c.executeGet(args.Get)
	case args.Pin != nil:
		return c.executePin(args.Pin)
	case args.Unpin != nil:
		return c.executeUnpin(args.Unpin)
	case args.Pins != nil:
		return c.executePins(args.Pins)
	case args.Search != nil:
		return c.executeSearch(args.Search)
	case args.Sweep != nil:
		return c.executeSweep(args.Sweep)
	case args.Clear != nil:
		return c.executeClear(args.Clear)
	case args.Config != nil:
		return c.executeConfig(args.Config)
	default:
		return c.launchPicker()
	}
}

// executeList handles the 'clippy list' command.
func (c *CLI) executeList(cmd *ListCmd) error {
	records := c.history.List(cmd.Count)
	if len(records) == 0 {
		fmt.Println("History is empty. Run clipd to start capturing.")
		return nil
	}

	for i, r := range records {
		printRecord(i+1, r)
	}
	return nil
}

// executeGet handles the 'clippy get' command.
func (c *CLI) executeGet(cmd *GetCmd) error {
	if cmd.Index == nil {
		return c.launchPicker()
	}

	rec, err := c.history.Get(*cmd.Index)
	if err != nil {
		return err
	}

	if cmd.Clipboard {
		if err := c.clipboard.Write([]byte(rec.Content)); err != nil {
			return fmt.Errorf("failed to write to clipboard: %w", err)
		}
		fmt.Printf("Copied to clipboard: %s\n", rec.Preview())
		return nil
	}

	fmt.Println(rec.Content)
	return nil
}

// executePin handles the 'clippy pin' command.
func (c *CLI) executePin(cmd *PinCmd) error {
	rec, err := c.history.Get(cmd.Index)
	if err != nil {
		return err
	}

	var label string
	if cmd.Label != nil {
		label = *cmd.Label
	}

	pos, err := c.pins.Promote(rec, label)
	if err != nil {
		return err
	}
	fmt.Printf("Pinned at position %d: %s\n", pos, rec.Preview())
	return nil
}

// executeUnpin handles the 'clippy unpin' command.
func (c *CLI) executeUnpin(cmd *UnpinCmd) error {
	removed, err := c.pins.Unpin(cmd.Index)
	if err != nil {
		return err
	}
	fmt.Printf("Unpinned: %s\n", removed.Preview())
	return nil
}

// executePins handles the 'clippy pins' command.
func (c *CLI) executePins(cmd *PinsCmd) error {
	records := c.pins.List()
	if len(records) == 0 {
		fmt.Println("No pins yet. Use clippy pin <index> to keep an item around.")
		return nil
	}

	for i, r := range records {
		printRecord(i+1, r)
	}
	return nil
}

// executeSearch handles the 'clippy search' command.
func (c *CLI) executeSearch(cmd *SearchCmd) error {
	results := search.Run(cmd.Query, c.history.List(0), c.pins.List())
	if len(results) == 0 {
		return fmt.Errorf("no matches for %q", cmd.Query)
	}

	if cmd.Limit > 0 && len(results) > cmd.Limit {
		results = results[:cmd.Limit]
	}

	for _, res := range results {
		origin := "history"
		if res.Source == search.FromPins {
			origin = "pin"
		}
		fmt.Printf("%4d  %-7s %3d  %s\n", res.Score, origin, res.Index, res.Record.Preview())
	}
	return nil
}

// executeSweep handles the 'clippy sweep' command.
func (c *CLI) executeSweep(cmd *SweepCmd) error {
	removedHistory, err := c.history.Sweep()
	if err != nil {
		return fmt.Errorf("history sweep failed: %w", err)
	}
	removedPins, err := c.pins.Sweep()
	if err != nil {
		return fmt.Errorf("pin sweep failed: %w", err)
	}

	fmt.Printf("Removed %d history record(s) and %d pin(s).\n", removedHistory, removedPins)
	return nil
}

// executeClear handles the 'clippy clear' command.
func (c *CLI) executeClear(cmd *ClearCmd) error {
	records := c.history.List(0)
	if len(records) == 0 {
		fmt.Println("History is already empty.")
		return nil
	}

	if !cmd.Force {
		fmt.Printf("This will delete %d item(s) from history. Continue? [y/N]: ", len(records))
		var response string
		fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := c.history.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	fmt.Printf("Cleared %d item(s) from history.\n", len(records))
	return nil
}

// executeConfig handles the 'clippy config' command.
func (c *CLI) executeConfig(cmd *ConfigCmd) error {
	switch {
	case cmd.Get != nil:
		value, err := c.configMgr.Get(cmd.Get.Key)
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	case cmd.Set != nil:
		if err := c.configMgr.Update(cmd.Set.Key, cmd.Set.Value); err != nil {
			return err
		}
		fmt.Printf("Set %s = %s\n", cmd.Set.Key, cmd.Set.Value)
		return nil
	case cmd.List != nil:
		values, err := c.configMgr.List()
		if err != nil {
			return err
		}
		fmt.Println("Current configuration:")
		for _, key := range []string{
			"poll_interval_ms", "max_history_items", "max_pins",
			"max_entry_length", "max_age_days", "cleanup_interval_sec",
		} {
			fmt.Printf("  %s = %s\n", key, values[key])
		}
		return nil
	default:
		return fmt.Errorf("no config subcommand specified")
	}
}

// launchPicker starts the interactive fuzzy picker over both collections.
func (c *CLI) launchPicker() error {
	historyRecords := c.history.List(0)
	pinned := c.pins.List()
	if len(historyRecords) == 0 && len(pinned) == 0 {
		fmt.Println("Nothing to pick from yet. Run clipd to start capturing.")
		return nil
	}

	model := tui.NewPicker(historyRecords, pinned, c.clipboard)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return err
	}

	if picker, ok := final.(tui.Picker); ok && picker.Copied() {
		fmt.Printf("Copied to clipboard: %s\n", picker.Selection().Preview())
	}
	return nil
}

// printRecord renders one record line for list output.
func printRecord(position int, r record.Record) {
	label := ""
	if r.Label != "" {
		label = " (" + r.Label + ")"
	}
	fmt.Printf("%3d. [%s]%s %s\n", position, r.FormatTimestamp(time.Now()), label, r.Preview())
}
