package cli

import (
	"fmt"
)

// Args represents the top-level command structure.
type Args struct {
	List   *ListCmd   `arg:"subcommand:list" help:"List recent history"`
	Get    *GetCmd    `arg:"subcommand:get" help:"Print or copy a history item (no index opens the picker)"`
	Pin    *PinCmd    `arg:"subcommand:pin" help:"Pin a history item"`
	Unpin  *UnpinCmd  `arg:"subcommand:unpin" help:"Remove a pin"`
	Pins   *PinsCmd   `arg:"subcommand:pins" help:"List pinned items"`
	Search *SearchCmd `arg:"subcommand:search" help:"Fuzzy-search history and pins"`
	Sweep  *SweepCmd  `arg:"subcommand:sweep" help:"Remove records older than max_age_days"`
	Clear  *ClearCmd  `arg:"subcommand:clear" help:"Delete the entire history"`
	Config *ConfigCmd `arg:"subcommand:config" help:"Manage configuration"`
}

// ListCmd lists the most recent history records.
type ListCmd struct {
	Count int `arg:"-n,--count" default:"0" help:"Show at most N items (0 = all)"`
}

// GetCmd prints or copies a history record by 1-based index.
type GetCmd struct {
	Index     *int `arg:"positional" help:"History position (1 = newest); omit to open the picker"`
	Clipboard bool `arg:"-c,--clipboard" help:"Copy to clipboard instead of printing"`
}

// PinCmd promotes a history record into the pin collection.
type PinCmd struct {
	Index int     `arg:"positional,required" help:"History position to pin (1 = newest)"`
	Label *string `arg:"-l,--label" help:"Optional annotation for the pin"`
}

// UnpinCmd removes a pin by 1-based position.
type UnpinCmd struct {
	Index int `arg:"positional,required" help:"Pin position to remove"`
}

// PinsCmd lists all pins.
type PinsCmd struct{}

// SearchCmd fuzzy-searches history and pins.
type SearchCmd struct {
	Query string `arg:"positional,required" help:"Query; characters must appear in order"`
	Limit int    `arg:"-n,--limit" default:"0" help:"Show at most N results (0 = all)"`
}

// SweepCmd removes age-expired records from both collections.
type SweepCmd struct{}

// ClearCmd deletes the history file and all image blobs.
type ClearCmd struct {
	Force bool `arg:"-f,--force" help:"Skip confirmation prompt"`
}

// ConfigCmd manages the configuration file.
type ConfigCmd struct {
	Get  *ConfigGetCmd  `arg:"subcommand:get" help:"Print a configuration value"`
	Set  *ConfigSetCmd  `arg:"subcommand:set" help:"Change a configuration value"`
	List *ConfigListCmd `arg:"subcommand:list" help:"Print all configuration values"`
}

// ConfigGetCmd prints one configuration value.
type ConfigGetCmd struct {
	Key string `arg:"positional,required" help:"Configuration key"`
}

// ConfigSetCmd sets one configuration value.
type ConfigSetCmd struct {
	Key   string `arg:"positional,required" help:"Configuration key"`
	Value string `arg:"positional,required" help:"New value"`
}

// ConfigListCmd prints every configuration value.
type ConfigListCmd struct{}

// Description returns the program description.
func (Args) Description() string {
	return "clippy - clipboard history with pins and fuzzy search"
}

// Version returns the program version.
func (Args) Version() string {
	return "clippy 0.1.0"
}

// Epilogue returns additional help text.
func (Args) Epilogue() string {
	return `Examples:
  clippy list -n 10              # Show the ten most recent captures
  clippy get                     # Interactive picker
  clippy get -c 2                # Copy the second most recent capture
  clippy pin 1 -l "api key"      # Pin the newest capture with a label
  clippy search "token"          # Rank matching records
  clippy sweep                   # Expire old records now

The capture daemon is a separate binary: run clipd to record changes.`
}

// Validate performs validation on the parsed arguments.
func (args *Args) Validate() error {
	switch {
	case args.Get != nil && args.Get.Index != nil && *args.Get.Index < 1:
		return fmt.Errorf("index must be 1 or greater")
	case args.Pin != nil && args.Pin.Index < 1:
		return fmt.Errorf("index must be 1 or greater")
	case args.Unpin != nil && args.Unpin.Index < 1:
		return fmt.Errorf("index must be 1 or greater")
	}
	return nil
}
