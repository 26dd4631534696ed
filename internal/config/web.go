package config

import (
	"fmt"
	"regexp"
	"time"
)

// Clipboard sources.
const (
	ClipboardMemory = "memory"
	ClipboardSystem = "system"
)

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// WebConfig configures hosted pages and their native bridge.
type WebConfig struct {
	// BridgeChannel is the message channel the random team page posts to.
	BridgeChannel string
	// AutoPaste enables the one-shot clipboard paste after a bridge page loads.
	AutoPaste bool
	// AutoPasteHook is the page global receiving the clipboard text.
	AutoPasteHook string
	// ClipboardSource is where auto-paste reads from (memory, system).
	ClipboardSource string
	// DialogWaitTimeout bounds how long a page dialog waits for an answer.
	// Zero waits until the page goes away.
	DialogWaitTimeout time.Duration
	// MaxHosts caps the number of live page hosts.
	MaxHosts int
}

// LoadWebConfigFromEnv loads web host configuration from environment variables.
func LoadWebConfigFromEnv() WebConfig {
	return WebConfig{
		BridgeChannel:     GetEnv("BRIDGE_CHANNEL", "teamSync"),
		AutoPaste:         GetEnvBool("AUTOPASTE_ENABLED", true),
		AutoPasteHook:     GetEnv("AUTOPASTE_HOOK", "__autoPaste"),
		ClipboardSource:   GetEnv("CLIPBOARD_SOURCE", ClipboardMemory),
		DialogWaitTimeout: GetEnvDuration("DIALOG_WAIT_TIMEOUT", 5*time.Minute),
		MaxHosts:          GetEnvInt("WEB_MAX_HOSTS", 256),
	}
}

// Validate validates web host configuration.
func (c WebConfig) Validate() error {
	if c.BridgeChannel == "" {
		return fmt.Errorf("BRIDGE_CHANNEL must not be empty")
	}
	if !jsIdentifier.MatchString(c.AutoPasteHook) {
		return fmt.Errorf("invalid AUTOPASTE_HOOK: %q (must be a JavaScript identifier)", c.AutoPasteHook)
	}
	if c.ClipboardSource != ClipboardMemory && c.ClipboardSource != ClipboardSystem {
		return fmt.Errorf("invalid CLIPBOARD_SOURCE: %s (must be: memory, system)", c.ClipboardSource)
	}
	if c.DialogWaitTimeout < 0 {
		return fmt.Errorf("DIALOG_WAIT_TIMEOUT must be non-negative")
	}
	if c.MaxHosts <= 0 {
		return fmt.Errorf("WEB_MAX_HOSTS must be greater than 0")
	}
	return nil
}
