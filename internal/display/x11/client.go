package x11

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	xgb "github.com/BurntSushi/xgb"
	xproto "github.com/BurntSushi/xgb/xproto"
	xgbutil "github.com/BurntSushi/xgbutil"
	ewmh "github.com/BurntSushi/xgbutil/ewmh"
	keybind "github.com/BurntSushi/xgbutil/keybind"

	constants "github.com/inference-gateway/hotcli/internal/constants"
	logger "github.com/inference-gateway/hotcli/internal/logger"
	keys "github.com/inference-gateway/hotcli/internal/ui/keys"
)

// X11Client answers key-state and focus queries against an X server
type X11Client struct {
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	display string

	// window is the active window when the client connected; the console is
	// considered focused while it stays active
	window xproto.Window

	keycodes map[string][]xproto.Keycode
	mu       sync.Mutex
}

// Keysym names for the modifier and named-key tokens of the combo grammar.
// Single characters map to themselves.
var (
	modifierKeysyms = map[string][]string{
		"ctrl":    {"Control_L", "Control_R"},
		"control": {"Control_L", "Control_R"},
		"alt":     {"Alt_L", "Alt_R"},
		"shift":   {"Shift_L", "Shift_R"},
		"super":   {"Super_L", "Super_R"},
		"meta":    {"Meta_L", "Meta_R"},
		"win":     {"Super_L", "Super_R"},
		"cmd":     {"Super_L", "Super_R"},
	}

	namedKeysyms = map[string]string{
		"enter": "Return", "return": "Return", "tab": "Tab", "space": "space",
		"backspace": "BackSpace", "delete": "Delete", "escape": "Escape", "esc": "Escape",
		"up": "Up", "down": "Down", "left": "Left", "right": "Right",
		"home": "Home", "end": "End", "pgup": "Prior", "pgdn": "Next", "insert": "Insert",
		"backslash": "backslash", "slash": "slash", "minus": "minus", "equal": "equal",
		"comma": "comma", "period": "period", "semicolon": "semicolon",
		"f1": "F1", "f2": "F2", "f3": "F3", "f4": "F4", "f5": "F5", "f6": "F6",
		"f7": "F7", "f8": "F8", "f9": "F9", "f10": "F10", "f11": "F11", "f12": "F12",
	}
)

// keysymNames returns the X keysym names a combo token may be pressed as
func keysymNames(token string) []string {
	if names, ok := modifierKeysyms[token]; ok {
		return names
	}
	if name, ok := namedKeysyms[token]; ok {
		return []string{name}
	}
	return []string{token}
}

// NewX11Client connects to display and captures the currently active window
func NewX11Client(display string) (*X11Client, error) {

	oldStderr := os.Stderr
	devNull, devErr := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if devErr == nil {
		os.Stderr = devNull
	}

	xu, err := xgbutil.NewConnDisplay(display)

	if devErr == nil {
		os.Stderr = oldStderr
		_ = devNull.Close()
	}

	if err != nil {
		logger.Error("Failed to connect to X11 display", "display", display, "error", err)
		return nil, fmt.Errorf("failed to connect to X11 display %s: %w", display, err)
	}

	keybind.Initialize(xu)

	window, err := ewmh.ActiveWindowGet(xu)
	if err != nil {
		logger.Warn("Could not read the active window, focus checks will always pass", "error", err)
		window = 0
	}

	logger.Debug("Connected to X11 display", "display", display, "window", window)

	return &X11Client{
		xu:       xu,
		conn:     xu.Conn(),
		display:  display,
		window:   window,
		keycodes: make(map[string][]xproto.Keycode),
	}, nil
}

// Close closes the X11 connection
func (c *X11Client) Close() error {
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}

// IsHeld reports whether every token of combo is down right now
func (c *X11Client) IsHeld(combo string) (bool, error) {
	tokens := keys.Tokens(keys.Normalize(combo))
	if len(tokens) == 0 {
		return false, nil
	}

	reply, err := xproto.QueryKeymap(c.conn).Reply()
	if err != nil {
		return false, fmt.Errorf("failed to query keymap: %w", err)
	}

	for _, token := range tokens {
		if !c.tokenDown(reply.Keys, token) {
			return false, nil
		}
	}
	return true, nil
}

// WaitForRelease polls until token is no longer down
func (c *X11Client) WaitForRelease(ctx context.Context, token string) error {
	ticker := time.NewTicker(constants.ReleasePollInterval)
	defer ticker.Stop()

	for {
		held, err := c.IsHeld(token)
		if err != nil {
			return err
		}
		if !held {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// IsForeground reports whether the window captured at connect time is active
func (c *X11Client) IsForeground() (bool, error) {
	if c.window == 0 {
		return true, nil
	}

	active, err := ewmh.ActiveWindowGet(c.xu)
	if err != nil {
		return false, fmt.Errorf("failed to read active window: %w", err)
	}
	return active == c.window, nil
}

func (c *X11Client) tokenDown(keymap []byte, token string) bool {
	for _, kc := range c.lookup(token) {
		idx := int(kc) / 8
		if idx < len(keymap) && keymap[idx]&(1<<(uint(kc)%8)) != 0 {
			return true
		}
	}
	return false
}

// lookup maps a token to its keycodes, caching the result
func (c *X11Client) lookup(token string) []xproto.Keycode {
	c.mu.Lock()
	defer c.mu.Unlock()

	if codes, ok := c.keycodes[token]; ok {
		return codes
	}

	var codes []xproto.Keycode
	for _, name := range keysymNames(token) {
		codes = append(codes, keybind.StrToKeycodes(c.xu, name)...)
	}
	if len(codes) == 0 {
		logger.Debug("No keycode found for token", "token", token)
	}

	c.keycodes[token] = codes
	return codes
}
