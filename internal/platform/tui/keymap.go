package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-caves/internal/config"
	"github.com/vovakirdan/tui-caves/internal/core"
)

// actionBinding is a key binding that triggers one or more game actions.
type actionBinding struct {
	key.Binding
	actions []core.Action
}

func bind(actions []core.Action, keys []string, helpKey, helpDesc string) actionBinding {
	b := key.NewBinding(key.WithKeys(keys...))
	if helpKey != "" {
		b.SetHelp(helpKey, helpDesc)
	}
	return actionBinding{Binding: b, actions: actions}
}

func acts(a ...core.Action) []core.Action { return a }

// KeyMap translates Bubble Tea key messages to game actions. A shifted (or
// upper-case) movement key moves with fire held, which snaps instead of
// walking.
type KeyMap struct {
	game []actionBinding

	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

type moveKeys struct {
	up, down, left, right      string
	upRight, downRight         string
	downLeft, upLeft           string
	fireUp, fireDown           string
	fireLeft, fireRight        string
	fireUpRight, fireDownRight string
	fireDownLeft, fireUpLeft   string
	help, fireHelp             string
}

var keyStyles = map[config.KeyStyle]moveKeys{
	config.KeysArrows: {
		up: "up", down: "down", left: "left", right: "right",
		fireUp: "shift+up", fireDown: "shift+down", fireLeft: "shift+left", fireRight: "shift+right",
		help: "arrows", fireHelp: "shift+arrows",
	},
	config.KeysWASD: {
		up: "w", down: "s", left: "a", right: "d",
		fireUp: "W", fireDown: "S", fireLeft: "A", fireRight: "D",
		help: "wasd", fireHelp: "WASD",
	},
	config.KeysVim: {
		up: "k", down: "j", left: "h", right: "l",
		upRight: "u", downRight: "n", downLeft: "b", upLeft: "y",
		fireUp: "K", fireDown: "J", fireLeft: "H", fireRight: "L",
		fireUpRight: "U", fireDownRight: "N", fireDownLeft: "B", fireUpLeft: "Y",
		help: "hjkl yubn", fireHelp: "HJKL YUBN",
	},
}

func keys(k ...string) []string {
	out := make([]string, 0, len(k))
	for _, s := range k {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NewKeyMap returns the bindings of a key style; unknown styles get arrows.
func NewKeyMap(style config.KeyStyle) KeyMap {
	mk, ok := keyStyles[style]
	if !ok {
		mk = keyStyles[config.KeysArrows]
	}
	up, down, left, right := core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight
	fire := core.ActionFire

	game := []actionBinding{
		bind(acts(up), keys(mk.up), mk.help, "move"),
		bind(acts(down), keys(mk.down), "", ""),
		bind(acts(left), keys(mk.left), "", ""),
		bind(acts(right), keys(mk.right), "", ""),
		bind(acts(fire, up), keys(mk.fireUp), mk.fireHelp, "snap"),
		bind(acts(fire, down), keys(mk.fireDown), "", ""),
		bind(acts(fire, left), keys(mk.fireLeft), "", ""),
		bind(acts(fire, right), keys(mk.fireRight), "", ""),
		bind(acts(fire), keys(" ", "space"), "space", "fire"),
		bind(acts(core.ActionSuicide), keys("x"), "x", "give up"),
	}
	if mk.upRight != "" {
		game = append(game,
			bind(acts(up, right), keys(mk.upRight), "", ""),
			bind(acts(down, right), keys(mk.downRight), "", ""),
			bind(acts(down, left), keys(mk.downLeft), "", ""),
			bind(acts(up, left), keys(mk.upLeft), "", ""),
			bind(acts(fire, up, right), keys(mk.fireUpRight), "", ""),
			bind(acts(fire, down, right), keys(mk.fireDownRight), "", ""),
			bind(acts(fire, down, left), keys(mk.fireDownLeft), "", ""),
			bind(acts(fire, up, left), keys(mk.fireUpLeft), "", ""),
		)
	}

	return KeyMap{
		game: game,
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// Actions returns the game actions a key triggers, or nil.
func (k KeyMap) Actions(msg tea.KeyMsg) []core.Action {
	switch {
	case key.Matches(msg, k.Pause):
		return acts(core.ActionPause)
	case key.Matches(msg, k.Restart):
		return acts(core.ActionRestart)
	case key.Matches(msg, k.Quit):
		return acts(core.ActionQuit)
	}
	for _, b := range k.game {
		if key.Matches(msg, b.Binding) {
			return b.actions
		}
	}
	return nil
}

// MapKeyToFrame adds the actions of a key to frame and reports whether the
// key asks to quit.
func (k KeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) (quit bool) {
	for _, a := range k.Actions(msg) {
		if a == core.ActionQuit {
			return true
		}
		frame.Set(a)
	}
	return false
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, 8)
	for _, b := range k.game {
		if b.Help().Key != "" {
			out = append(out, b.Binding)
		}
	}
	return append(out, k.Pause, k.Restart, k.Quit)
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Back, k.Screenshot}}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
