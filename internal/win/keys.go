// Package win owns the native window: class registration, the message
// loop, and translation of raw input into commands for the handler.
package win

// Command is a user action decoded from a keypress.
type Command int

const (
	CmdNone Command = iota
	// CmdSelectEffect selects an effect; the argument is the 0-based
	// roster index.
	CmdSelectEffect
	// CmdTogglePause pauses or resumes the pipeline and flips the
	// window's capture-exclusion affinity.
	CmdTogglePause
	// CmdSaveScreenshot writes the current composite to a PNG.
	CmdSaveScreenshot
	// CmdToggleTopmost flips the window's always-on-top state.
	CmdToggleTopmost
)

// Virtual-key codes involved in the key map.
const (
	vkPause = 0x13
	vk1     = 0x31
	vk9     = 0x39
	vkA     = 0x41
	vkS     = 0x53
)

// Translate decodes a WM_KEYDOWN virtual-key code, with the current
// Ctrl state, into a command. The number row selects effects without
// Ctrl; the letter shortcuts require Ctrl.
func Translate(vk uint32, ctrl bool) (Command, int) {
	if ctrl {
		switch vk {
		case vkS:
			return CmdSaveScreenshot, 0
		case vkA:
			return CmdToggleTopmost, 0
		}
		return CmdNone, 0
	}
	switch {
	case vk == vkPause:
		return CmdTogglePause, 0
	case vk >= vk1 && vk <= vk9:
		return CmdSelectEffect, int(vk - vk1)
	}
	return CmdNone, 0
}
