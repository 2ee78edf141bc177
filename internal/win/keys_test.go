package win

import "testing"

func TestTranslate(t *testing.T) {
	tests := []struct {
		name    string
		vk      uint32
		ctrl    bool
		wantCmd Command
		wantArg int
	}{
		{"digit 1 selects first effect", 0x31, false, CmdSelectEffect, 0},
		{"digit 5 selects fifth effect", 0x35, false, CmdSelectEffect, 4},
		{"digit 9 selects ninth effect", 0x39, false, CmdSelectEffect, 8},
		{"digit with ctrl is ignored", 0x31, true, CmdNone, 0},
		{"pause toggles pause", 0x13, false, CmdTogglePause, 0},
		{"pause with ctrl is ignored", 0x13, true, CmdNone, 0},
		{"ctrl+s saves screenshot", 0x53, true, CmdSaveScreenshot, 0},
		{"s without ctrl is ignored", 0x53, false, CmdNone, 0},
		{"ctrl+a toggles topmost", 0x41, true, CmdToggleTopmost, 0},
		{"a without ctrl is ignored", 0x41, false, CmdNone, 0},
		{"digit 0 is not an effect key", 0x30, false, CmdNone, 0},
		{"unmapped key", 0x5A, false, CmdNone, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, arg := Translate(tt.vk, tt.ctrl)
			if cmd != tt.wantCmd || arg != tt.wantArg {
				t.Errorf("Translate(%#x, %v) = (%v, %d), want (%v, %d)",
					tt.vk, tt.ctrl, cmd, arg, tt.wantCmd, tt.wantArg)
			}
		})
	}
}
