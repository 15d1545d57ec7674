package config

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// ApplyScript runs an options script against the configuration. The script
// sees a global `cursor`, `font` and `surface` table prefilled with the
// current settings and mutates them in place:
//
//	cursor.shape = "vertical"
//	cursor.blinkwait = 0
//	font.size = 15
//
// A missing script is not an error. The state is closed when ApplyScript
// returns; scripts get the default libraries but no access to the host
// beyond the settings tables.
func ApplyScript(cfg *Config, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	L := lua.NewState()
	defer L.Close()

	L.SetGlobal("cursor", cursorTable(L, &cfg.Cursor))
	L.SetGlobal("font", fontTable(L, &cfg.Font))
	L.SetGlobal("surface", surfaceTable(L, &cfg.Surface))

	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("%w: %v", ErrScript, err)
	}

	readCursor(L, &cfg.Cursor)
	readFont(L, &cfg.Font)
	readSurface(L, &cfg.Surface)

	return cfg.Validate()
}

func cursorTable(L *lua.LState, c *Cursor) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "enabled", lua.LBool(c.Enabled))
	L.SetField(t, "shape", lua.LString(c.Shape))
	if c.CellPercentage != nil {
		L.SetField(t, "cell_percentage", lua.LNumber(*c.CellPercentage))
	}
	if c.Blinkwait != nil {
		L.SetField(t, "blinkwait", lua.LNumber(*c.Blinkwait))
	}
	if c.Blinkon != nil {
		L.SetField(t, "blinkon", lua.LNumber(*c.Blinkon))
	}
	if c.Blinkoff != nil {
		L.SetField(t, "blinkoff", lua.LNumber(*c.Blinkoff))
	}
	return t
}

func fontTable(L *lua.LState, f *Font) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "name", lua.LString(f.Name))
	L.SetField(t, "size", lua.LNumber(f.Size))
	return t
}

func surfaceTable(L *lua.LState, s *Surface) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "cell_width", lua.LNumber(s.CellWidth))
	L.SetField(t, "cell_height", lua.LNumber(s.CellHeight))
	return t
}

func readCursor(L *lua.LState, c *Cursor) {
	t, ok := L.GetGlobal("cursor").(*lua.LTable)
	if !ok {
		return
	}
	if v, ok := L.GetField(t, "enabled").(lua.LBool); ok {
		c.Enabled = bool(v)
	}
	if v, ok := L.GetField(t, "shape").(lua.LString); ok {
		c.Shape = string(v)
	}
	if v, ok := L.GetField(t, "cell_percentage").(lua.LNumber); ok {
		c.CellPercentage = floatPtr(float64(v))
	}
	if v, ok := L.GetField(t, "blinkwait").(lua.LNumber); ok {
		c.Blinkwait = uintPtr(uint64(v))
	}
	if v, ok := L.GetField(t, "blinkon").(lua.LNumber); ok {
		c.Blinkon = uintPtr(uint64(v))
	}
	if v, ok := L.GetField(t, "blinkoff").(lua.LNumber); ok {
		c.Blinkoff = uintPtr(uint64(v))
	}
}

func readFont(L *lua.LState, f *Font) {
	t, ok := L.GetGlobal("font").(*lua.LTable)
	if !ok {
		return
	}
	if v, ok := L.GetField(t, "name").(lua.LString); ok {
		f.Name = string(v)
	}
	if v, ok := L.GetField(t, "size").(lua.LNumber); ok {
		f.Size = float64(v)
	}
}

func readSurface(L *lua.LState, s *Surface) {
	t, ok := L.GetGlobal("surface").(*lua.LTable)
	if !ok {
		return
	}
	if v, ok := L.GetField(t, "cell_width").(lua.LNumber); ok {
		s.CellWidth = float64(v)
	}
	if v, ok := L.GetField(t, "cell_height").(lua.LNumber); ok {
		s.CellHeight = float64(v)
	}
}

func floatPtr(v float64) *float64 { return &v }
func uintPtr(v uint64) *uint64    { return &v }
