package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestTable(t *testing.T) *Table {
	assert := assert.New(t)

	drf, err := NewDeviceRegisterFile("lo.k7z", "HVI_GLOBAL_PhaseReset", "HVI_CH1_Amplitude0")
	assert.NoError(err)

	tbl := NewTable()
	_, err = tbl.DeclareEngine(Descriptor{
		Name:            "AWG_LEAD",
		Actions:         []string{"awg1_trigger", "awg2_trigger"},
		Events:          []string{"sync"},
		DeviceRegisters: drf,
	})
	assert.NoError(err)
	_, err = tbl.DeclareEngine(Descriptor{Name: "DIG_0", Actions: []string{"daq1_trigger"}})
	assert.NoError(err)

	return tbl
}

func TestTable_DeclareEngine(t *testing.T) {
	assert := assert.New(t)

	tbl := newTestTable(t)
	assert.Equal(2, tbl.Len())

	eng, err := tbl.Engine("DIG_0")
	assert.NoError(err)
	assert.Equal(EngineID(1), eng.Id)
	assert.Equal("DIG_0", eng.Name)

	_, err = tbl.DeclareEngine(Descriptor{Name: "DIG_0"})
	assert.ErrorIs(err, ErrDuplicateEngine)
	assert.Equal(2, tbl.Len())

	_, err = tbl.DeclareEngine(Descriptor{})
	assert.ErrorIs(err, ErrNameEmpty)

	_, err = tbl.DeclareEngine(Descriptor{Name: "AWG_1", Actions: []string{"t", "t"}})
	assert.ErrorIs(err, ErrDuplicateAction)
	_, err = tbl.DeclareEngine(Descriptor{Name: "AWG_1", Events: []string{"e", "e"}})
	assert.ErrorIs(err, ErrDuplicateEvent)
	assert.Equal(2, tbl.Len())

	_, err = tbl.Engine("AWG_1")
	assert.ErrorIs(err, ErrUnknownEngine)
}

func TestTable_DeclareRegister(t *testing.T) {
	assert := assert.New(t)

	tbl := newTestTable(t)

	id, err := tbl.DeclareRegister("AWG_LEAD", "LoopCounter", 0)
	assert.NoError(err)
	assert.Equal(RegisterID(0), id)

	id, err = tbl.DeclareRegister("DIG_0", "LoopCounter", -5)
	assert.NoError(err)
	assert.Equal(RegisterID(1), id)
	assert.Equal(int16(-5), tbl.Register(id).Initial)
	assert.Equal(EngineID(1), tbl.Register(id).Engine)

	_, err = tbl.DeclareRegister("AWG_LEAD", "LoopCounter", 1)
	assert.ErrorIs(err, ErrDuplicateRegister)

	_, err = tbl.DeclareRegister("AWG_9", "LoopCounter", 1)
	assert.ErrorIs(err, ErrUnknownEngine)

	_, err = tbl.DeclareRegister("AWG_LEAD", "Big", REGISTER_MAX+1)
	assert.ErrorIs(err, ErrValueRange)

	_, err = tbl.DeclareRegister("AWG_LEAD", "", 0)
	assert.ErrorIs(err, ErrNameEmpty)

	var decl *ErrDeclare
	_, err = tbl.DeclareRegister("AWG_LEAD", "LoopCounter", 1)
	assert.True(errors.As(err, &decl))
	assert.Equal("AWG_LEAD", decl.Engine)
	assert.Equal("LoopCounter", decl.Name)
}

func TestTable_Lookup(t *testing.T) {
	assert := assert.New(t)

	tbl := newTestTable(t)
	want, err := tbl.DeclareRegister("AWG_LEAD", "ctr", 0)
	assert.NoError(err)

	first, err := tbl.Lookup("AWG_LEAD", "ctr")
	assert.NoError(err)
	second, err := tbl.Lookup("AWG_LEAD", "ctr")
	assert.NoError(err)
	assert.Equal(want, first)
	assert.Equal(first, second)

	// Registers are engine scoped.
	_, err = tbl.Lookup("DIG_0", "ctr")
	assert.ErrorIs(err, ErrUnknownRegister)

	_, err = tbl.Lookup("nobody", "ctr")
	assert.ErrorIs(err, ErrUnknownEngine)

	count := 0
	for range tbl.Registers() {
		count++
	}
	assert.Equal(1, count)
}

func TestTable_Seal(t *testing.T) {
	assert := assert.New(t)

	tbl := newTestTable(t)
	assert.False(tbl.Sealed())
	tbl.Seal()
	assert.True(tbl.Sealed())

	_, err := tbl.DeclareEngine(Descriptor{Name: "late"})
	assert.ErrorIs(err, ErrDeclarationsSealed)

	_, err = tbl.DeclareRegister("AWG_LEAD", "late", 0)
	assert.ErrorIs(err, ErrDeclarationsSealed)
}

func TestEngine_Capabilities(t *testing.T) {
	assert := assert.New(t)

	tbl := newTestTable(t)
	lead, err := tbl.Engine("AWG_LEAD")
	assert.NoError(err)

	id, err := lead.Action("awg2_trigger")
	assert.NoError(err)
	assert.Equal(ActionID(1), id)

	_, err = lead.Action("daq1_trigger")
	assert.ErrorIs(err, ErrUnknownAction)

	ev, err := lead.Event("sync")
	assert.NoError(err)
	assert.Equal(EventID(0), ev)
	_, err = lead.Event("other")
	assert.ErrorIs(err, ErrUnknownEvent)

	dr, err := lead.DeviceRegister("HVI_CH1_Amplitude0")
	assert.NoError(err)
	assert.Equal("HVI_CH1_Amplitude0", lead.DeviceRegisters.Name(dr))

	dig, err := tbl.Engine("DIG_0")
	assert.NoError(err)
	_, err = dig.DeviceRegister("HVI_CH1_Amplitude0")
	assert.ErrorIs(err, ErrUnknownRegister)
}

func TestDeviceRegisterFile(t *testing.T) {
	assert := assert.New(t)

	_, err := NewDeviceRegisterFile("x", "a", "a")
	assert.ErrorIs(err, ErrDuplicateRegister)

	_, err = NewDeviceRegisterFile("x", "")
	assert.ErrorIs(err, ErrNameEmpty)

	drf, err := NewDeviceRegisterFile("x", "a", "b")
	assert.NoError(err)
	assert.Equal(2, drf.Len())

	var empty *DeviceRegisterFile
	assert.Equal(0, empty.Len())
}

func TestCheckValue(t *testing.T) {
	assert := assert.New(t)

	v, err := CheckValue(REGISTER_MIN)
	assert.NoError(err)
	assert.Equal(int16(-32768), v)

	_, err = CheckValue(REGISTER_MIN - 1)
	assert.ErrorIs(err, ErrValueRange)

	_, err = CheckDeviceValue(1 << 31)
	assert.ErrorIs(err, ErrValueRange)

	assert.Equal(int16(-32768), Wrap(REGISTER_MAX+1))
}

func TestEngine_Register(t *testing.T) {
	assert := assert.New(t)

	tbl := newTestTable(t)
	want, err := tbl.DeclareRegister("DIG_0", "count", 3)
	assert.NoError(err)

	dig, err := tbl.Engine("DIG_0")
	assert.NoError(err)
	id, err := dig.Register("count")
	assert.NoError(err)
	assert.Equal(want, id)
	assert.True(dig.HasRegister(id))

	_, err = dig.Register("other")
	assert.ErrorIs(err, ErrUnknownRegister)
}
