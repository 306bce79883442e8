package config

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/hvi/engine"
)

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	inf, err := os.Open("testdata/frame_averager.yaml")
	assert.NoError(err)
	defer inf.Close()

	sys, err := Load(inf)
	assert.NoError(err)
	assert.Equal("FrameAverager", sys.Name)
	assert.Equal(2, len(sys.Engines))
	assert.Equal(map[string]int{"FRAMES": 4, "WAVEFORM": 1}, sys.Constants)

	tbl, err := sys.Table()
	assert.NoError(err)
	assert.Equal(2, tbl.Len())
	assert.False(tbl.Sealed())

	lead, err := tbl.Engine("AWG_LEAD")
	assert.NoError(err)
	assert.Equal([]string{"awg1_trigger", "awg2_trigger"}, lead.Actions)
	assert.Equal("lead.k7z", lead.DeviceRegisters.Image)
	id, err := lead.DeviceRegister("HVI_CH1_Amplitude0")
	assert.NoError(err)
	assert.Equal(engine.DeviceRegisterID(1), id)

	amp, err := tbl.Lookup("AWG_LEAD", "Amplitude")
	assert.NoError(err)
	assert.Equal(int16(100), tbl.Register(amp).Initial)
	iterations, err := tbl.Lookup("AWG_LEAD", "Iterations")
	assert.NoError(err)
	assert.Equal(int16(0), tbl.Register(iterations).Initial)

	dig, err := tbl.Engine("DIG_0")
	assert.NoError(err)
	_, err = dig.Event("fp1")
	assert.NoError(err)
	_, err = tbl.Lookup("DIG_0", "Amplitude")
	assert.ErrorIs(err, engine.ErrUnknownRegister)
}

func TestLoad_Invalid(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		yaml string
		want error
	}{
		{"", ErrEmpty},
		{"engines: [{name: A}]\n", ErrNameMissing},
		{"name: X\n", ErrNoEngines},
	}

	for _, tc := range cases {
		_, err := Load(strings.NewReader(tc.yaml))
		assert.ErrorIs(err, tc.want, tc.yaml)
		var cfg *ErrConfig
		assert.True(errors.As(err, &cfg), tc.yaml)
	}

	// Typos are rejected.
	_, err := Load(strings.NewReader("name: X\nengine: [{name: A}]\n"))
	assert.Error(err)
	assert.Contains(err.Error(), "engine")
}

func TestSystem_Table(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		yaml   string
		want   error
		engine string
	}{
		{"name: X\nengines: [{name: A}, {name: A}]\n", engine.ErrDuplicateEngine, "A"},
		{"name: X\nengines: [{name: A, actions: [t1, t1]}]\n", engine.ErrDuplicateAction, "A"},
		{"name: X\nengines: [{name: A, registers: [{name: r}, {name: r}]}]\n", engine.ErrDuplicateRegister, "A"},
		{"name: X\nengines: [{name: A, registers: [{name: r, initial: 40000}]}]\n", engine.ErrValueRange, "A"},
		{"name: X\nengines: [{name: B, device_registers: {image: b.k7z, registers: [x, x]}}]\n", engine.ErrDuplicateRegister, "B"},
	}

	for _, tc := range cases {
		sys, err := Load(strings.NewReader(tc.yaml))
		assert.NoError(err, tc.yaml)
		if err != nil {
			continue
		}

		tbl, err := sys.Table()
		assert.Nil(tbl)
		assert.ErrorIs(err, tc.want, tc.yaml)
		var cfg *ErrConfig
		if assert.True(errors.As(err, &cfg), tc.yaml) {
			assert.Equal(tc.engine, cfg.Engine)
		}
	}
}
