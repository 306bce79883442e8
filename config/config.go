// Package config reads the YAML system descriptor: the engines taking
// part in a program, their capabilities and sequencer registers, and the
// integer constants visible to build scripts.
//
//	name: FrameAverager
//	engines:
//	  - name: AWG_LEAD
//	    actions: [awg1_trigger, awg2_trigger]
//	    device_registers:
//	      image: lead.k7z
//	      registers: [HVI_GLOBAL_MultAB, HVI_CH1_Amplitude0]
//	    registers:
//	      - name: Iterations
//	        initial: 0
//	constants:
//	  FRAMES: 4
package config

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/hvi/engine"
)

// Register is a sequencer register declaration.
type Register struct {
	Name    string `yaml:"name"`
	Initial int    `yaml:"initial,omitempty"`
}

// DeviceRegisters names the registers of the hardware attached to an engine.
type DeviceRegisters struct {
	Image     string   `yaml:"image"`
	Registers []string `yaml:"registers"`
}

// Engine is an engine declaration.
type Engine struct {
	Name            string           `yaml:"name"`
	Actions         []string         `yaml:"actions,omitempty"`
	Events          []string         `yaml:"events,omitempty"`
	DeviceRegisters *DeviceRegisters `yaml:"device_registers,omitempty"`
	Registers       []Register       `yaml:"registers,omitempty"`
}

// System is a parsed system descriptor.
type System struct {
	Name      string         `yaml:"name"`
	Engines   []Engine       `yaml:"engines"`
	Constants map[string]int `yaml:"constants,omitempty"`
}

// Load parses a system descriptor. Unknown fields are rejected.
func Load(r io.Reader) (sys *System, err error) {
	sys = &System{}

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	err = decoder.Decode(sys)
	if err == io.EOF {
		err = ErrEmpty
	}
	if err != nil {
		sys = nil
		err = &ErrConfig{Err: err}
		return
	}

	if len(sys.Name) == 0 {
		sys = nil
		err = &ErrConfig{Err: ErrNameMissing}
		return
	}

	if len(sys.Engines) == 0 {
		sys = nil
		err = &ErrConfig{Err: ErrNoEngines}
		return
	}

	return
}

// Table declares the engines and registers of the system in a new table.
func (sys *System) Table() (tbl *engine.Table, err error) {
	tbl = engine.NewTable()

	for _, eng := range sys.Engines {
		desc := engine.Descriptor{
			Name:    eng.Name,
			Actions: eng.Actions,
			Events:  eng.Events,
		}
		if eng.DeviceRegisters != nil {
			desc.DeviceRegisters, err = engine.NewDeviceRegisterFile(eng.DeviceRegisters.Image, eng.DeviceRegisters.Registers...)
			if err != nil {
				tbl = nil
				err = &ErrConfig{Engine: eng.Name, Err: err}
				return
			}
		}

		_, err = tbl.DeclareEngine(desc)
		if err != nil {
			tbl = nil
			err = &ErrConfig{Engine: eng.Name, Err: err}
			return
		}

		for _, reg := range eng.Registers {
			_, err = tbl.DeclareRegister(eng.Name, reg.Name, reg.Initial)
			if err != nil {
				tbl = nil
				err = &ErrConfig{Engine: eng.Name, Err: err}
				return
			}
		}
	}

	return
}
