package engine

// DeviceRegisterID indexes a register within a DeviceRegisterFile.
type DeviceRegisterID int

// DeviceRegisterFile is the set of named registers exposed by the hardware
// attached to an engine. Its contents are opaque beyond the names.
type DeviceRegisterFile struct {
	Image     string   // Bit-image the register names were taken from.
	Registers []string // Register names, by DeviceRegisterID.

	index map[string]DeviceRegisterID
}

// NewDeviceRegisterFile creates a register file from a list of names.
func NewDeviceRegisterFile(image string, names ...string) (drf *DeviceRegisterFile, err error) {
	drf = &DeviceRegisterFile{
		Image: image,
		index: make(map[string]DeviceRegisterID, len(names)),
	}

	for _, name := range names {
		if len(name) == 0 {
			err = ErrNameEmpty
			return nil, err
		}
		_, dup := drf.index[name]
		if dup {
			err = &ErrDeclare{Engine: image, Name: name, Err: ErrDuplicateRegister}
			return nil, err
		}
		drf.index[name] = DeviceRegisterID(len(drf.Registers))
		drf.Registers = append(drf.Registers, name)
	}

	return
}

// Lookup returns the id of a named device register.
func (drf *DeviceRegisterFile) Lookup(name string) (id DeviceRegisterID, err error) {
	if drf == nil {
		err = ErrUnknownRegister
		return
	}

	id, ok := drf.index[name]
	if !ok {
		err = ErrUnknownRegister
		return
	}

	return
}

// Name returns the name of a device register.
func (drf *DeviceRegisterFile) Name(id DeviceRegisterID) string {
	return drf.Registers[id]
}

// Len returns the number of device registers.
func (drf *DeviceRegisterFile) Len() int {
	if drf == nil {
		return 0
	}
	return len(drf.Registers)
}
