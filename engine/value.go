package engine

const (
	REGISTER_BITS = 16                          // Sequencer register width.
	REGISTER_MIN  = -(1 << (REGISTER_BITS - 1)) // Smallest sequencer register value.
	REGISTER_MAX  = (1 << (REGISTER_BITS - 1)) - 1

	DEVICE_REGISTER_BITS = 32 // Device register width.
	DEVICE_REGISTER_MIN  = -(1 << (DEVICE_REGISTER_BITS - 1))
	DEVICE_REGISTER_MAX  = (1 << (DEVICE_REGISTER_BITS - 1)) - 1
)

// CheckValue verifies value fits a sequencer register.
func CheckValue(value int) (v int16, err error) {
	if value < REGISTER_MIN || value > REGISTER_MAX {
		err = ErrValueRange
		return
	}

	v = int16(value)
	return
}

// CheckDeviceValue verifies value fits a device register.
func CheckDeviceValue(value int) (v int32, err error) {
	if value < DEVICE_REGISTER_MIN || value > DEVICE_REGISTER_MAX {
		err = ErrValueRange
		return
	}

	v = int32(value)
	return
}

// Wrap truncates value to the sequencer register width, as register
// arithmetic does on the hardware.
func Wrap(value int) int16 {
	return int16(value)
}
