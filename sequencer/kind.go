package sequencer

const (
	DELAY_STATEMENT            = 10 // Default statement delay, in ns.
	DELAY_MULTI_SEQUENCE_BLOCK = 30 // Default multi-sequence block delay, in ns.
	DELAY_SYNC_WHILE           = 70 // Default synchronized while delay, in ns.
)

// Kind is the type of a sequence statement.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_SET_REGISTER           = Kind(0) // set_register
	KIND_ADD_TO_REGISTER        = Kind(1) // add_to_register
	KIND_SUBTRACT_FROM_REGISTER = Kind(2) // subtract_from_register
	KIND_WRITE_DEVICE_REGISTER  = Kind(3) // write_device_register
	KIND_READ_DEVICE_REGISTER   = Kind(4) // read_device_register
	KIND_EXECUTE_ACTIONS        = Kind(5) // execute_actions
	KIND_DELAY                  = Kind(6) // delay
	KIND_SET_AMPLITUDE          = Kind(7) // set_amplitude
	KIND_QUEUE_WAVEFORM         = Kind(8) // queue_waveform
	KIND_IF                     = Kind(9) // if
)

// BlockKind is the type of a scope block.
type BlockKind int

//go:generate go tool stringer -linecomment -type=BlockKind
const (
	BLOCK_MULTI_SEQUENCE = BlockKind(0) // multi_sequence_block
	BLOCK_SYNC_WHILE     = BlockKind(1) // sync_while
	BLOCK_IF             = BlockKind(2) // if
)

// Comparator is a register comparison operator.
type Comparator int

//go:generate go tool stringer -linecomment -type=Comparator
const (
	COMPARATOR_EQUAL                 = Comparator(0) // EQUAL
	COMPARATOR_NOT_EQUAL             = Comparator(1) // NOT_EQUAL
	COMPARATOR_LESS_THAN             = Comparator(2) // LESS_THAN
	COMPARATOR_LESS_THAN_OR_EQUAL    = Comparator(3) // LESS_THAN_OR_EQUAL
	COMPARATOR_GREATER_THAN          = Comparator(4) // GREATER_THAN
	COMPARATOR_GREATER_THAN_OR_EQUAL = Comparator(5) // GREATER_THAN_OR_EQUAL
)

var comparatorSymbol = [...]string{"==", "!=", "<", "<=", ">", ">="}

// ParseComparator converts a comparator name, such as LESS_THAN, or its
// symbol, such as <, to a Comparator.
func ParseComparator(name string) (cmp Comparator, err error) {
	for n := range len(comparatorSymbol) {
		cmp = Comparator(n)
		if cmp.String() == name || comparatorSymbol[n] == name {
			return
		}
	}

	cmp = 0
	err = ErrComparatorInvalid
	return
}

// Symbol returns the operator symbol of the comparator.
func (cmp Comparator) Symbol() string {
	if cmp < 0 || int(cmp) >= len(comparatorSymbol) {
		return "?"
	}
	return comparatorSymbol[cmp]
}

// Compare evaluates 'a <cmp> b'.
func (cmp Comparator) Compare(a, b int16) bool {
	switch cmp {
	case COMPARATOR_EQUAL:
		return a == b
	case COMPARATOR_NOT_EQUAL:
		return a != b
	case COMPARATOR_LESS_THAN:
		return a < b
	case COMPARATOR_LESS_THAN_OR_EQUAL:
		return a <= b
	case COMPARATOR_GREATER_THAN:
		return a > b
	case COMPARATOR_GREATER_THAN_OR_EQUAL:
		return a >= b
	}
	return false
}
