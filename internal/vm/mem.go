package vm

// mem.go implements the machine's flat, bounds-checked memory.

// Memory is a fixed-size array of signed integer cells. There is no
// distinction between code, data and stack regions other than by
// convention established at configuration time.
type Memory struct {
	cell []int
}

// NewMemory allocates a Memory of the given size, zero-filled.
func NewMemory(size int) Memory {
	return Memory{cell: make([]int, size)}
}

// Size returns the number of addressable cells.
func (m Memory) Size() int {
	return len(m.cell)
}

// Read returns the cell at addr, or an AddressError if addr is out of range.
func (m Memory) Read(addr int) (int, error) {
	if addr < 0 || addr >= len(m.cell) {
		return 0, &AddressError{Addr: addr, Size: len(m.cell)}
	}

	return m.cell[addr], nil
}

// Write stores value at addr, or returns an AddressError if addr is out of
// range.
func (m Memory) Write(addr, value int) error {
	if addr < 0 || addr >= len(m.cell) {
		return &AddressError{Addr: addr, Size: len(m.cell)}
	}

	m.cell[addr] = value

	return nil
}

// Clear zeroes every cell.
func (m Memory) Clear() {
	for i := range m.cell {
		m.cell[i] = 0
	}
}

// View returns a copy of every cell, in order from address 0. It is handy
// for tests and debugging.
func (m Memory) View() []int {
	view := make([]int, len(m.cell))
	copy(view, m.cell)

	return view
}
