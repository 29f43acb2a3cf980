package memory

// Clone returns an independent copy of the memory including the program counter.
func (m *Memory) Clone() *Memory {
	c := *m
	return &c
}
