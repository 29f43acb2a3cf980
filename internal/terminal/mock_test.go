package terminal

import "time"

type keyEvent struct {
	code    uint8
	pressed bool
}

type mockMachine struct {
	cycles []time.Duration
	keys   []keyEvent
	cells  []byte
	err    error
}

func (m *mockMachine) Cycle(elapsed time.Duration) error {
	m.cycles = append(m.cycles, elapsed)
	return m.err
}

func (m *mockMachine) UpdateKey(code uint8, pressed bool) error {
	m.keys = append(m.keys, keyEvent{code: code, pressed: pressed})
	return nil
}

func (m *mockMachine) CopyDisplay(dst []byte) int {
	return copy(dst, m.cells)
}
