// Package stack implements the fixed size CHIP-8 return address stack.
package stack

import "errors"

// Frames is the maximum call depth.
const Frames = 16

var (
	// ErrOverflow is returned when pushing onto a full stack.
	ErrOverflow = errors.New("stack overflow")
	// ErrUnderflow is returned when popping from an empty stack.
	ErrUnderflow = errors.New("stack underflow")
)

// Stack holds return addresses of subroutine calls.
type Stack struct {
	data    [Frames]uint16
	pointer int
}

// Push stores a return address.
func (s *Stack) Push(address uint16) error {
	if s.pointer >= Frames {
		return ErrOverflow
	}
	s.data[s.pointer] = address
	s.pointer++
	return nil
}

// Pop removes and returns the most recently pushed return address.
func (s *Stack) Pop() (uint16, error) {
	if s.pointer == 0 {
		return 0, ErrUnderflow
	}
	s.pointer--
	return s.data[s.pointer], nil
}

// Depth returns the number of stored return addresses.
func (s *Stack) Depth() int {
	return s.pointer
}
