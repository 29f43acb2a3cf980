package stack

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestPushPop(t *testing.T) {
	var s Stack

	assert.NoError(t, s.Push(0x300))
	assert.Equal(t, 1, s.Depth())

	address, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x300), address)
	assert.Equal(t, 0, s.Depth())
}

func TestLastInFirstOut(t *testing.T) {
	var s Stack

	for i := range Frames {
		assert.NoError(t, s.Push(uint16(0x200+i*2)))
	}
	for i := Frames - 1; i >= 0; i-- {
		address, err := s.Pop()
		assert.NoError(t, err)
		assert.Equal(t, uint16(0x200+i*2), address)
	}
}

func TestOverflow(t *testing.T) {
	var s Stack

	for range Frames {
		assert.NoError(t, s.Push(0x200))
	}
	err := s.Push(0x200)
	assert.True(t, errors.Is(err, ErrOverflow))
	assert.Equal(t, Frames, s.Depth())
}

func TestUnderflow(t *testing.T) {
	var s Stack

	_, err := s.Pop()
	assert.True(t, errors.Is(err, ErrUnderflow))
}
