package keys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsowell/lk201bridge/internal/keys"
)

func TestPushRejectsZeroDuplicateAndOverflow(t *testing.T) {
	s := keys.NewSet()

	_, ok := s.Push(0x00, 1)
	assert.False(t, ok, "zero keycode must be rejected")

	entry, ok := s.Push(0xC2, 1)
	assert.True(t, ok)
	assert.Equal(t, uint8(0xC2), entry.Keycode)

	_, ok = s.Push(0xC2, 2)
	assert.False(t, ok, "duplicate keycode must be rejected")

	for i := 0; i < keys.Capacity-1; i++ {
		_, ok := s.Push(uint8(0x10+i), int64(i))
		assert.True(t, ok)
	}
	assert.Equal(t, keys.Capacity, s.Len())

	_, ok = s.Push(0xFE, 100)
	assert.False(t, ok, "set at capacity must reject further pushes")
}

func newest(s *keys.Set) uint8 {
	var head uint8
	s.ForEach(func(d *keys.Down) bool {
		head = d.Keycode
		return false
	})
	return head
}

func TestPushOrdersNewestFirst(t *testing.T) {
	s := keys.NewSet()
	s.Push(0x01, 1)
	s.Push(0x02, 2)
	s.Push(0x03, 3)

	assert.Equal(t, uint8(0x03), newest(s))

	s.Remove(0x03)
	assert.Equal(t, uint8(0x02), newest(s))
}

func TestRemoveAndFind(t *testing.T) {
	s := keys.NewSet()
	s.Push(0x01, 1)
	s.Push(0x02, 2)

	assert.True(t, s.Remove(0x01))
	assert.False(t, s.Remove(0x01), "removing an absent keycode returns false")

	_, ok := s.Find(0x01)
	assert.False(t, ok)

	entry, ok := s.Find(0x02)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x02), entry.Keycode)
}

func TestForEachOrderAndEarlyExit(t *testing.T) {
	s := keys.NewSet()
	s.Push(0x01, 1)
	s.Push(0x02, 2)
	s.Push(0x03, 3)

	var seen []uint8
	s.ForEach(func(d *keys.Down) bool {
		seen = append(seen, d.Keycode)
		return d.Keycode != 0x02
	})
	assert.Equal(t, []uint8{0x03, 0x02}, seen, "walk is newest-first and stops when fn returns false")
}

func TestEmptyAfterAllRemoved(t *testing.T) {
	s := keys.NewSet()
	assert.True(t, s.Empty())

	s.Push(0x01, 1)
	assert.False(t, s.Empty())

	s.Remove(0x01)
	assert.True(t, s.Empty())
}
