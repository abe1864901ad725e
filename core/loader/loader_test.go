package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("Skips Disabled", func(t *testing.T) {
		on := &stubFeature{name: "variants", enabled: true}
		off := &stubFeature{name: "inventory", enabled: false}

		m := NewManager()
		m.Register(on)
		m.Register(off)

		assert.NoError(t, m.LoadAll(fiber.New()))
		assert.True(t, on.loaded)
		assert.False(t, off.loaded)
		assert.Len(t, m.Features(), 2)
	})

	t.Run("Propagates Errors", func(t *testing.T) {
		m := NewManager()
		m.Register(&stubFeature{name: "broken", enabled: true, err: errors.New("boom")})

		err := m.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "failed to load feature broken")
	})

	t.Run("Rejects Duplicates", func(t *testing.T) {
		m := NewManager()
		m.Register(&stubFeature{name: "variants", enabled: true})
		m.Register(&stubFeature{name: "variants", enabled: true})

		assert.ErrorContains(t, m.LoadAll(fiber.New()), "registered twice")
	})
}
