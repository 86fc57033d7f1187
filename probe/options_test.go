package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moffa90/go-voltix/target"
)

func TestOptions(t *testing.T) {
	tests := []struct {
		name   string
		opts   []Option
		verify func(t *testing.T, c Config)
	}{
		{
			name: "defaults",
			verify: func(t *testing.T, c Config) {
				assert.Nil(t, c.Logger)
				assert.Nil(t, c.Observer)
				assert.Zero(t, c.PinLimit)
				assert.Same(t, target.DefaultRegistry, c.Targets)
			},
		},
		{
			name: "negative pin limit disables check",
			opts: []Option{WithPinLimit(-3)},
			verify: func(t *testing.T, c Config) {
				assert.Zero(t, c.PinLimit)
			},
		},
		{
			name: "nil registry ignored",
			opts: []Option{WithTargetRegistry(nil)},
			verify: func(t *testing.T, c Config) {
				assert.Same(t, target.DefaultRegistry, c.Targets)
			},
		},
		{
			name: "target driver uses private registry",
			opts: []Option{WithTargetDriver(target.KindNRF52, fakeDriver(new([]*fakeTargetSession)))},
			verify: func(t *testing.T, c Config) {
				assert.NotSame(t, target.DefaultRegistry, c.Targets)
				assert.Equal(t, []target.Kind{target.KindNRF52}, c.Targets.Kinds())
				assert.Empty(t, target.DefaultRegistry.Kinds())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			for _, opt := range tt.opts {
				opt(&cfg)
			}
			tt.verify(t, cfg)
		})
	}
}
