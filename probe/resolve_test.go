package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-voltix/internal/simulator"
	"github.com/moffa90/go-voltix/transport"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		product string
		want    Variant
		wantErr bool
	}{
		{name: "board", product: "Voltix Board", want: VariantBoard},
		{name: "probe", product: "Voltix Probe", want: VariantProbe},
		{name: "unknown", product: "Unknown Device", wantErr: true},
		{name: "case differs", product: "voltix probe", wantErr: true},
		{name: "trailing space", product: "Voltix Probe ", wantErr: true},
		{name: "empty", product: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockTransport(tt.product)
			dev, err := Resolve(mock)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, dev)
				assert.True(t, errors.Is(err, ErrUnsupportedDevice))

				var ude *UnsupportedDeviceError
				require.True(t, errors.As(err, &ude))
				assert.Equal(t, tt.product, ude.Product)
				assert.Empty(t, mock.calls, "resolution must not send commands")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, dev.Variant())
			assert.NotEqual(t, uuid.Nil, dev.ID())
			assert.Empty(t, mock.calls)
		})
	}
}

func TestResolveNilTransport(t *testing.T) {
	assert.Panics(t, func() { _, _ = Resolve(nil) })
}

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("success releases session", func(t *testing.T) {
		sim := simulator.NewProbe()
		var seen *Device

		err := Connect(ctx, openerFor(sim), func(dev *Device) error {
			seen = dev
			_, err := dev.Power(ctx, true)
			return err
		})

		require.NoError(t, err)
		assert.True(t, sim.Power())
		assert.True(t, sim.Closed())

		_, err = seen.Power(ctx, false)
		assert.ErrorIs(t, err, ErrClosed)
	})

	t.Run("callback error still releases", func(t *testing.T) {
		sim := simulator.NewBoard()
		boom := errors.New("boom")

		err := Connect(ctx, openerFor(sim), func(*Device) error { return boom })

		assert.ErrorIs(t, err, boom)
		assert.True(t, sim.Closed())
	})

	t.Run("unsupported device releases", func(t *testing.T) {
		sim := simulator.New("Unknown Device")
		called := false

		err := Connect(ctx, openerFor(sim), func(*Device) error {
			called = true
			return nil
		})

		assert.ErrorIs(t, err, ErrUnsupportedDevice)
		assert.False(t, called)
		assert.True(t, sim.Closed())
	})

	t.Run("open failure", func(t *testing.T) {
		noDevice := errors.New("no device")
		err := Connect(ctx, func(context.Context) (transport.Session, error) {
			return nil, noDevice
		}, func(*Device) error { return nil })

		assert.ErrorIs(t, err, noDevice)
		assert.Contains(t, err.Error(), "open session")
	})

	t.Run("close failure joined", func(t *testing.T) {
		mock := NewMockTransport(ProductProbe)
		mock.closeErr = errors.New("stall")
		boom := errors.New("boom")

		err := Connect(ctx, func(context.Context) (transport.Session, error) {
			return mock, nil
		}, func(*Device) error { return boom })

		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, err, mock.closeErr)
		assert.True(t, mock.closed)
	})
}

func openerFor(sess transport.Session) transport.Opener {
	return func(context.Context) (transport.Session, error) {
		return sess, nil
	}
}
