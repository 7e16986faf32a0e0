package bytestr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfigureRestore(t *testing.T) {
	before := allocator()
	limit := NewLimitAllocator(nil, 64)

	restore := Configure(WithAllocator(limit))
	assert.Same(t, limit, allocator())

	restore()
	assert.Equal(t, before, allocator())
}

func TestConfigureNilOptionsUseDefaults(t *testing.T) {
	restore := Configure(WithAllocator(nil), WithLogger(nil))
	defer restore()

	assert.Equal(t, HeapAllocator(), allocator())
	require.NotNil(t, Logger())
	Logger().Debug("discarded")
}

func TestConfigureKeepsUnsetFields(t *testing.T) {
	logger := zaptest.NewLogger(t)
	restoreLogger := Configure(WithLogger(logger))
	defer restoreLogger()

	limit := NewLimitAllocator(nil, 64)
	restoreAlloc := Configure(WithAllocator(limit))
	defer restoreAlloc()

	assert.Same(t, logger, Logger())
	assert.Same(t, limit, allocator())
}

func TestBufferGrowthIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Configure(WithLogger(zap.New(core)))
	defer restore()

	b, err := NewBuffer(4)
	require.NoError(t, err)
	defer b.Destroy()
	require.NoError(t, b.AppendChars("more than four"))

	grown := logs.FilterMessage("buffer grown").All()
	require.Len(t, grown, 1)
	fields := grown[0].ContextMap()
	assert.EqualValues(t, 4, fields["cap"])
	assert.EqualValues(t, 14, fields["new_cap"])
}

func TestAllocationFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Configure(
		WithLogger(zap.New(core)),
		WithAllocator(NewLimitAllocator(nil, 8)),
	)
	defer restore()

	_, err := NewBuffer(16)
	assert.ErrorIs(t, err, ErrAllocFailed)

	assert.Equal(t, 1, logs.FilterMessage("allocation over budget").Len())
	assert.Equal(t, 1, logs.FilterMessage("buffer allocation failed").Len())
}
