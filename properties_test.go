package bytestr

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lengthTags are the payload sizes exercised around both plausible inline
// thresholds.
var lengthTags = []int{0, 7, 8, 15, 16, 23, 24, 31, 32}

func payload(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0' + byte((i+1)%10)
	}
	return b
}

func TestValidityClosure(t *testing.T) {
	t.Run("nil source is invalid for every constructor", func(t *testing.T) {
		sp, _ := NewSpan(nil)
		str, _ := NewString(nil)
		sh, _ := NewShort(nil)
		sso, _ := NewSSO(nil)

		assert.False(t, sp.IsValid())
		assert.False(t, str.IsValid())
		assert.False(t, sh.IsValid())
		assert.False(t, sso.IsValid())
	})

	for _, n := range lengthTags {
		p := payload(n)

		sp, err := NewSpan(p)
		require.NoError(t, err)
		assert.True(t, sp.IsValid(), "span %d", n)

		str, err := NewString(p)
		require.NoError(t, err)
		assert.True(t, str.IsValid(), "string %d", n)
		str.Destroy()

		sso, err := NewSSO(p)
		require.NoError(t, err)
		assert.True(t, sso.IsValid(), "sso %d", n)
		sso.Destroy()

		sh, err := NewShort(p)
		if n <= ShortMax {
			require.NoError(t, err)
			assert.True(t, sh.IsValid(), "short %d", n)
		} else {
			assert.ErrorIs(t, err, ErrTooLong)
			assert.False(t, sh.IsValid(), "short %d", n)
		}
	}
}

func TestRoundTrips(t *testing.T) {
	for _, n := range lengthTags {
		p := payload(n)

		str, err := NewString(p)
		require.NoError(t, err)

		t.Run("string via sso", func(t *testing.T) {
			sso, err := SSOFromString(str)
			require.NoError(t, err)
			defer sso.Destroy()

			back, err := StringFromSSO(sso)
			require.NoError(t, err)
			defer back.Destroy()
			assert.True(t, back.Equal(str), "length %d", n)
		})

		t.Run("string via span", func(t *testing.T) {
			back, err := StringFromSpan(str.Span())
			require.NoError(t, err)
			defer back.Destroy()
			assert.True(t, back.Equal(str), "length %d", n)
		})

		t.Run("string via buffer", func(t *testing.T) {
			b, err := BufferFromString(str)
			require.NoError(t, err)
			back, err := b.Finalize()
			require.NoError(t, err)
			defer back.Destroy()
			assert.True(t, back.Equal(str), "length %d", n)
		})

		t.Run("sso via buffer", func(t *testing.T) {
			sso, err := NewSSO(p)
			require.NoError(t, err)
			defer sso.Destroy()

			b, err := BufferFromSSO(sso)
			require.NoError(t, err)
			back, err := b.FinalizeSSO()
			require.NoError(t, err)
			defer back.Destroy()
			assert.True(t, back.Equal(sso), "length %d", n)
			assert.Equal(t, sso.Kind(), back.Kind(), "length %d", n)
		})

		if n <= ShortMax {
			t.Run("short via string and sso", func(t *testing.T) {
				sh, err := NewShort(p)
				require.NoError(t, err)

				viaString, err := StringFromShort(sh)
				require.NoError(t, err)
				defer viaString.Destroy()
				back, err := ShortFromString(viaString)
				require.NoError(t, err)
				assert.True(t, back.Equal(sh))

				viaSSO, err := SSOFromShort(sh)
				require.NoError(t, err)
				back, err = ShortFromSSO(viaSSO)
				require.NoError(t, err)
				assert.True(t, back.Equal(sh))
			})
		}

		str.Destroy()
	}
}

func TestMoveInvalidatesSource(t *testing.T) {
	str, err := StringFromChars("string payload")
	require.NoError(t, err)
	sso, err := SSOFromChars("an sso payload that is long")
	require.NoError(t, err)
	buf, err := BufferFromChars("buffer")
	require.NoError(t, err)

	for i := 0; i < 2; i++ { // second pass moves already-invalid values
		ms := str.Move()
		mo := sso.Move()
		mb := buf.Move()

		assert.False(t, str.IsValid())
		assert.False(t, sso.IsValid())
		assert.False(t, buf.IsValid())

		assert.Equal(t, i == 0, ms.IsValid())
		assert.Equal(t, i == 0, mo.IsValid())
		assert.Equal(t, i == 0, mb.IsValid())

		ms.Destroy()
		mo.Destroy()
		mb.Destroy()
	}
}

func TestBufferGrowthPreservesContent(t *testing.T) {
	const initial = 4
	b, err := NewBuffer(initial)
	require.NoError(t, err)
	defer b.Destroy()

	var want []byte
	grows := 0
	for i := 0; b.Len() <= 2*initial*4; i++ {
		c := byte('a' + i%26)
		before := b.Cap()
		require.NoError(t, b.Append([]byte{c}))
		want = append(want, c)
		if b.Cap() != before {
			grows++
			assert.Equal(t, growCapacity(before, b.Len()), b.Cap())
		}
		require.LessOrEqual(t, b.Len(), b.Cap())
	}

	assert.Greater(t, grows, 1)
	assert.Equal(t, want, b.Bytes())
}

func TestSubspanBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		n := rng.Intn(40)
		start := rng.Intn(n + 3)
		length := rng.Intn(n + 3)

		sp, err := NewSpan(payload(n))
		require.NoError(t, err)

		sub, err := sp.Subspan(start, length)
		if start+length > n {
			assert.ErrorIs(t, err, ErrOutOfRange, "n=%d start=%d len=%d", n, start, length)
			assert.False(t, sub.IsValid())
			continue
		}
		require.NoError(t, err, "n=%d start=%d len=%d", n, start, length)
		assert.True(t, sub.IsValid())
		assert.Equal(t, sp.Bytes()[start:start+length], sub.Bytes())
	}

	t.Run("boundary equalities", func(t *testing.T) {
		sp := SpanFromChars("12345")
		for start := 0; start <= 5; start++ {
			_, err := sp.Subspan(start, 5-start)
			assert.NoError(t, err, "start %d", start)
			_, err = sp.Subspan(start, 6-start)
			assert.ErrorIs(t, err, ErrOutOfRange, "start %d", start)
		}
	})
}

func TestHelloCoolWorld(t *testing.T) {
	limit := NewLimitAllocator(nil, 1<<10)
	restore := Configure(WithAllocator(limit))
	defer restore()

	b, err := NewBuffer(4)
	require.NoError(t, err)

	require.NoError(t, b.AppendChars("Hello, "))
	require.NoError(t, b.AppendChars("World!"))
	require.NoError(t, b.InsertChars(7, "cool "))

	assert.Equal(t, 18, b.Len())
	assert.Equal(t, "Hello, cool World!", b.String())

	s, err := b.Finalize()
	require.NoError(t, err)
	assert.False(t, b.IsValid())

	want, err := StringFromChars("Hello, cool World!")
	require.NoError(t, err)
	assert.True(t, s.Equal(want))

	s.Destroy()
	want.Destroy()
	b.Destroy()
	assert.Equal(t, 0, limit.InUse())
}

func TestInvalidNeverEqual(t *testing.T) {
	var sp1, sp2 Span
	var str1, str2 String
	sh1, sh2 := invalidShort(), invalidShort()
	sso1, sso2 := invalidSSO(), invalidSSO()
	var b1, b2 Buffer

	assert.False(t, sp1.Equal(sp2))
	assert.False(t, str1.Equal(str2))
	assert.False(t, sh1.Equal(sh2))
	assert.False(t, sso1.Equal(sso2))
	assert.False(t, b1.Equal(b2))

	// Same invalidation path on both sides.
	x, err := StringFromChars("x")
	require.NoError(t, err)
	y := x.Move()
	z := y.Move()
	assert.False(t, x.Equal(y))
	z.Destroy()

	valid, err := SSOFromChars("")
	require.NoError(t, err)
	assert.False(t, valid.Equal(sso1))
	assert.False(t, sso1.Equal(valid))
	assert.True(t, bytes.Equal(valid.Bytes(), []byte{}))
}
