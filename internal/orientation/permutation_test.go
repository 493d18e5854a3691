package orientation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePermutation(t *testing.T) {
	t.Parallel()

	t.Run("identity", func(t *testing.T) {
		t.Parallel()
		p, err := ParsePermutation("x,y,z")
		require.NoError(t, err)
		assert.Equal(t, IdentityPermutation(), p)
	})

	t.Run("swap with sign flip", func(t *testing.T) {
		t.Parallel()
		p, err := ParsePermutation("x,-z,y")
		require.NoError(t, err)

		q := p.Apply(Quaternion{W: 1, X: 2, Y: 3, Z: 4})
		assert.Equal(t, Quaternion{W: 1, X: 2, Y: -4, Z: 3}, q)
	})

	t.Run("whitespace and case tolerated", func(t *testing.T) {
		t.Parallel()
		p, err := ParsePermutation(" X , -Z , Y ")
		require.NoError(t, err)
		assert.Equal(t, "x,-z,y", p.String())
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		for _, spec := range []string{"", "x,y", "x,y,z,w", "x,y,q", "x,x,y"} {
			_, err := ParsePermutation(spec)
			assert.Error(t, err, "spec %q", spec)
		}
	})
}

func TestPermutationApplyPreservesW(t *testing.T) {
	t.Parallel()

	p, err := ParsePermutation("-y,x,-z")
	require.NoError(t, err)

	q := p.Apply(Quaternion{W: 0.5, X: 1, Y: 2, Z: 3})
	assert.Equal(t, 0.5, q.W)
	assert.Equal(t, Quaternion{W: 0.5, X: -2, Y: 1, Z: -3}, q)
}

func TestPermutationString(t *testing.T) {
	t.Parallel()

	for _, spec := range []string{"x,y,z", "x,-z,y", "-y,x,-z", "z,x,y"} {
		p, err := ParsePermutation(spec)
		require.NoError(t, err)
		assert.Equal(t, spec, p.String())
	}
}
