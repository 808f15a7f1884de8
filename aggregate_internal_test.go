package pnaes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerMunicipality(t *testing.T) {
	t.Run("divides and rounds", func(t *testing.T) {
		got := perMunicipality(150.0, 2)
		require.NotNil(t, got)
		assert.Equal(t, 75.0, *got)
	})

	t.Run("zero count yields no ratio", func(t *testing.T) {
		assert.Nil(t, perMunicipality(150.0, 0))
	})
}
