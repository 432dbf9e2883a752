package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesEmbeddedData(t *testing.T) {
	ix, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, ix.States())
}

func TestStatesAreSorted(t *testing.T) {
	ix, err := Load()
	require.NoError(t, err)

	states := ix.States()
	require.Greater(t, len(states), 1)
	assert.Contains(t, states, "မန္တလေးတိုင်းဒေသကြီး")
}

func TestCitiesBilingual(t *testing.T) {
	ix, err := Load()
	require.NoError(t, err)

	cities, err := ix.Cities("ရန်ကုန်တိုင်းဒေသကြီး")
	require.NoError(t, err)
	require.NotEmpty(t, cities)

	var found bool
	for _, c := range cities {
		if c.English == "Yangon" {
			found = true
			assert.Equal(t, "ရန်ကုန်", c.Burmese)
		}
	}
	assert.True(t, found)
}

func TestCitiesUnknownState(t *testing.T) {
	ix, err := Load()
	require.NoError(t, err)

	_, err = ix.Cities("Atlantis")
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestStatesReturnsCopy(t *testing.T) {
	ix, err := Load()
	require.NoError(t, err)

	states := ix.States()
	states[0] = "mutated"
	assert.NotEqual(t, "mutated", ix.States()[0])
}
