package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_English(t *testing.T) {
	c, err := Load("en")
	require.NoError(t, err)

	assert.Equal(t, "en", c.Language())
	assert.Equal(t, "You tumble into the hole!", c.Get("HOLE_BLOCKED"))
	assert.Equal(t, "You made it out in 00:12.50!", c.Getf("GOAL_REACHED", "00:12.50"))
}

func TestLoad_SetsCurrent(t *testing.T) {
	_, err := Load("es")
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = Load(DefaultLanguage) })

	assert.Equal(t, "¡Caes en el agujero!", Get("HOLE_BLOCKED"))
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("xx")
	assert.Error(t, err)
}

func TestGet_MissingKeyReturnsKey(t *testing.T) {
	_, err := Load("en")
	require.NoError(t, err)
	assert.Equal(t, "NOT_A_KEY", Get("NOT_A_KEY"))
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"en", "es"}, Languages())
}

func TestCatalogue_NilFallsBack(t *testing.T) {
	var c *Catalogue
	assert.Equal(t, "A %d", c.Get("A %d"))
	assert.Equal(t, "A 1", c.Getf("A %d", 1))
}

func TestGet_LeavesVerbsAlone(t *testing.T) {
	_, err := Load("en")
	require.NoError(t, err)

	key := "GOAL_REACHED"
	assert.Equal(t, "You made it out in %s!", Get(key))
	assert.Equal(t, "You made it out in 01:02.00!", Getf(key, "01:02.00"))
}

func TestGetf_MissingKeyFormatsKey(t *testing.T) {
	_, err := Load("en")
	require.NoError(t, err)
	assert.Equal(t, "NOT_A_KEY 3", Getf("NOT_A_KEY %d", 3))
}
