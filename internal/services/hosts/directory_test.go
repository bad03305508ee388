package hosts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectory_Lookup(t *testing.T) {
	d := New(map[string]string{
		"Sue":  "74:D0:2B:C5:9C:F5",
		"eric": "F4:6D:04:65:4E:F7",
	})

	mac, ok := d.Lookup("sue")
	assert.True(t, ok)
	assert.Equal(t, "74:D0:2B:C5:9C:F5", mac)

	mac, ok = d.Lookup("ERIC")
	assert.True(t, ok)
	assert.Equal(t, "F4:6D:04:65:4E:F7", mac)

	_, ok = d.Lookup("brendon")
	assert.False(t, ok)
}

func TestDirectory_Resolve(t *testing.T) {
	d := New(map[string]string{"mercury": "00:1C:55:35:12:BF"})

	assert.Equal(t, "00:1C:55:35:12:BF", d.Resolve("mercury"))
	assert.Equal(t, "00:11:22:33:44:55", d.Resolve("00:11:22:33:44:55"))
	assert.Equal(t, "pluto", d.Resolve("pluto"))

	assert.Equal(t,
		[]string{"00:1C:55:35:12:BF", "001122334455"},
		d.ResolveAll([]string{"Mercury", "001122334455"}))
}

func TestDirectory_Names(t *testing.T) {
	d := New(DefaultHosts)

	assert.Equal(t, []string{"earth", "mars", "mercury", "venus"}, d.Names())
	assert.Equal(t, 4, d.Len())
}

func TestDirectory_CopiesEntries(t *testing.T) {
	entries := map[string]string{"earth": "00:10:60:15:97:fb"}
	d := New(entries)

	entries["mars"] = "00:10:DC:34:B2:87"

	_, ok := d.Lookup("mars")
	assert.False(t, ok)
	assert.Equal(t, 1, d.Len())
}

func TestDirectory_Empty(t *testing.T) {
	d := New(nil)

	assert.Empty(t, d.Names())
	assert.Equal(t, "earth", d.Resolve("earth"))
}
