// Package hosts provides the static name to MAC address directory.
package hosts

import (
	"sort"
	"strings"
)

// DefaultHosts is the built-in directory used when no hosts are configured.
var DefaultHosts = map[string]string{
	"mercury": "00:1C:55:35:12:BF",
	"venus":   "00:1d:39:55:5c:df",
	"earth":   "00:10:60:15:97:fb",
	"mars":    "00:10:DC:34:B2:87",
}

// Directory is a read-only mapping from host name to MAC address string.
// Names are case-insensitive.
type Directory struct {
	entries map[string]string
}

// New creates a directory from a copy of entries.
func New(entries map[string]string) *Directory {
	d := &Directory{entries: make(map[string]string, len(entries))}
	for name, mac := range entries {
		d.entries[normalize(name)] = mac
	}
	return d
}

// Lookup returns the MAC address string registered for name.
func (d *Directory) Lookup(name string) (string, bool) {
	mac, ok := d.entries[normalize(name)]
	return mac, ok
}

// Resolve returns the MAC address for a known host name and the input
// unchanged otherwise, leaving validation to the MAC parser.
func (d *Directory) Resolve(input string) string {
	if mac, ok := d.Lookup(input); ok {
		return mac
	}
	return input
}

// ResolveAll applies Resolve to every input.
func (d *Directory) ResolveAll(inputs []string) []string {
	resolved := make([]string, len(inputs))
	for i, in := range inputs {
		resolved[i] = d.Resolve(in)
	}
	return resolved
}

// Names returns the known host names in sorted order.
func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of known hosts.
func (d *Directory) Len() int {
	return len(d.entries)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
