package region

import (
	"fmt"
	"net"
	"slices"
	"strconv"
	"strings"
)

// Entry is one row of the directory: the game server endpoint for a region.
type Entry struct {
	Region  string `json:"region"`
	Address string `json:"address"`
	Port    uint16 `json:"port"`
}

// Addr renders the endpoint as host:port.
func (e Entry) Addr() string {
	return net.JoinHostPort(e.Address, strconv.Itoa(int(e.Port)))
}

// Directory is an immutable region -> endpoint table.
type Directory struct {
	entries map[string]Entry
}

// New validates the entries and returns a Directory holding them.
func New(entries ...Entry) (*Directory, error) {
	d := &Directory{entries: make(map[string]Entry, len(entries))}
	var errs []string
	for i, e := range entries {
		if err := validate(e); err != nil {
			errs = append(errs, fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		if _, dup := d.entries[e.Region]; dup {
			errs = append(errs, fmt.Sprintf("entry %d: region %q declared more than once", i, e.Region))
			continue
		}
		d.entries[e.Region] = e
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid region table:\n- %s", strings.Join(errs, "\n- "))
	}
	return d, nil
}

// Default returns the built-in table used when no config file overrides it.
func Default() *Directory {
	d, err := New(
		Entry{Region: "EU", Address: "127.0.0.1", Port: 7777},
		Entry{Region: "NAE", Address: "157.173.203.4", Port: 7777},
	)
	if err != nil {
		panic(err)
	}
	return d
}

// Resolve returns the endpoint registered for region.
func (d *Directory) Resolve(region string) (Entry, error) {
	e, ok := d.entries[region]
	if !ok {
		return Entry{}, &UnknownRegionError{Region: region}
	}
	return e, nil
}

// Regions lists the known region identifiers in sorted order.
func (d *Directory) Regions() []string {
	ids := make([]string, 0, len(d.entries))
	for id := range d.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Entries returns a copy of the table sorted by region.
func (d *Directory) Entries() []Entry {
	out := make([]Entry, 0, len(d.entries))
	for _, id := range d.Regions() {
		out = append(out, d.entries[id])
	}
	return out
}

func validate(e Entry) error {
	if strings.TrimSpace(e.Region) == "" {
		return fmt.Errorf("region identifier must not be empty")
	}
	if strings.TrimSpace(e.Region) != e.Region {
		return fmt.Errorf("region %q: identifier has surrounding whitespace", e.Region)
	}
	if strings.TrimSpace(e.Address) == "" {
		return fmt.Errorf("region %q: address must not be empty", e.Region)
	}
	if strings.TrimSpace(e.Address) != e.Address {
		return fmt.Errorf("region %q: address %q has surrounding whitespace", e.Region, e.Address)
	}
	if strings.ContainsAny(e.Address, " /:") && net.ParseIP(e.Address) == nil {
		return fmt.Errorf("region %q: address %q is neither an IP nor a host name", e.Region, e.Address)
	}
	if e.Port == 0 {
		return fmt.Errorf("region %q: port must be between 1 and 65535", e.Region)
	}
	return nil
}
