// Package model defines the data structures for validation test projects.
package model

import "sort"

// Path represents a file system path.
type Path string

// ProjectVersion is the current on-disk format version of .vvf files.
const ProjectVersion = 1

// Project is the in-memory form of a .vvf project file: a named, ordered
// collection of test items.
type Project struct {
	Version int    `json:"version"`
	Name    string `json:"name"`
	Items   []Item `json:"tests"`
}

// NewProject creates an empty project at the current format version.
func NewProject(name string) *Project {
	return &Project{
		Version: ProjectVersion,
		Name:    name,
		Items:   []Item{},
	}
}

// Sort orders items by ID. The item ID defines execution order.
func (p *Project) Sort() {
	sort.Slice(p.Items, func(i, j int) bool {
		return p.Items[i].ID < p.Items[j].ID
	})
}

// ItemByID returns a pointer to the item with the given ID, or nil.
func (p *Project) ItemByID(id int) *Item {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return &p.Items[i]
		}
	}

	return nil
}

// EnabledItems returns the enabled items in execution order.
func (p *Project) EnabledItems() []Item {
	p.Sort()

	enabled := make([]Item, 0, len(p.Items))

	for _, item := range p.Items {
		if item.Enabled {
			enabled = append(enabled, item)
		}
	}

	return enabled
}

// NextID returns the smallest unused positive identifier.
func (p *Project) NextID() int {
	next := 1

	for _, item := range p.Items {
		if item.ID >= next {
			next = item.ID + 1
		}
	}

	return next
}
