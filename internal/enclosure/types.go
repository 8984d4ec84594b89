// Package enclosure owns the client-side state for the enclosure
// dashboard: the enclosure list mirrored from the middleware plus all
// UI selection state, with read-only projections for the views.
package enclosure

import "sort"

// MethodDashboard is the middleware call that returns the full
// enclosure dashboard payload.
const MethodDashboard = "webui.enclosure.dashboard"

// StreamDisks is the pushed event stream that fires when the disk
// inventory changes.
const StreamDisks = "disk.query"

// Disk status values reported in a slot's pool membership.
const (
	DiskStatusOnline  = "Online"
	DiskStatusFaulted = "Faulted"
)

// PoolInfo links a slot's disk to a storage pool and its health.
type PoolInfo struct {
	PoolName   string `json:"pool_name"`
	DiskStatus string `json:"disk_status"`
}

// Slot is one addressable disk bay in an enclosure's
// "Array Device Slot" element collection.
type Slot struct {
	Number     int       `json:"drive_bay_number"`
	Descriptor string    `json:"descriptor"`
	Dev        string    `json:"dev"`
	Size       int64     `json:"size"`
	Status     string    `json:"status"`
	PoolInfo   *PoolInfo `json:"pool_info"`
}

// Expander is one entry of the "SAS Expander" element collection.
type Expander struct {
	Descriptor string `json:"descriptor"`
	Status     string `json:"status"`
}

// Elements groups an enclosure's element collections by type. JSON
// object keys are element numbers as strings, middleware-style.
type Elements struct {
	ArrayDeviceSlots map[string]Slot     `json:"Array Device Slot"`
	SASExpanders     map[string]Expander `json:"SAS Expander"`
}

// Enclosure is one physical chassis as reported by the middleware.
type Enclosure struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Model    string   `json:"model"`
	Elements Elements `json:"elements"`
}

// Slots flattens the array-device-slot collection, ordered by bay
// number for stable rendering.
func (e *Enclosure) Slots() []Slot {
	if e == nil || len(e.Elements.ArrayDeviceSlots) == 0 {
		return nil
	}
	out := make([]Slot, 0, len(e.Elements.ArrayDeviceSlots))
	for _, s := range e.Elements.ArrayDeviceSlots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Expanders flattens the SAS-expander collection, ordered by descriptor.
func (e *Enclosure) Expanders() []Expander {
	if e == nil || len(e.Elements.SASExpanders) == 0 {
		return nil
	}
	out := make([]Expander, 0, len(e.Elements.SASExpanders))
	for _, x := range e.Elements.SASExpanders {
		out = append(out, x)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Descriptor < out[j].Descriptor })
	return out
}

// ViewKind is the dashboard view mode for the selected enclosure.
type ViewKind int

const (
	ViewPools ViewKind = iota // default
	ViewExpanders
	ViewDetails
)

func (v ViewKind) String() string {
	switch v {
	case ViewPools:
		return "pools"
	case ViewExpanders:
		return "expanders"
	case ViewDetails:
		return "details"
	default:
		return "unknown"
	}
}

// Side is the enclosure face being visualized. SideUnset means the view
// resolves it (front for most models, top for top-loaders).
type Side int

const (
	SideUnset Side = iota
	SideFront
	SideRear
	SideTop
)

func (s Side) String() string {
	switch s {
	case SideFront:
		return "front"
	case SideRear:
		return "rear"
	case SideTop:
		return "top"
	default:
		return "unset"
	}
}
