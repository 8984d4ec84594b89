package dashboard

import (
	"github.com/shelfmon/shelfmon/internal/enclosure"
)

// Read-side derivations over the store's current selection. All of
// these are pure: recomputed from the snapshot, no owned state.

// PoolsInfo returns the pool-membership descriptors found across the
// selected enclosure's slots, deduplicated by pool name. The first
// occurrence per pool wins; slots without pool membership are skipped.
func PoolsInfo(st *enclosure.State) []enclosure.PoolInfo {
	var out []enclosure.PoolInfo
	seen := make(map[string]bool)
	for _, slot := range st.SelectedEnclosureSlots() {
		if slot.PoolInfo == nil {
			continue
		}
		if seen[slot.PoolInfo.PoolName] {
			continue
		}
		seen[slot.PoolInfo.PoolName] = true
		out = append(out, *slot.PoolInfo)
	}
	return out
}

// Expanders returns the selected enclosure's SAS-expander entries.
func Expanders(st *enclosure.State) []enclosure.Expander {
	return st.SelectedEnclosure().Expanders()
}

// UnhealthyPoolsInfo returns the subset of PoolsInfo whose disk status
// is anything but online.
func UnhealthyPoolsInfo(st *enclosure.State) []enclosure.PoolInfo {
	var out []enclosure.PoolInfo
	for _, p := range PoolsInfo(st) {
		if p.DiskStatus != enclosure.DiskStatusOnline {
			out = append(out, p)
		}
	}
	return out
}

// FailedDisks returns the selected enclosure's slots whose pool
// membership reports a faulted disk.
func FailedDisks(st *enclosure.State) []enclosure.Slot {
	var out []enclosure.Slot
	for _, slot := range st.SelectedEnclosureSlots() {
		if slot.PoolInfo != nil && slot.PoolInfo.DiskStatus == enclosure.DiskStatusFaulted {
			out = append(out, slot)
		}
	}
	return out
}
