package timer

// milestoneSet lists the remaining-second thresholds that trigger a
// side-channel notification on their first downward crossing, highest first.
var milestoneSet = [...]uint32{300, 180, 60, 30, 10, 5, 4, 3, 2, 1}

// crossedMilestones returns the thresholds whose downward edge lies in
// (cur, prev]: prev > T && cur <= T. The creation of a timer is modelled as
// the edge (initial+1 -> initial), so a timer started exactly on a threshold
// announces it immediately.
func crossedMilestones(prev, cur uint32) []uint32 {
	if cur >= prev {
		return nil
	}
	var out []uint32
	for _, t := range milestoneSet {
		if prev > t && cur <= t {
			out = append(out, t)
		}
	}
	return out
}

// markFired records threshold t as emitted for this handle and reports
// whether it had already fired. Milestones are one-shot per handle: an Extend
// that re-crosses a fired threshold stays silent.
func (h *Handle) markFired(t uint32) (already bool) {
	for i, m := range milestoneSet {
		if m == t {
			bit := uint16(1) << i
			already = h.fired&bit != 0
			h.fired |= bit
			return already
		}
	}
	return false
}
