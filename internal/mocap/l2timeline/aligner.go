package l2timeline

import (
	"sort"

	"github.com/armature-data/posture.report/internal/mocap"
)

// Slot is one instant on the merged hand timeline. Either side may be nil
// when that hand was not observed at this timestamp.
type Slot struct {
	Timestamp float64
	Left      *mocap.HandFrame
	Right     *mocap.HandFrame
}

// Frame returns the slot's frame for one side, or nil.
func (s Slot) Frame(side mocap.Side) *mocap.HandFrame {
	if side == mocap.SideLeft {
		return s.Left
	}
	return s.Right
}

// WallTime returns the slot's wall-clock time, preferring the right frame
// to match the capture convention of stamping both sides together.
func (s Slot) WallTime() float64 {
	if s.Right != nil {
		return s.Right.WallTime
	}
	if s.Left != nil {
		return s.Left.WallTime
	}
	return 0
}

// Align merges hand frames onto a single timeline ordered by ascending
// timestamp. The timeline is the union of every timestamp observed on
// either side; each slot carries whichever sides were present at that
// instant. Duplicate (timestamp, side) pairs resolve to the last frame in
// input order.
func Align(frames []mocap.HandFrame) []Slot {
	bySlot := make(map[float64]*Slot, len(frames))
	order := make([]float64, 0, len(frames))

	for i := range frames {
		frame := &frames[i]
		slot, ok := bySlot[frame.Timestamp]
		if !ok {
			slot = &Slot{Timestamp: frame.Timestamp}
			bySlot[frame.Timestamp] = slot
			order = append(order, frame.Timestamp)
		}
		switch frame.Side {
		case mocap.SideLeft:
			slot.Left = frame
		case mocap.SideRight:
			slot.Right = frame
		}
	}

	sort.Float64s(order)
	slots := make([]Slot, len(order))
	for i, t := range order {
		slots[i] = *bySlot[t]
	}
	return slots
}
