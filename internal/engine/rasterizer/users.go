package rasterizer

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/Faultbox/meshras/internal/logger"
)

// AddMeshUser instantiates one slot per mesh material for user and appends
// the new slots to slots. Users with a dynamic deformer draw a private copy
// of the base geometry; everyone else shares the base display array.
func (m *MeshObject) AddMeshUser(user UserID, slots []*MeshSlot, deformer Deformer) []*MeshSlot {
	if isBaseUser(user) {
		contractf("AddMeshUser", "user id must not be the nil uuid")
	}
	dynamic := deformer != nil && deformer.IsDynamic()

	for _, mm := range m.materials {
		if _, ok := mm.slots[user]; ok {
			contractf("AddMeshUser", "user %s already holds a slot for material %q", user, mm.Material().Name)
		}

		ms := mm.bucket.CopyMesh(mm.baseSlot)
		ms.user = user
		ms.deformer = deformer
		if dynamic {
			ms.array = mm.baseSlot.array.Clone()
		}
		mm.slots[user] = ms.id
		slots = append(slots, ms)
	}

	logger.Debug("mesh user added",
		zap.String("mesh", m.name),
		zap.Stringer("user", user),
		zap.Bool("private", dynamic))
	return slots
}

// RemoveFromBuckets removes the slots of user from every bucket. Materials
// where the user holds no slot are skipped.
func (m *MeshObject) RemoveFromBuckets(user UserID) {
	removed := 0
	for _, mm := range m.materials {
		id, ok := mm.slots[user]
		if !ok {
			continue
		}
		if ms := mm.bucket.Slot(id); ms != nil {
			mm.bucket.RemoveMesh(ms)
			removed++
		}
		delete(mm.slots, user)
	}

	logger.Debug("mesh user removed",
		zap.String("mesh", m.name),
		zap.Stringer("user", user),
		zap.Int("slots", removed))
}

// UserSlots returns the slots held by user in material order.
func (m *MeshObject) UserSlots(user UserID) []*MeshSlot {
	var slots []*MeshSlot
	for _, mm := range m.materials {
		if ms := mm.UserSlot(user); ms != nil {
			slots = append(slots, ms)
		}
	}
	return slots
}

// SlotsNeedingSort returns the slots of user whose material is depth sorted.
func (m *MeshObject) SlotsNeedingSort(user UserID) []*MeshSlot {
	var slots []*MeshSlot
	for _, ms := range m.UserSlots(user) {
		if NeedsSorting(ms) {
			slots = append(slots, ms)
		}
	}
	return slots
}

// UpdateDeformedSlots updates every distinct deformer of slots once and, when
// it reports a change, applies it to each of its slots drawing a private
// array. It returns the number of slots written. Deformers of a
// non-comparable type cannot be told apart and are updated once per slot.
func UpdateDeformedSlots(slots []*MeshSlot) int {
	changed := make(map[Deformer]bool)
	applied := 0

	for _, ms := range slots {
		d := ms.deformer
		if d == nil {
			continue
		}

		var c bool
		if reflect.TypeOf(d).Comparable() {
			var seen bool
			if c, seen = changed[d]; !seen {
				c = d.Update()
				changed[d] = c
			}
		} else {
			c = d.Update()
		}

		if !c || !ms.HasPrivateArray() {
			continue
		}
		d.Apply(ms.MeshMaterial(), ms.array)
		applied++
	}
	return applied
}
