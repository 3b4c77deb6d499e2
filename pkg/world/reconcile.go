package world

// Update payloads are partial by design: any field may be absent and an
// absent field is a valid no-op, never an error. The merge rules below are
// fixed per collection:
//
//   - entities, royal family, divisions: upsert by ID, preserving position
//   - people: append-only, duplicates tolerated as distinct sightings
//   - rumors, buffs: append only when the ID is not already present
//   - rumor resolution: one-way flag transition by ID list
//   - buffs: removal by ID list, applied before appends in the same update

// Update carries new knowledge about the outside world from one turn result.
type Update struct {
	NewEntities      []Entity `json:"newEntities,omitempty"`
	NewPeople        []Person `json:"newPeople,omitempty"`
	NewRumors        []Rumor  `json:"newRumors,omitempty"`
	ResolvedRumorIDs []string `json:"resolvedRumorIds,omitempty"`
}

// PoliticalUpdate carries royal family and division changes from one turn
// result. "Updated" items replace by ID only when found; a stale reference
// is silently ignored.
type PoliticalUpdate struct {
	NewFamilyMembers     []Person   `json:"newFamilyMembers,omitempty"`
	UpdatedFamilyMembers []Person   `json:"updatedFamilyMembers,omitempty"`
	NewDivisions         []Division `json:"newDivisions,omitempty"`
	UpdatedDivisions     []Division `json:"updatedDivisions,omitempty"`
}

// BuffsUpdate carries status-effect changes from one turn result.
type BuffsUpdate struct {
	NewBuffs       []Buff   `json:"newBuffs,omitempty"`
	RemovedBuffIDs []string `json:"removedBuffIds,omitempty"`
}

// Apply merges a world update into the info aggregate.
func (w *Info) Apply(u *Update) {
	if u == nil {
		return
	}

	for _, ne := range u.NewEntities {
		w.Entities = upsertEntity(w.Entities, ne)
	}

	// People are sightings, not identities: repeats stay.
	w.People = append(w.People, u.NewPeople...)

	for _, id := range u.ResolvedRumorIDs {
		for i := range w.Rumors {
			if w.Rumors[i].ID == id {
				w.Rumors[i].IsResolved = true
			}
		}
	}

	for _, nr := range u.NewRumors {
		if !containsRumor(w.Rumors, nr.ID) {
			w.Rumors = append(w.Rumors, nr)
		}
	}
}

// Apply merges a political update into the heritage aggregate.
func (h *Heritage) Apply(u *PoliticalUpdate) {
	if u == nil {
		return
	}

	for _, p := range u.NewFamilyMembers {
		h.RoyalFamily = upsertPerson(h.RoyalFamily, p)
	}
	for _, p := range u.UpdatedFamilyMembers {
		h.RoyalFamily = replacePerson(h.RoyalFamily, p)
	}

	for _, d := range u.NewDivisions {
		h.Divisions = upsertDivision(h.Divisions, d)
	}
	for _, d := range u.UpdatedDivisions {
		h.Divisions = replaceDivision(h.Divisions, d)
	}
}

// ApplyBuffs merges a buffs update into the active buff list and returns the
// next list. Removals run before appends so a buff removed and re-granted in
// the same turn ends up active.
func ApplyBuffs(active []Buff, u *BuffsUpdate) []Buff {
	if u == nil {
		return active
	}

	next := active
	if len(u.RemovedBuffIDs) > 0 {
		removed := make(map[string]bool, len(u.RemovedBuffIDs))
		for _, id := range u.RemovedBuffIDs {
			removed[id] = true
		}
		next = make([]Buff, 0, len(active))
		for _, b := range active {
			if !removed[b.ID] {
				next = append(next, b)
			}
		}
	}

	for _, nb := range u.NewBuffs {
		if !containsBuff(next, nb.ID) {
			next = append(next, nb)
		}
	}
	return next
}

func upsertEntity(list []Entity, e Entity) []Entity {
	for i := range list {
		if list[i].ID == e.ID {
			list[i] = e
			return list
		}
	}
	return append(list, e)
}

func upsertPerson(list []Person, p Person) []Person {
	for i := range list {
		if list[i].ID == p.ID {
			list[i] = p
			return list
		}
	}
	return append(list, p)
}

func replacePerson(list []Person, p Person) []Person {
	for i := range list {
		if list[i].ID == p.ID {
			list[i] = p
			break
		}
	}
	return list
}

func upsertDivision(list []Division, d Division) []Division {
	for i := range list {
		if list[i].ID == d.ID {
			list[i] = d
			return list
		}
	}
	return append(list, d)
}

func replaceDivision(list []Division, d Division) []Division {
	for i := range list {
		if list[i].ID == d.ID {
			list[i] = d
			break
		}
	}
	return list
}

func containsRumor(list []Rumor, id string) bool {
	for i := range list {
		if list[i].ID == id {
			return true
		}
	}
	return false
}

func containsBuff(list []Buff, id string) bool {
	for i := range list {
		if list[i].ID == id {
			return true
		}
	}
	return false
}
