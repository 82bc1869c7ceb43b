package relay

// Rooms maps room ids to member connection ids, with a reverse index so a
// disconnect can find the membership to drop without scanning every room.
//
// Rooms is not safe for concurrent use; the hub goroutine owns it and
// serializes all joins, leaves and member lookups.
type Rooms struct {
	members map[string]map[string]struct{}
	joined  map[string]string
}

func NewRooms() *Rooms {
	return &Rooms{
		members: make(map[string]map[string]struct{}),
		joined:  make(map[string]string),
	}
}

// Join adds the connection to the room, creating the room entry if absent.
// Joining the same room twice is a no-op. A connection belongs to at most one
// room: joining a new room leaves the previous one first.
func (r *Rooms) Join(roomID, connID string) {
	if prev, ok := r.joined[connID]; ok {
		if prev == roomID {
			return
		}
		r.Leave(connID)
	}

	set, ok := r.members[roomID]
	if !ok {
		set = make(map[string]struct{})
		r.members[roomID] = set
	}
	set[connID] = struct{}{}
	r.joined[connID] = roomID
}

// Leave removes the connection from whatever room it is in and returns the
// room id it left, or "" if it was not a member of any room. A room whose
// last member leaves is deleted.
func (r *Rooms) Leave(connID string) string {
	roomID, ok := r.joined[connID]
	if !ok {
		return ""
	}
	delete(r.joined, connID)

	if set, ok := r.members[roomID]; ok {
		delete(set, connID)
		if len(set) == 0 {
			delete(r.members, roomID)
		}
	}
	return roomID
}

// RoomOf reports which room the connection currently belongs to.
func (r *Rooms) RoomOf(connID string) (string, bool) {
	roomID, ok := r.joined[connID]
	return roomID, ok
}

// Members returns every connection id in the room, the sender included.
// Chat fan-out uses this.
func (r *Rooms) Members(roomID string) []string {
	set := r.members[roomID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// MembersExcluding returns every connection id in the room except one.
// Code and signaling fan-out use this.
func (r *Rooms) MembersExcluding(roomID, connID string) []string {
	set := r.members[roomID]
	ids := make([]string, 0, len(set))
	for id := range set {
		if id != connID {
			ids = append(ids, id)
		}
	}
	return ids
}
