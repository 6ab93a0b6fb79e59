package ecs

import "strconv"

// Entity is a generational handle. A handle whose slot has been destroyed
// and reused no longer resolves.
type Entity struct {
	ID  int
	Gen int
}

func (e Entity) String() string {
	return strconv.Itoa(e.ID) + "@" + strconv.Itoa(e.Gen)
}

// Valid reports whether the handle was ever issued.
func (e Entity) Valid() bool {
	return e.ID > 0
}
