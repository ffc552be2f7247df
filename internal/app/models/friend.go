package models

import "time"

// Friend is one edge of the friendship graph, stored once per direction.
type Friend struct {
	OwnerUID string    `bson:"ownerUid"`
	UID      string    `bson:"uid"`
	Name     string    `bson:"name"`
	Email    string    `bson:"email"`
	AddedAt  time.Time `bson:"addedAt"`
}

func (f Friend) Person() Person {
	return Person{UID: f.UID, Name: f.Name, Email: f.Email}
}
