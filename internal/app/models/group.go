package models

import "time"

type Group struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	CreatedBy string    `bson:"createdBy"`
	OwnerID   string    `bson:"ownerId"`
	Members   []string  `bson:"members"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (g *Group) HasMember(uid string) bool {
	for _, member := range g.Members {
		if member == uid {
			return true
		}
	}
	return false
}
