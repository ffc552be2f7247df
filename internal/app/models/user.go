package models

// User is the profile document owned by the external auth service. This
// service only reads it.
type User struct {
	UID                  string `bson:"_id" json:"uid"`
	Name                 string `bson:"name" json:"name"`
	Email                string `bson:"email" json:"email"`
	FCMToken             string `bson:"fcmToken,omitempty" json:"-"`
	NotificationsEnabled *bool  `bson:"notificationsEnabled,omitempty" json:"notificationsEnabled,omitempty"`
}

// WantsPush reports whether the user can receive push messages. A missing
// notificationsEnabled flag counts as enabled.
func (u *User) WantsPush() bool {
	if u == nil || u.FCMToken == "" {
		return false
	}
	return u.NotificationsEnabled == nil || *u.NotificationsEnabled
}

func (u *User) DisplayName(fallback string) string {
	if u == nil || u.Name == "" {
		return fallback
	}
	return u.Name
}

func (u *User) Person() Person {
	return Person{UID: u.UID, Name: u.Name, Email: u.Email}
}
