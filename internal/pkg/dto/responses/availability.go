package responses

type Person struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type MemberAvailability struct {
	Person
	Status string `json:"status"`
}

type FreeFriends struct {
	Current *CurrentSlot `json:"current"`
	Friends []Person     `json:"friends"`
}

type GroupAvailability struct {
	GroupID   string               `json:"groupId"`
	GroupName string               `json:"groupName"`
	Current   *CurrentSlot         `json:"current"`
	FreeCount int                  `json:"freeCount"`
	Members   []MemberAvailability `json:"members"`
}
