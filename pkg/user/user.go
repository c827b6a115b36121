package user

import "time"

type User struct {
	ID          string
	Username    string
	DisplayName string
	CreatedAt   time.Time
}
