package domain

import "time"

type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Address   *string
	City      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
