package models

type User struct {
	ID        string  `json:"_id" bson:"_id"`
	Name      string  `json:"name" bson:"name"`
	Email     string  `json:"email" bson:"email"`
	Image     string  `json:"image" bson:"image"`
	Phone     string  `json:"phone" bson:"phone"`
	Gender    string  `json:"gender" bson:"gender"`
	Dob       string  `json:"dob" bson:"dob"`
	Address   Address `json:"address" bson:"address"`
	TimeModel `bson:",inline"`
}

// UserSnapshot is the part of a patient frozen into an appointment.
type UserSnapshot struct {
	ID      string  `json:"_id" bson:"_id"`
	Name    string  `json:"name" bson:"name"`
	Email   string  `json:"email" bson:"email"`
	Image   string  `json:"image" bson:"image"`
	Phone   string  `json:"phone" bson:"phone"`
	Gender  string  `json:"gender" bson:"gender"`
	Dob     string  `json:"dob" bson:"dob"`
	Address Address `json:"address" bson:"address"`
}

func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Image:   u.Image,
		Phone:   u.Phone,
		Gender:  u.Gender,
		Dob:     u.Dob,
		Address: u.Address,
	}
}
