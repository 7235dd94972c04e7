package models

type Doctor struct {
	ID          string    `json:"_id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	Image       string    `json:"image" bson:"image"`
	Speciality  string    `json:"speciality" bson:"speciality"`
	Degree      string    `json:"degree" bson:"degree"`
	Experience  string    `json:"experience" bson:"experience"`
	About       string    `json:"about" bson:"about"`
	Fees        float64   `json:"fees" bson:"fees"`
	Address     Address   `json:"address" bson:"address"`
	Available   bool      `json:"available" bson:"available"`
	SlotIndex   SlotIndex `json:"slotIndex" bson:"slotIndex"`
	SlotVersion int64     `json:"-" bson:"slotVersion"`
	TimeModel   `bson:",inline"`
}

// DoctorSnapshot is the part of a doctor frozen into an appointment.
type DoctorSnapshot struct {
	ID         string  `json:"_id" bson:"_id"`
	Name       string  `json:"name" bson:"name"`
	Email      string  `json:"email" bson:"email"`
	Image      string  `json:"image" bson:"image"`
	Speciality string  `json:"speciality" bson:"speciality"`
	Degree     string  `json:"degree" bson:"degree"`
	Experience string  `json:"experience" bson:"experience"`
	About      string  `json:"about" bson:"about"`
	Fees       float64 `json:"fees" bson:"fees"`
	Address    Address `json:"address" bson:"address"`
}

func (d *Doctor) Snapshot() DoctorSnapshot {
	return DoctorSnapshot{
		ID:         d.ID,
		Name:       d.Name,
		Email:      d.Email,
		Image:      d.Image,
		Speciality: d.Speciality,
		Degree:     d.Degree,
		Experience: d.Experience,
		About:      d.About,
		Fees:       d.Fees,
		Address:    d.Address,
	}
}

func (d *Doctor) Clone() *Doctor {
	clone := *d
	clone.SlotIndex = d.SlotIndex.Clone()
	return &clone
}
