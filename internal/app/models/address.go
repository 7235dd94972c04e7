package models

type Address struct {
	Line1 string `json:"line1" bson:"line1"`
	Line2 string `json:"line2" bson:"line2"`
}
