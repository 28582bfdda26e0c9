package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Place struct {
	gorm.Model
	OwnerID     uint           `json:"owner" gorm:"index"`
	Title       string         `json:"title"`
	Address     string         `json:"address"`
	Photos      datatypes.JSON `json:"photos"`
	Description string         `json:"description" gorm:"type:text"`
	Perks       datatypes.JSON `json:"perks"`
	ExtraInfo   string         `json:"extraInfo" gorm:"type:text"`
	CheckIn     string         `json:"checkIn" gorm:"type:varchar(10)"`
	CheckOut    string         `json:"checkOut" gorm:"type:varchar(10)"`
	MaxGuests   int            `json:"maxGuests"`
	Price       float32        `json:"price"`
	Owner       User           `json:"-" gorm:"foreignKey:OwnerID;references:ID"`
}

// Custom JSON marshaling so the JSON columns always render as arrays,
// never as null.
func (p *Place) MarshalJSON() ([]byte, error) {
	type Alias Place
	aux := &struct {
		Photos []string `json:"photos"`
		Perks  []string `json:"perks"`
		*Alias
	}{
		Photos: []string{},
		Perks:  []string{},
		Alias:  (*Alias)(p),
	}

	if p.Photos != nil {
		var photos []string
		if err := json.Unmarshal(p.Photos, &photos); err == nil && photos != nil {
			aux.Photos = photos
		}
	}

	if p.Perks != nil {
		var perks []string
		if err := json.Unmarshal(p.Perks, &perks); err == nil && perks != nil {
			aux.Perks = perks
		}
	}

	return json.Marshal(aux)
}
