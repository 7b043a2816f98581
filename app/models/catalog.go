package models

import "gorm.io/gorm"

// Category groups items on the menu. BgColor is a display hint for the
// storefront tiles.
type Category struct {
	gorm.Model
	CategoryID  string `gorm:"uniqueIndex;size:36;not null" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"size:1000" json:"description"`
	BgColor     string `gorm:"size:50" json:"bgColor"`
	ImgURL      string `gorm:"size:500" json:"imgUrl"`
}

// Item is a sellable product inside a category. CategoryID holds the
// owning category's public id; the category service refuses to delete a
// category while items still reference it.
type Item struct {
	gorm.Model
	ItemID      string  `gorm:"uniqueIndex;size:36;not null" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"size:1000" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	ImgURL      string  `gorm:"size:500" json:"imgUrl"`
	CategoryID  string  `gorm:"index;size:36;not null" json:"categoryId"`
}
