package entity

// PartnerHotel is a lodging option resolvable by the accommodation add-on.
type PartnerHotel struct {
	Base
	Name          string  `db:"name"`
	Location      string  `db:"location"`
	StarRating    int     `db:"star_rating"`
	PricePerNight float64 `db:"price_per_night"`
	IsActive      bool    `db:"is_active"`
}
