package entity

// ProductType discriminates the four bookable product families.
type ProductType string

const (
	ProductPackage       ProductType = "package"
	ProductRetreat       ProductType = "retreat"
	ProductHealthProgram ProductType = "health_program"
	ProductCourse        ProductType = "course"
)

func (t ProductType) Valid() bool {
	switch t {
	case ProductPackage, ProductRetreat, ProductHealthProgram, ProductCourse:
		return true
	}
	return false
}

// SupportsAccommodation reports whether the lodging add-on applies.
// Courses and health programs are day attendance only.
func (t ProductType) SupportsAccommodation() bool {
	return t == ProductPackage || t == ProductRetreat
}

// Program is a bookable catalog entry (package, retreat, health program or course).
type Program struct {
	Base
	Type           ProductType `db:"type"`
	Title          string      `db:"title"`
	Slug           string      `db:"slug"`
	Description    string      `db:"description"`
	Price          float64     `db:"price"`
	DurationNights int         `db:"duration_nights"`
	IsActive       bool        `db:"is_active"`
}
