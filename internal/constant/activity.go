package constant

// Keyword lists are matched case-insensitively as substrings of the activity cell.
var (
	NotOnCampusSentinels = []string{"not on campus", "tidak di kampus"}

	ClassKeywords  = []string{"class", "kelas", "kuliah"}
	EatingKeywords = []string{"eat/drink", "makan", "minum"}
)

const (
	OtherFaculty = "Other"

	CategoryTransportation = "transportation"
	CategoryElectronics    = "electronics"
	CategoryFoodWaste      = "food_waste"
	CategoryTotal          = "total"

	ActivityCategoryFacility = "facility"
	ActivityCategoryFood     = "food"

	DevicePhone  = "phone"
	DeviceLaptop = "laptop"
	DeviceTablet = "tablet"

	ModeCar           = "Car"
	ModeMotorcycle    = "Motorcycle"
	ModePublicTransit = "PublicTransit"
	ModeRideHailing   = "RideHailing"
)

// Categories are the per-respondent emission categories the statistics module works on.
var Categories = []string{CategoryTransportation, CategoryElectronics, CategoryFoodWaste}
