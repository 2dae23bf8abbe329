package model

// Default admin credentials written with the seed document.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "1234"
)

// SeedDataset returns the document written when no dataset exists yet:
// two services (ids 1 and 2), no appointments, a default business profile
// and the default admin account.
func SeedDataset() *Dataset {
	return &Dataset{
		Services: []Service{
			{
				ID:          1,
				Name:        "אולם פעילות גדול",
				Description: "אולם המתאים לאירועים גדולים וישיבות מרובות משתתפים",
				Cost:        350,
			},
			{
				ID:          2,
				Name:        "חדר ישיבות A",
				Description: "חדר ישיבות יוקרתי עם מסך ולוח מחיק",
				Cost:        120,
			},
		},
		Appointments: []Appointment{},
		BusinessData: BusinessProfile{
			Name:    "מרכז השכרות – רום",
			Address: "הרצל 10, תל אביב",
			Phone:   "03-1234567",
			Email:   "info@room-center.co.il",
		},
		Admin: Admin{
			Username: DefaultAdminUsername,
			Password: DefaultAdminPassword,
		},
	}
}
