package entity

// Company holds the public contact details printed on pages and emails.
type Company struct {
	Name     string
	Short    string
	Tagline  string
	Phone    string
	Email    string
	WhatsApp string
	Address  string
}

var ExpertTechTutors = Company{
	Name:     "Expert Tech Tutors Hyderabad",
	Short:    "Expert Tech Tutors",
	Tagline:  "Learn Programming & Technology with Industry Experts",
	Phone:    "+91 98765 43210",
	Email:    "info@experttechtutor.com",
	WhatsApp: "919876543210",
	Address:  "Hitech City, Hyderabad, Telangana, India",
}
