package entity

// Subject is an entry of the tech subject catalog shown on the contact form.
// Value is what the form submits; ID is the slug used by the reference API.
type Subject struct {
	ID       string `json:"id"`
	Value    string `json:"-"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Popular  bool   `json:"popular"`
}

// Area is a Hyderabad locality we serve.
type Area struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Zone    string `json:"zone"`
	Popular bool   `json:"popular"`
}

// AreaOther is accepted on the form but not listed in the catalog.
const AreaOther = "Other"

var subjects = []Subject{
	{ID: "python", Value: "Python", Name: "Python Programming", Category: "Programming", Popular: true},
	{ID: "javascript", Value: "JavaScript", Name: "JavaScript & Web Dev", Category: "Web Development", Popular: true},
	{ID: "java", Value: "Java", Name: "Java Programming", Category: "Programming", Popular: true},
	{ID: "cpp", Value: "C++", Name: "C++ Programming", Category: "Programming", Popular: false},
	{ID: "react", Value: "React", Name: "React Development", Category: "Web Development", Popular: true},
	{ID: "nodejs", Value: "Node.js", Name: "Node.js & Backend", Category: "Web Development", Popular: true},
	{ID: "data-science", Value: "Data Science", Name: "Data Science & ML", Category: "Data Science", Popular: true},
	{ID: "mobile-apps", Value: "Mobile Apps", Name: "Mobile App Development", Category: "Mobile Development", Popular: true},
	{ID: "dsa", Value: "DSA", Name: "Data Structures & Algorithms", Category: "Computer Science", Popular: true},
	{ID: "databases", Value: "Databases", Name: "Database Management", Category: "Database", Popular: false},
	{ID: "ai", Value: "AI", Name: "Artificial Intelligence", Category: "AI/ML", Popular: true},
	{ID: "cloud", Value: "Cloud", Name: "Cloud Computing (AWS/Azure)", Category: "Cloud", Popular: false},
}

var areas = []Area{
	{ID: "hitech-city", Name: "Hitech City", Zone: "West", Popular: true},
	{ID: "gachibowli", Name: "Gachibowli", Zone: "West", Popular: true},
	{ID: "madhapur", Name: "Madhapur", Zone: "West", Popular: true},
	{ID: "banjara-hills", Name: "Banjara Hills", Zone: "Central", Popular: true},
	{ID: "jubilee-hills", Name: "Jubilee Hills", Zone: "Central", Popular: true},
	{ID: "kondapur", Name: "Kondapur", Zone: "West", Popular: false},
	{ID: "miyapur", Name: "Miyapur", Zone: "West", Popular: false},
	{ID: "kukatpally", Name: "Kukatpally", Zone: "North", Popular: false},
	{ID: "ameerpet", Name: "Ameerpet", Zone: "Central", Popular: false},
	{ID: "somajiguda", Name: "Somajiguda", Zone: "Central", Popular: false},
	{ID: "begumpet", Name: "Begumpet", Zone: "Central", Popular: false},
	{ID: "secunderabad", Name: "Secunderabad", Zone: "North", Popular: false},
}

// Subjects returns a copy of the subject catalog.
func Subjects() []Subject {
	out := make([]Subject, len(subjects))
	copy(out, subjects)
	return out
}

// Areas returns a copy of the area catalog.
func Areas() []Area {
	out := make([]Area, len(areas))
	copy(out, areas)
	return out
}

func IsKnownSubject(value string) bool {
	for _, s := range subjects {
		if s.Value == value {
			return true
		}
	}
	return false
}

func IsKnownArea(name string) bool {
	if name == AreaOther {
		return true
	}
	for _, a := range areas {
		if a.Name == name {
			return true
		}
	}
	return false
}
