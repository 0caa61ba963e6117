package model

// School is a directory entry for one tenant school. LoginID is the handle
// the school signs in with; Password holds a bcrypt hash, never plaintext.
type School struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	LoginID  string `json:"schoolId"`
	Password string `json:"password,omitempty"`
}

// Sanitized returns a copy safe for API responses.
func (s School) Sanitized() School {
	s.Password = ""
	return s
}

// SuperAdmin is the single platform operator credential. Password is a
// bcrypt hash.
type SuperAdmin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SchoolProfile is the singleton profile record inside a school's bundle.
// Name and address are a denormalized copy of the directory entry, kept in
// sync by the directory's update operation.
type SchoolProfile struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	LogoURL *string `json:"logoUrl"`
}
