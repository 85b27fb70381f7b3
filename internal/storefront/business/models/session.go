package models

// Session is the explicit credential value passed into service
// constructors. Nothing in the module reads ambient storage.
type Session struct {
	UserID int
	Token  string
	Role   string
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.UserID != 0
}
