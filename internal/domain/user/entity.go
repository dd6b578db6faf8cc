package user

type User struct {
	id    int64
	name  Name
	email Email
}

// NewUser builds a user that has not been persisted yet; its id is assigned by storage.
func NewUser(name Name, email Email) *User {
	return &User{
		name:  name,
		email: email,
	}
}

func Reconstruct(id int64, name, email string) *User {
	return &User{
		id:    id,
		name:  Name{value: name},
		email: Email{value: email},
	}
}

func (u *User) Rename(name Name) {
	u.name = name
}

func (u *User) ChangeEmail(email Email) {
	u.email = email
}

func (u *User) WithID(id int64) *User {
	cp := *u
	cp.id = id
	return &cp
}

func (u *User) ID() int64    { return u.id }
func (u *User) Name() Name   { return u.name }
func (u *User) Email() Email { return u.email }
