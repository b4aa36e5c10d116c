package model

// User represents an account record as stored in the `user_info`
// table. Each field corresponds to a column in the database. The
// json tags are omitted because these structs are used internally
// by the repository layer; handlers define separate view types
// where needed. The password is never stored in plain form: only
// its bcrypt hash is persisted.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address, used as the login key.
//  Phone        – contact phone number.
//  Address      – contact address.
//  Gender       – free-form gender tag from the sign-up form.
//  PasswordHash – bcrypt hashed password.
type User struct {
	ID           uint64 // user_info.id
	Name         string // user_info.name
	Email        string // user_info.email
	Phone        string // user_info.phone
	Address      string // user_info.address
	Gender       string // user_info.gender
	PasswordHash string // user_info.password_hash
}
