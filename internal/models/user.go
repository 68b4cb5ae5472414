package models

// User struct matches the document in MongoDB. The password is stored and
// compared as-is; there is no signup path, the only account comes from the
// demo seed.
type User struct {
	Username string `bson:"_id" json:"username"`
	Password string `bson:"password" json:"-"`
	IsAdmin  bool   `bson:"isAdmin" json:"isAdmin"`
}
