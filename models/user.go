package models

// Credential represents a registered account in the credential store.
// On disk it is keyed by Username; the value holds password and role.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// StoredCredential is the JSON value shape persisted under each username.
type StoredCredential struct {
	Password string `json:"password"`
	Role     Role   `json:"role"`
}
