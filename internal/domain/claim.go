package domain

// IdentityClaim is the set of facts about a principal embedded in a
// session token. Name and Email are informational; only Role is
// consulted during authorization.
type IdentityClaim struct {
	SubjectID string
	Name      string
	Email     string
	Role      Role
}

// ClaimForUser builds the claim issued to a user at login.
func ClaimForUser(u *User) IdentityClaim {
	return IdentityClaim{
		SubjectID: u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
	}
}
