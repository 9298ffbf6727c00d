package model

import (
	"strings"
	"time"
)

type User struct {
	ID                 string    `json:"id"`
	RealName           string    `json:"realName"`
	PrimaryEmail       string    `json:"primaryEmail"`
	OrganizationEmail  string    `json:"organizationEmail,omitempty"`
	ExternalIdentityID string    `json:"externalIdentityId"`
	RegisteredAt       time.Time `json:"registeredAt"`
	Banned             bool      `json:"banned"`
	IsAdmin            bool      `json:"isAdmin"`
}

// Identity is a caller resolved to the set of emails that stand for the same
// person. Loans recorded under either email belong to it.
type Identity struct {
	UserID            string `json:"userId,omitempty"`
	RealName          string `json:"realName"`
	PrimaryEmail      string `json:"primaryEmail"`
	OrganizationEmail string `json:"organizationEmail,omitempty"`
	IsAdmin           bool   `json:"isAdmin"`
	Banned            bool   `json:"banned"`
	Registered        bool   `json:"registered"`
}

func IdentityFromUser(u User) Identity {
	return Identity{
		UserID:            u.ID,
		RealName:          u.RealName,
		PrimaryEmail:      u.PrimaryEmail,
		OrganizationEmail: u.OrganizationEmail,
		IsAdmin:           u.IsAdmin,
		Banned:            u.Banned,
		Registered:        true,
	}
}

// GuestIdentity is a caller the directory does not know.
func GuestIdentity(email, name string) Identity {
	return Identity{RealName: name, PrimaryEmail: email}
}

func (i Identity) Emails() []string {
	emails := make([]string, 0, 2)
	if i.PrimaryEmail != "" {
		emails = append(emails, i.PrimaryEmail)
	}
	if i.OrganizationEmail != "" && !strings.EqualFold(i.OrganizationEmail, i.PrimaryEmail) {
		emails = append(emails, i.OrganizationEmail)
	}
	return emails
}

// Owns reports whether email is one of the identity's equivalent emails.
func (i Identity) Owns(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, e := range i.Emails() {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

// ContactEmail prefers the organization email.
func (i Identity) ContactEmail() string {
	if i.OrganizationEmail != "" {
		return i.OrganizationEmail
	}
	return i.PrimaryEmail
}

// RegisterRequest completes a login into a library user. The primary email
// and external identity come from the authenticated session.
type RegisterRequest struct {
	RealName          string `json:"realName" validate:"required,realname"`
	OrganizationEmail string `json:"organizationEmail" validate:"required,email,orgemail"`
}

type ProfileUpdateRequest struct {
	RealName          string `json:"realName" validate:"required,realname"`
	OrganizationEmail string `json:"organizationEmail" validate:"required,email,orgemail"`
}

type UserAction string

const (
	ActionBan         UserAction = "ban"
	ActionUnban       UserAction = "unban"
	ActionMakeAdmin   UserAction = "make_admin"
	ActionRemoveAdmin UserAction = "remove_admin"
)

type UserActionRequest struct {
	UserID string     `json:"userId" validate:"required"`
	Action UserAction `json:"action" validate:"required,oneof=ban unban make_admin remove_admin"`
}

type UserFlags struct {
	Banned  bool
	IsAdmin bool
}

type ListUsers struct {
	Total int    `json:"total"`
	Items []User `json:"items"`
}

// MigrationTarget is an on-loan book recorded under a user's primary email
// that should move to the organization email.
type MigrationTarget struct {
	ManageID     string `json:"manageId"`
	Title        string `json:"title"`
	CurrentEmail string `json:"currentEmail"`
	NewEmail     string `json:"newEmail"`
	RealName     string `json:"realName"`
}

type MigrationReport struct {
	TotalRented int                `json:"totalRented"`
	Updated     int                `json:"updated"`
	Targets     []MigrationTarget  `json:"targets"`
	Items       []ImportItemResult `json:"items,omitempty"`
}
