package model

import "time"

type OverdueBook struct {
	ManageID           string     `json:"manageId"`
	Title              string     `json:"title"`
	Author             string     `json:"author"`
	RentDate           *time.Time `json:"rentDate"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate"`
	ReturnDate         *time.Time `json:"returnDate"`
}

type OverdueUser struct {
	RealName          string  `json:"realName"`
	PrimaryEmail      string  `json:"primaryEmail"`
	OrganizationEmail *string `json:"organizationEmail"`
	IsRegistered      bool    `json:"isRegistered"`
}

// Contact is where a notice for this user goes outside test mode.
func (u OverdueUser) Contact() string {
	if u.OrganizationEmail != nil && *u.OrganizationEmail != "" {
		return *u.OrganizationEmail
	}
	return u.PrimaryEmail
}

type OverdueEntry struct {
	Book        OverdueBook `json:"book"`
	User        OverdueUser `json:"user"`
	OverdueDays int         `json:"overdueDays"`
}

type OverdueReport struct {
	TotalRented  int            `json:"totalRented"`
	TotalOverdue int            `json:"totalOverdue"`
	Items        []OverdueEntry `json:"items"`
}

// Notice is an addressed overdue message ready for a sink.
type Notice struct {
	ID          string `json:"id"`
	ManageID    string `json:"manageId"`
	BookTitle   string `json:"bookTitle"`
	RealName    string `json:"realName"`
	OverdueDays int    `json:"overdueDays"`
	FromName    string `json:"fromName"`
	From        string `json:"from"`
	To          string `json:"to"`
	Subject     string `json:"subject"`
	HTMLBody    string `json:"htmlBody"`
	TextBody    string `json:"textBody"`
	TestMode    bool   `json:"testMode"`
}

type SendNoticesRequest struct {
	ManageIDs []string `json:"manageIds"`
	TestMode  *bool    `json:"testMode"`
}

// IsTestMode defaults to true so a bare request never mails borrowers.
func (r SendNoticesRequest) IsTestMode() bool {
	return r.TestMode == nil || *r.TestMode
}

type NoticeResult struct {
	ManageID    string     `json:"manageId"`
	BookTitle   string     `json:"bookTitle"`
	RealName    string     `json:"realName"`
	Email       string     `json:"email"`
	OverdueDays int        `json:"overdueDays"`
	Status      ItemStatus `json:"status"`
	Error       string     `json:"error,omitempty"`
}

type NoticeReport struct {
	BatchID      string         `json:"batchId"`
	TestMode     bool           `json:"testMode"`
	Total        int            `json:"total"`
	SuccessCount int            `json:"successCount"`
	FailCount    int            `json:"failCount"`
	Results      []NoticeResult `json:"results"`
}
