// Package overdue finds overdue loans and turns them into addressed notices.
package overdue

import (
	"sort"
	"strings"
	"time"

	"github.com/asgoh05/geuk-small-library/library/internal/model"
	"github.com/asgoh05/geuk-small-library/pkg/datetime"
)

const UnregisteredName = "Unregistered user"

// Directory resolves a stored borrower email to a registered user. Both the
// primary and the organization email must match.
type Directory interface {
	FindByEmail(email string) (model.User, bool)
}

// Index is an in-memory Directory over a loaded user list.
type Index map[string]model.User

func NewIndex(users []model.User) Index {
	idx := make(Index, len(users)*2)
	for _, u := range users {
		if u.PrimaryEmail != "" {
			idx[strings.ToLower(u.PrimaryEmail)] = u
		}
		if u.OrganizationEmail != "" {
			idx[strings.ToLower(u.OrganizationEmail)] = u
		}
	}
	return idx
}

func (idx Index) FindByEmail(email string) (model.User, bool) {
	u, ok := idx[strings.ToLower(strings.TrimSpace(email))]
	return u, ok
}

// Aggregate lists the overdue loans among books at now, most overdue first,
// ties broken by manage id.
func Aggregate(books []model.Book, dir Directory, now time.Time) []model.OverdueEntry {
	entries := make([]model.OverdueEntry, 0)
	for _, b := range books {
		r := b.Rental
		if r.Available || r.ExpectedReturnDate == nil {
			continue
		}
		remaining := datetime.RemainingDays(*r.ExpectedReturnDate, now)
		if remaining >= 0 {
			continue
		}
		entries = append(entries, model.OverdueEntry{
			Book: model.OverdueBook{
				ManageID:           b.ManageID,
				Title:              b.Title,
				Author:             b.Author,
				RentDate:           r.RentDate,
				ExpectedReturnDate: r.ExpectedReturnDate,
				ReturnDate:         r.ReturnDate,
			},
			User:        resolve(dir, r.BorrowerEmail),
			OverdueDays: -remaining,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].OverdueDays != entries[j].OverdueDays {
			return entries[i].OverdueDays > entries[j].OverdueDays
		}
		return entries[i].Book.ManageID < entries[j].Book.ManageID
	})
	return entries
}

func resolve(dir Directory, email string) model.OverdueUser {
	if dir != nil {
		if u, ok := dir.FindByEmail(email); ok {
			ou := model.OverdueUser{
				RealName:     u.RealName,
				PrimaryEmail: u.PrimaryEmail,
				IsRegistered: true,
			}
			if u.OrganizationEmail != "" {
				org := u.OrganizationEmail
				ou.OrganizationEmail = &org
			}
			return ou
		}
	}
	return model.OverdueUser{
		RealName:     UnregisteredName,
		PrimaryEmail: email,
	}
}

// Select keeps the entries whose manage id is listed. An empty list keeps all.
func Select(entries []model.OverdueEntry, manageIDs []string) []model.OverdueEntry {
	if len(manageIDs) == 0 {
		return entries
	}
	want := make(map[string]struct{}, len(manageIDs))
	for _, id := range manageIDs {
		want[strings.TrimSpace(id)] = struct{}{}
	}
	out := make([]model.OverdueEntry, 0, len(manageIDs))
	for _, e := range entries {
		if _, ok := want[e.Book.ManageID]; ok {
			out = append(out, e)
		}
	}
	return out
}
