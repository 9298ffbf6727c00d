package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/model"
)

var userColumns = []string{
	"id", "real_name", "primary_email", "organization_email", "external_identity_id",
	"registered_at", "banned", "is_admin",
}

type userRow struct {
	ID                 string         `db:"id"`
	RealName           string         `db:"real_name"`
	PrimaryEmail       string         `db:"primary_email"`
	OrganizationEmail  sql.NullString `db:"organization_email"`
	ExternalIdentityID string         `db:"external_identity_id"`
	RegisteredAt       time.Time      `db:"registered_at"`
	Banned             bool           `db:"banned"`
	IsAdmin            bool           `db:"is_admin"`
}

func (r userRow) toModel() model.User {
	return model.User{
		ID:                 r.ID,
		RealName:           r.RealName,
		PrimaryEmail:       r.PrimaryEmail,
		OrganizationEmail:  r.OrganizationEmail.String,
		ExternalIdentityID: r.ExternalIdentityID,
		RegisteredAt:       r.RegisteredAt,
		Banned:             r.Banned,
		IsAdmin:            r.IsAdmin,
	}
}

func normEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func (r *repository) getUser(ctx context.Context, where sq.Sqlizer) (model.User, error) {
	query, args, err := r.qb.Select(userColumns...).
		From(usersTableName).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrUserNotFound
		}
		r.log.Error("getUser", zap.String("q", query), zap.Error(err))
		return model.User{}, errs.Wrap(errs.ErrExternal, "get user", err)
	}
	return row.toModel(), nil
}

// FindUserByEmail matches any email a user owns. Each email belongs to at
// most one user.
func (r *repository) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	email = normEmail(email)
	if email == "" {
		return model.User{}, errs.ErrUserNotFound
	}
	return r.getUser(ctx, sq.Expr("id IN (SELECT user_id FROM "+userEmailsTableName+" WHERE email = ?)", email))
}

func (r *repository) FindUserByExternalID(ctx context.Context, externalID string) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"external_identity_id": externalID})
}

func (r *repository) GetUser(ctx context.Context, id string) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"id": id})
}

// ListUsers returns the newest registrations first.
func (r *repository) ListUsers(ctx context.Context) ([]model.User, error) {
	query, args, err := r.qb.Select(userColumns...).
		From(usersTableName).
		OrderBy("registered_at desc", "id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errs.Wrap(errs.ErrExternal, "list users", err)
	}
	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

func (r *repository) CreateUser(ctx context.Context, user model.User) error {
	primary, org := normEmail(user.PrimaryEmail), normEmail(user.OrganizationEmail)
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		var n int
		if err := tx.GetContext(ctx, &n,
			tx.Rebind("SELECT count(*) FROM "+usersTableName+" WHERE external_identity_id = ?"),
			user.ExternalIdentityID); err != nil {
			return errs.Wrap(errs.ErrExternal, "create user", err)
		}
		if n > 0 {
			return errs.ErrDuplicateUser
		}
		query, args, err := r.qb.Insert(usersTableName).
			Columns(userColumns...).
			Values(
				user.ID, user.RealName, primary, nullString(org),
				user.ExternalIdentityID, user.RegisteredAt, user.Banned, user.IsAdmin,
			).
			ToSql()
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return errs.ErrEmailTaken
			}
			return errs.Wrap(errs.ErrExternal, "create user", err)
		}
		return r.claimEmailsTx(ctx, tx, user.ID, primary, org)
	})
}

// UpdateUserProfile replaces the organization email together with its claim
// in user_emails. The primary email keeps its claim.
func (r *repository) UpdateUserProfile(ctx context.Context, id, realName, organizationEmail string) error {
	org := normEmail(organizationEmail)
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		var primary string
		err := tx.GetContext(ctx, &primary,
			tx.Rebind("SELECT primary_email FROM "+usersTableName+" WHERE id = ?"), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errs.ErrUserNotFound
			}
			return errs.Wrap(errs.ErrExternal, "update user", err)
		}
		query, args, err := r.qb.Update(usersTableName).
			Set("real_name", realName).
			Set("organization_email", nullString(org)).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return errs.ErrEmailTaken
			}
			return errs.Wrap(errs.ErrExternal, "update user", err)
		}
		primary = normEmail(primary)
		query, args, err = r.qb.Delete(userEmailsTableName).
			Where(sq.Eq{"user_id": id}).
			Where(sq.NotEq{"email": primary}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return errs.Wrap(errs.ErrExternal, "update user", err)
		}
		if org == primary {
			return nil
		}
		return r.claimEmailsTx(ctx, tx, id, org)
	})
}

// claimEmailsTx records emails as owned by userID. An email already owned by
// anyone fails with ErrEmailTaken.
func (r *repository) claimEmailsTx(ctx context.Context, tx *sqlx.Tx, userID string, emails ...string) error {
	seen := make(map[string]bool, len(emails))
	for _, email := range emails {
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		query, args, err := r.qb.Insert(userEmailsTableName).
			Columns("email", "user_id").
			Values(email, userID).
			ToSql()
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return errs.ErrEmailTaken
			}
			return errs.Wrap(errs.ErrExternal, "claim email", err)
		}
	}
	return nil
}

func (r *repository) SetUserFlags(ctx context.Context, id string, flags model.UserFlags) error {
	query, args, err := r.qb.Update(usersTableName).
		Set("banned", flags.Banned).
		Set("is_admin", flags.IsAdmin).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, "set user flags", query, args, errs.ErrUserNotFound)
}
