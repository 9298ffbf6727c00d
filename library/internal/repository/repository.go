package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/asgoh05/geuk-small-library/library/internal/errs"
	"github.com/asgoh05/geuk-small-library/library/internal/model"
)

type Repository interface {
	GetBook(ctx context.Context, manageID string) (model.Book, error)
	ListBooks(ctx context.Context, filter model.ListBooksFilter) ([]model.Book, error)
	ListRented(ctx context.Context) ([]model.Book, error)
	ListActiveLoans(ctx context.Context, emails []string) ([]model.Book, error)
	CreateBook(ctx context.Context, book model.Book) error
	InsertBooks(ctx context.Context, books []model.Book) error
	ReplaceBooks(ctx context.Context, books []model.Book) ([]model.Book, error)
	UpdateBookDetails(ctx context.Context, book model.Book) error
	UpdateRental(ctx context.Context, manageID string, prev, next model.RentalInfo) error
	DeleteBook(ctx context.Context, manageID string) error
	DeleteBooks(ctx context.Context, manageIDs []string) (int64, error)
	CountStats(ctx context.Context) (model.Stats, error)

	UserRepository
}

type UserRepository interface {
	FindUserByEmail(ctx context.Context, email string) (model.User, error)
	FindUserByExternalID(ctx context.Context, externalID string) (model.User, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, user model.User) error
	UpdateUserProfile(ctx context.Context, id, realName, organizationEmail string) error
	SetUserFlags(ctx context.Context, id string, flags model.UserFlags) error
}

type repository struct {
	db  *sqlx.DB
	qb  sq.StatementBuilderType
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	qb := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if sqlx.BindType(db.DriverName()) == sqlx.DOLLAR {
		qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return &repository{
		db:  db,
		qb:  qb,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName      = `books`
	usersTableName      = `users`
	userEmailsTableName = `user_emails`
)

var bookColumns = []string{
	"manage_id", "title", "author", "img_url", "registered_date", "comments",
	"rent_available", "rent_date", "expected_return_date", "return_date",
	"borrower_name", "borrower_email",
}

type bookRow struct {
	ManageID           string       `db:"manage_id"`
	Title              string       `db:"title"`
	Author             string       `db:"author"`
	ImgURL             string       `db:"img_url"`
	RegisteredDate     time.Time    `db:"registered_date"`
	Comments           string       `db:"comments"`
	RentAvailable      bool         `db:"rent_available"`
	RentDate           sql.NullTime `db:"rent_date"`
	ExpectedReturnDate sql.NullTime `db:"expected_return_date"`
	ReturnDate         sql.NullTime `db:"return_date"`
	BorrowerName       string       `db:"borrower_name"`
	BorrowerEmail      string       `db:"borrower_email"`
}

func (r bookRow) toModel() model.Book {
	return model.Book{
		ManageID:       r.ManageID,
		Title:          r.Title,
		Author:         r.Author,
		ImgURL:         r.ImgURL,
		RegisteredDate: r.RegisteredDate,
		Comments:       r.Comments,
		Rental: model.RentalInfo{
			Available:          r.RentAvailable,
			RentDate:           timePtr(r.RentDate),
			ExpectedReturnDate: timePtr(r.ExpectedReturnDate),
			ReturnDate:         timePtr(r.ReturnDate),
			BorrowerName:       r.BorrowerName,
			BorrowerEmail:      r.BorrowerEmail,
		},
	}
}

func bookValues(b model.Book) []interface{} {
	return []interface{}{
		b.ManageID, b.Title, b.Author, b.ImgURL, b.RegisteredDate, b.Comments,
		b.Rental.Available, nullTime(b.Rental.RentDate), nullTime(b.Rental.ExpectedReturnDate),
		nullTime(b.Rental.ReturnDate), b.Rental.BorrowerName, b.Rental.BorrowerEmail,
	}
}

func rentalValues(r model.RentalInfo) map[string]interface{} {
	return map[string]interface{}{
		"rent_available":       r.Available,
		"rent_date":            nullTime(r.RentDate),
		"expected_return_date": nullTime(r.ExpectedReturnDate),
		"return_date":          nullTime(r.ReturnDate),
		"borrower_name":        r.BorrowerName,
		"borrower_email":       r.BorrowerEmail,
	}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func (r *repository) selectBooks(ctx context.Context, q sq.SelectBuilder) ([]model.Book, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var rows []bookRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.Error("selectBooks", zap.String("q", query), zap.Error(err))
		return nil, errs.Wrap(errs.ErrExternal, "select books", err)
	}
	books := make([]model.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, row.toModel())
	}
	return books, nil
}

func (r *repository) GetBook(ctx context.Context, manageID string) (model.Book, error) {
	query, args, err := r.qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"manage_id": manageID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var row bookRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrBookNotFound
		}
		r.log.Error("GetBook", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return model.Book{}, errs.Wrap(errs.ErrExternal, "get book", err)
	}
	return row.toModel(), nil
}

func (r *repository) ListBooks(ctx context.Context, filter model.ListBooksFilter) ([]model.Book, error) {
	q := r.qb.Select(bookColumns...).From(booksTableName)
	switch {
	case filter.OnlyAvailable:
		q = q.Where(sq.Eq{"rent_available": true})
	case filter.OnlyRented:
		q = q.Where(sq.Eq{"rent_available": false})
	}
	return r.selectBooks(ctx, q.OrderBy("manage_id"))
}

func (r *repository) ListRented(ctx context.Context) ([]model.Book, error) {
	return r.ListBooks(ctx, model.ListBooksFilter{OnlyRented: true})
}

// ListActiveLoans matches borrower emails case-insensitively.
func (r *repository) ListActiveLoans(ctx context.Context, emails []string) ([]model.Book, error) {
	lowered := make([]string, 0, len(emails))
	for _, e := range emails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			lowered = append(lowered, e)
		}
	}
	if len(lowered) == 0 {
		return []model.Book{}, nil
	}
	q := r.qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"rent_available": false}).
		Where(sq.Eq{"lower(borrower_email)": lowered}).
		OrderBy("manage_id")
	return r.selectBooks(ctx, q)
}

func (r *repository) CreateBook(ctx context.Context, book model.Book) error {
	query, args, err := r.qb.Insert(booksTableName).
		Columns(bookColumns...).
		Values(bookValues(book)...).
		ToSql()
	if err != nil {
		return err
	}
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return errs.ErrDuplicateManageID
		}
		return errs.Wrap(errs.ErrExternal, "create book", err)
	}
	return nil
}

// InsertBooks inserts all books or none.
func (r *repository) InsertBooks(ctx context.Context, books []model.Book) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		return r.insertBooksTx(ctx, tx, books)
	})
}

// ReplaceBooks rewrites the catalog fields of the given books in one
// transaction. Books already stored keep their rental state; the returned
// slice holds the books as written.
func (r *repository) ReplaceBooks(ctx context.Context, books []model.Book) ([]model.Book, error) {
	if len(books) == 0 {
		return []model.Book{}, nil
	}
	ids := make([]string, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ManageID)
	}
	written := make([]model.Book, len(books))
	copy(written, books)
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		query, args, err := r.qb.Select(bookColumns...).
			From(booksTableName).
			Where(sq.Eq{"manage_id": ids}).
			ToSql()
		if err != nil {
			return err
		}
		var rows []bookRow
		if err = tx.SelectContext(ctx, &rows, query, args...); err != nil {
			return errs.Wrap(errs.ErrExternal, "select books", err)
		}
		stored := make(map[string]model.RentalInfo, len(rows))
		for _, row := range rows {
			stored[row.ManageID] = row.toModel().Rental
		}
		for i := range written {
			if rental, ok := stored[written[i].ManageID]; ok {
				written[i].Rental = rental
			}
		}

		query, args, err = r.qb.Delete(booksTableName).Where(sq.Eq{"manage_id": ids}).ToSql()
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return errs.Wrap(errs.ErrExternal, "delete books", err)
		}
		return r.insertBooksTx(ctx, tx, written)
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}

func (r *repository) insertBooksTx(ctx context.Context, tx *sqlx.Tx, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}
	q := r.qb.Insert(booksTableName).Columns(bookColumns...)
	for _, b := range books {
		q = q.Values(bookValues(b)...)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return errs.ErrDuplicateManageID
		}
		return errs.Wrap(errs.ErrExternal, "insert books", err)
	}
	return nil
}

func (r *repository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errs.Wrap(errs.ErrExternal, "begin tx", err)
	}
	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.log.Error("rollback", zap.Error(rbErr))
		}
		return err
	}
	if err = tx.Commit(); err != nil {
		return errs.Wrap(errs.ErrExternal, "commit", err)
	}
	return nil
}

// UpdateBookDetails writes catalog columns only. Rental columns stay as they
// are in storage.
func (r *repository) UpdateBookDetails(ctx context.Context, book model.Book) error {
	query, args, err := r.qb.Update(booksTableName).
		Set("title", book.Title).
		Set("author", book.Author).
		Set("img_url", book.ImgURL).
		Set("registered_date", book.RegisteredDate).
		Set("comments", book.Comments).
		Where(sq.Eq{"manage_id": book.ManageID}).
		ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, "update book", query, args, errs.ErrBookNotFound)
}

// UpdateRental replaces the rental columns only if the stored availability and
// borrower still match prev. A lost race surfaces as ErrConcurrentUpdate.
func (r *repository) UpdateRental(ctx context.Context, manageID string, prev, next model.RentalInfo) error {
	query, args, err := r.qb.Update(booksTableName).
		SetMap(rentalValues(next)).
		Where(sq.Eq{"manage_id": manageID}).
		Where(sq.Eq{"rent_available": prev.Available}).
		Where(sq.Eq{"borrower_email": prev.BorrowerEmail}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errs.Wrap(errs.ErrExternal, "update rental", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errs.Wrap(errs.ErrExternal, "update rental", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := r.GetBook(ctx, manageID); err != nil {
		return err
	}
	r.log.Warn("rental changed concurrently", zap.String("manageId", manageID))
	return errs.ErrConcurrentUpdate
}

func (r *repository) DeleteBook(ctx context.Context, manageID string) error {
	query, args, err := r.qb.Delete(booksTableName).Where(sq.Eq{"manage_id": manageID}).ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, "delete book", query, args, errs.ErrBookNotFound)
}

func (r *repository) DeleteBooks(ctx context.Context, manageIDs []string) (int64, error) {
	if len(manageIDs) == 0 {
		return 0, nil
	}
	query, args, err := r.qb.Delete(booksTableName).Where(sq.Eq{"manage_id": manageIDs}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errs.Wrap(errs.ErrExternal, "delete books", err)
	}
	return res.RowsAffected()
}

// CountStats counts what storage can count. Overdue books depend on the clock
// and are left to the caller.
func (r *repository) CountStats(ctx context.Context) (model.Stats, error) {
	const q = `
select
    (select count(*) from books) as total_books,
    (select count(*) from books where rent_available = false) as rented_books,
    (select count(*) from users) as total_users,
    (select count(*) from users where banned = false) as active_users,
    (select count(*) from users where banned = true) as banned_users`
	var stats model.Stats
	if err := r.db.GetContext(ctx, &stats, q); err != nil {
		return model.Stats{}, errs.Wrap(errs.ErrExternal, "count stats", err)
	}
	return stats, nil
}

func (r *repository) execOne(ctx context.Context, op, query string, args []interface{}, notFound error) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Wrap(errs.ErrConflict, op, err)
		}
		return errs.Wrap(errs.ErrExternal, op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errs.Wrap(errs.ErrExternal, op, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
