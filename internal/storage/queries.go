package storage

import (
	"context"
	"database/sql"
	"time"

	"conciergerie/internal/core"
)

const timeLayout = time.RFC3339

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Insertion order is kept through rowid so dashboards list entities the
// way they were entered.

const listUsers = `SELECT id, role, name, email, phone FROM users ORDER BY rowid`

func (q *Queries) ListUsers(ctx context.Context) ([]core.User, error) {
	rows, err := q.db.QueryContext(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []core.User{}
	for rows.Next() {
		var (
			u    core.User
			role string
		)
		if err := rows.Scan(&u.ID, &role, &u.Name, &u.Email, &u.Phone); err != nil {
			return nil, err
		}
		u.Role = core.Role(role)
		items = append(items, u)
	}
	return items, rows.Err()
}

const createUser = `INSERT INTO users (id, role, name, email, phone) VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateUser(ctx context.Context, u core.User) error {
	_, err := q.db.ExecContext(ctx, createUser, u.ID, string(u.Role), u.Name, u.Email, u.Phone)
	return err
}

const listProperties = `SELECT id, owner_id, name, address, description FROM properties ORDER BY rowid`

func (q *Queries) ListProperties(ctx context.Context) ([]core.Property, error) {
	rows, err := q.db.QueryContext(ctx, listProperties)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []core.Property{}
	for rows.Next() {
		var p core.Property
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.Description); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const getProperty = `SELECT id, owner_id, name, address, description FROM properties WHERE id = ?`

func (q *Queries) GetProperty(ctx context.Context, id string) (core.Property, error) {
	var p core.Property
	err := q.db.QueryRowContext(ctx, getProperty, id).Scan(&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.Description)
	return p, err
}

const createProperty = `INSERT INTO properties (id, owner_id, name, address, description) VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateProperty(ctx context.Context, p core.Property) error {
	_, err := q.db.ExecContext(ctx, createProperty, p.ID, p.OwnerID, p.Name, p.Address, p.Description)
	return err
}

const bookingColumns = `id, property_id, client_id, client_name, property_name, start_date, end_date, status`

const listBookings = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY rowid`

func (q *Queries) ListBookings(ctx context.Context) ([]core.Booking, error) {
	rows, err := q.db.QueryContext(ctx, listBookings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []core.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

const getBooking = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`

func (q *Queries) GetBooking(ctx context.Context, id string) (core.Booking, error) {
	return scanBooking(q.db.QueryRowContext(ctx, getBooking, id))
}

const createBooking = `INSERT INTO bookings (` + bookingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateBooking(ctx context.Context, b core.Booking) error {
	_, err := q.db.ExecContext(ctx, createBooking,
		b.ID, b.PropertyID, b.ClientID, b.ClientName, b.PropertyName,
		b.StartDate.String(), b.EndDate.String(), string(b.Status))
	return err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(s scanner) (core.Booking, error) {
	var (
		b          core.Booking
		start, end string
		status     string
	)
	if err := s.Scan(&b.ID, &b.PropertyID, &b.ClientID, &b.ClientName, &b.PropertyName, &start, &end, &status); err != nil {
		return core.Booking{}, err
	}
	var err error
	if b.StartDate, err = core.ParseDate(start); err != nil {
		return core.Booking{}, err
	}
	if b.EndDate, err = core.ParseDate(end); err != nil {
		return core.Booking{}, err
	}
	b.Status = core.BookingStatus(status)
	return b, nil
}

const listDocuments = `SELECT id, booking_id, file_name, file_url, signed, uploaded_at FROM documents ORDER BY rowid`

func (q *Queries) ListDocuments(ctx context.Context) ([]core.Document, error) {
	rows, err := q.db.QueryContext(ctx, listDocuments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []core.Document{}
	for rows.Next() {
		var (
			d        core.Document
			uploaded string
		)
		if err := rows.Scan(&d.ID, &d.BookingID, &d.FileName, &d.FileURL, &d.Signed, &uploaded); err != nil {
			return nil, err
		}
		if d.UploadedAt, err = parseTime(uploaded); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

const createDocument = `INSERT INTO documents (id, booking_id, file_name, file_url, signed, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateDocument(ctx context.Context, d core.Document) error {
	_, err := q.db.ExecContext(ctx, createDocument, d.ID, d.BookingID, d.FileName, d.FileURL, d.Signed, formatTime(d.UploadedAt))
	return err
}

const listCheckIns = `SELECT id, booking_id, checkin_time, checkout_time, status FROM check_ins ORDER BY rowid`

func (q *Queries) ListCheckIns(ctx context.Context) ([]core.CheckIn, error) {
	rows, err := q.db.QueryContext(ctx, listCheckIns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []core.CheckIn{}
	for rows.Next() {
		var (
			c       core.CheckIn
			in, out sql.NullString
			status  string
		)
		if err := rows.Scan(&c.ID, &c.BookingID, &in, &out, &status); err != nil {
			return nil, err
		}
		if c.CheckinTime, err = parseNullTime(in); err != nil {
			return nil, err
		}
		if c.CheckoutTime, err = parseNullTime(out); err != nil {
			return nil, err
		}
		c.Status = core.CheckInStatus(status)
		items = append(items, c)
	}
	return items, rows.Err()
}

const createCheckIn = `INSERT INTO check_ins (id, booking_id, checkin_time, checkout_time, status) VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateCheckIn(ctx context.Context, c core.CheckIn) error {
	_, err := q.db.ExecContext(ctx, createCheckIn, c.ID, c.BookingID, nullTime(c.CheckinTime), nullTime(c.CheckoutTime), string(c.Status))
	return err
}

const listMessages = `SELECT id, booking_id, type, template_name, content, sent_at FROM messages ORDER BY rowid`

func (q *Queries) ListMessages(ctx context.Context) ([]core.Message, error) {
	rows, err := q.db.QueryContext(ctx, listMessages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []core.Message{}
	for rows.Next() {
		var (
			m         core.Message
			typ, sent string
		)
		if err := rows.Scan(&m.ID, &m.BookingID, &typ, &m.TemplateName, &m.Content, &sent); err != nil {
			return nil, err
		}
		m.Type = core.Channel(typ)
		if m.SentAt, err = parseTime(sent); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const createMessage = `INSERT INTO messages (id, booking_id, type, template_name, content, sent_at) VALUES (?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateMessage(ctx context.Context, m core.Message) error {
	_, err := q.db.ExecContext(ctx, createMessage, m.ID, m.BookingID, string(m.Type), m.TemplateName, m.Content, formatTime(m.SentAt))
	return err
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeLayout, s)
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
