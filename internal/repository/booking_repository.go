package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"

    "github.com/iliyamo/eventflow-booking/internal/model"
)

// BookingRepo stores bookings in the `bookings` table.  The database
// assigns IDs through its auto-increment column.  The same statements run
// on MySQL and SQLite; only the schema differs (see database.Migrate).
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo {
    if db == nil {
        panic("nil db passed to NewBookingRepo")
    }
    return &BookingRepo{db: db}
}

const bookingColumns = `id, name, event_date, venue, email, package, phone, status, created_at`

// Append inserts b and populates its generated ID.
func (r *BookingRepo) Append(ctx context.Context, b *model.Booking) error {
    const q = `INSERT INTO bookings (name, event_date, venue, email, package, phone, status, created_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, b.Name, b.Date, b.Venue, b.Email, string(b.Package), b.Phone, b.Status, b.CreatedAt)
    if err != nil {
        return fmt.Errorf("insert booking: %w", err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        return fmt.Errorf("read booking id: %w", err)
    }
    b.ID = uint64(id)
    return nil
}

// List returns all bookings ordered by ID.
func (r *BookingRepo) List(ctx context.Context) ([]model.Booking, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY id`)
    if err != nil {
        return nil, fmt.Errorf("list bookings: %w", err)
    }
    defer rows.Close()

    out := make([]model.Booking, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *b)
    }
    if err := rows.Err(); err != nil {
        return nil, fmt.Errorf("list bookings: %w", err)
    }
    return out, nil
}

// GetByID returns ErrNotFound when no row has the ID.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
    b, err := scanBooking(row)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrNotFound
    }
    return b, err
}

// Approve sets status to APPROVED.  The row is read back afterwards, so an
// already approved booking is returned unchanged.
func (r *BookingRepo) Approve(ctx context.Context, id uint64) (*model.Booking, error) {
    if _, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, model.BookingApproved, id); err != nil {
        return nil, fmt.Errorf("approve booking: %w", err)
    }
    return r.GetByID(ctx, id)
}

type rowScanner interface {
    Scan(dest ...any) error
}

func scanBooking(s rowScanner) (*model.Booking, error) {
    var (
        b   model.Booking
        pkg string
    )
    if err := s.Scan(&b.ID, &b.Name, &b.Date, &b.Venue, &b.Email, &pkg, &b.Phone, &b.Status, &b.CreatedAt); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, err
        }
        return nil, fmt.Errorf("scan booking: %w", err)
    }
    b.Package = model.PackageTier(pkg)
    b.CreatedAt = b.CreatedAt.UTC()
    return &b, nil
}
