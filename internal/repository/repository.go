package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cancunbooking/booking-service/internal/errs"
	"github.com/cancunbooking/booking-service/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	CreateReservation(ctx context.Context, rsv model.Reservation) (model.Reservation, error)
	SaveReservation(ctx context.Context, rsv model.Reservation) error
	GetReservation(ctx context.Context, id int64) (model.Reservation, error)
	GetActiveReservationByRoom(ctx context.Context, roomID int64) (model.Reservation, error)
	RoomExists(ctx context.Context, roomID int64) (bool, error)
	UserExists(ctx context.Context, userID int64) (bool, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	reservationTableName = `reservation`
	roomsTableName       = `rooms`
	usersTableName       = `users`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) CreateReservation(ctx context.Context, rsv model.Reservation) (model.Reservation, error) {
	q, args, err := qb.Insert(reservationTableName).
		Columns("user_id", "room_id", "status", "start_date", "end_date").
		Values(rsv.UserID, rsv.RoomID, rsv.Status, rsv.StartDate, rsv.EndDate).
		Suffix("returning id, user_id, room_id, status, start_date, end_date").
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var res model.Reservation
	if err := r.db.GetContext(ctx, &res, q, args...); err != nil {
		r.log.Error("CreateReservation", zap.String("q", q), zap.Any("args", args))
		return model.Reservation{}, mapFKViolation(err)
	}
	return res, nil
}

func (r *repository) SaveReservation(ctx context.Context, rsv model.Reservation) error {
	q, args, err := qb.Update(reservationTableName).
		Set("status", rsv.Status).
		Set("start_date", rsv.StartDate).
		Set("end_date", rsv.EndDate).
		Where(sq.Eq{"id": rsv.ID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		r.log.Error("SaveReservation", zap.String("q", q), zap.Any("args", args))
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) GetReservation(ctx context.Context, id int64) (model.Reservation, error) {
	q, args, err := qb.Select("id", "user_id", "room_id", "status", "start_date", "end_date").
		From(reservationTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var rsv model.Reservation
	if err := r.db.GetContext(ctx, &rsv, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.ErrNotFound
		}
		return model.Reservation{}, err
	}
	return rsv, nil
}

func (r *repository) GetActiveReservationByRoom(ctx context.Context, roomID int64) (model.Reservation, error) {
	q, args, err := qb.Select("id", "user_id", "room_id", "status", "start_date", "end_date").
		From(reservationTableName).
		Where(sq.Eq{"room_id": roomID}).
		Where(sq.Eq{"status": model.StatusActive}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var rsv model.Reservation
	if err := r.db.GetContext(ctx, &rsv, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.ErrNotFound
		}
		return model.Reservation{}, err
	}
	return rsv, nil
}

func (r *repository) RoomExists(ctx context.Context, roomID int64) (bool, error) {
	return r.exists(ctx, roomsTableName, roomID)
}

func (r *repository) UserExists(ctx context.Context, userID int64) (bool, error) {
	return r.exists(ctx, usersTableName, userID)
}

func (r *repository) exists(ctx context.Context, table string, id int64) (bool, error) {
	q := `select exists (select 1 from ` + table + ` where id = $1)`
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// mapFKViolation turns a foreign-key violation on reservation insert into
// the matching not-found error. The service checks existence up front; this
// is the storage-level backstop for rows deleted in between.
func mapFKViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.ForeignKeyViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "reservation_room_id_fkey":
		return errs.ErrRoomNotFound
	case "reservation_user_id_fkey":
		return errs.ErrUserNotFound
	default:
		return err
	}
}
