package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, userId string, sub Subscription) error
	FindAll(ctx context.Context, userId string) ([]Subscription, error)
	FindById(ctx context.Context, userId string, id string) (Subscription, error)
	Update(ctx context.Context, userId string, sub Subscription) (bool, error)
	SetCalendarEventId(ctx context.Context, userId string, id string, eventId string) error
	Delete(ctx context.Context, userId string, id string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId string, sub Subscription) error {
	query := `INSERT INTO subscription (
                    id,
                    user_id,
                    service_name,
                    start_date,
                    end_date,
                    category,
                    cost,
                    subscription_type,
                    calendar_event_id
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		sub.ID,
		userId,
		sub.ServiceName,
		sub.StartDate.Unix(),
		sub.EndDate.Unix(),
		sub.Category,
		sub.Cost,
		string(sub.Type),
		nullableEventId(sub.CalendarEventID),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) FindAll(ctx context.Context, userId string) ([]Subscription, error) {
	query := `SELECT id, service_name, start_date, end_date, category, cost, subscription_type, calendar_event_id
				FROM subscription WHERE user_id = $1 ORDER BY end_date`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query subscriptions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var subs []Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return subs, nil
}

func (r *RepositoryImpl) FindById(ctx context.Context, userId string, id string) (Subscription, error) {
	query := `SELECT id, service_name, start_date, end_date, category, cost, subscription_type, calendar_event_id
				FROM subscription WHERE id = $1 AND user_id = $2`
	row := r.db.QueryRowContext(ctx, query, id, userId)

	sub, err := scanSubscription(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Subscription{}, ErrNotFound
		}
		log.Error(err)
		return Subscription{}, err
	}
	return sub, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, userId string, sub Subscription) (bool, error) {
	query := `UPDATE subscription SET
                  service_name = $1,
                  start_date = $2,
                  end_date = $3,
                  category = $4,
                  cost = $5,
                  subscription_type = $6,
                  calendar_event_id = $7
              WHERE id = $8 AND user_id = $9`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		sub.ServiceName,
		sub.StartDate.Unix(),
		sub.EndDate.Unix(),
		sub.Category,
		sub.Cost,
		string(sub.Type),
		nullableEventId(sub.CalendarEventID),
		sub.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepositoryImpl) SetCalendarEventId(ctx context.Context, userId string, id string, eventId string) error {
	query := `UPDATE subscription SET calendar_event_id = $1 WHERE id = $2 AND user_id = $3`
	result, err := r.db.ExecContext(ctx, query, nullableEventId(eventId), id, userId)
	if err != nil {
		err := fmt.Errorf("could not store calendar event id: %v", err)
		log.Error(err)
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return err
	}
	if rowsAffected != 1 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId string, id string) (bool, error) {
	query := `DELETE FROM subscription WHERE id = $1 AND user_id = $2`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func scanSubscription(scan func(dest ...any) error) (Subscription, error) {
	var sub Subscription
	var startDate, endDate int64
	var subType string
	var eventId sql.NullString
	if err := scan(
		&sub.ID,
		&sub.ServiceName,
		&startDate,
		&endDate,
		&sub.Category,
		&sub.Cost,
		&subType,
		&eventId,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Subscription{}, err
		}
		return Subscription{}, fmt.Errorf("could not scan subscription: %w", err)
	}
	sub.StartDate = time.Unix(startDate, 0).UTC()
	sub.EndDate = time.Unix(endDate, 0).UTC()
	sub.Type = Type(subType)
	if eventId.Valid {
		sub.CalendarEventID = eventId.String
	}
	return sub, nil
}

func nullableEventId(eventId string) interface{} {
	if eventId == "" {
		return nil
	}
	return eventId
}
