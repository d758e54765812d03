package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"bizdesk/infras/otel"
	"bizdesk/infras/postgres"
	"bizdesk/internal/domains/schedule/model"
	"bizdesk/shared/constant"
	gDto "bizdesk/shared/dto"
	"bizdesk/shared/failure"
	"bizdesk/shared/logger"
	gRepo "bizdesk/shared/repository"
)

// overlapQuery implements the half-open interval overlap test: two
// windows collide iff each starts before the other ends. Touching
// endpoints do not collide. Only active statuses block employee time.
const overlapQuery = `
	SELECT EXISTS(
		SELECT 1 FROM appointments
		WHERE employee_id = $1
		AND status IN ('SCHEDULED', 'CONFIRMED', 'IN_PROGRESS')
		AND start_time < $3
		AND end_time > $2
		AND id != $4
	)`

type Schedule interface {
	Insert(ctx context.Context, model model.Appointment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Appointment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Appointment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	HasConflict(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error)
	InsertBooked(ctx context.Context, appointment model.Appointment) error
	UpdateBooked(ctx context.Context, appointment model.Appointment, fields map[string]any) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Appointment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Schedule {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Appointment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// HasConflict checks the overlap invariant outside a write transaction.
// Callers that are about to write must go through InsertBooked or
// UpdateBooked instead, which repeat the check under the employee lock.
func (repo *repositoryImpl) HasConflict(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (exists bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.HasConflict")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, overlapQuery)

	err = repo.db.Read.GetContext(ctx, &exists, overlapQuery, employeeID, start, end, excludeID)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to check schedule conflict: %w", err)
	}

	return exists, nil
}

// InsertBooked inserts an appointment with the no-double-booking
// invariant held under concurrency. It serializes writers per employee
// with a transaction-scoped advisory lock, re-runs the overlap check
// inside the transaction, then inserts. The exclusion constraint on the
// table is the backstop; its violation maps to the same conflict error.
func (repo *repositoryImpl) InsertBooked(ctx context.Context, appointment model.Appointment) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.InsertBooked")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	if err = repo.lockEmployee(ctx, tx, appointment.EmployeeID); err != nil {
		return err
	}

	var exists bool

	err = tx.GetContext(ctx, &exists, overlapQuery, appointment.EmployeeID, appointment.StartTime, appointment.EndTime, appointment.ID)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to check schedule conflict: %w", err)
	}

	if exists {
		err = failure.Conflict("appointment overlaps an existing booking for this employee")

		return err
	}

	if err = repo.InsertTx(ctx, tx, appointment); err != nil {
		err = mapConstraintError(err)

		return err
	}

	if err = tx.Commit(); err != nil {
		err = mapConstraintError(err)
		logger.ErrorWithStack(err)

		return err
	}

	return nil
}

// UpdateBooked reschedules an appointment window under the same
// employee lock, excluding the appointment itself from the overlap
// check.
func (repo *repositoryImpl) UpdateBooked(ctx context.Context, appointment model.Appointment, fields map[string]any) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.UpdateBooked")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	if err = repo.lockEmployee(ctx, tx, appointment.EmployeeID); err != nil {
		return err
	}

	var exists bool

	err = tx.GetContext(ctx, &exists, overlapQuery, appointment.EmployeeID, appointment.StartTime, appointment.EndTime, appointment.ID)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to check schedule conflict: %w", err)
	}

	if exists {
		err = failure.Conflict("appointment overlaps an existing booking for this employee")

		return err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: appointment.ID, Table: model.TableName},
		},
	}

	if err = repo.UpdateTx(ctx, tx, fields, filter); err != nil {
		err = mapConstraintError(err)

		return err
	}

	if err = tx.Commit(); err != nil {
		err = mapConstraintError(err)
		logger.ErrorWithStack(err)

		return err
	}

	return nil
}

// lockEmployee serializes writers touching one employee's calendar for
// the remainder of the transaction. The lock releases on commit or
// rollback.
func (repo *repositoryImpl) lockEmployee(ctx context.Context, tx *sqlx.Tx, employeeID string) error {
	_, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", employeeID)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to acquire employee schedule lock: %w", err)
	}

	return nil
}

func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
		return failure.Conflict("appointment overlaps an existing booking for this employee")
	}

	return err
}
