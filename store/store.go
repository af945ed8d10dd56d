// Package store is the Postgres persistence collaborator for package
// ledgers. It owns nothing about lifecycle semantics: callers read a
// package, run a lifecycle transition, and write the result back. What the
// store does guarantee is that the read-compute-write cycle for one package
// is serialized, by locking the package row for the duration of every
// mutating transaction.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Enterprise-CMCS/managed-care-review-sub003/healthplan"
	"github.com/Enterprise-CMCS/managed-care-review-sub003/submission"
	"github.com/Enterprise-CMCS/managed-care-review-sub003/wire"
)

type Store struct {
	pool  *pgxpool.Pool
	codec *wire.Codec
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, codec: wire.NewCodec()}
}

// querier is satisfied by both pgxpool.Pool and pgx.Tx so package loading
// can run inside or outside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// FindPackage loads a package and its full revision ledger, newest
// revision first. Returns ErrNotFound when no such package exists and
// *ConnectionError when the database cannot be reached.
func (s *Store) FindPackage(ctx context.Context, id string) (submission.Package, error) {
	pkg, err := s.loadPackage(ctx, s.pool, id)
	if err != nil {
		return submission.Package{}, err
	}
	return pkg, nil
}

// InsertPackage persists a freshly created package together with its single
// draft revision. A state_code/state_number collision surfaces as
// ErrDuplicatePackage.
func (s *Store) InsertPackage(ctx context.Context, pkg submission.Package) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
        INSERT INTO packages (id, state_code, state_number, created_at)
        VALUES ($1, $2, $3, $4)
    `, pkg.ID, pkg.StateCode, pkg.StateNumber, pkg.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePackage
		}
		return &StoreError{Op: "insert package", Err: err}
	}

	for _, rev := range pkg.Revisions {
		if err := s.insertRevision(ctx, tx, pkg.ID, rev); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &StoreError{Op: "commit insert package", Err: err}
	}
	return nil
}

// AppendRevision adds the revision an unlock produced as the package's new
// current revision and returns the updated package. The package row is
// locked first and the precondition re-checked under the lock, so two
// concurrent unlocks cannot both append: the loser sees ErrConflict.
func (s *Store) AppendRevision(ctx context.Context, packageID string, rev submission.Revision) (submission.Package, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return submission.Package{}, &ConnectionError{Err: err}
	}
	defer tx.Rollback(ctx)

	if err := s.lockPackage(ctx, tx, packageID); err != nil {
		return submission.Package{}, err
	}

	finalized, _, err := s.currentRevisionState(ctx, tx, packageID)
	if err != nil {
		return submission.Package{}, err
	}
	if !finalized {
		return submission.Package{}, ErrConflict
	}

	if err := s.insertRevision(ctx, tx, packageID, rev); err != nil {
		return submission.Package{}, err
	}

	pkg, err := s.loadPackage(ctx, tx, packageID)
	if err != nil {
		return submission.Package{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return submission.Package{}, &StoreError{Op: "commit append revision", Err: err}
	}
	return pkg, nil
}

// UpdateCurrentRevisionFormData replaces the form data of the package's
// current revision in place. The revision must still be current and still
// unlocked when the lock is taken; otherwise ErrConflict.
func (s *Store) UpdateCurrentRevisionFormData(ctx context.Context, packageID, revisionID string, fd healthplan.FormData) (submission.Package, error) {
	return s.mutateCurrentRevision(ctx, packageID, revisionID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
            UPDATE revisions
            SET form_data = $1
            WHERE id = $2 AND package_id = $3 AND submitted_at IS NULL
        `, s.codec.Encode(fd), revisionID, packageID)
		if err != nil {
			return &StoreError{Op: "update revision form data", Err: err}
		}
		if tag.RowsAffected() == 0 {
			return ErrConflict
		}
		return nil
	})
}

// FinalizeCurrentRevision attaches the submit audit record and the final
// form data to the current revision, making it permanently immutable. A
// revision that is already finalized, or no longer current, yields
// ErrConflict.
func (s *Store) FinalizeCurrentRevision(ctx context.Context, packageID, revisionID string, fd healthplan.FormData, info submission.UpdateInfo) (submission.Package, error) {
	return s.mutateCurrentRevision(ctx, packageID, revisionID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
            UPDATE revisions
            SET form_data = $1,
                submitted_at = $2,
                submitted_by = $3,
                submitted_reason = $4
            WHERE id = $5 AND package_id = $6 AND submitted_at IS NULL
        `, s.codec.Encode(fd), info.UpdatedAt, info.UpdatedBy, info.UpdatedReason, revisionID, packageID)
		if err != nil {
			return &StoreError{Op: "finalize revision", Err: err}
		}
		if tag.RowsAffected() == 0 {
			return ErrConflict
		}
		return nil
	})
}

func (s *Store) mutateCurrentRevision(ctx context.Context, packageID, revisionID string, mutate func(pgx.Tx) error) (submission.Package, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return submission.Package{}, &ConnectionError{Err: err}
	}
	defer tx.Rollback(ctx)

	if err := s.lockPackage(ctx, tx, packageID); err != nil {
		return submission.Package{}, err
	}

	_, currentID, err := s.currentRevisionState(ctx, tx, packageID)
	if err != nil {
		return submission.Package{}, err
	}
	if currentID != revisionID {
		return submission.Package{}, ErrConflict
	}

	if err := mutate(tx); err != nil {
		return submission.Package{}, err
	}

	pkg, err := s.loadPackage(ctx, tx, packageID)
	if err != nil {
		return submission.Package{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return submission.Package{}, &StoreError{Op: "commit revision mutation", Err: err}
	}
	return pkg, nil
}

func (s *Store) lockPackage(ctx context.Context, tx pgx.Tx, packageID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT id FROM packages WHERE id = $1 FOR UPDATE`, packageID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return &StoreError{Op: "lock package", Err: err}
	}
	return nil
}

// currentRevisionState reports whether the newest revision is finalized and
// what its id is, read under the caller's package lock.
func (s *Store) currentRevisionState(ctx context.Context, tx pgx.Tx, packageID string) (bool, string, error) {
	var (
		id          string
		submittedAt sql.NullTime
	)
	err := tx.QueryRow(ctx, `
        SELECT id, submitted_at
        FROM revisions
        WHERE package_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT 1
    `, packageID).Scan(&id, &submittedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, "", submission.ErrEmptyLedger
	}
	if err != nil {
		return false, "", &StoreError{Op: "read current revision", Err: err}
	}
	return submittedAt.Valid, id, nil
}

func (s *Store) insertRevision(ctx context.Context, tx pgx.Tx, packageID string, rev submission.Revision) error {
	var (
		submittedAt, unlockedAt      sql.NullTime
		submittedBy, submittedReason sql.NullString
		unlockedBy, unlockedReason   sql.NullString
	)
	if info, ok := rev.SubmitInfo(); ok {
		submittedAt = sql.NullTime{Time: info.UpdatedAt, Valid: true}
		submittedBy = sql.NullString{String: info.UpdatedBy, Valid: true}
		submittedReason = sql.NullString{String: info.UpdatedReason, Valid: true}
	}
	if info, ok := rev.UnlockInfo(); ok {
		unlockedAt = sql.NullTime{Time: info.UpdatedAt, Valid: true}
		unlockedBy = sql.NullString{String: info.UpdatedBy, Valid: true}
		unlockedReason = sql.NullString{String: info.UpdatedReason, Valid: true}
	}

	if _, err := tx.Exec(ctx, `
        INSERT INTO revisions (
            id, package_id, created_at, form_data,
            submitted_at, submitted_by, submitted_reason,
            unlocked_at, unlocked_by, unlocked_reason
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, rev.ID, packageID, rev.CreatedAt, s.codec.Encode(rev.FormData),
		submittedAt, submittedBy, submittedReason,
		unlockedAt, unlockedBy, unlockedReason); err != nil {
		return &StoreError{Op: "insert revision", Err: err}
	}
	return nil
}

func (s *Store) loadPackage(ctx context.Context, q querier, id string) (submission.Package, error) {
	var pkg submission.Package
	err := q.QueryRow(ctx, `
        SELECT id, state_code, state_number, created_at
        FROM packages
        WHERE id = $1
    `, id).Scan(&pkg.ID, &pkg.StateCode, &pkg.StateNumber, &pkg.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return submission.Package{}, ErrNotFound
	}
	if err != nil {
		return submission.Package{}, &ConnectionError{Err: err}
	}

	rows, err := q.Query(ctx, `
        SELECT id, created_at, form_data,
               submitted_at, submitted_by, submitted_reason,
               unlocked_at, unlocked_by, unlocked_reason
        FROM revisions
        WHERE package_id = $1
        ORDER BY created_at DESC, id DESC
    `, id)
	if err != nil {
		return submission.Package{}, &ConnectionError{Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var (
			revID                        string
			createdAt                    sql.NullTime
			blob                         []byte
			submittedAt, unlockedAt      sql.NullTime
			submittedBy, submittedReason sql.NullString
			unlockedBy, unlockedReason   sql.NullString
		)
		if err := rows.Scan(&revID, &createdAt, &blob,
			&submittedAt, &submittedBy, &submittedReason,
			&unlockedAt, &unlockedBy, &unlockedReason); err != nil {
			return submission.Package{}, &StoreError{Op: "scan revision", Err: err}
		}

		fd, err := s.codec.Decode(blob)
		if err != nil {
			// Codec errors keep their own taxonomy; only the context is added.
			return submission.Package{}, fmt.Errorf("store: decode revision %s: %w", revID, err)
		}

		var submitInfo, unlockInfo *submission.UpdateInfo
		if submittedAt.Valid {
			submitInfo = &submission.UpdateInfo{
				UpdatedAt:     submittedAt.Time,
				UpdatedBy:     submittedBy.String,
				UpdatedReason: submittedReason.String,
			}
		}
		if unlockedAt.Valid {
			unlockInfo = &submission.UpdateInfo{
				UpdatedAt:     unlockedAt.Time,
				UpdatedBy:     unlockedBy.String,
				UpdatedReason: unlockedReason.String,
			}
		}

		pkg.Revisions = append(pkg.Revisions,
			submission.RehydrateRevision(revID, createdAt.Time, fd, submitInfo, unlockInfo))
	}
	if err := rows.Err(); err != nil {
		return submission.Package{}, &ConnectionError{Err: err}
	}

	if err := pkg.Validate(); err != nil {
		return submission.Package{}, err
	}
	return pkg, nil
}
