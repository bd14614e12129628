package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fairwaygolf/member-import/internal/domain/member"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// MemberStore is the write side of the members table. The unique index
// on user_id is the dedup guarantee; Insert reports a violation as
// member.ErrMemberExists.
type MemberStore struct {
	pool *pgxpool.Pool
}

func NewMemberStore(pool *pgxpool.Pool) *MemberStore {
	return &MemberStore{pool: pool}
}

func (r *MemberStore) FindIDByUserID(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, "SELECT id FROM members WHERE user_id = $1", userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, member.ErrMemberNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find member by user id: %w", err)
	}
	return id, nil
}

func (r *MemberStore) Insert(ctx context.Context, m member.NewMember) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO members (user_id, membership_type, status, date_of_birth, gender, phone, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
RETURNING id
`, m.UserID, m.MembershipType, string(m.Status), nullableText(m.DateOfBirth), nullableText(m.Gender), nullableText(m.Phone)).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, member.ErrMemberExists
		}
		return 0, fmt.Errorf("insert member: %w", err)
	}
	return id, nil
}

func (r *MemberStore) UpdateFields(ctx context.Context, memberID int64, fields member.FieldUpdate) error {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 4)
	stage := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	stage("date_of_birth", fields.DateOfBirth)
	stage("gender", fields.Gender)
	stage("phone", fields.Phone)
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, memberID)
	query := fmt.Sprintf("UPDATE members SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update member fields: %w", err)
	}
	return nil
}

func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
