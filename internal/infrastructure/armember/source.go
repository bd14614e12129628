package armember

import (
	"context"
	"fmt"

	"github.com/fairwaygolf/member-import/internal/domain/member"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Source reads member rows from a replica of the WordPress/ARMember
// tables. It never writes.
type Source struct {
	pool *pgxpool.Pool
}

func NewSource(pool *pgxpool.Pool) *Source {
	return &Source{pool: pool}
}

func (s *Source) CountMembers(ctx context.Context) (int64, error) {
	var total int64
	err := s.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM wp_users u
JOIN wp_arm_members m ON m.user_id = u.id
`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count armember members: %w", err)
	}
	return total, nil
}

func (s *Source) MembersPage(ctx context.Context, limit, offset int) ([]member.SourceMember, error) {
	rows, err := s.pool.Query(ctx, `
SELECT
  u.id,
  u.display_name,
  u.user_email,
  COALESCE(m.phone, ''),
  COALESCE(m.dob::text, ''),
  COALESCE(m.gender, ''),
  m.arm_primary_status,
  m.arm_user_type
FROM wp_users u
JOIN wp_arm_members m ON m.user_id = u.id
ORDER BY u.id
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("read armember members page: %w", err)
	}
	defer rows.Close()

	page := make([]member.SourceMember, 0, limit)
	for rows.Next() {
		var src member.SourceMember
		if err := rows.Scan(
			&src.UserID,
			&src.DisplayName,
			&src.Email,
			&src.Phone,
			&src.DateOfBirth,
			&src.Gender,
			&src.StatusCode,
			&src.UserType,
		); err != nil {
			return nil, fmt.Errorf("scan armember member row: %w", err)
		}
		page = append(page, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read armember members page: %w", err)
	}
	return page, nil
}
