package seeders

import (
	"context"
	"log"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"remodel-system/pkg/utils"
)

func seedUsers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'users'...")

	query := `INSERT INTO users (id, email, full_name, password_hash, role, department_code, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			  ON CONFLICT (email) DO NOTHING;`

	for _, u := range usersData {
		hash, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		department := null.NewString(u.DepartmentCode, u.DepartmentCode != "")
		if _, err := db.Exec(ctx, query, uuid.New(), u.Email, u.FullName, hash, u.Role, department); err != nil {
			log.Printf("Ошибка при вставке пользователя '%s': %v", u.Email, err)
			return err
		}
	}
	return nil
}
