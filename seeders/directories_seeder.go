package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedDepartments(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'departments'...")

	query := `INSERT INTO departments (code, name) VALUES ($1, $2)
			  ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name;`

	for _, d := range departmentsData {
		if _, err := db.Exec(ctx, query, d.Code, d.Name); err != nil {
			log.Printf("Ошибка при вставке отдела '%s': %v", d.Code, err)
			return err
		}
	}
	return nil
}

func seedDistricts(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'districts'...")

	query := `INSERT INTO districts (code, name, price_coef) VALUES ($1, $2, $3)
			  ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, price_coef = EXCLUDED.price_coef;`

	for _, d := range districtsData {
		if _, err := db.Exec(ctx, query, d.Code, d.Name, d.PriceCoef); err != nil {
			log.Printf("Ошибка при вставке района '%s': %v", d.Code, err)
			return err
		}
	}
	return nil
}

func seedHouseTypes(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'house_types'...")

	query := `INSERT INTO house_types (code, name, price_coef) VALUES ($1, $2, $3)
			  ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, price_coef = EXCLUDED.price_coef;`

	for _, h := range houseTypesData {
		if _, err := db.Exec(ctx, query, h.Code, h.Name, h.PriceCoef); err != nil {
			log.Printf("Ошибка при вставке типа дома '%s': %v", h.Code, err)
			return err
		}
	}
	return nil
}
