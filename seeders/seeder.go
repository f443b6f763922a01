package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDictionaries наполняет справочники, от которых зависят заказы и расчет цены.
func SeedDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()

	if err := seedDepartments(ctx, db); err != nil {
		log.Fatalf("Критическая ошибка при наполнении отделов: %v", err)
	}
	if err := seedDistricts(ctx, db); err != nil {
		log.Fatalf("Критическая ошибка при наполнении районов: %v", err)
	}
	if err := seedHouseTypes(ctx, db); err != nil {
		log.Fatalf("Критическая ошибка при наполнении типов домов: %v", err)
	}
	if err := seedAiRules(ctx, db); err != nil {
		log.Fatalf("Критическая ошибка при наполнении правил анализа: %v", err)
	}

	log.Println("    - Справочники успешно проверены/созданы.")
}

// SeedUsers создает тестовых пользователей всех трех ролей.
// Пользователи ссылаются на отделы, поэтому запускать после SeedDictionaries.
func SeedUsers(db *pgxpool.Pool) {
	if err := seedUsers(context.Background(), db); err != nil {
		log.Fatalf("Критическая ошибка при создании пользователей: %v", err)
	}
	log.Println("    - Пользователи успешно проверены/созданы.")
}
