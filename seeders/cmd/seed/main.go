package main

import (
	"flag"
	"log"

	"remodel-system/pkg/config"
	"remodel-system/pkg/database/postgresql"
	"remodel-system/seeders"
)

func main() {
	runDictionaries := flag.Bool("dictionaries", false, "Наполнить справочники (отделы, районы, типы домов, правила анализа)")
	runUsers := flag.Bool("users", false, "Создать тестовых пользователей")
	runAll := flag.Bool("all", false, "Запустить все сидеры")

	flag.Parse()

	if !*runDictionaries && !*runUsers && !*runAll {
		log.Println("Не выбран ни один сидер для запуска.")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runDictionaries {
		seeders.SeedDictionaries(dbPool)
	}
	if *runAll || *runUsers {
		seeders.SeedUsers(dbPool)
	}

	log.Println("Сидирование завершено.")
}
