package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/schedulemanager/internal/db"
	"github.com/schedulemanager/internal/service"
)

func main() {
	var dbPath string
	flag.StringVar(&dbPath, "db", db.DefaultAccountsPath, "sqlite accounts db path")
	flag.Parse()

	if err := db.Init(dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "init db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close(db.DB)

	accounts := service.NewAccountService(db.DB, "")
	upgraded, err := accounts.UpgradeLegacyPasswords()
	if err != nil {
		fmt.Fprintf(os.Stderr, "upgrade passwords: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("upgraded %d legacy password(s)\n", upgraded)
}
