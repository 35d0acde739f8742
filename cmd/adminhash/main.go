// Command adminhash prints the bcrypt hash to put in ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/adminhash -password 's3cret'
//	printf 's3cret' | go run ./cmd/adminhash
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/festify/festify-web/config"
	"github.com/festify/festify-web/pkg/helpers"
)

func main() {
	password := flag.String("password", "", "admin password; read from stdin when empty")
	check := flag.Bool("check", false, "verify the password against ADMIN_EMAIL/ADMIN_PASSWORD_HASH instead of hashing")
	flag.Parse()

	plain := *password
	if plain == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("read password: %v", err)
		}
		plain = strings.TrimRight(line, "\r\n")
	}
	if plain == "" {
		log.Fatal("empty password")
	}

	if *check {
		_ = godotenv.Load()
		cfg := config.Load()
		if helpers.CheckAdminCredentials(cfg.AdminEmail, plain, cfg.AdminEmail, cfg.AdminPasswordHash) {
			fmt.Println("ok")
			return
		}
		fmt.Println("mismatch")
		os.Exit(1)
	}

	hash, err := helpers.HashPassword(plain)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	fmt.Println(hash)
}
