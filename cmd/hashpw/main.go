// Copyright (c) 2026 EasyBuy. All rights reserved.

// Command hashpw prints the bcrypt hash the API would store for a password,
// or checks a password against an existing hash.
//
// Usage:
//
//	go run ./cmd/hashpw <password>
//	go run ./cmd/hashpw <password> <hash>
//
// Useful for seeding users directly in SQL.
package main

import (
	"fmt"
	"os"

	"github.com/easybuy/api/internal/platform/sec"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintln(os.Stderr, "Usage: go run ./cmd/hashpw <password> [hash]")
		os.Exit(2)
	}

	password := os.Args[1]
	if len(password) > sec.MaxPasswordBytes {
		fmt.Fprintf(os.Stderr, "Error: password longer than %d bytes\n", sec.MaxPasswordBytes)
		os.Exit(1)
	}

	if len(os.Args) == 3 {
		matched, err := sec.CheckPasswordHash(password, os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !matched {
			fmt.Println("mismatch")
			os.Exit(1)
		}
		fmt.Println("match")
		return
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
	fmt.Printf("\nSeed with:\n")
	fmt.Printf("INSERT INTO users (username, email, password_hash) VALUES ('<username>', '<email>', '%s');\n", hash)
}
