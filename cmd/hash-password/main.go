package main

import (
	"fmt"
	"log"
	"os"

	"gp1-tickets/internal/services"
)

// Generates the bcrypt hash for the ADMIN_PASSWORD_HASH environment
// variable.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <password>\n", os.Args[0])
		os.Exit(2)
	}

	hash, err := services.HashPassword(os.Args[1])
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}
	fmt.Println(hash)
}
