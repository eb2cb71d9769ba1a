package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"
)

func main() {
	username := flag.String("username", "", "login username")
	email := flag.String("email", "", "email address")
	password := flag.String("password", "", "initial password")
	firstName := flag.String("first", "", "first name")
	lastName := flag.String("last", "", "last name")
	role := flag.String("role", string(models.RoleAdmin), "role: super_admin, admin or staff")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		fmt.Println("username, email and password are required")
		flag.Usage()
		os.Exit(1)
	}
	if !models.Role(*role).Valid() {
		fmt.Printf("unknown role %q\n", *role)
		os.Exit(1)
	}

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		os.Exit(1)
	}

	user := &models.User{
		Username:  *username,
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
		Role:      models.Role(*role),
		Status:    models.StatusActive,
	}

	if err := database.CreateUser(db, user); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s (%s, %s)\n", user.Username, user.Email, user.Role)
}
