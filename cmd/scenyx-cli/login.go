package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"scenyx-cli/internal/auth"
)

func loginMain(args []string) {
	if err := runLogin(args, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("login failed: %v", err)
	}
}

func runLogin(args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var accessToken string
	var refreshToken string
	fs.StringVar(&accessToken, "token", "", "Access token (prompted when omitted)")
	fs.StringVar(&refreshToken, "refresh-token", "", "Refresh token (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(accessToken) == "" {
		fmt.Fprint(out, "Access token: ")
		scanner := bufio.NewScanner(in)
		if scanner.Scan() {
			accessToken = scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}

	if err := auth.Save(auth.Credentials{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}); err != nil {
		return err
	}
	fmt.Fprintln(out, "Credentials saved.")
	return nil
}

func logoutMain(args []string) {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse args: %v", err)
	}
	if err := auth.Clear(); err != nil {
		log.Fatalf("logout failed: %v", err)
	}
	fmt.Println("Credentials removed.")
}
