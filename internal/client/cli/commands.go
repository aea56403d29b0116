package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

func (a *App) Register(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Register(ctx, email, password)
	if err != nil {
		a.report("Registration", err)
		return err
	}
	a.println("Registered", u.Email+". You can log in now.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.println("Login failed: invalid credentials")
		} else {
			a.report("Login", err)
		}
		return err
	}

	a.email.Store(u.Email)
	a.loggedIn.Store(true)
	a.println("Logged in as", u.Email)
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.authService.Profile(ctx)
	if err != nil {
		a.report("Profile", err)
		return err
	}
	a.email.Store(p.Email)
	a.println(fmt.Sprintf("ID:      %s\nEmail:   %s\nCreated: %s", p.ID, p.Email, p.CreatedAt.Local().Format("2006-01-02 15:04:05")))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.setAnonymous()
	if err != nil {
		a.report("Server logout", err)
		a.println("Local session cleared.")
		return err
	}
	a.println("Logged out.")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	server := "reachable"
	if err := a.authService.Ping(ctx); err != nil {
		server = "unreachable"
	}

	user := "not logged in"
	if a.isLoggedIn() {
		user = "logged in"
		if e := a.currentEmail(); e != "" {
			user += " as " + e
		}
	}
	a.println(fmt.Sprintf("Session: %s\nServer:  %s", user, server))
	return nil
}
