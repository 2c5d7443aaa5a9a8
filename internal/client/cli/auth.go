package cli

import (
	"context"
	"fmt"
)

func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if _, err := a.api.Register(ctx, username, email, string(password)); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Registered. You can now log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	user, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	a.userName = user.Username
	fmt.Fprintf(a.out, "Logged in as %s\n", user.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
