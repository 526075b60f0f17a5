package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notevault/internal/client/config"
	"github.com/dmitrijs2005/notevault/internal/rpcapi"
)

func (a *App) register(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	displayName, err := GetSimpleText(a.reader, "Display name (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	resp, err := a.api.Register(ctx, userName, password, displayName)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	a.printAuth(resp)
	return nil
}

func (a *App) login(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	resp, err := a.api.Login(ctx, userName, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	a.printAuth(resp)
	return nil
}

func (a *App) printAuth(resp rpcapi.AuthResponse) {
	fmt.Fprintln(a.out, resp.Message)
	fmt.Fprintf(a.out, "export %s=%s\n", config.TokenEnv, resp.Token)
}
