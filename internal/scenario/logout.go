package scenario

import (
	"context"

	"pmtest/internal/domain"
)

// logoutAll signs every role in and out again within one case.
func logoutAll(ctx context.Context, env *Env) error {
	for _, role := range domain.Roles {
		if err := logoutFlow(ctx, env, role, "_logged_in_for_logout"); err != nil {
			return err
		}
	}
	return nil
}

func roleLogout(role domain.Role) Func {
	return func(ctx context.Context, env *Env) error {
		return logoutFlow(ctx, env, role, "_logged_in")
	}
}

func logoutFlow(ctx context.Context, env *Env, role domain.Role, loggedInSuffix string) error {
	prefix := string(role)

	if err := env.Login(ctx, role); err != nil {
		return err
	}
	if err := env.Checkpoint(ctx, prefix+loggedInSuffix, role.Label()+" logged in"); err != nil {
		return err
	}

	if err := env.OpenUserMenu(ctx); err != nil {
		return err
	}
	if err := env.Checkpoint(ctx, prefix+"_dropdown_opened", role.Label()+" dropdown opened"); err != nil {
		return err
	}

	if err := env.ChooseLogout(ctx); err != nil {
		return err
	}
	if err := env.Checkpoint(ctx, prefix+"_logged_out", role.Label()+" logged out successfully"); err != nil {
		return err
	}
	return env.ExpectURLContains(ctx, "/auth/login")
}
