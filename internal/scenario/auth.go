package scenario

import (
	"context"
	"time"

	"pmtest/internal/browser"
	"pmtest/internal/domain"
	"pmtest/internal/locator"
)

func loginPageAccessibility(ctx context.Context, env *Env) error {
	if err := env.Open(ctx, "/auth/login"); err != nil {
		return err
	}
	if err := env.Checkpoint(ctx, "login_page_loaded", "Navigate to login page"); err != nil {
		return err
	}

	if err := env.ExpectTitleContains(ctx, "Login"); err != nil {
		return err
	}
	if err := env.Note("Page title validation - PASS"); err != nil {
		return err
	}

	err := env.Require(ctx,
		locator.Auth.EmailInput,
		locator.Auth.PasswordInput,
		locator.Auth.LoginButton,
		locator.Auth.RegisterLink,
	)
	if err != nil {
		return err
	}
	return env.Checkpoint(ctx, "login_form_elements", "All form elements present")
}

// roleLogin signs in through the form with screenshots at each stage and checks
// the dashboard belongs to role.
func roleLogin(role domain.Role) Func {
	return func(ctx context.Context, env *Env) error {
		creds, err := env.Config.CredentialsFor(role)
		if err != nil {
			return err
		}
		prefix := string(role)

		if err := env.Open(ctx, "/auth/login"); err != nil {
			return err
		}
		if err := env.Checkpoint(ctx, prefix+"_login_start", "Navigate to login page"); err != nil {
			return err
		}

		if err := env.Fill(ctx, locator.Auth.EmailInput, creds.Email); err != nil {
			return err
		}
		if err := env.Fill(ctx, locator.Auth.PasswordInput, creds.Password); err != nil {
			return err
		}
		if err := env.Checkpoint(ctx, prefix+"_credentials_filled", role.Label()+" credentials entered"); err != nil {
			return err
		}

		if err := env.Click(ctx, locator.Auth.LoginButton); err != nil {
			return err
		}
		if err := env.WaitForDashboard(ctx); err != nil {
			return err
		}
		if err := env.Checkpoint(ctx, prefix+"_dashboard_loaded", role.Label()+" dashboard loaded successfully"); err != nil {
			return err
		}

		if err := env.ExpectURLContains(ctx, "dashboard"); err != nil {
			return err
		}
		return env.ExpectSourceContains(ctx, role.DashboardMarker())
	}
}

func invalidLoginAttempts(ctx context.Context, env *Env) error {
	// Malformed email: the browser or the form rejects it; the page state is recorded.
	if err := env.Open(ctx, "/auth/login"); err != nil {
		return err
	}
	if err := env.SubmitLogin(ctx, domain.Credentials{Email: "invalid-email", Password: "password"}); err != nil {
		return err
	}
	if err := env.Checkpoint(ctx, "invalid_email_format", "Invalid email format test"); err != nil {
		return err
	}

	if err := rejectedLogin(ctx, env, "nonexistent@example.com", "password"); err != nil {
		return err
	}
	if err := env.Checkpoint(ctx, "nonexistent_user", "Non-existent user error displayed"); err != nil {
		return err
	}

	admin, err := env.Config.CredentialsFor(domain.RoleAdmin)
	if err != nil {
		return err
	}
	if err := rejectedLogin(ctx, env, admin.Email, "wrongpassword"); err != nil {
		return err
	}
	if err := env.Checkpoint(ctx, "wrong_password", "Wrong password error displayed"); err != nil {
		return err
	}

	if err := env.Open(ctx, "/auth/login"); err != nil {
		return err
	}
	if err := env.Click(ctx, locator.Auth.LoginButton); err != nil {
		return err
	}
	n, err := env.Count(ctx, locator.Auth.ErrorMessage)
	if err != nil {
		return err
	}
	if n < 1 {
		return Assertf("expected at least one validation message for empty fields, got %d", n)
	}
	return env.Checkpoint(ctx, "empty_fields", "Empty fields validation working")
}

// rejectedLogin submits credentials the server must refuse and waits for the
// error alert.
func rejectedLogin(ctx context.Context, env *Env, email, password string) error {
	if err := env.Open(ctx, "/auth/login"); err != nil {
		return err
	}
	if err := env.Replace(ctx, locator.Auth.EmailInput, email); err != nil {
		return err
	}
	if err := env.Replace(ctx, locator.Auth.PasswordInput, password); err != nil {
		return err
	}
	if err := env.Click(ctx, locator.Auth.LoginButton); err != nil {
		return err
	}
	return env.WaitFor(ctx, browser.PresenceOf(locator.Auth.ErrorAlert), env.Config.Timeouts.Short)
}

// registrationSettle is how long the form gets to show validation after submit.
var registrationSettle = 2 * time.Second

// invalidRegistration is deliberately wrong in every field the form validates.
var invalidRegistration = []struct {
	field locator.Entry
	value string
}{
	{locator.Register.FullNameInput, "Test User"},
	{locator.Register.NIKInput, "123"},
	{locator.Register.EmailInput, "admin@rpl.0xfzz.xyz"},
	{locator.Register.PhoneInput, "123"},
	{locator.Register.AddressInput, "Test Address"},
	{locator.Register.PasswordInput, "pass"},
	{locator.Register.ConfirmPasswordInput, "different"},
}

func registrationPage(ctx context.Context, env *Env) error {
	if err := env.Open(ctx, "/auth/register"); err != nil {
		return err
	}
	if err := env.Checkpoint(ctx, "registration_page_loaded", "Registration page loaded"); err != nil {
		return err
	}

	fields := make([]locator.Entry, 0, len(invalidRegistration)+1)
	for _, f := range invalidRegistration {
		fields = append(fields, f.field)
	}
	fields = append(fields, locator.Register.RegisterButton)
	if err := env.Require(ctx, fields...); err != nil {
		return err
	}
	if err := env.Checkpoint(ctx, "registration_form_elements", "All registration form elements present"); err != nil {
		return err
	}

	for _, f := range invalidRegistration {
		if err := env.Fill(ctx, f.field, f.value); err != nil {
			return err
		}
	}
	if err := env.Checkpoint(ctx, "registration_invalid_data", "Invalid registration data entered"); err != nil {
		return err
	}

	if err := env.Click(ctx, locator.Register.RegisterButton); err != nil {
		return err
	}
	if err := env.Pause(ctx, registrationSettle); err != nil {
		return err
	}
	return env.Checkpoint(ctx, "registration_validation_errors", "Registration validation errors displayed")
}
