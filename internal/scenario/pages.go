package scenario

import (
	"context"

	"pmtest/internal/browser"
	"pmtest/internal/domain"
	"pmtest/internal/locator"
)

func settingsPage(ctx context.Context, env *Env) error {
	if err := env.Login(ctx, domain.RoleAdmin); err != nil {
		return err
	}
	if err := env.OpenUserMenu(ctx); err != nil {
		return err
	}
	if err := env.ClickWhenReady(ctx, locator.Navbar.SettingsLink, env.Config.Timeouts.Wait); err != nil {
		return err
	}
	if err := env.WaitFor(ctx, browser.PresenceOf(locator.Settings.Title), env.Config.Timeouts.Wait); err != nil {
		return err
	}
	if err := env.Checkpoint(ctx, "settings_page_loaded", "Settings page loaded"); err != nil {
		return err
	}

	if err := env.Require(ctx, locator.Settings.ProfileTab, locator.Settings.PasswordTab); err != nil {
		return err
	}
	return env.Checkpoint(ctx, "settings_tabs", "Profile and password tabs present")
}

func adminUserManagement(ctx context.Context, env *Env) error {
	if err := env.Login(ctx, domain.RoleAdmin); err != nil {
		return err
	}
	err := sidebarLink(ctx, env, locator.Sidebar.ManajemenUserLink, "/dashboard/list-user",
		"user_management_loaded", "User management page loaded")
	if err != nil {
		return err
	}
	if err := env.WaitFor(ctx, browser.PresenceOf(locator.ListUser.UserTable), env.Config.Timeouts.Wait); err != nil {
		return err
	}
	if err := env.Require(ctx, locator.ListUser.AddUserButton); err != nil {
		return err
	}
	return env.Checkpoint(ctx, "user_management_elements", "User table and Tambah User button present")
}

func masyarakatComplaints(ctx context.Context, env *Env) error {
	if err := env.Login(ctx, domain.RoleMasyarakat); err != nil {
		return err
	}
	err := sidebarLink(ctx, env, locator.Sidebar.PengaduanSayaLink, "/dashboard/list-aduan",
		"complaint_page_loaded", "Complaint page loaded")
	if err != nil {
		return err
	}
	if err := env.WaitFor(ctx, browser.PresenceOf(locator.ListAduan.AduanTable), env.Config.Timeouts.Wait); err != nil {
		return err
	}
	if err := env.Require(ctx, locator.ListAduan.AddAduanButton); err != nil {
		return err
	}
	return env.Checkpoint(ctx, "complaint_page_elements", "Complaint table and Tambah Aduan button present")
}
