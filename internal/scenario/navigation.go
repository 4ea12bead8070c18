package scenario

import (
	"context"

	"pmtest/internal/browser"
	"pmtest/internal/domain"
	"pmtest/internal/locator"
)

func adminNavigation(ctx context.Context, env *Env) error {
	if err := loggedInCheckpoint(ctx, env, domain.RoleAdmin); err != nil {
		return err
	}
	if err := dashboardLink(ctx, env, "admin"); err != nil {
		return err
	}

	err := sidebarLink(ctx, env, locator.Sidebar.ListPengaduanLink, "/dashboard/list-aduan",
		"admin_list_aduan", "List Pengaduan navigation - PASS")
	if err != nil {
		return err
	}
	err = sidebarLink(ctx, env, locator.Sidebar.ManajemenUserLink, "/dashboard/list-user",
		"admin_manajemen_user", "Manajemen User navigation - PASS")
	if err != nil {
		return err
	}

	if err := env.OpenUserMenu(ctx); err != nil {
		return err
	}
	if err := env.ClickWhenReady(ctx, locator.Navbar.SettingsLink, env.Config.Timeouts.Wait); err != nil {
		return err
	}
	if err := env.WaitFor(ctx, browser.URLContains("/dashboard/settings"), env.Config.Timeouts.Wait); err != nil {
		return err
	}
	return env.Checkpoint(ctx, "admin_settings", "Settings navigation - PASS")
}

func petugasNavigation(ctx context.Context, env *Env) error {
	if err := loggedInCheckpoint(ctx, env, domain.RolePetugas); err != nil {
		return err
	}
	if err := dashboardLink(ctx, env, "petugas"); err != nil {
		return err
	}

	err := sidebarLink(ctx, env, locator.Sidebar.ListPengaduanLink, "/dashboard/list-aduan",
		"petugas_list_aduan", "List Pengaduan navigation - PASS")
	if err != nil {
		return err
	}
	return userManagementHidden(ctx, env, domain.RolePetugas)
}

func masyarakatNavigation(ctx context.Context, env *Env) error {
	if err := loggedInCheckpoint(ctx, env, domain.RoleMasyarakat); err != nil {
		return err
	}
	if err := dashboardLink(ctx, env, "masyarakat"); err != nil {
		return err
	}

	err := sidebarLink(ctx, env, locator.Sidebar.PengaduanSayaLink, "/dashboard/list-aduan",
		"masyarakat_pengaduan_saya", "Pengaduan Saya navigation - PASS")
	if err != nil {
		return err
	}
	return userManagementHidden(ctx, env, domain.RoleMasyarakat)
}

func loggedInCheckpoint(ctx context.Context, env *Env, role domain.Role) error {
	if err := env.Login(ctx, role); err != nil {
		return err
	}
	return env.Checkpoint(ctx, string(role)+"_logged_in", role.Label()+" logged in successfully")
}

func dashboardLink(ctx context.Context, env *Env, prefix string) error {
	if err := env.Click(ctx, locator.Sidebar.DashboardLink); err != nil {
		return err
	}
	if err := env.ExpectURLContains(ctx, "dashboard"); err != nil {
		return err
	}
	return env.Checkpoint(ctx, prefix+"_dashboard_nav", "Dashboard navigation - PASS")
}

func sidebarLink(ctx context.Context, env *Env, link locator.Entry, path, shot, description string) error {
	if err := env.Click(ctx, link); err != nil {
		return err
	}
	if err := env.WaitFor(ctx, browser.URLContains(path), env.Config.Timeouts.Wait); err != nil {
		return err
	}
	return env.Checkpoint(ctx, shot, description)
}

// userManagementHidden fails when a non-admin role can see Manajemen User.
func userManagementHidden(ctx context.Context, env *Env, role domain.Role) error {
	absent, err := env.Absent(ctx, locator.Sidebar.ManajemenUserLink)
	if err != nil {
		return err
	}
	if !absent {
		return Assertf("Manajemen User should not be visible to %s", role)
	}
	return env.Checkpoint(ctx, string(role)+"_no_user_management", "Manajemen User correctly hidden from "+string(role))
}
