package scenario

import (
	"pmtest/internal/domain"
)

// Feature tags.
const (
	TagAuth         = "auth"
	TagNavigation   = "navigation"
	TagLogout       = "logout"
	TagRegistration = "registration"
	TagPages        = "pages"
)

// All returns the suite in run order.
func All() []Scenario {
	return []Scenario{
		{Name: "Login Page Accessibility", Slug: "login_page", Tags: []string{TagAuth, TagSlow}, Run: loginPageAccessibility},
		{Name: "Admin Login Test", Slug: "admin_login", Tags: []string{TagAuth, TagSlow}, Run: roleLogin(domain.RoleAdmin)},
		{Name: "Admin Navigation Test", Slug: "admin_navigation", Tags: []string{TagNavigation, TagSlow}, Run: adminNavigation},
		{Name: "Petugas Login Test", Slug: "petugas_login", Tags: []string{TagAuth, TagSlow}, Run: roleLogin(domain.RolePetugas)},
		{Name: "Petugas Navigation Test", Slug: "petugas_navigation", Tags: []string{TagNavigation, TagSlow}, Run: petugasNavigation},
		{Name: "Masyarakat Login Test", Slug: "masyarakat_login", Tags: []string{TagAuth, TagSlow}, Run: roleLogin(domain.RoleMasyarakat)},
		{Name: "Masyarakat Navigation Test", Slug: "masyarakat_navigation", Tags: []string{TagNavigation, TagSlow}, Run: masyarakatNavigation},
		{Name: "Invalid Login Attempts Test", Slug: "invalid_login", Tags: []string{TagAuth, TagSlow}, Run: invalidLoginAttempts},
		{Name: "Logout Functionality Test", Slug: "logout", Tags: []string{TagLogout}, Run: logoutAll},
		{Name: "Registration Page Test", Slug: "registration", Tags: []string{TagRegistration}, Run: registrationPage},
		{Name: "Admin Logout Test", Slug: "admin_logout", Tags: []string{TagLogout}, Run: roleLogout(domain.RoleAdmin)},
		{Name: "Petugas Logout Test", Slug: "petugas_logout", Tags: []string{TagLogout}, Run: roleLogout(domain.RolePetugas)},
		{Name: "Masyarakat Logout Test", Slug: "masyarakat_logout", Tags: []string{TagLogout}, Run: roleLogout(domain.RoleMasyarakat)},
		{Name: "Settings Page Test", Slug: "settings_page", Tags: []string{TagPages}, Run: settingsPage},
		{Name: "Admin User Management Page Test", Slug: "admin_user_management", Tags: []string{TagPages}, Run: adminUserManagement},
		{Name: "Masyarakat Complaint Page Test", Slug: "masyarakat_complaint_page", Tags: []string{TagPages}, Run: masyarakatComplaints},
	}
}

// ByName returns the scenario with the given case name.
func ByName(name string) (Scenario, bool) {
	for _, s := range All() {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}
