package scenario

import (
	"pmtest/internal/browser/browsertest"
	"pmtest/internal/config"
	"pmtest/internal/domain"
	"pmtest/internal/locator"
)

// portal is an in-memory stand-in for the complaint portal that reacts to the
// login form the way the real one does.
type portal struct {
	site *browsertest.Site

	// leakUserManagement shows Manajemen User to every role.
	leakUserManagement bool
}

var dashboardPaths = []string{
	"/dashboard",
	"/dashboard/list-aduan",
	"/dashboard/list-user",
	"/dashboard/settings",
}

func newPortal(cfg *config.Config) *portal {
	p := &portal{site: browsertest.NewSite()}

	// Accounts are fixed when the portal is built; later config edits act as typos.
	accounts := make(map[domain.Role]domain.Credentials, len(cfg.Credentials))
	for role, c := range cfg.Credentials {
		accounts[role] = c
	}

	login := p.site.Page("/auth/login", "Login - Pengaduan Masyarakat")
	login.With(locator.Auth.EmailInput, locator.Auth.PasswordInput, locator.Auth.RegisterLink)
	login.Add(locator.Auth.LoginButton).OnClick = func(s *browsertest.Session) {
		email := login.Elements[locator.Auth.EmailInput]
		password := login.Elements[locator.Auth.PasswordInput]
		typed := domain.Credentials{Email: email.Value, Password: password.Value}
		email.Value, password.Value = "", ""

		if typed.Email == "" && typed.Password == "" {
			s.Goto("/auth/login?empty")
			return
		}
		for _, role := range domain.Roles {
			if accounts[role] == typed {
				p.signIn(role)
				s.Goto("/dashboard")
				return
			}
		}
		s.Goto("/auth/login?failed")
	}

	p.site.Page("/auth/login?failed", "Login - Pengaduan Masyarakat").
		With(locator.Auth.EmailInput, locator.Auth.PasswordInput, locator.Auth.LoginButton, locator.Auth.ErrorAlert)
	empty := p.site.Page("/auth/login?empty", "Login - Pengaduan Masyarakat").
		With(locator.Auth.EmailInput, locator.Auth.PasswordInput, locator.Auth.LoginButton)
	empty.Add(locator.Auth.ErrorMessage).Count = 2

	p.site.Page("/auth/register", "Daftar - Pengaduan Masyarakat").With(
		locator.Register.FullNameInput,
		locator.Register.NIKInput,
		locator.Register.EmailInput,
		locator.Register.PhoneInput,
		locator.Register.AddressInput,
		locator.Register.PasswordInput,
		locator.Register.ConfirmPasswordInput,
		locator.Register.RegisterButton,
	)

	for _, path := range dashboardPaths {
		page := p.site.Page(path, "Dashboard - Pengaduan Masyarakat")
		page.With(locator.Dashboard.Title, locator.Dashboard.GreetingCard, locator.Navbar.UserDropdown, locator.Navbar.DropdownMenu)
		page.Add(locator.Sidebar.DashboardLink).GoesTo("/dashboard")
		page.Add(locator.Navbar.SettingsLink).GoesTo("/dashboard/settings")
		page.Add(locator.Navbar.LogoutSpan).GoesTo("/auth/login")
	}
	p.site.Pages["/dashboard/list-aduan"].With(locator.ListAduan.AduanTable, locator.ListAduan.AddAduanButton)
	p.site.Pages["/dashboard/list-user"].With(locator.ListUser.UserTable, locator.ListUser.AddUserButton)
	p.site.Pages["/dashboard/settings"].With(
		locator.Settings.Title, locator.Settings.ProfileTab, locator.Settings.PasswordTab, locator.Settings.SaveButton)

	return p
}

// signIn shapes every dashboard page for role.
func (p *portal) signIn(role domain.Role) {
	for _, path := range dashboardPaths {
		page := p.site.Pages[path]
		page.Source = "<html><body><h1>Halo</h1><p>" + role.DashboardMarker() + "</p></body></html>"

		delete(page.Elements, locator.Sidebar.ListPengaduanLink)
		delete(page.Elements, locator.Sidebar.PengaduanSayaLink)
		delete(page.Elements, locator.Sidebar.ManajemenUserLink)

		switch role {
		case domain.RoleMasyarakat:
			page.Add(locator.Sidebar.PengaduanSayaLink).GoesTo("/dashboard/list-aduan")
		default:
			page.Add(locator.Sidebar.ListPengaduanLink).GoesTo("/dashboard/list-aduan")
		}
		if role == domain.RoleAdmin || p.leakUserManagement {
			page.Add(locator.Sidebar.ManajemenUserLink).GoesTo("/dashboard/list-user")
		}
	}
}
