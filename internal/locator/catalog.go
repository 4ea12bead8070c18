package locator

// Auth covers the login page.
var Auth = struct {
	EmailInput    Entry
	PasswordInput Entry
	LoginButton   Entry
	RegisterLink  Entry
	ErrorMessage  Entry
	ErrorAlert    Entry
}{
	EmailInput:    id("email"),
	PasswordInput: id("password"),
	LoginButton:   xpath("//button[@type='submit']"),
	RegisterLink:  linkText("Daftar di sini"),
	ErrorMessage:  className("text-red-500"),
	ErrorAlert:    xpath("//div[contains(@class, 'border-red-200')]"),
}

// Register covers the citizen registration form.
var Register = struct {
	FullNameInput        Entry
	NIKInput             Entry
	EmailInput           Entry
	PhoneInput           Entry
	AddressInput         Entry
	PasswordInput        Entry
	ConfirmPasswordInput Entry
	RegisterButton       Entry
}{
	FullNameInput:        id("fullName"),
	NIKInput:             id("nik"),
	EmailInput:           id("email"),
	PhoneInput:           id("phone"),
	AddressInput:         id("address"),
	PasswordInput:        id("password"),
	ConfirmPasswordInput: id("confirmPassword"),
	RegisterButton:       xpath("//button[@type='submit']"),
}

// Navbar covers the top bar and the user dropdown.
var Navbar = struct {
	UserDropdown Entry
	LogoutButton Entry
	LogoutSpan   Entry
	SettingsLink Entry
	DropdownMenu Entry
}{
	UserDropdown: xpath("//button[contains(@class, 'relative')]"),
	LogoutButton: xpath("//div[contains(@class, 'cursor-pointer') and contains(@class, 'text-red-600')]"),
	LogoutSpan:   xpath("//span[contains(text(),'Logout')]"),
	SettingsLink: xpath("//span[contains(text(),'Pengaturan')]"),
	DropdownMenu: xpath("//div[contains(@class, 'w-56')]"),
}

// Dashboard covers the landing page after login.
var Dashboard = struct {
	Title        Entry
	GreetingCard Entry
}{
	Title:        xpath("//h1[contains(text(), 'Halo')]"),
	GreetingCard: xpath("//div[contains(@class, 'bg-gradient-to-r')]"),
}

// Sidebar covers the role-dependent navigation links.
var Sidebar = struct {
	DashboardLink     Entry
	ListAduanLink     Entry
	PengaduanSayaLink Entry
	ListPengaduanLink Entry
	ManajemenUserLink Entry
}{
	DashboardLink:     linkText("Dashboard"),
	ListAduanLink:     xpath("//a[contains(@href, '/dashboard/list-aduan')]"),
	PengaduanSayaLink: linkText("Pengaduan Saya"),
	ListPengaduanLink: linkText("List Pengaduan"),
	ManajemenUserLink: linkText("Manajemen User"),
}

// Settings covers the account settings page.
var Settings = struct {
	Title       Entry
	ProfileTab  Entry
	PasswordTab Entry
	SaveButton  Entry
}{
	Title:       xpath("//h1[contains(text(), 'Pengaturan Akun')]"),
	ProfileTab:  xpath("//button[contains(text(), 'Profil')]"),
	PasswordTab: xpath("//button[contains(text(), 'Password')]"),
	SaveButton:  xpath("//button[contains(text(), 'Simpan')]"),
}

// ListUser covers the user management page.
var ListUser = struct {
	UserTable     Entry
	AddUserButton Entry
}{
	UserTable:     xpath("//table"),
	AddUserButton: xpath("//button[contains(., 'Tambah User')]"),
}

// ListAduan covers the complaint list page.
var ListAduan = struct {
	AduanTable     Entry
	AddAduanButton Entry
}{
	AduanTable:     xpath("//table"),
	AddAduanButton: xpath("//button[contains(., 'Tambah Aduan')]"),
}
