package data

// catalogSchema описывает все таблицы каталога.
// Изображения хранятся как JSON-текст в колонке ImagesJson; списочные
// ответы API отдают эту колонку как есть, клиент нормализует ее на своей
// стороне.
const catalogSchema = `
CREATE TABLE IF NOT EXISTS Roles (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    RoleName TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS Users (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    Email TEXT NOT NULL UNIQUE,
    FirstName TEXT NOT NULL,
    LastName TEXT NOT NULL,
    Address TEXT,
    ImagesJson TEXT DEFAULT '[]',
    GovernmentIdJson TEXT DEFAULT '[]',
    PasswordHash TEXT NOT NULL,
    RoleId INTEGER NOT NULL,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL,
    FOREIGN KEY (RoleId) REFERENCES Roles(Id)
);

CREATE TABLE IF NOT EXISTS Tests (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    Name TEXT NOT NULL,
    ImagesJson TEXT DEFAULT '[]',
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS TestChilds (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    Name TEXT NOT NULL,
    ImagesJson TEXT DEFAULT '[]',
    TestId INTEGER NOT NULL,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL,
    FOREIGN KEY (TestId) REFERENCES Tests(Id) ON DELETE CASCADE
);
`

// SeedRoles засеивает роли "Merchant" и "Customer", если их еще нет.
func SeedRoles() error {
	for _, roleName := range []string{"Merchant", "Customer"} {
		if _, err := DB.Exec(`INSERT OR IGNORE INTO Roles (RoleName) VALUES (?)`, roleName); err != nil {
			return err
		}
	}
	return nil
}
