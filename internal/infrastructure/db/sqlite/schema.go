package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    role TEXT NOT NULL CHECK (role IN ('Manager', 'Behandelaar', 'Vestigings Manager')),
    department_id INTEGER,
    subject_id TEXT,
    active INTEGER DEFAULT 1,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS departments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    region TEXT NOT NULL,
    manager_id INTEGER,
    active INTEGER DEFAULT 1,
    FOREIGN KEY (manager_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS clients (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    birth_date DATE,
    department_id INTEGER NOT NULL,
    caregiver_id INTEGER,
    active INTEGER DEFAULT 1,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (department_id) REFERENCES departments(id),
    FOREIGN KEY (caregiver_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS access_grants (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    client_id INTEGER,
    department_id INTEGER,
    kind TEXT NOT NULL CHECK (kind IN ('Direct', 'ViaManager', 'ViaAfdeling')),
    active INTEGER DEFAULT 1,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id),
    FOREIGN KEY (client_id) REFERENCES clients(id),
    FOREIGN KEY (department_id) REFERENCES departments(id)
);

CREATE INDEX IF NOT EXISTS idx_users_department ON users(department_id);
CREATE INDEX IF NOT EXISTS idx_users_subject ON users(subject_id);
CREATE INDEX IF NOT EXISTS idx_clients_department ON clients(department_id);
CREATE INDEX IF NOT EXISTS idx_clients_caregiver ON clients(caregiver_id);
CREATE INDEX IF NOT EXISTS idx_access_grants_user ON access_grants(user_id);
CREATE INDEX IF NOT EXISTS idx_access_grants_client ON access_grants(client_id);
CREATE INDEX IF NOT EXISTS idx_access_grants_department ON access_grants(department_id);
`

const seedSQL = `
INSERT OR IGNORE INTO departments (id, name, region) VALUES
(1, 'Afdeling X', 'Gebied Noord'),
(2, 'Afdeling Y', 'Gebied Zuid'),
(3, 'Afdeling Z', 'Gebied Oost');

INSERT OR IGNORE INTO users (id, first_name, last_name, email, role, department_id, subject_id) VALUES
(1, 'Ruud', 'Manager', 'ruud.manager@zorgnet.nl', 'Manager', 1, ?),
(2, 'Bertram', 'Manager', 'bertram.manager@zorgnet.nl', 'Manager', 2, ?),
(3, 'Marc', 'Manager', 'marc.manager@zorgnet.nl', 'Manager', 3, ?),
(4, 'Ralph', 'Behandelaar', 'ralph.behandelaar@zorgnet.nl', 'Behandelaar', 1, ?),
(5, 'Bart', 'Behandelaar', 'bart.behandelaar@zorgnet.nl', 'Behandelaar', 1, ?),
(6, 'Vincent', 'Behandelaar', 'vincent.behandelaar@zorgnet.nl', 'Behandelaar', 2, ?),
(7, 'Jimmy', 'Vestigingsmanager', 'jimmy.vestigingsmanager@zorgnet.nl', 'Vestigings Manager', NULL, ?);

UPDATE departments SET manager_id = 1 WHERE id = 1;
UPDATE departments SET manager_id = 2 WHERE id = 2;
UPDATE departments SET manager_id = 3 WHERE id = 3;

INSERT OR IGNORE INTO clients (first_name, last_name, birth_date, department_id, caregiver_id) VALUES
('Jan', 'Jansen', '1950-03-15', 1, 4),
('Piet', 'Pietersen', '1945-07-22', 1, 4),
('Klaas', 'Klaassen', '1960-11-08', 1, 5),
('Marie', 'Marissen', '1955-09-30', 1, 5),
('Henk', 'Hendriksen', '1948-12-05', 1, 4),
('Willem', 'Willemsen', '1952-08-20', 1, 4),
('Emma', 'Emmerik', '1947-11-12', 1, 5),
('Dirk', 'Dirkse', '1958-02-28', 1, 5),
('Sara', 'Sanders', '1953-06-15', 1, 4),
('Anna', 'Andersen', '1952-04-18', 2, 6),
('Erik', 'Eriksen', '1947-06-25', 2, 6),
('Sophie', 'Smit', '1958-08-12', 2, 6),
('Lucas', 'Lubbers', '1951-09-05', 2, 6),
('Mia', 'Meijer', '1949-12-30', 2, 6),
('Noah', 'Nijland', '1955-03-22', 2, 6),
('Olivia', 'Oosterhuis', '1957-07-18', 2, 6),
('Lisa', 'Larsen', '1953-02-14', 3, NULL),
('Tom', 'Thomassen', '1949-10-20', 3, NULL),
('Iris', 'Ivens', '1954-05-08', 3, NULL),
('Finn', 'Fransen', '1951-01-25', 3, NULL);

INSERT OR IGNORE INTO access_grants (user_id, department_id, kind) VALUES
(1, 1, 'ViaManager'),
(2, 2, 'ViaManager'),
(3, 3, 'ViaManager');

INSERT OR IGNORE INTO access_grants (user_id, client_id, kind)
SELECT caregiver_id, id, 'Direct'
FROM clients
WHERE caregiver_id IS NOT NULL;
`

// Bootstrap creates the schema and, when seed is true and the store is empty,
// loads the demo dataset: three departments, seven users, twenty clients, and
// the explicit grants mirroring manager and caregiver assignments. Subject ids
// are generated fresh per bootstrap, standing in for identity-provider object
// ids.
func Bootstrap(ctx context.Context, db *sql.DB, seed bool, log zerolog.Logger) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if !seed {
		return nil
	}

	var users int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if users > 0 {
		return nil
	}

	subjects := make([]any, 7)
	for i := range subjects {
		subjects[i] = newSubjectID()
	}
	if _, err := db.ExecContext(ctx, seedSQL, subjects...); err != nil {
		return fmt.Errorf("seed data: %w", err)
	}

	log.Info().Msg("directory store seeded with demo dataset")
	return nil
}

// newSubjectID returns a random 32-hex-char id in the shape of an external
// identity-provider object id.
func newSubjectID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("sqlite: subject id entropy: %v", err))
	}
	return hex.EncodeToString(b)
}
