package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zorgnet/care-access/internal/core/domain"
)

func openSeededStore(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Connect(ctx, Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := Bootstrap(ctx, db, true, zerolog.Nop()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return db
}

func TestBootstrap_SeedsDemoDataset(t *testing.T) {
	db := openSeededStore(t)
	ctx := context.Background()

	var users, clients, grants int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&clients); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM access_grants`).Scan(&grants); err != nil {
		t.Fatal(err)
	}
	if users != 7 || clients != 20 {
		t.Errorf("expected 7 users and 20 clients, got %d and %d", users, clients)
	}
	// 3 manager department grants plus one direct grant per assigned client.
	if grants != 3+16 {
		t.Errorf("expected 19 grants, got %d", grants)
	}

	// Seeding again is a no-op.
	if err := Bootstrap(ctx, db, true, zerolog.Nop()); err != nil {
		t.Fatalf("re-bootstrap: %v", err)
	}
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		t.Fatal(err)
	}
	if users != 7 {
		t.Errorf("re-bootstrap must not duplicate rows, got %d users", users)
	}
}

func TestBootstrap_GeneratesSubjectIDs(t *testing.T) {
	db := openSeededStore(t)

	rows, err := db.Query(`SELECT subject_id FROM users`)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var subjectID string
		if err := rows.Scan(&subjectID); err != nil {
			t.Fatal(err)
		}
		if len(subjectID) != 32 {
			t.Errorf("subject id %q is not 32 hex chars", subjectID)
		}
		if _, dup := seen[subjectID]; dup {
			t.Errorf("duplicate subject id %q", subjectID)
		}
		seen[subjectID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestFindUserByID(t *testing.T) {
	db := openSeededStore(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	user, err := repo.FindUserByID(ctx, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.FirstName != "Ralph" || user.Role != domain.RoleCaregiver {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.DepartmentName != "Afdeling X" || user.Region != "Gebied Noord" {
		t.Errorf("department fields not joined: %+v", user)
	}

	if _, err := repo.FindUserByID(ctx, 999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUserBySubjectID(t *testing.T) {
	db := openSeededStore(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	var subjectID string
	if err := db.QueryRowContext(ctx, `SELECT subject_id FROM users WHERE id = 7`).Scan(&subjectID); err != nil {
		t.Fatal(err)
	}

	user, err := repo.FindUserBySubjectID(ctx, subjectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 || user.Role != domain.RoleSiteManager {
		t.Errorf("unexpected user: %+v", user)
	}

	if _, err := repo.FindUserBySubjectID(ctx, "no-such-subject"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUserByName(t *testing.T) {
	db := openSeededStore(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	user, err := repo.FindUserByName(ctx, "Ralph", "")
	if err != nil {
		t.Fatalf("first-name lookup: %v", err)
	}
	if user.ID != 4 {
		t.Errorf("expected user 4, got %d", user.ID)
	}

	user, err = repo.FindUserByName(ctx, "Ralph", "Behandelaar")
	if err != nil {
		t.Fatalf("full-name lookup: %v", err)
	}
	if user.ID != 4 {
		t.Errorf("expected user 4, got %d", user.ID)
	}

	if _, err := repo.FindUserByName(ctx, "Ralph", "Jansen"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("mismatched last name must not resolve, got %v", err)
	}
}

func TestFindSiteManager(t *testing.T) {
	db := openSeededStore(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	user, err := repo.FindSiteManager(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 || user.FirstName != "Jimmy" {
		t.Errorf("unexpected site manager: %+v", user)
	}
	if user.DepartmentID != nil {
		t.Errorf("site manager must have no department, got %v", *user.DepartmentID)
	}

	if _, err := db.ExecContext(ctx, `UPDATE users SET active = 0 WHERE id = 7`); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.FindSiteManager(ctx); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("deactivated site manager must not resolve, got %v", err)
	}
}

func TestListActiveClients(t *testing.T) {
	db := openSeededStore(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	clients, err := repo.ListActiveClients(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 20 {
		t.Fatalf("expected 20 clients, got %d", len(clients))
	}

	// Ordered by department then first name: Dirk Dirkse leads department 1.
	first := clients[0]
	if first.FirstName != "Dirk" || first.DepartmentID != 1 {
		t.Errorf("unexpected first client: %+v", first)
	}
	if first.DepartmentName != "Afdeling X" {
		t.Errorf("department name not joined: %+v", first)
	}
	if first.CaregiverName != "Bart Behandelaar" {
		t.Errorf("caregiver name not joined: %q", first.CaregiverName)
	}
	if first.BirthDate == nil || first.BirthDate.Year() != 1958 {
		t.Errorf("birth date not parsed: %v", first.BirthDate)
	}

	lastDept := int64(0)
	for _, c := range clients {
		if c.DepartmentID < lastDept {
			t.Fatalf("clients out of department order")
		}
		lastDept = c.DepartmentID
	}

	// Department 3 clients are unassigned.
	for _, c := range clients {
		if c.DepartmentID == 3 && c.CaregiverID != nil {
			t.Errorf("client %s should be unassigned", c.FullName())
		}
	}

	// Deactivated clients drop out.
	if _, err := db.ExecContext(ctx, `UPDATE clients SET active = 0 WHERE first_name = 'Jan'`); err != nil {
		t.Fatal(err)
	}
	clients, err = repo.ListActiveClients(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(clients) != 19 {
		t.Errorf("expected 19 clients after deactivation, got %d", len(clients))
	}
}

func TestListActiveGrantsForUser(t *testing.T) {
	db := openSeededStore(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	// Caregiver 4 holds one direct grant per assigned client.
	grants, err := repo.ListActiveGrantsForUser(ctx, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grants) != 5 {
		t.Fatalf("expected 5 grants for caregiver 4, got %d", len(grants))
	}
	for _, g := range grants {
		if g.Kind != domain.GrantDirect {
			t.Errorf("expected Direct grant, got %q", g.Kind)
		}
		if !g.TargetValid() {
			t.Errorf("grant %d violates target invariant", g.ID)
		}
		if g.ClientID == nil {
			t.Errorf("direct grant %d has no client target", g.ID)
		}
	}

	// Manager 1 holds one department grant.
	grants, err = repo.ListActiveGrantsForUser(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(grants) != 1 || grants[0].Kind != domain.GrantViaManager || grants[0].DepartmentID == nil {
		t.Errorf("unexpected manager grants: %+v", grants)
	}

	// Deactivated grants drop out.
	if _, err := db.ExecContext(ctx, `UPDATE access_grants SET active = 0 WHERE user_id = 1`); err != nil {
		t.Fatal(err)
	}
	grants, _ = repo.ListActiveGrantsForUser(ctx, 1)
	if len(grants) != 0 {
		t.Errorf("expected no active grants, got %d", len(grants))
	}
}

func TestListDepartmentPeers(t *testing.T) {
	db := openSeededStore(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	peers, err := repo.ListDepartmentPeers(ctx, 1, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Department 1 minus Ralph: Bart then Ruud (role sorts Behandelaar first).
	if len(peers) != 2 {
		t.Fatalf("expected 2 peers, got %d", len(peers))
	}
	if peers[0].FirstName != "Bart" || peers[1].FirstName != "Ruud" {
		t.Errorf("unexpected peer order: %s, %s", peers[0].FirstName, peers[1].FirstName)
	}
}

func TestListActiveDepartments(t *testing.T) {
	db := openSeededStore(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	departments, err := repo.ListActiveDepartments(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(departments) != 3 {
		t.Fatalf("expected 3 departments, got %d", len(departments))
	}
	if departments[0].Name != "Afdeling X" || departments[0].ManagerName != "Ruud Manager" {
		t.Errorf("unexpected first department: %+v", departments[0])
	}
}

func TestListCaregiverCaseloads(t *testing.T) {
	db := openSeededStore(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	caseloads, err := repo.ListCaregiverCaseloads(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(caseloads) != 2 {
		t.Fatalf("expected 2 caregivers in department 1, got %d", len(caseloads))
	}
	if caseloads[0].Caregiver.FirstName != "Bart" || caseloads[0].CaseloadCount != 4 {
		t.Errorf("unexpected first caseload: %+v", caseloads[0])
	}
	if caseloads[1].Caregiver.FirstName != "Ralph" || caseloads[1].CaseloadCount != 5 {
		t.Errorf("unexpected second caseload: %+v", caseloads[1])
	}

	// A department without caregivers yields an empty list.
	caseloads, err = repo.ListCaregiverCaseloads(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(caseloads) != 0 {
		t.Errorf("expected no caregivers in department 3, got %d", len(caseloads))
	}
}

func TestCountActiveClients(t *testing.T) {
	db := openSeededStore(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	total, err := repo.CountActiveClients(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if total != 20 {
		t.Errorf("expected 20 clients, got %d", total)
	}

	perDept := map[int64]int{1: 9, 2: 7, 3: 4}
	for deptID, want := range perDept {
		got, err := repo.CountActiveClientsInDepartment(ctx, deptID)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("department %d: expected %d clients, got %d", deptID, want, got)
		}
	}

	assigned, err := repo.CountActiveClientsForCaregiver(ctx, 6)
	if err != nil {
		t.Fatal(err)
	}
	if assigned != 7 {
		t.Errorf("expected 7 clients for caregiver 6, got %d", assigned)
	}
}
