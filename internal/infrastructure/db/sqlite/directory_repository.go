package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zorgnet/care-access/internal/core/domain"
	"github.com/zorgnet/care-access/internal/core/ports"
)

// DirectoryRepository implements ports.DirectoryRepository over SQLite.
// Every query filters on active = 1; inactive rows never participate.
type DirectoryRepository struct {
	db *sql.DB
}

func NewDirectoryRepository(db *sql.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

const userSelect = `
SELECT u.id, u.first_name, u.last_name, u.email, u.role, u.department_id,
       u.subject_id, u.active, d.name, d.region
FROM users u
LEFT JOIN departments d ON u.department_id = d.id
`

func (r *DirectoryRepository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, userSelect+`WHERE u.id = ? AND u.active = 1`, id)
	return scanUser(row)
}

func (r *DirectoryRepository) FindUserBySubjectID(ctx context.Context, subjectID string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, userSelect+`WHERE u.subject_id = ? AND u.active = 1`, subjectID)
	return scanUser(row)
}

func (r *DirectoryRepository) FindUserByName(ctx context.Context, firstName, lastName string) (*domain.User, error) {
	var row *sql.Row
	if lastName != "" {
		row = r.db.QueryRowContext(ctx,
			userSelect+`WHERE u.first_name = ? AND u.last_name = ? AND u.active = 1 ORDER BY u.id LIMIT 1`,
			firstName, lastName)
	} else {
		row = r.db.QueryRowContext(ctx,
			userSelect+`WHERE u.first_name = ? AND u.active = 1 ORDER BY u.id LIMIT 1`,
			firstName)
	}
	return scanUser(row)
}

func (r *DirectoryRepository) FindSiteManager(ctx context.Context) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		userSelect+`WHERE u.role = ? AND u.active = 1 ORDER BY u.id LIMIT 1`,
		domain.RoleSiteManager)
	return scanUser(row)
}

func (r *DirectoryRepository) ListDepartmentPeers(ctx context.Context, departmentID, excludeUserID int64) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		userSelect+`WHERE u.department_id = ? AND u.id != ? AND u.active = 1 ORDER BY u.role, u.first_name`,
		departmentID, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("list peers: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *DirectoryRepository) ListActiveClients(ctx context.Context) ([]*domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, c.first_name, c.last_name, c.birth_date, c.department_id,
       c.caregiver_id, c.active, d.name, g.first_name || ' ' || g.last_name
FROM clients c
LEFT JOIN departments d ON c.department_id = d.id
LEFT JOIN users g ON c.caregiver_id = g.id
WHERE c.active = 1
ORDER BY c.department_id, c.first_name, c.last_name`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := []*domain.Client{}
	for rows.Next() {
		var (
			c             domain.Client
			birthDate     sql.NullString
			caregiverID   sql.NullInt64
			deptName      sql.NullString
			caregiverName sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &birthDate, &c.DepartmentID,
			&caregiverID, &c.Active, &deptName, &caregiverName); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		if birthDate.Valid {
			t, err := time.Parse("2006-01-02", birthDate.String)
			if err != nil {
				return nil, fmt.Errorf("parse birth date %q: %w", birthDate.String, err)
			}
			c.BirthDate = &t
		}
		if caregiverID.Valid {
			c.CaregiverID = &caregiverID.Int64
		}
		c.DepartmentName = deptName.String
		c.CaregiverName = caregiverName.String
		clients = append(clients, &c)
	}
	return clients, rows.Err()
}

func (r *DirectoryRepository) ListActiveGrantsForUser(ctx context.Context, userID int64) ([]*domain.AccessGrant, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, client_id, department_id, kind, active
FROM access_grants
WHERE user_id = ? AND active = 1
ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	defer rows.Close()

	grants := []*domain.AccessGrant{}
	for rows.Next() {
		var (
			g            domain.AccessGrant
			clientID     sql.NullInt64
			departmentID sql.NullInt64
		)
		if err := rows.Scan(&g.ID, &g.UserID, &clientID, &departmentID, &g.Kind, &g.Active); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		if clientID.Valid {
			g.ClientID = &clientID.Int64
		}
		if departmentID.Valid {
			g.DepartmentID = &departmentID.Int64
		}
		grants = append(grants, &g)
	}
	return grants, rows.Err()
}

func (r *DirectoryRepository) ListActiveDepartments(ctx context.Context) ([]*domain.Department, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT d.id, d.name, d.region, d.manager_id, d.active,
       m.first_name || ' ' || m.last_name
FROM departments d
LEFT JOIN users m ON d.manager_id = m.id AND m.active = 1
WHERE d.active = 1
ORDER BY d.id`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	departments := []*domain.Department{}
	for rows.Next() {
		var (
			d           domain.Department
			managerID   sql.NullInt64
			managerName sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Region, &managerID, &d.Active, &managerName); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		if managerID.Valid {
			d.ManagerID = &managerID.Int64
		}
		d.ManagerName = managerName.String
		departments = append(departments, &d)
	}
	return departments, rows.Err()
}

func (r *DirectoryRepository) ListCaregiverCaseloads(ctx context.Context, departmentID int64) ([]ports.CaregiverCaseload, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT u.id, u.first_name, u.last_name, u.email, u.role, u.department_id,
       COUNT(c.id)
FROM users u
LEFT JOIN clients c ON u.id = c.caregiver_id AND c.active = 1
WHERE u.department_id = ? AND u.role = ? AND u.active = 1
GROUP BY u.id, u.first_name, u.last_name
ORDER BY u.first_name`, departmentID, domain.RoleCaregiver)
	if err != nil {
		return nil, fmt.Errorf("list caseloads: %w", err)
	}
	defer rows.Close()

	caseloads := []ports.CaregiverCaseload{}
	for rows.Next() {
		var (
			cl     ports.CaregiverCaseload
			deptID sql.NullInt64
		)
		if err := rows.Scan(&cl.Caregiver.ID, &cl.Caregiver.FirstName, &cl.Caregiver.LastName,
			&cl.Caregiver.Email, &cl.Caregiver.Role, &deptID, &cl.CaseloadCount); err != nil {
			return nil, fmt.Errorf("scan caseload: %w", err)
		}
		if deptID.Valid {
			cl.Caregiver.DepartmentID = &deptID.Int64
		}
		cl.Caregiver.Active = true
		caseloads = append(caseloads, cl)
	}
	return caseloads, rows.Err()
}

func (r *DirectoryRepository) CountActiveClients(ctx context.Context) (int, error) {
	return r.countClients(ctx, `SELECT COUNT(*) FROM clients WHERE active = 1`)
}

func (r *DirectoryRepository) CountActiveClientsInDepartment(ctx context.Context, departmentID int64) (int, error) {
	return r.countClients(ctx, `SELECT COUNT(*) FROM clients WHERE department_id = ? AND active = 1`, departmentID)
}

func (r *DirectoryRepository) CountActiveClientsForCaregiver(ctx context.Context, caregiverID int64) (int, error) {
	return r.countClients(ctx, `SELECT COUNT(*) FROM clients WHERE caregiver_id = ? AND active = 1`, caregiverID)
}

func (r *DirectoryRepository) countClients(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u         domain.User
		deptID    sql.NullInt64
		subjectID sql.NullString
		deptName  sql.NullString
		region    sql.NullString
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role,
		&deptID, &subjectID, &u.Active, &deptName, &region)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if deptID.Valid {
		u.DepartmentID = &deptID.Int64
	}
	u.SubjectID = subjectID.String
	u.DepartmentName = deptName.String
	u.Region = region.String
	return &u, nil
}
