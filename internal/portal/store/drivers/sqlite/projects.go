package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/mapacultural/fomenta/internal/portal/domain"
)

type projectsRepo struct {
	q dbtx
}

const projectColumns = `id, tenant_id, proponent_id, title, summary, status, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (domain.Project, error) {
	var (
		p      domain.Project
		status string
	)
	err := row.Scan(&p.ID, &p.TenantID, &p.ProponentID, &p.Title, &p.Summary, &status,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Project{}, err
	}
	p.Status = domain.ProjectStatus(status)
	return p, nil
}

func (r *projectsRepo) GetProjectByID(ctx context.Context, id string) (domain.Project, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)

	p, err := scanProject(row)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	return p, nil
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO projects (id, tenant_id, proponent_id, title, summary, status,
		   created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.ProponentID, p.Title, p.Summary, string(p.Status),
		p.CreatedAt, p.UpdatedAt)
	return mapConflict(err)
}

func (r *projectsRepo) UpdateProjectContent(
	ctx context.Context,
	projectID, title, summary string,
	updatedAt time.Time,
) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE projects SET title = ?, summary = ?, updated_at = ? WHERE id = ?`,
		title, summary, updatedAt, projectID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *projectsRepo) UpdateProjectStatus(
	ctx context.Context,
	projectID string,
	status domain.ProjectStatus,
	updatedAt time.Time,
) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE projects SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), updatedAt, projectID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *projectsRepo) ListByProponent(ctx context.Context, proponentID string) ([]domain.Project, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects
		 WHERE proponent_id = ? ORDER BY created_at DESC`, proponentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProjects(rows)
}

func (r *projectsRepo) ListByTenant(
	ctx context.Context,
	tenantID string,
	statuses []domain.ProjectStatus,
) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE tenant_id = ?`
	args := []any{tenantID}

	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, s := range statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		query += ` AND status IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProjects(rows)
}

func collectProjects(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]domain.Project, error) {
	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
