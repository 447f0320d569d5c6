package http

import (
	"github.com/mapacultural/fomenta/internal/portal/domain"
	"github.com/mapacultural/fomenta/pkg/portalsdk"
	"github.com/mapacultural/fomenta/pkg/slugx"
)

func principalInfo(p domain.Principal) portalsdk.PrincipalInfo {
	return portalsdk.PrincipalInfo{
		ID:         p.ID,
		TenantID:   p.TenantID,
		Role:       string(p.Role),
		Name:       p.Name,
		Email:      p.Email,
		CreatedAt:  p.CreatedAt,
		LastAccess: p.LastAccess,
	}
}

func tenantInfo(t domain.Tenant) portalsdk.TenantInfo {
	return portalsdk.TenantInfo{
		ID:   t.ID,
		Name: t.Name,
		Slug: slugx.Derive(t.Name),
	}
}

func proponentInfo(p domain.Proponent) portalsdk.ProponentInfo {
	return portalsdk.ProponentInfo{
		ID:          p.ID,
		TenantID:    p.TenantID,
		PrincipalID: p.PrincipalID,
		LegalName:   p.LegalName,
		Document:    p.Document,
		CreatedAt:   p.CreatedAt,
	}
}

func projectInfo(p domain.Project) portalsdk.ProjectInfo {
	return portalsdk.ProjectInfo{
		ID:          p.ID,
		TenantID:    p.TenantID,
		ProponentID: p.ProponentID,
		Title:       p.Title,
		Summary:     p.Summary,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func projectInfos(projects []domain.Project) []portalsdk.ProjectInfo {
	out := make([]portalsdk.ProjectInfo, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectInfo(p))
	}
	return out
}
