package app

import (
	"context"
	"fmt"

	"github.com/mapacultural/fomenta/pkg/slugx"
)

// bootstrap seeds the first municipality and its staff admin when the store
// is empty and the bootstrap env vars are set. It runs once per process
// start and is a no-op on an already-populated store, so leaving the vars
// in place is harmless.
func (app *Application) bootstrap(ctx context.Context) error {
	if app.cfg.BootstrapTenant == "" || app.cfg.BootstrapEmail == "" || app.cfg.BootstrapPassword == "" {
		return nil
	}

	empty, err := app.db.Tenants().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: checking store: %w", err)
	}
	if !empty {
		return nil
	}

	tenant, err := app.tenantService.CreateTenant(ctx, app.cfg.BootstrapTenant)
	if err != nil {
		return fmt.Errorf("bootstrap: creating tenant: %w", err)
	}

	admin, err := app.accountService.CreateStaff(ctx, tenant,
		"Administrator", app.cfg.BootstrapEmail, app.cfg.BootstrapPassword)
	if err != nil {
		return fmt.Errorf("bootstrap: creating staff admin: %w", err)
	}

	app.logger.Info("bootstrap complete",
		"tenant_id", tenant.ID,
		"slug", slugx.Derive(tenant.Name),
		"admin_id", admin.ID,
	)
	return nil
}
