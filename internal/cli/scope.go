package cli

import (
	"github.com/simbachain/libsimba-deploy/internal/app"
	"github.com/simbachain/libsimba-deploy/internal/domain/models"
)

// applyScopeDefaults fills in any of the workflow's scoping fields the
// plan document left blank from the runtime configuration's defaults
// (--org, --app-name, --blockchain, --storage, or their config/env
// equivalents).
func applyScopeDefaults(workflow *models.Workflow, application *app.App) {
	if workflow.Org == "" {
		workflow.Org = application.Config.Org
	}
	if workflow.AppName == "" {
		workflow.AppName = application.Config.AppName
	}
	if workflow.Blockchain == "" {
		workflow.Blockchain = application.Config.Blockchain
	}
	if workflow.Storage == "" {
		workflow.Storage = application.Config.Storage
	}
}
