package dashgrid

import (
	"context"
	"errors"
	"fmt"
)

// ImportDocuments reads and imports every dashboard document path. Failures are
// collected so one broken file does not block the rest.
func ImportDocuments(ctx context.Context, service *Service, paths ...string) error {
	if service == nil {
		return errors.New("dashgrid: service is required to import documents")
	}
	var importErr error
	for _, path := range paths {
		doc, err := ReadDocument(path)
		if err != nil {
			importErr = errors.Join(importErr, err)
			continue
		}
		if _, err := service.ImportDocument(ctx, doc); err != nil {
			importErr = errors.Join(importErr, fmt.Errorf("import %s: %w", path, err))
		}
	}
	return importErr
}

// RefreshHooks fans a panel event out to several hooks.
type RefreshHooks []RefreshHook

// PanelUpdated notifies every hook and joins their errors.
func (hooks RefreshHooks) PanelUpdated(ctx context.Context, event PanelEvent) error {
	var err error
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		err = errors.Join(err, hook.PanelUpdated(ctx, event))
	}
	return err
}
