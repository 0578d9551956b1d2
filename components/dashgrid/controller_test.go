package dashgrid

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerLayoutPayload(t *testing.T) {
	service, _, _, _ := newTestService(t)
	controller := NewController(service)

	payload, err := controller.LayoutPayload(context.Background(), "ops", testLayoutContext, true)
	require.NoError(t, err)
	assert.True(t, payload.Editable)
	assert.Equal(t, "ops", payload.Layout.DashboardID)
	assert.Len(t, payload.GridItems, 6)

	_, err = controller.LayoutPayload(context.Background(), "missing", testLayoutContext, true)
	assert.ErrorIs(t, err, ErrDashboardNotFound)
}

func TestImportDocumentsCollectsFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "ops.yaml")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(yamlDocument), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte(`{"id":""}`), 0o600))

	service := NewService(Options{})
	err := ImportDocuments(context.Background(), service, good, bad, filepath.Join(dir, "missing.toml"))
	if err == nil {
		t.Fatalf("expected import errors")
	}
	if _, lookupErr := service.Export(context.Background(), "ops"); lookupErr != nil {
		t.Fatalf("expected good document imported despite failures: %v", lookupErr)
	}
	if ImportDocuments(context.Background(), nil) == nil {
		t.Fatalf("expected error for nil service")
	}
}
